package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceCategory represents the marketplace category a service belongs to
type ServiceCategory string

const (
	CategoryLaundry        ServiceCategory = "laundry"
	CategoryTransportation ServiceCategory = "transportation"
	CategoryDining         ServiceCategory = "dining"
	CategoryHousekeeping   ServiceCategory = "housekeeping"
	CategoryWellness       ServiceCategory = "wellness"
)

// IsValidServiceCategory checks if the given category is supported
func IsValidServiceCategory(category ServiceCategory) bool {
	switch category {
	case CategoryLaundry, CategoryTransportation, CategoryDining,
		CategoryHousekeeping, CategoryWellness:
		return true
	}
	return false
}

// ============================================================================
// AVAILABILITY SCHEDULE (JSONB)
// ============================================================================

// DaySchedule is one weekday's opening window, in minutes from midnight
// (0 through 1439, both bounds inclusive). Windows are same-day only:
// StartMinutes must be before EndMinutes, so a window can never span
// midnight into the next day. An all-day window ends at 1439.
type DaySchedule struct {
	Enabled      bool `json:"enabled"`
	StartMinutes int  `json:"start_minutes"`
	EndMinutes   int  `json:"end_minutes"`
}

// AvailabilitySchedule maps lowercase weekday names ("monday" .. "sunday")
// to opening windows. A nil schedule means the service is always bookable.
type AvailabilitySchedule map[string]DaySchedule

func (s AvailabilitySchedule) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *AvailabilitySchedule) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed for AvailabilitySchedule")
	}
	return json.Unmarshal(bytes, s)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a lowercase weekday name used as a schedule key
func ParseWeekday(name string) (time.Weekday, bool) {
	day, ok := weekdayNames[strings.ToLower(name)]
	return day, ok
}

// Validate validates the availability schedule
func (s AvailabilitySchedule) Validate() error {
	for name, day := range s {
		if _, ok := ParseWeekday(name); !ok {
			return fmt.Errorf("invalid weekday in schedule: %s", name)
		}
		if !day.Enabled {
			continue
		}
		if day.StartMinutes < 0 || day.EndMinutes >= 24*60 {
			return fmt.Errorf("schedule for %s is out of range", name)
		}
		if day.StartMinutes >= day.EndMinutes {
			return fmt.Errorf("schedule for %s must start before it ends", name)
		}
	}

	return nil
}

// ============================================================================
// SERVICE MODEL (services table)
// ============================================================================

// Service represents a bookable marketplace service offered by a
// provider at a hotel
type Service struct {
	ID          string          `json:"id" db:"id"`
	HotelID     string          `json:"hotel_id" db:"hotel_id"`
	ProviderID  string          `json:"provider_id" db:"provider_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Category    ServiceCategory `json:"category" db:"category"`

	BasePrice        float64 `json:"base_price" db:"base_price"`
	Currency         string  `json:"currency" db:"currency"`
	DurationMinutes  int     `json:"duration_minutes" db:"duration_minutes"`
	ExpressSurcharge float64 `json:"express_surcharge" db:"express_surcharge"`

	Schedule AvailabilitySchedule `json:"schedule,omitempty" db:"schedule"`

	TotalBookings int       `json:"total_bookings" db:"total_bookings"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CatalogEntry is one row of the guest-facing catalog: the service
// together with whether its schedule is open at the moment of browsing
type CatalogEntry struct {
	Service
	IsOpenNow bool `json:"is_open_now"`
}

// CreateServiceRequest represents the request to list a new service
type CreateServiceRequest struct {
	Name             string               `json:"name" binding:"required"`
	Description      string               `json:"description,omitempty"`
	Category         string               `json:"category" binding:"required"`
	BasePrice        float64              `json:"base_price" binding:"required"`
	Currency         string               `json:"currency,omitempty"`
	DurationMinutes  int                  `json:"duration_minutes,omitempty"`
	ExpressSurcharge float64              `json:"express_surcharge,omitempty"`
	Schedule         AvailabilitySchedule `json:"schedule,omitempty"`
}

// Validate validates the create service request
func (r *CreateServiceRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if !IsValidServiceCategory(ServiceCategory(r.Category)) {
		return fmt.Errorf("invalid category: %s", r.Category)
	}
	if r.BasePrice <= 0 {
		return errors.New("base_price must be positive")
	}
	if r.ExpressSurcharge < 0 {
		return errors.New("express_surcharge cannot be negative")
	}
	if r.DurationMinutes < 0 {
		return errors.New("duration_minutes cannot be negative")
	}
	if r.Schedule != nil {
		if err := r.Schedule.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// UpdateServiceRequest represents the request to update a service listing
type UpdateServiceRequest struct {
	Name             *string              `json:"name,omitempty"`
	Description      *string              `json:"description,omitempty"`
	BasePrice        *float64             `json:"base_price,omitempty"`
	DurationMinutes  *int                 `json:"duration_minutes,omitempty"`
	ExpressSurcharge *float64             `json:"express_surcharge,omitempty"`
	Schedule         AvailabilitySchedule `json:"schedule,omitempty"`
}

// Validate validates the update service request
func (r *UpdateServiceRequest) Validate() error {
	if r.BasePrice != nil && *r.BasePrice <= 0 {
		return errors.New("base_price must be positive")
	}
	if r.ExpressSurcharge != nil && *r.ExpressSurcharge < 0 {
		return errors.New("express_surcharge cannot be negative")
	}
	if r.Schedule != nil {
		if err := r.Schedule.Validate(); err != nil {
			return err
		}
	}

	return nil
}
