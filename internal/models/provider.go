package models

import (
	"errors"
	"time"
)

// ProviderStatus represents the status of a service provider
type ProviderStatus string

const (
	ProviderStatusActive    ProviderStatus = "active"
	ProviderStatusSuspended ProviderStatus = "suspended"
)

// Provider represents a business that fulfils services at a hotel.
// The rating and booking counters are denormalized aggregates owned
// by the rating and booking services.
type Provider struct {
	ID           string `json:"id" db:"id"`
	HotelID      string `json:"hotel_id" db:"hotel_id"`
	BusinessName string `json:"business_name" db:"business_name"`
	ContactEmail string `json:"contact_email" db:"contact_email"`
	ContactPhone string `json:"contact_phone" db:"contact_phone"`

	// MarkupOverridePct, when set, wins over every hotel-level markup
	MarkupOverridePct *float64 `json:"markup_override_pct,omitempty" db:"markup_override_pct"`

	AverageRating float64 `json:"average_rating" db:"average_rating"`
	TotalReviews  int     `json:"total_reviews" db:"total_reviews"`
	TotalBookings int     `json:"total_bookings" db:"total_bookings"`

	Status    ProviderStatus `json:"status" db:"status"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// IsActive checks if the provider can accept bookings
func (p *Provider) IsActive() bool {
	return p.Status == ProviderStatusActive
}

// CreateProviderRequest represents the request to register a provider
type CreateProviderRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required"`
	ContactPhone string `json:"contact_phone" binding:"required"`
}

// Validate validates the create provider request
func (r *CreateProviderRequest) Validate() error {
	if r.BusinessName == "" {
		return errors.New("business_name is required")
	}
	if r.ContactEmail == "" {
		return errors.New("contact_email is required")
	}
	if r.ContactPhone == "" {
		return errors.New("contact_phone is required")
	}

	return nil
}
