package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PlatformDefaultMarkupPct applies when neither the provider nor the
// hotel has configured any markup
const PlatformDefaultMarkupPct = 15.0

// MarkupSource identifies which rule in the precedence chain produced
// the effective markup percentage
type MarkupSource string

const (
	MarkupSourceProviderOverride MarkupSource = "provider_override"
	MarkupSourceCategoryOverride MarkupSource = "category_override"
	MarkupSourceHotelDefault     MarkupSource = "hotel_default"
	MarkupSourcePlatformDefault  MarkupSource = "platform_default"
)

// MarkupResolution is the outcome of resolving the markup chain for
// one booking
type MarkupResolution struct {
	Pct    float64      `json:"pct"`
	Source MarkupSource `json:"source"`
}

// CategoryMarkups maps service categories to per-category markup
// percentages, stored as JSONB
type CategoryMarkups map[ServiceCategory]float64

func (m CategoryMarkups) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *CategoryMarkups) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed for CategoryMarkups")
	}
	return json.Unmarshal(bytes, m)
}

// MarkupPolicy is a hotel's markup configuration. One policy per hotel.
type MarkupPolicy struct {
	ID              string          `json:"id" db:"id"`
	HotelID         string          `json:"hotel_id" db:"hotel_id"`
	DefaultPct      *float64        `json:"default_pct,omitempty" db:"default_pct"`
	CategoryMarkups CategoryMarkups `json:"category_markups,omitempty" db:"category_markups"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// CategoryPct returns the category-specific markup if one is configured
func (p *MarkupPolicy) CategoryPct(category ServiceCategory) (float64, bool) {
	if p == nil || p.CategoryMarkups == nil {
		return 0, false
	}
	pct, ok := p.CategoryMarkups[category]
	return pct, ok
}

// UpsertMarkupPolicyRequest represents the request to set a hotel's
// markup policy
type UpsertMarkupPolicyRequest struct {
	DefaultPct      *float64        `json:"default_pct,omitempty"`
	CategoryMarkups CategoryMarkups `json:"category_markups,omitempty"`
}

// Validate validates the markup policy request
func (r *UpsertMarkupPolicyRequest) Validate() error {
	if r.DefaultPct != nil {
		if *r.DefaultPct < 0 || *r.DefaultPct > 100 {
			return errors.New("default_pct must be between 0 and 100")
		}
	}
	for category, pct := range r.CategoryMarkups {
		if !IsValidServiceCategory(category) {
			return fmt.Errorf("invalid category in markups: %s", category)
		}
		if pct < 0 || pct > 100 {
			return fmt.Errorf("markup for %s must be between 0 and 100", category)
		}
	}

	return nil
}

// SetProviderMarkupRequest represents the request to set or clear a
// provider-level markup override. A nil pct clears the override.
type SetProviderMarkupRequest struct {
	Pct *float64 `json:"pct"`
}

// Validate validates the provider markup request
func (r *SetProviderMarkupRequest) Validate() error {
	if r.Pct != nil {
		if *r.Pct < 0 || *r.Pct > 100 {
			return errors.New("pct must be between 0 and 100")
		}
	}

	return nil
}
