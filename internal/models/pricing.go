package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// PricingBreakdown is the immutable settlement record computed at
// booking time and stored on the booking as JSONB. PlatformFee is
// informational only and is not deducted from anyone's share, so
// ProviderEarnings + HotelEarnings always equals TotalAmount.
type PricingBreakdown struct {
	BasePrice        float64 `json:"base_price"`
	Quantity         int     `json:"quantity"`
	ExpressSurcharge float64 `json:"express_surcharge,omitempty"`
	Subtotal         float64 `json:"subtotal"`

	MarkupPct    float64      `json:"markup_pct"`
	MarkupSource MarkupSource `json:"markup_source"`
	MarkupAmount float64      `json:"markup_amount"`

	TotalAmount      float64 `json:"total_amount"`
	PlatformFee      float64 `json:"platform_fee"`
	ProviderEarnings float64 `json:"provider_earnings"`
	HotelEarnings    float64 `json:"hotel_earnings"`

	Currency string `json:"currency"`
}

func (p PricingBreakdown) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PricingBreakdown) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed for PricingBreakdown")
	}
	return json.Unmarshal(bytes, p)
}
