package services

import (
	"math"

	"github.com/stayserve/marketplace-backend/internal/models"
)

// PriceCalculator computes the settlement breakdown for a booking.
// All monetary amounts are rounded half-up to two decimal places at
// each derivation step, so stored figures always add up exactly.
type PriceCalculator struct {
	platformFeePct float64
}

// NewPriceCalculator creates a new PriceCalculator
func NewPriceCalculator(platformFeePct float64) *PriceCalculator {
	return &PriceCalculator{platformFeePct: platformFeePct}
}

// round2 rounds half-up to two decimal places
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// Compute derives the full pricing breakdown. The markup amount is the
// hotel's share; the provider keeps the subtotal. The platform fee is
// recorded for reporting but not deducted from either share.
func (c *PriceCalculator) Compute(
	service *models.Service,
	quantity int,
	express bool,
	markup models.MarkupResolution,
) (models.PricingBreakdown, error) {
	if service.BasePrice <= 0 {
		return models.PricingBreakdown{}, NewValidationError("base price must be positive")
	}
	if quantity <= 0 {
		return models.PricingBreakdown{}, NewValidationError("quantity must be positive")
	}
	if markup.Pct < 0 {
		return models.PricingBreakdown{}, NewValidationError("markup percentage cannot be negative")
	}

	surcharge := 0.0
	if express {
		surcharge = round2(service.ExpressSurcharge)
	}

	subtotal := round2(service.BasePrice*float64(quantity) + surcharge)
	markupAmount := round2(subtotal * markup.Pct / 100)
	total := round2(subtotal + markupAmount)
	platformFee := round2(total * c.platformFeePct / 100)

	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return models.PricingBreakdown{}, NewValidationError("computed total is not a valid amount")
	}

	return models.PricingBreakdown{
		BasePrice:        service.BasePrice,
		Quantity:         quantity,
		ExpressSurcharge: surcharge,
		Subtotal:         subtotal,
		MarkupPct:        markup.Pct,
		MarkupSource:     markup.Source,
		MarkupAmount:     markupAmount,
		TotalAmount:      total,
		PlatformFee:      platformFee,
		ProviderEarnings: subtotal,
		HotelEarnings:    markupAmount,
		Currency:         service.Currency,
	}, nil
}
