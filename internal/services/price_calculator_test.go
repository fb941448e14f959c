package services

import (
	"testing"

	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_StandardBooking(t *testing.T) {
	calc := NewPriceCalculator(5)
	service := &models.Service{BasePrice: 20, Currency: "USD"}
	markup := models.MarkupResolution{Pct: 15, Source: models.MarkupSourceHotelDefault}

	pricing, err := calc.Compute(service, 3, false, markup)
	require.NoError(t, err)

	assert.Equal(t, 60.0, pricing.Subtotal)
	assert.Equal(t, 9.0, pricing.MarkupAmount)
	assert.Equal(t, 69.0, pricing.TotalAmount)
	assert.Equal(t, 3.45, pricing.PlatformFee)
	assert.Equal(t, 60.0, pricing.ProviderEarnings)
	assert.Equal(t, 9.0, pricing.HotelEarnings)
	assert.Equal(t, "USD", pricing.Currency)
	assert.Equal(t, models.MarkupSourceHotelDefault, pricing.MarkupSource)
}

func TestCompute_SharesAlwaysSumToTotal(t *testing.T) {
	calc := NewPriceCalculator(5)

	cases := []struct {
		name      string
		basePrice float64
		quantity  int
		markupPct float64
	}{
		{"Round figures", 20, 3, 15},
		{"Awkward cents", 19.99, 7, 12.5},
		{"Tiny price", 0.01, 1, 33},
		{"Zero markup", 42.42, 2, 0},
		{"High markup", 9.95, 5, 99.9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &models.Service{BasePrice: tc.basePrice, Currency: "USD"}
			markup := models.MarkupResolution{Pct: tc.markupPct}

			pricing, err := calc.Compute(service, tc.quantity, false, markup)
			require.NoError(t, err)

			// The platform fee is informational; it must never unbalance
			// the provider/hotel split
			assert.InDelta(t, pricing.TotalAmount, pricing.ProviderEarnings+pricing.HotelEarnings, 1e-9)
			assert.InDelta(t, pricing.TotalAmount, pricing.Subtotal+pricing.MarkupAmount, 1e-9)
		})
	}
}

func TestCompute_ExpressSurcharge(t *testing.T) {
	calc := NewPriceCalculator(5)
	service := &models.Service{BasePrice: 10, ExpressSurcharge: 4.5, Currency: "USD"}
	markup := models.MarkupResolution{Pct: 10}

	pricing, err := calc.Compute(service, 2, true, markup)
	require.NoError(t, err)

	// subtotal = 10*2 + 4.5 = 24.50, markup = 2.45, total = 26.95
	assert.Equal(t, 4.5, pricing.ExpressSurcharge)
	assert.Equal(t, 24.5, pricing.Subtotal)
	assert.Equal(t, 2.45, pricing.MarkupAmount)
	assert.Equal(t, 26.95, pricing.TotalAmount)

	// Without express the surcharge is not applied
	pricing, err = calc.Compute(service, 2, false, markup)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pricing.ExpressSurcharge)
	assert.Equal(t, 20.0, pricing.Subtotal)
}

func TestCompute_RoundingHalfUp(t *testing.T) {
	calc := NewPriceCalculator(5)
	service := &models.Service{BasePrice: 10.05, Currency: "USD"}

	// 10.05 * 12.5% = 1.25625, rounds half-up to 1.26
	pricing, err := calc.Compute(service, 1, false, models.MarkupResolution{Pct: 12.5})
	require.NoError(t, err)
	assert.Equal(t, 1.26, pricing.MarkupAmount)
	assert.Equal(t, 11.31, pricing.TotalAmount)
}

func TestCompute_RejectsInvalidInput(t *testing.T) {
	calc := NewPriceCalculator(5)

	_, err := calc.Compute(&models.Service{BasePrice: 0}, 1, false, models.MarkupResolution{Pct: 15})
	assert.IsType(t, &ValidationError{}, err)

	_, err = calc.Compute(&models.Service{BasePrice: -3}, 1, false, models.MarkupResolution{Pct: 15})
	assert.IsType(t, &ValidationError{}, err)

	_, err = calc.Compute(&models.Service{BasePrice: 10}, 0, false, models.MarkupResolution{Pct: 15})
	assert.IsType(t, &ValidationError{}, err)

	_, err = calc.Compute(&models.Service{BasePrice: 10}, 1, false, models.MarkupResolution{Pct: -1})
	assert.IsType(t, &ValidationError{}, err)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.26, round2(1.25625))
	assert.Equal(t, 1.25, round2(1.254))
	assert.Equal(t, 1.26, round2(1.256))
	assert.Equal(t, 0.0, round2(0))
	assert.Equal(t, 12.35, round2(12.345678))
}
