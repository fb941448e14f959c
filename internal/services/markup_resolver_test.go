package services

import (
	"testing"

	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestResolve_ProviderOverrideWins(t *testing.T) {
	resolver := NewMarkupResolver(models.PlatformDefaultMarkupPct)

	provider := &models.Provider{MarkupOverridePct: floatPtr(5)}
	policy := &models.MarkupPolicy{
		DefaultPct:      floatPtr(10),
		CategoryMarkups: models.CategoryMarkups{models.CategoryLaundry: 20},
	}

	resolution := resolver.Resolve(provider, policy, models.CategoryLaundry)
	assert.Equal(t, 5.0, resolution.Pct)
	assert.Equal(t, models.MarkupSourceProviderOverride, resolution.Source)
}

func TestResolve_ZeroOverrideIsConfigured(t *testing.T) {
	resolver := NewMarkupResolver(models.PlatformDefaultMarkupPct)

	// A configured zero must not fall through to the hotel default
	provider := &models.Provider{MarkupOverridePct: floatPtr(0)}
	policy := &models.MarkupPolicy{DefaultPct: floatPtr(10)}

	resolution := resolver.Resolve(provider, policy, models.CategoryDining)
	assert.Equal(t, 0.0, resolution.Pct)
	assert.Equal(t, models.MarkupSourceProviderOverride, resolution.Source)
}

func TestResolve_CategoryOverride(t *testing.T) {
	resolver := NewMarkupResolver(models.PlatformDefaultMarkupPct)

	provider := &models.Provider{}
	policy := &models.MarkupPolicy{
		DefaultPct:      floatPtr(10),
		CategoryMarkups: models.CategoryMarkups{models.CategoryLaundry: 20},
	}

	resolution := resolver.Resolve(provider, policy, models.CategoryLaundry)
	assert.Equal(t, 20.0, resolution.Pct)
	assert.Equal(t, models.MarkupSourceCategoryOverride, resolution.Source)

	// A different category falls through to the hotel default
	resolution = resolver.Resolve(provider, policy, models.CategoryDining)
	assert.Equal(t, 10.0, resolution.Pct)
	assert.Equal(t, models.MarkupSourceHotelDefault, resolution.Source)
}

func TestResolve_HotelDefault(t *testing.T) {
	resolver := NewMarkupResolver(models.PlatformDefaultMarkupPct)

	provider := &models.Provider{}
	policy := &models.MarkupPolicy{DefaultPct: floatPtr(12.5)}

	resolution := resolver.Resolve(provider, policy, models.CategoryWellness)
	assert.Equal(t, 12.5, resolution.Pct)
	assert.Equal(t, models.MarkupSourceHotelDefault, resolution.Source)
}

func TestResolve_PlatformDefault(t *testing.T) {
	resolver := NewMarkupResolver(models.PlatformDefaultMarkupPct)

	// No policy at all
	resolution := resolver.Resolve(&models.Provider{}, nil, models.CategoryHousekeeping)
	assert.Equal(t, 15.0, resolution.Pct)
	assert.Equal(t, models.MarkupSourcePlatformDefault, resolution.Source)

	// Policy present but fully empty
	resolution = resolver.Resolve(&models.Provider{}, &models.MarkupPolicy{}, models.CategoryHousekeeping)
	assert.Equal(t, 15.0, resolution.Pct)
	assert.Equal(t, models.MarkupSourcePlatformDefault, resolution.Source)
}

func TestResolve_NilProvider(t *testing.T) {
	resolver := NewMarkupResolver(models.PlatformDefaultMarkupPct)

	resolution := resolver.Resolve(nil, &models.MarkupPolicy{DefaultPct: floatPtr(8)}, models.CategoryDining)
	assert.Equal(t, 8.0, resolution.Pct)
	assert.Equal(t, models.MarkupSourceHotelDefault, resolution.Source)
}
