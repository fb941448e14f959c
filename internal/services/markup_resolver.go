package services

import (
	"github.com/stayserve/marketplace-backend/internal/models"
)

// MarkupResolver resolves the effective markup percentage for a booking
// by walking the precedence chain: provider override, then the hotel's
// category override, then the hotel default, then the platform default.
type MarkupResolver struct {
	platformDefaultPct float64
}

// NewMarkupResolver creates a new MarkupResolver
func NewMarkupResolver(platformDefaultPct float64) *MarkupResolver {
	return &MarkupResolver{platformDefaultPct: platformDefaultPct}
}

// Resolve picks the markup that applies to a booking of the given
// category. A configured zero wins over everything below it in the
// chain; only an absent value falls through.
func (r *MarkupResolver) Resolve(
	provider *models.Provider,
	policy *models.MarkupPolicy,
	category models.ServiceCategory,
) models.MarkupResolution {
	if provider != nil && provider.MarkupOverridePct != nil {
		return models.MarkupResolution{
			Pct:    *provider.MarkupOverridePct,
			Source: models.MarkupSourceProviderOverride,
		}
	}

	if pct, ok := policy.CategoryPct(category); ok {
		return models.MarkupResolution{
			Pct:    pct,
			Source: models.MarkupSourceCategoryOverride,
		}
	}

	if policy != nil && policy.DefaultPct != nil {
		return models.MarkupResolution{
			Pct:    *policy.DefaultPct,
			Source: models.MarkupSourceHotelDefault,
		}
	}

	return models.MarkupResolution{
		Pct:    r.platformDefaultPct,
		Source: models.MarkupSourcePlatformDefault,
	}
}
