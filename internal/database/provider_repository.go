package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stayserve/marketplace-backend/internal/models"
)

// ProviderRepository handles database operations for service providers
type ProviderRepository struct {
	db DB
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(db DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Create creates a new provider
func (r *ProviderRepository) Create(provider *models.Provider) error {
	query := `
		INSERT INTO providers (
			id, hotel_id, business_name, contact_email, contact_phone, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at, updated_at
	`

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	if provider.Status == "" {
		provider.Status = models.ProviderStatusActive
	}

	return r.db.QueryRow(
		query,
		provider.ID, provider.HotelID, provider.BusinessName,
		provider.ContactEmail, provider.ContactPhone, provider.Status,
	).Scan(&provider.CreatedAt, &provider.UpdatedAt)
}

// GetByID retrieves a provider by ID
func (r *ProviderRepository) GetByID(providerID string) (*models.Provider, error) {
	query := `
		SELECT id, hotel_id, business_name, contact_email, contact_phone,
		       markup_override_pct, average_rating, total_reviews,
		       total_bookings, status, created_at, updated_at
		FROM providers
		WHERE id = $1
	`

	provider := &models.Provider{}
	if err := r.db.Get(provider, query, providerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return provider, nil
}

// GetByHotelID retrieves all providers attached to a hotel
func (r *ProviderRepository) GetByHotelID(hotelID string) ([]models.Provider, error) {
	query := `
		SELECT id, hotel_id, business_name, contact_email, contact_phone,
		       markup_override_pct, average_rating, total_reviews,
		       total_bookings, status, created_at, updated_at
		FROM providers
		WHERE hotel_id = $1
		ORDER BY business_name
	`

	providers := []models.Provider{}
	if err := r.db.Select(&providers, query, hotelID); err != nil {
		return nil, err
	}

	return providers, nil
}

// SetMarkupOverride sets or clears the provider-specific markup override
func (r *ProviderRepository) SetMarkupOverride(providerID string, pct *float64) error {
	query := `
		UPDATE providers
		SET markup_override_pct = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, providerID, pct)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("provider not found")
	}

	return nil
}

// UpdateRating persists a recomputed aggregate rating for a provider
func (r *ProviderRepository) UpdateRating(providerID string, averageRating float64, totalReviews int) error {
	query := `
		UPDATE providers
		SET average_rating = $2, total_reviews = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, providerID, averageRating, totalReviews)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("provider not found")
	}

	return nil
}

// IncrementTotalBookings bumps the provider's booking counter. The
// increment happens in a single statement so concurrent bookings never
// lose updates to a read-modify-write race.
func (r *ProviderRepository) IncrementTotalBookings(providerID string) error {
	query := `
		UPDATE providers
		SET total_bookings = total_bookings + 1, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(query, providerID)
	return err
}
