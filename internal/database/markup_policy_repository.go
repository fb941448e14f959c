package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/stayserve/marketplace-backend/internal/models"
)

// MarkupPolicyRepository handles database operations for hotel markup policies
type MarkupPolicyRepository struct {
	db DB
}

// NewMarkupPolicyRepository creates a new MarkupPolicyRepository
func NewMarkupPolicyRepository(db DB) *MarkupPolicyRepository {
	return &MarkupPolicyRepository{db: db}
}

// GetByHotelID retrieves the markup policy for a hotel. Returns nil
// without error when the hotel has no policy configured.
func (r *MarkupPolicyRepository) GetByHotelID(hotelID string) (*models.MarkupPolicy, error) {
	query := `
		SELECT id, hotel_id, default_pct, category_markups, created_at, updated_at
		FROM markup_policies
		WHERE hotel_id = $1
	`

	policy := &models.MarkupPolicy{}
	if err := r.db.Get(policy, query, hotelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return policy, nil
}

// Upsert creates or replaces the markup policy for a hotel. One policy
// per hotel; hotel_id carries a UNIQUE constraint.
func (r *MarkupPolicyRepository) Upsert(policy *models.MarkupPolicy) error {
	query := `
		INSERT INTO markup_policies (id, hotel_id, default_pct, category_markups)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hotel_id) DO UPDATE
		SET default_pct = EXCLUDED.default_pct,
		    category_markups = EXCLUDED.category_markups,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		policy.ID, policy.HotelID, policy.DefaultPct, policy.CategoryMarkups,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
}
