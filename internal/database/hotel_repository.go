package database

import (
	"database/sql"
	"errors"

	"github.com/stayserve/marketplace-backend/internal/models"
)

// HotelRepository handles database operations for hotels and hotel admins
type HotelRepository struct {
	db DB
}

// NewHotelRepository creates a new HotelRepository
func NewHotelRepository(db DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// GetByID retrieves a hotel by ID
func (r *HotelRepository) GetByID(hotelID string) (*models.Hotel, error) {
	query := `
		SELECT id, name, city, address, contact_email, contact_phone,
		       status, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`

	hotel := &models.Hotel{}
	if err := r.db.Get(hotel, query, hotelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return hotel, nil
}

// GetAdminByEmail retrieves a hotel admin account by email
func (r *HotelRepository) GetAdminByEmail(email string) (*models.HotelAdmin, error) {
	query := `
		SELECT id, hotel_id, email, password_hash, full_name, created_at, updated_at
		FROM hotel_admins
		WHERE email = $1
	`

	admin := &models.HotelAdmin{}
	if err := r.db.Get(admin, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return admin, nil
}

// GetAdminByID retrieves a hotel admin account by ID
func (r *HotelRepository) GetAdminByID(adminID string) (*models.HotelAdmin, error) {
	query := `
		SELECT id, hotel_id, email, password_hash, full_name, created_at, updated_at
		FROM hotel_admins
		WHERE id = $1
	`

	admin := &models.HotelAdmin{}
	if err := r.db.Get(admin, query, adminID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return admin, nil
}
