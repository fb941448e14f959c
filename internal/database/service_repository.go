package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stayserve/marketplace-backend/internal/models"
)

// ServiceRepository handles database operations for marketplace services
type ServiceRepository struct {
	db DB
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `
	id, hotel_id, provider_id, name, description, category,
	base_price, currency, duration_minutes, express_surcharge,
	schedule, total_bookings, is_active, created_at, updated_at
`

// Create creates a new service
func (r *ServiceRepository) Create(service *models.Service) error {
	query := `
		INSERT INTO services (
			id, hotel_id, provider_id, name, description, category,
			base_price, currency, duration_minutes, express_surcharge,
			schedule, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING created_at, updated_at
	`

	if service.ID == "" {
		service.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		service.ID, service.HotelID, service.ProviderID, service.Name,
		service.Description, service.Category, service.BasePrice,
		service.Currency, service.DurationMinutes, service.ExpressSurcharge,
		service.Schedule, service.IsActive,
	).Scan(&service.CreatedAt, &service.UpdatedAt)
}

// GetByID retrieves a service by ID
func (r *ServiceRepository) GetByID(serviceID string) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service := &models.Service{}
	if err := r.db.Get(service, query, serviceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return service, nil
}

// GetActiveByHotelID retrieves all active services offered at a hotel
func (r *ServiceRepository) GetActiveByHotelID(hotelID string) ([]models.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE hotel_id = $1 AND is_active = TRUE
		ORDER BY category, name
	`

	services := []models.Service{}
	if err := r.db.Select(&services, query, hotelID); err != nil {
		return nil, err
	}

	return services, nil
}

// GetByProviderID retrieves all services owned by a provider
func (r *ServiceRepository) GetByProviderID(providerID string) ([]models.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`

	services := []models.Service{}
	if err := r.db.Select(&services, query, providerID); err != nil {
		return nil, err
	}

	return services, nil
}

// Update updates a service's mutable fields
func (r *ServiceRepository) Update(service *models.Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, base_price = $4,
		    duration_minutes = $5, express_surcharge = $6,
		    schedule = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	return r.db.QueryRow(
		query,
		service.ID, service.Name, service.Description, service.BasePrice,
		service.DurationMinutes, service.ExpressSurcharge, service.Schedule,
	).Scan(&service.UpdatedAt)
}

// Deactivate soft-deactivates a service. Services are never deleted.
func (r *ServiceRepository) Deactivate(serviceID string) error {
	query := `
		UPDATE services
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, serviceID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("service not found")
	}

	return nil
}

// IncrementTotalBookings bumps the service's booking counter atomically
// at the database, avoiding lost updates under concurrent bookings.
func (r *ServiceRepository) IncrementTotalBookings(serviceID string) error {
	query := `
		UPDATE services
		SET total_bookings = total_bookings + 1, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(query, serviceID)
	return err
}
