package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stayserve/marketplace-backend/internal/models"
)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, booking_number, service_id, provider_id, hotel_id, guest_id, category,
	guest_name, guest_phone, guest_email, room_number,
	scheduled_at, preferred_time_raw, quantity, express_requested,
	pricing, payment_method, payment_status, payment_reference, paid_at,
	status, cancelled_at, cancellation_reason, completed_at, review,
	laundry_details, transport_details, created_ip, created_device,
	created_at, updated_at
`

// Create creates a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, booking_number, service_id, provider_id, hotel_id, guest_id,
			category, guest_name, guest_phone, guest_email, room_number,
			scheduled_at, preferred_time_raw, quantity, express_requested,
			pricing, payment_method, payment_status, status,
			laundry_details, transport_details, created_ip, created_device
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		booking.ID, booking.BookingNumber, booking.ServiceID, booking.ProviderID,
		booking.HotelID, booking.GuestID, booking.Category, booking.GuestName,
		booking.GuestPhone, booking.GuestEmail, booking.RoomNumber,
		booking.ScheduledAt, booking.PreferredTimeRaw, booking.Quantity,
		booking.ExpressRequested, booking.Pricing, booking.PaymentMethod,
		booking.PaymentStatus, booking.Status, booking.LaundryDetails,
		booking.TransportDetails, booking.CreatedIP, booking.CreatedDevice,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking := &models.Booking{}
	if err := r.db.Get(booking, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return booking, nil
}

// GetByBookingNumber retrieves a booking by its human-readable number
func (r *BookingRepository) GetByBookingNumber(number string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_number = $1`

	booking := &models.Booking{}
	if err := r.db.Get(booking, query, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return booking, nil
}

// GetByGuestID retrieves all bookings created by a guest
func (r *BookingRepository) GetByGuestID(guestID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE guest_id = $1
		ORDER BY created_at DESC
	`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, guestID); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByHotelID retrieves all bookings placed at a hotel
func (r *BookingRepository) GetByHotelID(hotelID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE hotel_id = $1
		ORDER BY created_at DESC
	`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, hotelID); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByProviderID retrieves all bookings assigned to a provider
func (r *BookingRepository) GetByProviderID(providerID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`

	bookings := []models.Booking{}
	if err := r.db.Select(&bookings, query, providerID); err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus persists the lifecycle and payment fields after a
// state-machine transition
func (r *BookingRepository) UpdateStatus(booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, payment_status = $3, payment_reference = $4,
		    paid_at = $5, cancelled_at = $6, cancellation_reason = $7,
		    completed_at = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	return r.db.QueryRow(
		query,
		booking.ID, booking.Status, booking.PaymentStatus,
		booking.PaymentReference, booking.PaidAt, booking.CancelledAt,
		booking.CancellationReason, booking.CompletedAt,
	).Scan(&booking.UpdatedAt)
}

// SetReview attaches a review to a booking. The WHERE clause re-checks
// state so a concurrent duplicate submission loses at the database.
func (r *BookingRepository) SetReview(bookingID string, review *models.Review) error {
	query := `
		UPDATE bookings
		SET review = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'completed' AND review IS NULL
	`

	result, err := r.db.Exec(query, bookingID, review)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrDuplicateReview
	}

	return nil
}

// GetCompletedReviewRatings returns every review rating across the
// provider's completed bookings, for full rating recomputation
func (r *BookingRepository) GetCompletedReviewRatings(providerID string) ([]int, error) {
	query := `
		SELECT (review->>'rating')::int
		FROM bookings
		WHERE provider_id = $1
		  AND status = 'completed'
		  AND review IS NOT NULL
	`

	rows, err := r.db.Query(query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []int{}
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}

// CountByService returns how many non-cancelled bookings a service has
func (r *BookingRepository) CountByService(serviceID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE service_id = $1 AND status != 'cancelled'
	`

	var count int
	if err := r.db.QueryRow(query, serviceID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}
