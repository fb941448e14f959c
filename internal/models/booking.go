package models

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PaymentMethod represents how the guest chose to pay
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var (
	// ErrInvalidTransition indicates a status change the state machine forbids
	ErrInvalidTransition = errors.New("booking state does not allow this operation")

	// ErrDuplicateReview indicates the booking already carries a review
	ErrDuplicateReview = errors.New("booking has already been reviewed")
)

// ============================================================================
// JSONB SUB-RECORDS
// ============================================================================

// Review is the single guest review attached to a completed booking.
// Written once, immutable thereafter.
type Review struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Review) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *Review) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed for Review")
	}
	return json.Unmarshal(bytes, r)
}

// LaundryItem is a single garment line in a laundry booking
type LaundryItem struct {
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// LaundryDetails carries the laundry-specific part of a booking
type LaundryDetails struct {
	Items       []LaundryItem `json:"items"`
	PickupPoint string        `json:"pickup_point,omitempty"`
}

func (d LaundryDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *LaundryDetails) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed for LaundryDetails")
	}
	return json.Unmarshal(bytes, d)
}

// TransportDetails carries the transportation-specific part of a booking
type TransportDetails struct {
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PassengerCount  int    `json:"passenger_count"`
	VehicleType     string `json:"vehicle_type,omitempty"`
}

func (d TransportDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *TransportDetails) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed for TransportDetails")
	}
	return json.Unmarshal(bytes, d)
}

// ============================================================================
// BOOKING MODEL (bookings table)
// ============================================================================

// Booking represents a guest's reservation of a marketplace service.
// It is an envelope shared by every category; category-specific shapes
// live in the optional detail sub-records. Bookings are never physically
// deleted; cancellation is a status.
type Booking struct {
	ID            string          `json:"id" db:"id"`
	BookingNumber string          `json:"booking_number" db:"booking_number"`
	ServiceID     string          `json:"service_id" db:"service_id"`
	ProviderID    string          `json:"provider_id" db:"provider_id"`
	HotelID       string          `json:"hotel_id" db:"hotel_id"`
	GuestID       string          `json:"guest_id" db:"guest_id"`
	Category      ServiceCategory `json:"category" db:"category"`

	GuestName  string  `json:"guest_name" db:"guest_name"`
	GuestPhone string  `json:"guest_phone" db:"guest_phone"`
	GuestEmail *string `json:"guest_email,omitempty" db:"guest_email"`
	RoomNumber *string `json:"room_number,omitempty" db:"room_number"`

	ScheduledAt      time.Time `json:"scheduled_at" db:"scheduled_at"`
	PreferredTimeRaw string    `json:"preferred_time_raw" db:"preferred_time_raw"`
	Quantity         int       `json:"quantity" db:"quantity"`
	ExpressRequested bool      `json:"express_requested" db:"express_requested"`

	Pricing PricingBreakdown `json:"pricing" db:"pricing"`

	PaymentMethod    PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	PaymentReference *string       `json:"payment_reference,omitempty" db:"payment_reference"`
	PaidAt           *time.Time    `json:"paid_at,omitempty" db:"paid_at"`

	Status             BookingStatus `json:"status" db:"status"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CancellationReason *string       `json:"cancellation_reason,omitempty" db:"cancellation_reason"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty" db:"completed_at"`

	Review *Review `json:"review,omitempty" db:"review"`

	LaundryDetails   *LaundryDetails   `json:"laundry_details,omitempty" db:"laundry_details"`
	TransportDetails *TransportDetails `json:"transport_details,omitempty" db:"transport_details"`

	CreatedIP     *string `json:"created_ip,omitempty" db:"created_ip"`
	CreatedDevice *string `json:"created_device,omitempty" db:"created_device"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// InitialBookingState returns the status pair a new booking starts in.
// Cash bookings settle at point of service, so they are confirmed and
// treated as paid immediately; online bookings wait for the gateway.
func InitialBookingState(method PaymentMethod) (BookingStatus, PaymentStatus) {
	if method == PaymentMethodCash {
		return BookingStatusConfirmed, PaymentStatusPaid
	}
	return BookingStatusPending, PaymentStatusPending
}

// CanBeCancelled checks if the booking is in a cancellable state
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Cancel cancels the booking. The caller is responsible for checking the
// cancellation window first; this only guards the state transition.
func (b *Booking) Cancel(reason *string, now time.Time) error {
	if !b.CanBeCancelled() {
		return ErrInvalidTransition
	}

	b.Status = BookingStatusCancelled
	b.CancelledAt = &now
	b.CancellationReason = reason
	b.UpdatedAt = now

	return nil
}

// ConfirmPayment applies an external gateway confirmation to an online
// booking, moving it from pending to confirmed/paid
func (b *Booking) ConfirmPayment(reference string, now time.Time) error {
	if b.Status != BookingStatusPending || b.PaymentStatus != PaymentStatusPending {
		return ErrInvalidTransition
	}

	b.Status = BookingStatusConfirmed
	b.PaymentStatus = PaymentStatusPaid
	b.PaymentReference = &reference
	b.PaidAt = &now
	b.UpdatedAt = now

	return nil
}

// Complete marks a confirmed booking as completed, making it eligible
// for a single review
func (b *Booking) Complete(now time.Time) error {
	if b.Status != BookingStatusConfirmed {
		return ErrInvalidTransition
	}

	b.Status = BookingStatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now

	return nil
}

// AddReview attaches the single guest review to a completed booking
func (b *Booking) AddReview(rating int, comment string, now time.Time) error {
	if b.Status != BookingStatusCompleted {
		return ErrInvalidTransition
	}
	if b.Review != nil {
		return ErrDuplicateReview
	}
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}

	b.Review = &Review{
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}
	b.UpdatedAt = now

	return nil
}

// RequiresPaymentAction reports whether the guest still has to pay online
func (b *Booking) RequiresPaymentAction() bool {
	return b.PaymentMethod == PaymentMethodOnline && b.PaymentStatus == PaymentStatusPending
}

// ============================================================================
// BOOKING NUMBER
// ============================================================================

var categoryPrefixes = map[ServiceCategory]string{
	CategoryLaundry:        "LND",
	CategoryTransportation: "TRN",
	CategoryDining:         "DIN",
	CategoryHousekeeping:   "HSK",
	CategoryWellness:       "WEL",
}

// GenerateBookingNumber generates a human-readable booking number.
// Format: LND-20260830-154512-A1B2 (category prefix, timestamp, random
// suffix). Uniqueness is best effort; the bookings table carries a UNIQUE
// constraint on the column as the authoritative guard.
func GenerateBookingNumber(category ServiceCategory, now time.Time) (string, error) {
	prefix, ok := categoryPrefixes[category]
	if !ok {
		prefix = "SVC"
	}

	randomBytes := make([]byte, 2)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}
	suffix := strings.ToUpper(hex.EncodeToString(randomBytes))

	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102-150405"), suffix), nil
}

// ============================================================================
// REQUESTS / RESPONSES
// ============================================================================

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	ServiceID     string  `json:"service_id" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,min=1"`
	PreferredDate string  `json:"preferred_date" binding:"required"` // YYYY-MM-DD
	PreferredTime string  `json:"preferred_time,omitempty"`          // HH:MM or free text ("morning", "ASAP")
	PaymentMethod string  `json:"payment_method" binding:"required"`
	Express       bool    `json:"express,omitempty"`
	GuestName     string  `json:"guest_name" binding:"required"`
	GuestPhone    string  `json:"guest_phone" binding:"required"`
	GuestEmail    *string `json:"guest_email,omitempty"`
	RoomNumber    *string `json:"room_number,omitempty"`

	Laundry   *LaundryDetails   `json:"laundry,omitempty"`
	Transport *TransportDetails `json:"transport,omitempty"`
}

// Validate validates the create booking request
func (r *CreateBookingRequest) Validate() error {
	if r.Quantity <= 0 {
		return errors.New("quantity must be at least 1")
	}
	if r.Quantity > 50 {
		return errors.New("maximum 50 items can be booked at once")
	}

	method := PaymentMethod(r.PaymentMethod)
	if method != PaymentMethodOnline && method != PaymentMethodCash {
		return fmt.Errorf("invalid payment_method: %s (must be 'online' or 'cash')", r.PaymentMethod)
	}

	if _, err := time.Parse("2006-01-02", r.PreferredDate); err != nil {
		return errors.New("preferred_date must be in YYYY-MM-DD format")
	}

	if r.GuestName == "" {
		return errors.New("guest_name is required")
	}
	if r.GuestPhone == "" {
		return errors.New("guest_phone is required")
	}

	if r.Transport != nil {
		if r.Transport.PickupLocation == "" || r.Transport.DropoffLocation == "" {
			return errors.New("transport bookings require pickup and dropoff locations")
		}
		if r.Transport.PassengerCount <= 0 {
			return errors.New("transport bookings require at least one passenger")
		}
	}
	if r.Laundry != nil {
		if len(r.Laundry.Items) == 0 {
			return errors.New("laundry bookings require at least one item")
		}
		for _, item := range r.Laundry.Items {
			if item.Quantity <= 0 {
				return errors.New("laundry item quantity must be at least 1")
			}
		}
	}

	return nil
}

// CancelBookingRequest represents the request to cancel a booking
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// AddReviewRequest represents the request to review a completed booking
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

// ConfirmPaymentRequest applies an external gateway confirmation event
type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
}

// BookingResponse is what the guest receives after creating a booking
type BookingResponse struct {
	BookingID       string           `json:"booking_id"`
	BookingNumber   string           `json:"booking_number"`
	Status          BookingStatus    `json:"status"`
	PaymentMethod   PaymentMethod    `json:"payment_method"`
	PaymentStatus   PaymentStatus    `json:"payment_status"`
	ScheduledAt     time.Time        `json:"scheduled_at"`
	Pricing         PricingBreakdown `json:"pricing"`
	RequiresPayment bool             `json:"requires_payment"`
}
