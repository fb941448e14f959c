package models

import "time"

// NotificationEvent identifies the booking lifecycle event a
// notification announces
type NotificationEvent string

const (
	NotificationBookingCreated   NotificationEvent = "booking_created"
	NotificationBookingConfirmed NotificationEvent = "booking_confirmed"
	NotificationBookingCancelled NotificationEvent = "booking_cancelled"
	NotificationBookingCompleted NotificationEvent = "booking_completed"
)

// Notification is one queued booking notification addressed to both
// the guest and the fulfilling provider. It carries a snapshot of the
// booking fields the templates need, so rendering never touches the
// database.
type Notification struct {
	Event         NotificationEvent
	BookingID     string
	BookingNumber string
	Category      ServiceCategory
	ServiceName   string
	GuestName     string
	GuestPhone    string
	GuestEmail    *string
	ProviderName  string
	ProviderPhone string
	ProviderEmail string
	ScheduledAt   time.Time
	TotalAmount   float64
	Currency      string
}
