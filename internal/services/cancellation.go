package services

import (
	"time"

	"github.com/stayserve/marketplace-backend/internal/models"
)

// CancellationPolicy decides whether a booking may still be cancelled
type CancellationPolicy struct {
	window time.Duration
}

// NewCancellationPolicy creates a policy requiring at least
// windowHours of notice before the scheduled service time
func NewCancellationPolicy(windowHours int) *CancellationPolicy {
	return &CancellationPolicy{window: time.Duration(windowHours) * time.Hour}
}

// Allows reports whether the booking can be cancelled at the given
// instant. The booking must still be in a cancellable state and the
// scheduled time must be at least the full window away; exactly at
// the boundary cancellation is still allowed.
func (p *CancellationPolicy) Allows(booking *models.Booking, now time.Time) bool {
	if !booking.CanBeCancelled() {
		return false
	}
	return booking.ScheduledAt.Sub(now) >= p.window
}
