package services

import (
	"testing"
	"time"

	"github.com/stayserve/marketplace-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAllows_InsideWindow(t *testing.T) {
	policy := NewCancellationPolicy(24)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	booking := &models.Booking{
		Status:      models.BookingStatusConfirmed,
		ScheduledAt: now.Add(48 * time.Hour),
	}

	assert.True(t, policy.Allows(booking, now))
}

func TestAllows_WindowBoundary(t *testing.T) {
	policy := NewCancellationPolicy(24)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	// Exactly 24h before still counts as enough notice
	booking := &models.Booking{
		Status:      models.BookingStatusConfirmed,
		ScheduledAt: now.Add(24 * time.Hour),
	}
	assert.True(t, policy.Allows(booking, now))

	// One minute less: refused
	booking.ScheduledAt = now.Add(24*time.Hour - time.Minute)
	assert.False(t, policy.Allows(booking, now))
}

func TestAllows_NonCancellableStates(t *testing.T) {
	policy := NewCancellationPolicy(24)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	for _, status := range []models.BookingStatus{
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		booking := &models.Booking{
			Status:      status,
			ScheduledAt: now.Add(72 * time.Hour),
		}
		assert.False(t, policy.Allows(booking, now), "status %s must not be cancellable", status)
	}
}

func TestAllows_PendingBookings(t *testing.T) {
	policy := NewCancellationPolicy(24)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	booking := &models.Booking{
		Status:      models.BookingStatusPending,
		ScheduledAt: now.Add(30 * time.Hour),
	}

	assert.True(t, policy.Allows(booking, now))
}

func TestAllows_ZeroWindow(t *testing.T) {
	// A zero window allows cancellation up to and at the scheduled time
	policy := NewCancellationPolicy(0)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	booking := &models.Booking{
		Status:      models.BookingStatusConfirmed,
		ScheduledAt: now,
	}
	assert.True(t, policy.Allows(booking, now))

	booking.ScheduledAt = now.Add(-time.Minute)
	assert.False(t, policy.Allows(booking, now))
}
