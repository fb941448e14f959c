package services

import (
	"time"

	"github.com/stayserve/marketplace-backend/internal/models"
)

// AvailabilityGate decides whether a service accepts a booking at a
// requested instant based on its weekly schedule
type AvailabilityGate struct{}

// NewAvailabilityGate creates a new AvailabilityGate
func NewAvailabilityGate() *AvailabilityGate {
	return &AvailabilityGate{}
}

// IsOpen reports whether the service's schedule covers the requested
// time. A service with no schedule is always open. A day that is
// missing from the schedule, or disabled, is closed. Windows are
// interpreted same-day only; both bounds are inclusive, so a window
// whose end precedes its start never matches.
func (g *AvailabilityGate) IsOpen(schedule models.AvailabilitySchedule, at time.Time) bool {
	if schedule == nil {
		return true
	}

	day, ok := dayScheduleFor(schedule, at.Weekday())
	if !ok || !day.Enabled {
		return false
	}

	minutes := at.Hour()*60 + at.Minute()
	return minutes >= day.StartMinutes && minutes <= day.EndMinutes
}

func dayScheduleFor(schedule models.AvailabilitySchedule, weekday time.Weekday) (models.DaySchedule, bool) {
	for name, day := range schedule {
		if parsed, ok := models.ParseWeekday(name); ok && parsed == weekday {
			return day, true
		}
	}
	return models.DaySchedule{}, false
}
