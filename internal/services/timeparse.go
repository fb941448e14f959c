package services

import (
	"strings"
	"time"
)

// Guests type whatever they like into the time field, so a small
// closed table maps the phrases we actually see to canonical times.
// Anything unrecognized falls back to the configured default rather
// than failing the booking.
var timeOfDayTable = map[string]string{
	"morning":   "09:00",
	"afternoon": "14:00",
	"evening":   "18:00",
	"night":     "20:00",
	"breakfast": "08:00",
	"lunch":     "12:30",
	"dinner":    "19:30",
	"asap":      "",
	"now":       "",
}

// TimeNormalizer turns a free-text preferred time and a date into a
// concrete scheduling instant
type TimeNormalizer struct {
	fallback string // canonical HH:MM for unrecognized input
	clock    Clock
}

// NewTimeNormalizer creates a new TimeNormalizer
func NewTimeNormalizer(fallback string, clock Clock) *TimeNormalizer {
	return &TimeNormalizer{fallback: fallback, clock: clock}
}

// Normalize resolves the preferred date and time into a time.Time in
// loc. Recognized forms, in order: exact HH:MM, a phrase from the
// time-of-day table, or empty/unknown input which takes the fallback.
// "asap" and "now" schedule at the current clock time on the requested
// date.
func (n *TimeNormalizer) Normalize(date string, raw string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, err
	}

	cleaned := strings.ToLower(strings.TrimSpace(raw))

	if hhmm, err := time.Parse("15:04", cleaned); err == nil {
		return day.Add(time.Duration(hhmm.Hour())*time.Hour + time.Duration(hhmm.Minute())*time.Minute), nil
	}

	if canonical, ok := timeOfDayTable[cleaned]; ok {
		if canonical == "" {
			now := n.clock.Now().In(loc)
			return day.Add(time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute), nil
		}
		hhmm, _ := time.Parse("15:04", canonical)
		return day.Add(time.Duration(hhmm.Hour())*time.Hour + time.Duration(hhmm.Minute())*time.Minute), nil
	}

	hhmm, err := time.Parse("15:04", n.fallback)
	if err != nil {
		hhmm, _ = time.Parse("15:04", "10:00")
	}
	return day.Add(time.Duration(hhmm.Hour())*time.Hour + time.Duration(hhmm.Minute())*time.Minute), nil
}
