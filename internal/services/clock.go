package services

import "time"

// Clock abstracts wall-clock time so time-sensitive rules can be
// tested with a fixed instant
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// NewRealClock returns a Clock backed by time.Now
func NewRealClock() Clock {
	return realClock{}
}

// fixedClock is used by tests
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// NewFixedClock returns a Clock pinned to the given instant
func NewFixedClock(now time.Time) Clock {
	return fixedClock{now: now}
}
