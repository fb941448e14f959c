package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(now time.Time) *TimeNormalizer {
	return NewTimeNormalizer("10:00", NewFixedClock(now))
}

func TestNormalize_ExactTime(t *testing.T) {
	normalizer := newTestNormalizer(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))

	when, err := normalizer.Normalize("2026-09-07", "14:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC), when)
}

func TestNormalize_TimeOfDayPhrases(t *testing.T) {
	normalizer := newTestNormalizer(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))

	cases := []struct {
		input string
		hour  int
		min   int
	}{
		{"morning", 9, 0},
		{"afternoon", 14, 0},
		{"evening", 18, 0},
		{"night", 20, 0},
		{"breakfast", 8, 0},
		{"lunch", 12, 30},
		{"dinner", 19, 30},
		{"Morning", 9, 0},
		{"  EVENING ", 18, 0},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			when, err := normalizer.Normalize("2026-09-07", tc.input, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tc.hour, when.Hour())
			assert.Equal(t, tc.min, when.Minute())
		})
	}
}

func TestNormalize_ASAPUsesCurrentTime(t *testing.T) {
	now := time.Date(2026, 9, 7, 16, 45, 0, 0, time.UTC)
	normalizer := newTestNormalizer(now)

	for _, input := range []string{"asap", "ASAP", "now"} {
		when, err := normalizer.Normalize("2026-09-07", input, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 16, when.Hour())
		assert.Equal(t, 45, when.Minute())
	}
}

func TestNormalize_UnrecognizedFallsBack(t *testing.T) {
	normalizer := newTestNormalizer(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))

	for _, input := range []string{"", "whenever", "twoish", "late-ish afternoon"} {
		when, err := normalizer.Normalize("2026-09-07", input, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 10, when.Hour(), "input %q should fall back to 10:00", input)
		assert.Equal(t, 0, when.Minute())
	}
}

func TestNormalize_InvalidDate(t *testing.T) {
	normalizer := newTestNormalizer(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))

	_, err := normalizer.Normalize("07-09-2026", "14:00", time.UTC)
	assert.Error(t, err)

	_, err = normalizer.Normalize("not-a-date", "14:00", time.UTC)
	assert.Error(t, err)
}
