package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityScheduleValidate(t *testing.T) {
	schedule := AvailabilitySchedule{
		"monday": {Enabled: true, StartMinutes: 8 * 60, EndMinutes: 18 * 60},
		"sunday": {Enabled: false},
	}
	assert.NoError(t, schedule.Validate())
}

func TestAvailabilityScheduleValidate_AllDayWindow(t *testing.T) {
	schedule := AvailabilitySchedule{
		"monday": {Enabled: true, StartMinutes: 0, EndMinutes: 24*60 - 1},
	}
	assert.NoError(t, schedule.Validate())
}

func TestAvailabilityScheduleValidate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		schedule AvailabilitySchedule
	}{
		{
			name: "end past last minute of day",
			schedule: AvailabilitySchedule{
				"monday": {Enabled: true, StartMinutes: 0, EndMinutes: 24 * 60},
			},
		},
		{
			name: "negative start",
			schedule: AvailabilitySchedule{
				"monday": {Enabled: true, StartMinutes: -1, EndMinutes: 12 * 60},
			},
		},
		{
			name: "start not before end",
			schedule: AvailabilitySchedule{
				"monday": {Enabled: true, StartMinutes: 10 * 60, EndMinutes: 10 * 60},
			},
		},
		{
			name: "unknown weekday",
			schedule: AvailabilitySchedule{
				"funday": {Enabled: true, StartMinutes: 0, EndMinutes: 60},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.schedule.Validate())
		})
	}
}

func TestAvailabilityScheduleValidate_DisabledDaySkipsBounds(t *testing.T) {
	schedule := AvailabilitySchedule{
		"monday": {Enabled: false, StartMinutes: -5, EndMinutes: 25 * 60},
	}
	assert.NoError(t, schedule.Validate())
}
