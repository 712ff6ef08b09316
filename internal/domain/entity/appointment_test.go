package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusBooked, AppointmentStatusCompleted, true},
		{AppointmentStatusBooked, AppointmentStatusCancelled, true},
		{AppointmentStatusBooked, AppointmentStatusBooked, false},
		{AppointmentStatusCompleted, AppointmentStatusBooked, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCompleted, AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, AppointmentStatusBooked, false},
		{AppointmentStatusCancelled, AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, AppointmentStatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAppointmentStatusHelpers(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusBooked}
	assert.True(t, a.IsBooked())
	assert.False(t, a.IsCompleted())
	assert.False(t, a.IsCancelled())

	a.Status = AppointmentStatusCompleted
	assert.True(t, a.IsCompleted())

	a.Status = AppointmentStatusCancelled
	assert.True(t, a.IsCancelled())
}

func TestSlotToggled(t *testing.T) {
	s := &AvailabilitySlot{Status: SlotStatusAvailable}
	assert.Equal(t, SlotStatusUnavailable, s.Toggled())

	s.Status = SlotStatusUnavailable
	assert.Equal(t, SlotStatusAvailable, s.Toggled())
}
