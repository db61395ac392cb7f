package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestMayTransition(t *testing.T) {
	t.Parallel()

	admin := Requester{ID: uuid.New(), Role: RoleAdmin}
	customer := Requester{ID: uuid.New(), Role: RoleCustomer}
	staff := Requester{ID: uuid.New(), Role: RoleStaff}

	tests := []struct {
		name      string
		from, to  Status
		requester Requester
		isOwner   bool
		want      bool
	}{
		{"admin confirms", StatusPending, StatusConfirmed, admin, false, true},
		{"owner cannot confirm", StatusPending, StatusConfirmed, customer, true, false},
		{"staff cannot confirm", StatusPending, StatusConfirmed, staff, false, false},
		{"owner cancels pending", StatusPending, StatusCancelled, customer, true, true},
		{"owner cancels confirmed", StatusConfirmed, StatusCancelled, customer, true, true},
		{"stranger cannot cancel", StatusConfirmed, StatusCancelled, customer, false, false},
		{"admin cancels", StatusConfirmed, StatusCancelled, admin, false, true},
		{"admin completes", StatusConfirmed, StatusCompleted, admin, false, true},
		{"owner cannot complete", StatusConfirmed, StatusCompleted, customer, true, false},
		{"nobody skips confirmation", StatusPending, StatusCompleted, admin, true, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MayTransition(tt.from, tt.to, tt.requester, tt.isOwner))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, Status("UNKNOWN").Valid())
}

func TestStatusEvent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, EventAppointmentConfirmed, StatusEvent(StatusConfirmed))
	assert.Equal(t, EventAppointmentCancelled, StatusEvent(StatusCancelled))
	assert.Equal(t, EventAppointmentCompleted, StatusEvent(StatusCompleted))
	assert.Equal(t, EventAppointmentBooked, StatusEvent(StatusPending))
}
