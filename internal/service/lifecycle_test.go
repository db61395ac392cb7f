package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/testutil"
)

func TestBooking_TransitionAppointment(t *testing.T) {
	alice := testutil.Customer("alice")
	anna := testutil.Staff("anna", "Manicure")
	owner := model.Requester{ID: alice.ID, Role: model.RoleCustomer}
	admin := model.Requester{ID: uuid.New(), Role: model.RoleAdmin}
	stranger := model.Requester{ID: uuid.New(), Role: model.RoleCustomer}
	assigned := model.Requester{ID: anna.ID, Role: model.RoleStaff}

	tests := []struct {
		name      string
		from      model.Status
		to        model.Status
		requester model.Requester
		noStaff   bool
		wantErr   error
	}{
		{name: "admin confirms", from: model.StatusPending, to: model.StatusConfirmed, requester: admin},
		{name: "owner cancels pending", from: model.StatusPending, to: model.StatusCancelled, requester: owner},
		{name: "admin cancels pending", from: model.StatusPending, to: model.StatusCancelled, requester: admin},
		{name: "owner cancels confirmed", from: model.StatusConfirmed, to: model.StatusCancelled, requester: owner},
		{name: "admin completes", from: model.StatusConfirmed, to: model.StatusCompleted, requester: admin},
		{name: "owner cancels unassigned", from: model.StatusPending, to: model.StatusCancelled, requester: owner, noStaff: true},
		{name: "owner cannot confirm", from: model.StatusPending, to: model.StatusConfirmed, requester: owner, wantErr: model.ErrForbidden},
		{name: "staff cannot confirm", from: model.StatusPending, to: model.StatusConfirmed, requester: assigned, wantErr: model.ErrForbidden},
		{name: "stranger cannot cancel", from: model.StatusPending, to: model.StatusCancelled, requester: stranger, wantErr: model.ErrForbidden},
		{name: "owner cannot complete", from: model.StatusConfirmed, to: model.StatusCompleted, requester: owner, wantErr: model.ErrForbidden},
		{name: "pending cannot complete", from: model.StatusPending, to: model.StatusCompleted, requester: admin, wantErr: model.ErrInvalidTransition},
		{name: "completed is terminal", from: model.StatusCompleted, to: model.StatusCancelled, requester: admin, wantErr: model.ErrInvalidTransition},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusPending, requester: admin, wantErr: model.ErrInvalidTransition},
		{name: "unknown status", from: model.StatusPending, to: model.Status("ARCHIVED"), requester: admin, wantErr: model.ErrInvalidTransition},
		{name: "invalid edge wins over permission", from: model.StatusCancelled, to: model.StatusConfirmed, requester: stranger, wantErr: model.ErrInvalidTransition},
		{name: "confirm needs staff", from: model.StatusPending, to: model.StatusConfirmed, requester: admin, noStaff: true, wantErr: model.ErrInvalidTransition},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			staff := &anna.ID
			if tt.noStaff {
				staff = nil
			}
			appt := appointmentAt(alice.ID, staff, "2025-06-02", "10:00", "10:30", tt.from)
			f := newBookingFixture(appt)

			got, err := f.booking.TransitionAppointment(context.Background(), appt.ID, tt.requester, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, f.store.get(appt.ID).Status)
				assert.Empty(t, f.store.eventTypes())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			assert.Equal(t, tt.to, f.store.get(appt.ID).Status)
			assert.Equal(t, []model.EventType{model.StatusEvent(tt.to)}, f.store.eventTypes())
		})
	}

	t.Run("missing appointment", func(t *testing.T) {
		t.Parallel()

		f := newBookingFixture()
		_, err := f.booking.TransitionAppointment(context.Background(), uuid.New(), admin, model.StatusConfirmed)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestBooking_UpdateAppointment(t *testing.T) {
	manicure := testutil.ClassicManicure()
	alice := testutil.Customer("alice")
	bob := testutil.Customer("bob")
	anna := testutil.Staff("anna", "Manicure")
	owner := model.Requester{ID: alice.ID, Role: model.RoleCustomer}

	tests := []struct {
		name      string
		status    model.Status
		others    []model.Appointment
		requester model.Requester
		params    model.UpdateAppointmentParams
		wantErr   error
		wantStart string
		wantEnd   string
		wantDate  string
		wantNotes string
		wantEvent []model.EventType
	}{
		{
			name:      "moves start time",
			status:    model.StatusPending,
			requester: owner,
			params:    model.UpdateAppointmentParams{StartTime: testutil.StringPtr("10:15")},
			wantStart: "10:15", wantEnd: "10:45", wantDate: "2025-06-02",
			wantEvent: []model.EventType{model.EventAppointmentRescheduled},
		},
		{
			name:      "moves date",
			status:    model.StatusConfirmed,
			requester: model.Requester{ID: uuid.New(), Role: model.RoleAdmin},
			params:    model.UpdateAppointmentParams{Date: testutil.StringPtr("2025-06-03")},
			wantStart: "10:00", wantEnd: "10:30", wantDate: "2025-06-03",
			wantEvent: []model.EventType{model.EventAppointmentRescheduled},
		},
		{
			name:      "notes only",
			status:    model.StatusPending,
			requester: owner,
			params:    model.UpdateAppointmentParams{Notes: testutil.StringPtr("  french tips ")},
			wantStart: "10:00", wantEnd: "10:30", wantDate: "2025-06-02", wantNotes: "french tips",
		},
		{
			name:      "customer conflict",
			status:    model.StatusPending,
			others:    []model.Appointment{appointmentAt(alice.ID, nil, "2025-06-02", "11:00", "11:30", model.StatusPending)},
			requester: owner,
			params:    model.UpdateAppointmentParams{StartTime: testutil.StringPtr("10:45")},
			wantErr:   model.ErrCustomerDoubleBooked,
		},
		{
			name:      "staff conflict",
			status:    model.StatusPending,
			others:    []model.Appointment{appointmentAt(bob.ID, &anna.ID, "2025-06-03", "10:00", "10:30", model.StatusConfirmed)},
			requester: owner,
			params:    model.UpdateAppointmentParams{Date: testutil.StringPtr("2025-06-03")},
			wantErr:   model.ErrStaffUnavailable,
		},
		{
			name:      "terminal appointment",
			status:    model.StatusCompleted,
			requester: owner,
			params:    model.UpdateAppointmentParams{Notes: testutil.StringPtr("late")},
			wantErr:   model.ErrInvalidTransition,
		},
		{
			name:      "not the owner",
			status:    model.StatusPending,
			requester: model.Requester{ID: bob.ID, Role: model.RoleCustomer},
			params:    model.UpdateAppointmentParams{Notes: testutil.StringPtr("mine")},
			wantErr:   model.ErrForbidden,
		},
		{
			name:      "nothing to update",
			status:    model.StatusPending,
			requester: owner,
			wantErr:   model.ErrInvalidArgument,
		},
		{
			name:      "malformed start",
			status:    model.StatusPending,
			requester: owner,
			params:    model.UpdateAppointmentParams{StartTime: testutil.StringPtr("10h")},
			wantErr:   model.ErrInvalidFormat,
		},
		{
			name:      "crosses midnight",
			status:    model.StatusPending,
			requester: owner,
			params:    model.UpdateAppointmentParams{StartTime: testutil.StringPtr("23:40")},
			wantErr:   model.ErrCrossesMidnight,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appt := appointmentAt(alice.ID, &anna.ID, "2025-06-02", "10:00", "10:30", tt.status)
			f := newBookingFixture(append([]model.Appointment{appt}, tt.others...)...)
			f.services.On("GetByID", mock.Anything, manicure.ID).Return(manicure, nil).Maybe()

			got, err := f.booking.UpdateAppointment(context.Background(), appt.ID, tt.requester, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, appt, f.store.get(appt.ID))
				assert.Empty(t, f.store.eventTypes())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, got.StartTime)
			assert.Equal(t, tt.wantEnd, got.EndTime)
			assert.Equal(t, testutil.Date(tt.wantDate), got.Date)
			assert.Equal(t, tt.wantNotes, got.Notes)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, got, f.store.get(appt.ID))
			if tt.wantEvent == nil {
				assert.Empty(t, f.store.eventTypes())
			} else {
				assert.Equal(t, tt.wantEvent, f.store.eventTypes())
			}
		})
	}
}

func TestBooking_UpdateAppointment_ConcurrentReschedule(t *testing.T) {
	manicure := testutil.ClassicManicure()
	alice := testutil.Customer("alice")
	anna := testutil.Staff("anna", "Manicure")
	owner := model.Requester{ID: alice.ID, Role: model.RoleCustomer}

	tests := []struct {
		name      string
		params    model.UpdateAppointmentParams
		wantErr   error
		wantNotes string
	}{
		{
			name:      "notes edit keeps the newer window",
			params:    model.UpdateAppointmentParams{Notes: testutil.StringPtr("gel top coat")},
			wantNotes: "gel top coat",
		},
		{
			name:    "move back into a slot taken meanwhile",
			params:  model.UpdateAppointmentParams{StartTime: testutil.StringPtr("10:00")},
			wantErr: model.ErrCustomerDoubleBooked,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appt := appointmentAt(alice.ID, &anna.ID, "2025-06-02", "10:00", "10:30", model.StatusPending)
			other := appointmentAt(alice.ID, nil, "2025-06-02", "10:00", "10:30", model.StatusPending)
			f := newBookingFixture(appt)
			f.services.On("GetByID", mock.Anything, manicure.ID).Return(manicure, nil).Maybe()

			// Another request reschedules appt and books the freed slot
			// between the initial read and the row lock.
			f.store.afterGet = func(model.Appointment) {
				moved := appt
				moved.StartTime, moved.EndTime = "14:00", "14:30"
				_, err := f.store.Update(context.Background(), moved)
				require.NoError(t, err)
				_, err = f.store.Create(context.Background(), other)
				require.NoError(t, err)
			}

			got, err := f.booking.UpdateAppointment(context.Background(), appt.ID, owner, tt.params)

			stored := f.store.get(appt.ID)
			assert.Equal(t, "14:00", stored.StartTime)
			assert.Equal(t, "14:30", stored.EndTime)
			assert.Equal(t, other, f.store.get(other.ID))
			assert.Empty(t, f.store.eventTypes())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "14:00", got.StartTime)
			assert.Equal(t, "14:30", got.EndTime)
			assert.Equal(t, tt.wantNotes, got.Notes)
			assert.Equal(t, got, stored)
		})
	}
}

func TestBooking_AssignStaff(t *testing.T) {
	manicure := testutil.ClassicManicure()
	alice := testutil.Customer("alice")
	bob := testutil.Customer("bob")
	anna := testutil.Staff("anna", "Manicure")
	pedro := testutil.Staff("pedro", "Pedicure")
	admin := model.Requester{ID: uuid.New(), Role: model.RoleAdmin}

	tests := []struct {
		name      string
		status    model.Status
		staff     model.User
		others    []model.Appointment
		requester model.Requester
		wantErr   error
	}{
		{name: "assigns", status: model.StatusPending, staff: anna, requester: admin},
		{name: "only admins", status: model.StatusPending, staff: anna, requester: model.Requester{ID: alice.ID, Role: model.RoleCustomer}, wantErr: model.ErrForbidden},
		{name: "wrong specialty", status: model.StatusPending, staff: pedro, requester: admin, wantErr: model.ErrStaffUnavailable},
		{name: "terminal appointment", status: model.StatusCancelled, staff: anna, requester: admin, wantErr: model.ErrInvalidTransition},
		{
			name:      "staff busy",
			status:    model.StatusPending,
			staff:     anna,
			others:    []model.Appointment{appointmentAt(bob.ID, &anna.ID, "2025-06-02", "10:20", "10:50", model.StatusPending)},
			requester: admin,
			wantErr:   model.ErrStaffUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appt := appointmentAt(alice.ID, nil, "2025-06-02", "10:00", "10:30", tt.status)
			f := newBookingFixture(append([]model.Appointment{appt}, tt.others...)...)
			f.services.On("GetByID", mock.Anything, manicure.ID).Return(manicure, nil).Maybe()
			f.users.On("GetByID", mock.Anything, tt.staff.ID).Return(tt.staff, nil).Maybe()

			got, err := f.booking.AssignStaff(context.Background(), appt.ID, tt.staff.ID, tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, f.store.get(appt.ID).StaffID)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got.StaffID)
			assert.Equal(t, tt.staff.ID, *got.StaffID)
			assert.Equal(t, []model.EventType{model.EventAppointmentStaffAssigned}, f.store.eventTypes())

			confirmed, err := f.booking.TransitionAppointment(context.Background(), appt.ID, admin, model.StatusConfirmed)
			require.NoError(t, err)
			assert.Equal(t, model.StatusConfirmed, confirmed.Status)
		})
	}
}

func TestBooking_DeleteAppointment(t *testing.T) {
	alice := testutil.Customer("alice")

	tests := []struct {
		name      string
		requester model.Requester
		wantErr   error
	}{
		{name: "owner", requester: model.Requester{ID: alice.ID, Role: model.RoleCustomer}},
		{name: "admin", requester: model.Requester{ID: uuid.New(), Role: model.RoleAdmin}},
		{name: "staff", requester: model.Requester{ID: uuid.New(), Role: model.RoleStaff}, wantErr: model.ErrForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appt := appointmentAt(alice.ID, nil, "2025-06-02", "10:00", "10:30", model.StatusCompleted)
			f := newBookingFixture(appt)

			err := f.booking.DeleteAppointment(context.Background(), appt.ID, tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, f.store.count())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, f.store.count())
			assert.Equal(t, []model.EventType{model.EventAppointmentDeleted}, f.store.eventTypes())
		})
	}
}
