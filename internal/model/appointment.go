package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is an appointment lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// TerminalStatuses no longer occupy a time slot.
var TerminalStatuses = []Status{StatusCancelled, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// AppointmentStore defines persistence operations for appointments.
type AppointmentStore interface {
	// FindByCustomerAndDate returns the windows of a customer's appointments on
	// date whose status is not in excludeStatuses.
	FindByCustomerAndDate(ctx context.Context, userID uuid.UUID, date time.Time, excludeStatuses []Status) ([]AppointmentWindow, error)
	// FindByStaffAndDate returns the windows of a staff member's appointments on
	// date whose status is not in excludeStatuses.
	FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time, excludeStatuses []Status) ([]AppointmentWindow, error)
	// Create inserts a new appointment. It returns ErrSlotTaken when a storage
	// constraint rejects an overlapping window.
	Create(ctx context.Context, appointment Appointment) (Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Appointment, error)
	// Update persists date, window, notes and staff assignment.
	Update(ctx context.Context, appointment Appointment) (Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (Appointment, error)
	// GetForUpdate reads an appointment and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Appointment is a booking of one service by one customer.
type Appointment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StaffID   *uuid.UUID
	ServiceID uuid.UUID
	// Date is the calendar day at UTC midnight.
	Date      time.Time
	StartTime string
	EndTime   string
	Status    Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the time window of the appointment.
func (a Appointment) Window() AppointmentWindow {
	return AppointmentWindow{ID: a.ID, StartTime: a.StartTime, EndTime: a.EndTime}
}

// AppointmentWindow is the slot an appointment occupies on its date.
type AppointmentWindow struct {
	ID        uuid.UUID
	StartTime string
	EndTime   string
}

// AppointmentFilter narrows appointment listings. Zero values match everything.
type AppointmentFilter struct {
	UserID  *uuid.UUID
	StaffID *uuid.UUID
	Date    *time.Time
	Status  Status
}

// BookingCandidate describes a prospective appointment window.
type BookingCandidate struct {
	CustomerID uuid.UUID
	StaffID    *uuid.UUID
	ServiceID  uuid.UUID
	Date       time.Time
	StartTime  string
	EndTime    string
	// ExcludeID removes an appointment being edited from its own conflict set.
	ExcludeID uuid.UUID
}

// BookAppointmentParams contains the inputs of a booking request.
type BookAppointmentParams struct {
	CustomerID uuid.UUID
	ServiceID  uuid.UUID
	StaffID    *uuid.UUID
	Date       string
	StartTime  string
	Notes      string
}

// UpdateAppointmentParams contains a field edit. Nil fields are left unchanged.
type UpdateAppointmentParams struct {
	Date      *string
	StartTime *string
	Notes     *string
}

// UnitOfWork exposes stores bound to a single database transaction.
type UnitOfWork interface {
	Appointments() AppointmentStore
	Events() EventStore
}

// Transactor runs fn in one transaction. lockKeys are serialized for the
// lifetime of the transaction so that concurrent units of work contending for
// the same key run one after another.
type Transactor interface {
	InTx(ctx context.Context, lockKeys []string, fn func(ctx context.Context, uow UnitOfWork) error) error
}
