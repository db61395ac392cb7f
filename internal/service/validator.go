package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

// ConflictValidator checks a prospective window against the customer's and
// the assigned staff member's non-terminal appointments.
type ConflictValidator struct {
	appointments model.AppointmentStore
}

func NewConflictValidator(appointments model.AppointmentStore) *ConflictValidator {
	return &ConflictValidator{appointments: appointments}
}

// ValidateBooking returns ErrCustomerDoubleBooked or ErrStaffUnavailable when
// the candidate collides. The customer is always checked before the staff
// member, and both are checked before success is reported.
func (v *ConflictValidator) ValidateBooking(ctx context.Context, c model.BookingCandidate) error {
	window, err := timewindow.NewWindow(c.StartTime, c.EndTime)
	if err != nil {
		return err
	}

	own, err := v.appointments.FindByCustomerAndDate(ctx, c.CustomerID, c.Date, model.TerminalStatuses)
	if err != nil {
		return fmt.Errorf("failed to find customer appointments: %w", err)
	}
	clash, err := overlapsAny(window, own, c.ExcludeID)
	if err != nil {
		return err
	}
	if clash {
		return model.ErrCustomerDoubleBooked
	}

	if c.StaffID == nil {
		return nil
	}

	return v.validateStaff(ctx, *c.StaffID, c, window)
}

// ValidateStaff runs only the staff half of ValidateBooking.
func (v *ConflictValidator) ValidateStaff(ctx context.Context, c model.BookingCandidate) error {
	if c.StaffID == nil {
		return nil
	}
	window, err := timewindow.NewWindow(c.StartTime, c.EndTime)
	if err != nil {
		return err
	}
	return v.validateStaff(ctx, *c.StaffID, c, window)
}

func (v *ConflictValidator) validateStaff(ctx context.Context, staffID uuid.UUID, c model.BookingCandidate, window timewindow.Window) error {
	assigned, err := v.appointments.FindByStaffAndDate(ctx, staffID, c.Date, model.TerminalStatuses)
	if err != nil {
		return fmt.Errorf("failed to find staff appointments: %w", err)
	}
	clash, err := overlapsAny(window, assigned, c.ExcludeID)
	if err != nil {
		return err
	}
	if clash {
		return model.ErrStaffUnavailable
	}
	return nil
}
