package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

// TransitionAppointment moves an appointment to newStatus on behalf of
// requester. The edge must exist in the lifecycle table (ErrInvalidTransition)
// and requester must be allowed to take it (ErrForbidden). Either failure
// leaves the appointment untouched.
func (s *Booking) TransitionAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, newStatus model.Status) (model.Appointment, error) {
	var result model.Appointment
	err := s.tx.InTx(ctx, nil, func(ctx context.Context, uow model.UnitOfWork) error {
		appt, err := uow.Appointments().GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if !model.CanTransition(appt.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, appt.Status, newStatus)
		}
		if !model.MayTransition(appt.Status, newStatus, requester, appt.UserID == requester.ID) {
			return model.ErrForbidden
		}
		if newStatus == model.StatusConfirmed && appt.StaffID == nil {
			return fmt.Errorf("%w: staff must be assigned before confirmation", model.ErrInvalidTransition)
		}

		updated, err := uow.Appointments().UpdateStatus(ctx, id, newStatus)
		if err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}
		if err := appendAppointmentEvent(ctx, uow, model.StatusEvent(newStatus), updated, requester.ID, s.now()); err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return model.Appointment{}, err
	}

	s.logger.Info("Booking service: appointment transitioned",
		"appointment_id", id,
		"status", newStatus,
		"requester_id", requester.ID)

	return result, nil
}

// UpdateAppointment edits date, start time or notes of a PENDING or CONFIRMED
// appointment. Moving the window re-derives the end time and re-runs the
// conflict validator without the appointment itself.
func (s *Booking) UpdateAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, params model.UpdateAppointmentParams) (model.Appointment, error) {
	if params.Date == nil && params.StartTime == nil && params.Notes == nil {
		return model.Appointment{}, fmt.Errorf("%w: nothing to update", model.ErrInvalidArgument)
	}

	current, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("failed to get appointment: %w", err)
	}
	if !isOwnerOrAdmin(current, requester) {
		return model.Appointment{}, model.ErrForbidden
	}

	day := current.Date
	if params.Date != nil {
		if day, err = timewindow.ParseDate(*params.Date); err != nil {
			return model.Appointment{}, err
		}
	}
	if params.StartTime != nil {
		if _, err := timewindow.ParseClock(*params.StartTime); err != nil {
			return model.Appointment{}, err
		}
	}

	var (
		result model.Appointment
		moved  bool
	)
	err = s.tx.InTx(ctx, lockKeys(current.UserID, current.StaffID, day), func(ctx context.Context, uow model.UnitOfWork) error {
		locked, err := uow.Appointments().GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}
		if locked.Status.IsTerminal() {
			return fmt.Errorf("%w: %s appointments cannot be edited", model.ErrInvalidTransition, locked.Status)
		}
		if !sameHolders(current, locked) {
			return fmt.Errorf("%w: appointment changed concurrently", model.ErrSlotTaken)
		}

		// Edits apply to the locked row so a concurrent reschedule is never reverted.
		target := locked
		if params.Date != nil {
			target.Date = day
		}
		if params.StartTime != nil {
			target.StartTime = *params.StartTime
		}
		if params.Notes != nil {
			target.Notes = strings.TrimSpace(*params.Notes)
		}
		moved = !target.Date.Equal(locked.Date) || target.StartTime != locked.StartTime

		if moved {
			svc, err := s.services.GetByID(ctx, locked.ServiceID)
			if err != nil {
				return fmt.Errorf("failed to get service: %w", err)
			}
			if target.EndTime, err = timewindow.EndOf(target.StartTime, svc.Duration); err != nil {
				return err
			}
			err = NewConflictValidator(uow.Appointments()).ValidateBooking(ctx, model.BookingCandidate{
				CustomerID: locked.UserID,
				StaffID:    locked.StaffID,
				ServiceID:  locked.ServiceID,
				Date:       target.Date,
				StartTime:  target.StartTime,
				EndTime:    target.EndTime,
				ExcludeID:  locked.ID,
			})
			if err != nil {
				return err
			}
		}

		locked.Date = target.Date
		locked.StartTime = target.StartTime
		locked.EndTime = target.EndTime
		locked.Notes = target.Notes
		locked.UpdatedAt = s.now()

		updated, err := uow.Appointments().Update(ctx, locked)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		if moved {
			if err := appendAppointmentEvent(ctx, uow, model.EventAppointmentRescheduled, updated, requester.ID, s.now()); err != nil {
				return err
			}
		}
		result = updated
		return nil
	})
	if err != nil {
		return model.Appointment{}, err
	}

	s.logger.Info("Booking service: appointment updated", "appointment_id", id, "rescheduled", moved)

	return result, nil
}

// AssignStaff assigns a qualified, free staff member to a PENDING or
// CONFIRMED appointment. Only administrators may assign staff.
func (s *Booking) AssignStaff(ctx context.Context, id, staffID uuid.UUID, requester model.Requester) (model.Appointment, error) {
	if !requester.IsAdmin() {
		return model.Appointment{}, model.ErrForbidden
	}

	current, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("failed to get appointment: %w", err)
	}
	svc, err := s.services.GetByID(ctx, current.ServiceID)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("failed to get service: %w", err)
	}
	if err := s.checkStaffQualified(ctx, staffID, svc); err != nil {
		return model.Appointment{}, err
	}

	var result model.Appointment
	err = s.tx.InTx(ctx, lockKeys(current.UserID, &staffID, current.Date), func(ctx context.Context, uow model.UnitOfWork) error {
		locked, err := uow.Appointments().GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}
		if locked.Status.IsTerminal() {
			return fmt.Errorf("%w: %s appointments cannot be reassigned", model.ErrInvalidTransition, locked.Status)
		}
		if !locked.Date.Equal(current.Date) {
			return fmt.Errorf("%w: appointment changed concurrently", model.ErrSlotTaken)
		}

		err = NewConflictValidator(uow.Appointments()).ValidateStaff(ctx, model.BookingCandidate{
			CustomerID: locked.UserID,
			StaffID:    &staffID,
			ServiceID:  locked.ServiceID,
			Date:       locked.Date,
			StartTime:  locked.StartTime,
			EndTime:    locked.EndTime,
			ExcludeID:  locked.ID,
		})
		if err != nil {
			return err
		}

		locked.StaffID = &staffID
		locked.UpdatedAt = s.now()
		updated, err := uow.Appointments().Update(ctx, locked)
		if err != nil {
			return fmt.Errorf("failed to assign staff: %w", err)
		}
		if err := appendAppointmentEvent(ctx, uow, model.EventAppointmentStaffAssigned, updated, requester.ID, s.now()); err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return model.Appointment{}, err
	}

	s.logger.Info("Booking service: staff assigned", "appointment_id", id, "staff_id", staffID)

	return result, nil
}

// DeleteAppointment physically removes an appointment. Only its customer or
// an administrator may delete it.
func (s *Booking) DeleteAppointment(ctx context.Context, id uuid.UUID, requester model.Requester) error {
	err := s.tx.InTx(ctx, nil, func(ctx context.Context, uow model.UnitOfWork) error {
		appt, err := uow.Appointments().GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}
		if !isOwnerOrAdmin(appt, requester) {
			return model.ErrForbidden
		}
		if err := uow.Appointments().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return appendAppointmentEvent(ctx, uow, model.EventAppointmentDeleted, appt, requester.ID, s.now())
	})
	if err != nil {
		return err
	}

	s.logger.Info("Booking service: appointment deleted", "appointment_id", id, "requester_id", requester.ID)

	return nil
}

// sameHolders reports whether the appointment still belongs to the same
// customer, staff member and day as when its lock keys were computed.
func sameHolders(before, after model.Appointment) bool {
	if before.UserID != after.UserID || !before.Date.Equal(after.Date) {
		return false
	}
	if (before.StaffID == nil) != (after.StaffID == nil) {
		return false
	}
	return before.StaffID == nil || *before.StaffID == *after.StaffID
}
