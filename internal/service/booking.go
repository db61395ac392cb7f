package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

// Booking is the appointment scheduling service. It validates and books
// appointments and drives them through their lifecycle.
type Booking struct {
	appointments model.AppointmentStore
	services     model.ServiceStore
	users        model.UserStore
	tx           model.Transactor
	availability *Availability
	logger       *logger.Logger
	now          func() time.Time
}

func NewBooking(
	appointments model.AppointmentStore,
	services model.ServiceStore,
	users model.UserStore,
	tx model.Transactor,
	logger *logger.Logger,
) *Booking {
	return &Booking{
		appointments: appointments,
		services:     services,
		users:        users,
		tx:           tx,
		availability: NewAvailability(users, appointments, logger),
		logger:       logger,
		now:          time.Now,
	}
}

// BookAppointment creates a PENDING appointment for params.CustomerID. The end
// time is derived from the service duration. Without a staff member the
// booking only succeeds when at least one qualified staff member is free; the
// appointment then stays unassigned until an administrator assigns someone.
func (s *Booking) BookAppointment(ctx context.Context, params model.BookAppointmentParams) (model.Appointment, error) {
	date, err := timewindow.ParseDate(params.Date)
	if err != nil {
		return model.Appointment{}, err
	}

	svc, err := s.services.GetByID(ctx, params.ServiceID)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("failed to get service: %w", err)
	}
	if !svc.IsActive {
		return model.Appointment{}, model.ErrServiceInactive
	}

	endTime, err := timewindow.EndOf(params.StartTime, svc.Duration)
	if err != nil {
		return model.Appointment{}, err
	}

	if params.StaffID != nil {
		if err := s.checkStaffQualified(ctx, *params.StaffID, svc); err != nil {
			return model.Appointment{}, err
		}
	} else {
		free, err := s.availability.FindAvailableStaff(ctx, svc.Category, date, params.StartTime, endTime)
		if err != nil {
			return model.Appointment{}, err
		}
		if len(free) == 0 {
			return model.Appointment{}, fmt.Errorf("%w: no %s staff free at %s", model.ErrStaffUnavailable, svc.Category, params.StartTime)
		}
	}

	candidate := model.BookingCandidate{
		CustomerID: params.CustomerID,
		StaffID:    params.StaffID,
		ServiceID:  svc.ID,
		Date:       date,
		StartTime:  params.StartTime,
		EndTime:    endTime,
	}

	var booked model.Appointment
	err = s.tx.InTx(ctx, lockKeys(params.CustomerID, params.StaffID, date), func(ctx context.Context, uow model.UnitOfWork) error {
		if err := NewConflictValidator(uow.Appointments()).ValidateBooking(ctx, candidate); err != nil {
			return err
		}

		now := s.now()
		created, err := uow.Appointments().Create(ctx, model.Appointment{
			ID:        uuid.New(),
			UserID:    params.CustomerID,
			StaffID:   params.StaffID,
			ServiceID: svc.ID,
			Date:      date,
			StartTime: params.StartTime,
			EndTime:   endTime,
			Status:    model.StatusPending,
			Notes:     strings.TrimSpace(params.Notes),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		if err := appendAppointmentEvent(ctx, uow, model.EventAppointmentBooked, created, params.CustomerID, now); err != nil {
			return err
		}
		booked = created
		return nil
	})
	if err != nil {
		return model.Appointment{}, err
	}

	s.logger.Info("Booking service: appointment booked",
		"appointment_id", booked.ID,
		"customer_id", booked.UserID,
		"date", params.Date,
		"start", booked.StartTime,
		"end", booked.EndTime)

	return booked, nil
}

// ListAvailableStaff parses date and delegates to the availability checker.
func (s *Booking) ListAvailableStaff(ctx context.Context, category, date, startTime, endTime string) ([]model.StaffSummary, error) {
	if strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("%w: category is required", model.ErrInvalidArgument)
	}
	day, err := timewindow.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.availability.FindAvailableStaff(ctx, category, day, startTime, endTime)
}

// GetAppointment returns an appointment visible to requester: its customer,
// its assigned staff member, or an administrator.
func (s *Booking) GetAppointment(ctx context.Context, id uuid.UUID, requester model.Requester) (model.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("failed to get appointment: %w", err)
	}
	if !canView(appt, requester) {
		return model.Appointment{}, model.ErrForbidden
	}
	return appt, nil
}

// ListAppointments scopes filter to what requester may see. Customers only see
// their own appointments and staff only those assigned to them.
func (s *Booking) ListAppointments(ctx context.Context, filter model.AppointmentFilter, requester model.Requester) ([]model.Appointment, error) {
	switch requester.Role {
	case model.RoleAdmin:
	case model.RoleStaff:
		filter.StaffID = &requester.ID
	default:
		filter.UserID = &requester.ID
	}

	list, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].StartTime < list[j].StartTime
	})

	return list, nil
}

func (s *Booking) checkStaffQualified(ctx context.Context, staffID uuid.UUID, svc model.Service) error {
	staff, err := s.users.GetByID(ctx, staffID)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("staff member %s: %w", staffID, model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get staff member: %w", err)
	}
	if staff.Role != model.RoleStaff || !staff.IsActive || staff.SpecialtyCategory != svc.Category {
		return fmt.Errorf("%w: %s does not serve %s", model.ErrStaffUnavailable, staff.Name, svc.Category)
	}
	return nil
}

func canView(appt model.Appointment, requester model.Requester) bool {
	if requester.IsAdmin() || appt.UserID == requester.ID {
		return true
	}
	return appt.StaffID != nil && *appt.StaffID == requester.ID
}

func isOwnerOrAdmin(appt model.Appointment, requester model.Requester) bool {
	return requester.IsAdmin() || appt.UserID == requester.ID
}

// lockKeys returns the contended keys of a window: the customer's day and,
// when assigned, the staff member's day.
func lockKeys(customerID uuid.UUID, staffID *uuid.UUID, date time.Time) []string {
	day := timewindow.FormatDate(date)
	keys := []string{"customer:" + customerID.String() + ":" + day}
	if staffID != nil {
		keys = append(keys, "staff:"+staffID.String()+":"+day)
	}
	return keys
}
