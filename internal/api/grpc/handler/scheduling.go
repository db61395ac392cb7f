package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/api/grpc/wire"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// BookingService defines the appointment scheduling operations.
type BookingService interface {
	BookAppointment(ctx context.Context, params model.BookAppointmentParams) (model.Appointment, error)
	ListAvailableStaff(ctx context.Context, category, date, startTime, endTime string) ([]model.StaffSummary, error)
	TransitionAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, newStatus model.Status) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, params model.UpdateAppointmentParams) (model.Appointment, error)
	AssignStaff(ctx context.Context, id, staffID uuid.UUID, requester model.Requester) (model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID, requester model.Requester) (model.Appointment, error)
	ListAppointments(ctx context.Context, filter model.AppointmentFilter, requester model.Requester) ([]model.Appointment, error)
}

var _ wire.SchedulingServer = (*Scheduling)(nil)

// Scheduling handles salon.v1.Scheduling calls.
type Scheduling struct {
	booking        BookingService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewScheduling creates a new Scheduling handler.
func NewScheduling(booking BookingService, contextManager model.ContextManager, logger *logger.Logger) *Scheduling {
	return &Scheduling{
		booking:        booking,
		contextManager: contextManager,
		logger:         logger,
	}
}

// BookAppointment books a service for the calling customer.
func (h *Scheduling) BookAppointment(ctx context.Context, req *wire.BookAppointmentRequest) (*wire.AppointmentResponse, error) {
	requester, err := h.requester(ctx)
	if err != nil {
		return nil, err
	}

	serviceID, err := wire.ParseID("serviceId", req.ServiceID)
	if err != nil {
		return nil, err
	}
	staffID, err := wire.ParseOptionalID("staffId", req.StaffID)
	if err != nil {
		return nil, err
	}

	appt, err := h.booking.BookAppointment(ctx, model.BookAppointmentParams{
		CustomerID: requester.ID,
		ServiceID:  serviceID,
		StaffID:    staffID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, handleError(h.logger, "book appointment", err)
	}

	return &wire.AppointmentResponse{Appointment: wire.FromAppointment(appt)}, nil
}

// ListAvailableStaff lists staff of a category free in the requested window.
func (h *Scheduling) ListAvailableStaff(ctx context.Context, req *wire.ListAvailableStaffRequest) (*wire.ListAvailableStaffResponse, error) {
	staff, err := h.booking.ListAvailableStaff(ctx, req.Category, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, handleError(h.logger, "list available staff", err)
	}

	return &wire.ListAvailableStaffResponse{Staff: wire.FromStaff(staff)}, nil
}

// TransitionAppointment moves an appointment to a new status.
func (h *Scheduling) TransitionAppointment(ctx context.Context, req *wire.TransitionAppointmentRequest) (*wire.AppointmentResponse, error) {
	requester, err := h.requester(ctx)
	if err != nil {
		return nil, err
	}

	id, err := wire.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}
	newStatus, err := wire.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	appt, err := h.booking.TransitionAppointment(ctx, id, requester, newStatus)
	if err != nil {
		return nil, handleError(h.logger, "transition appointment", err)
	}

	return &wire.AppointmentResponse{Appointment: wire.FromAppointment(appt)}, nil
}

// UpdateAppointment edits the date, start time or notes of an appointment.
func (h *Scheduling) UpdateAppointment(ctx context.Context, req *wire.UpdateAppointmentRequest) (*wire.AppointmentResponse, error) {
	requester, err := h.requester(ctx)
	if err != nil {
		return nil, err
	}

	id, err := wire.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	appt, err := h.booking.UpdateAppointment(ctx, id, requester, model.UpdateAppointmentParams{
		Date:      req.Date,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, handleError(h.logger, "update appointment", err)
	}

	return &wire.AppointmentResponse{Appointment: wire.FromAppointment(appt)}, nil
}

// AssignStaff assigns a staff member to an appointment.
func (h *Scheduling) AssignStaff(ctx context.Context, req *wire.AssignStaffRequest) (*wire.AppointmentResponse, error) {
	requester, err := h.requester(ctx)
	if err != nil {
		return nil, err
	}

	id, err := wire.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}
	staffID, err := wire.ParseID("staffId", req.StaffID)
	if err != nil {
		return nil, err
	}

	appt, err := h.booking.AssignStaff(ctx, id, staffID, requester)
	if err != nil {
		return nil, handleError(h.logger, "assign staff", err)
	}

	return &wire.AppointmentResponse{Appointment: wire.FromAppointment(appt)}, nil
}

func (h *Scheduling) GetAppointment(ctx context.Context, req *wire.GetAppointmentRequest) (*wire.AppointmentResponse, error) {
	requester, err := h.requester(ctx)
	if err != nil {
		return nil, err
	}

	id, err := wire.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	appt, err := h.booking.GetAppointment(ctx, id, requester)
	if err != nil {
		return nil, handleError(h.logger, "get appointment", err)
	}

	return &wire.AppointmentResponse{Appointment: wire.FromAppointment(appt)}, nil
}

func (h *Scheduling) ListAppointments(ctx context.Context, req *wire.ListAppointmentsRequest) (*wire.ListAppointmentsResponse, error) {
	requester, err := h.requester(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := req.Filter()
	if err != nil {
		return nil, err
	}

	list, err := h.booking.ListAppointments(ctx, filter, requester)
	if err != nil {
		return nil, handleError(h.logger, "list appointments", err)
	}

	return &wire.ListAppointmentsResponse{Appointments: wire.FromAppointments(list)}, nil
}

func (h *Scheduling) requester(ctx context.Context) (model.Requester, error) {
	requester, ok := h.contextManager.GetRequesterFromContext(ctx)
	if !ok {
		return model.Requester{}, apierror.MissingToken()
	}
	return requester, nil
}
