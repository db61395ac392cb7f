package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/api/grpc/wire"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// BookingService defines the appointment operations exposed over REST.
type BookingService interface {
	BookAppointment(ctx context.Context, params model.BookAppointmentParams) (model.Appointment, error)
	ListAvailableStaff(ctx context.Context, category, date, startTime, endTime string) ([]model.StaffSummary, error)
	TransitionAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, newStatus model.Status) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, params model.UpdateAppointmentParams) (model.Appointment, error)
	AssignStaff(ctx context.Context, id, staffID uuid.UUID, requester model.Requester) (model.Appointment, error)
	GetAppointment(ctx context.Context, id uuid.UUID, requester model.Requester) (model.Appointment, error)
	ListAppointments(ctx context.Context, filter model.AppointmentFilter, requester model.Requester) ([]model.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID, requester model.Requester) error
}

// Appointments serves /api/v1/appointments and staff availability.
type Appointments struct {
	booking        BookingService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAppointments(booking BookingService, contextManager model.ContextManager, logger *logger.Logger) *Appointments {
	return &Appointments{booking: booking, contextManager: contextManager, logger: logger}
}

// Book handles POST /appointments.
func (h *Appointments) Book(c *gin.Context) {
	req, ok := requester(c, h.contextManager)
	if !ok {
		return
	}
	var in wire.BookAppointmentRequest
	if !bindJSON(c, &in) {
		return
	}

	serviceID, err := wire.ParseID("serviceId", in.ServiceID)
	if err != nil {
		fail(c, h.logger, "book appointment", err)
		return
	}
	staffID, err := wire.ParseOptionalID("staffId", in.StaffID)
	if err != nil {
		fail(c, h.logger, "book appointment", err)
		return
	}

	appt, err := h.booking.BookAppointment(c.Request.Context(), model.BookAppointmentParams{
		CustomerID: req.ID,
		ServiceID:  serviceID,
		StaffID:    staffID,
		Date:       in.Date,
		StartTime:  in.StartTime,
		Notes:      in.Notes,
	})
	if err != nil {
		fail(c, h.logger, "book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, wire.FromAppointment(appt))
}

// List handles GET /appointments. Filters only apply to administrators.
func (h *Appointments) List(c *gin.Context) {
	req, ok := requester(c, h.contextManager)
	if !ok {
		return
	}
	q := wire.ListAppointmentsRequest{
		UserID:  c.Query("userId"),
		StaffID: c.Query("staffId"),
		Date:    c.Query("date"),
		Status:  c.Query("status"),
	}
	filter, err := q.Filter()
	if err != nil {
		fail(c, h.logger, "list appointments", err)
		return
	}

	list, err := h.booking.ListAppointments(c.Request.Context(), filter, req)
	if err != nil {
		fail(c, h.logger, "list appointments", err)
		return
	}
	c.JSON(http.StatusOK, wire.ListAppointmentsResponse{Appointments: wire.FromAppointments(list)})
}

func (h *Appointments) Get(c *gin.Context) {
	req, ok := requester(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	appt, err := h.booking.GetAppointment(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.logger, "get appointment", err)
		return
	}
	c.JSON(http.StatusOK, wire.FromAppointment(appt))
}

// Update handles PATCH /appointments/:id.
func (h *Appointments) Update(c *gin.Context) {
	req, ok := requester(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in wire.UpdateAppointmentRequest
	if !bindJSON(c, &in) {
		return
	}

	appt, err := h.booking.UpdateAppointment(c.Request.Context(), id, req, model.UpdateAppointmentParams{
		Date:      in.Date,
		StartTime: in.StartTime,
		Notes:     in.Notes,
	})
	if err != nil {
		fail(c, h.logger, "update appointment", err)
		return
	}
	c.JSON(http.StatusOK, wire.FromAppointment(appt))
}

func (h *Appointments) Delete(c *gin.Context) {
	req, ok := requester(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.booking.DeleteAppointment(c.Request.Context(), id, req); err != nil {
		fail(c, h.logger, "delete appointment", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Transition handles POST /appointments/:id/status.
func (h *Appointments) Transition(c *gin.Context) {
	req, ok := requester(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in statusRequest
	if !bindJSON(c, &in) {
		return
	}
	newStatus, err := wire.ParseStatus(in.Status)
	if err != nil {
		fail(c, h.logger, "transition appointment", err)
		return
	}

	appt, err := h.booking.TransitionAppointment(c.Request.Context(), id, req, newStatus)
	if err != nil {
		fail(c, h.logger, "transition appointment", err)
		return
	}
	c.JSON(http.StatusOK, wire.FromAppointment(appt))
}

type assignStaffRequest struct {
	StaffID string `json:"staffId" binding:"required"`
}

// AssignStaff handles PUT /admin/appointments/:id/staff.
func (h *Appointments) AssignStaff(c *gin.Context) {
	req, ok := requester(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in assignStaffRequest
	if !bindJSON(c, &in) {
		return
	}
	staffID, err := wire.ParseID("staffId", in.StaffID)
	if err != nil {
		fail(c, h.logger, "assign staff", err)
		return
	}

	appt, err := h.booking.AssignStaff(c.Request.Context(), id, staffID, req)
	if err != nil {
		fail(c, h.logger, "assign staff", err)
		return
	}
	c.JSON(http.StatusOK, wire.FromAppointment(appt))
}

// AvailableStaff handles GET /staff/available?category=&date=&startTime=&endTime=.
func (h *Appointments) AvailableStaff(c *gin.Context) {
	staff, err := h.booking.ListAvailableStaff(c.Request.Context(),
		c.Query("category"), c.Query("date"), c.Query("startTime"), c.Query("endTime"))
	if err != nil {
		fail(c, h.logger, "list available staff", err)
		return
	}
	c.JSON(http.StatusOK, wire.ListAvailableStaffResponse{Staff: wire.FromStaff(staff)})
}
