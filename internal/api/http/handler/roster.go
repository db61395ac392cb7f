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

// RosterService defines staff and customer administration.
type RosterService interface {
	ListStaff(ctx context.Context, category string) ([]model.User, error)
	CreateStaff(ctx context.Context, in model.StaffInput) (model.User, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, in model.StaffInput) (model.User, error)
	DeleteStaff(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context) ([]model.User, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (model.CustomerDetails, error)
	SetCustomerActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error)
}

// Roster serves /admin/staff and /admin/customers.
type Roster struct {
	roster RosterService
	logger *logger.Logger
}

func NewRoster(roster RosterService, logger *logger.Logger) *Roster {
	return &Roster{roster: roster, logger: logger}
}

func (h *Roster) ListStaff(c *gin.Context) {
	list, err := h.roster.ListStaff(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, h.logger, "list staff", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": fromUsers(list)})
}

type staffRequest struct {
	Name              *string `json:"name"`
	Email             *string `json:"email"`
	Phone             *string `json:"phone"`
	SpecialtyCategory *string `json:"specialtyCategory"`
	IsActive          *bool   `json:"isActive"`
}

func (r staffRequest) input() model.StaffInput {
	return model.StaffInput{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		SpecialtyCategory: r.SpecialtyCategory,
		IsActive:          r.IsActive,
	}
}

func (h *Roster) CreateStaff(c *gin.Context) {
	var in staffRequest
	if !bindJSON(c, &in) {
		return
	}
	staff, err := h.roster.CreateStaff(c.Request.Context(), in.input())
	if err != nil {
		fail(c, h.logger, "create staff", err)
		return
	}
	c.JSON(http.StatusCreated, fromUser(staff))
}

func (h *Roster) UpdateStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in staffRequest
	if !bindJSON(c, &in) {
		return
	}
	staff, err := h.roster.UpdateStaff(c.Request.Context(), id, in.input())
	if err != nil {
		fail(c, h.logger, "update staff", err)
		return
	}
	c.JSON(http.StatusOK, fromUser(staff))
}

func (h *Roster) DeleteStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.roster.DeleteStaff(c.Request.Context(), id); err != nil {
		fail(c, h.logger, "delete staff", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Roster) ListCustomers(c *gin.Context) {
	list, err := h.roster.ListCustomers(c.Request.Context())
	if err != nil {
		fail(c, h.logger, "list customers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": fromUsers(list)})
}

func (h *Roster) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := h.roster.GetCustomer(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, "get customer", err)
		return
	}
	c.JSON(http.StatusOK, customerDetailsView{
		Customer:     fromUser(details.Customer),
		Appointments: wire.FromAppointments(details.Appointments),
	})
}

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetCustomerActive handles PUT /admin/customers/:id/active.
func (h *Roster) SetCustomerActive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in activeRequest
	if !bindJSON(c, &in) {
		return
	}
	customer, err := h.roster.SetCustomerActive(c.Request.Context(), id, *in.IsActive)
	if err != nil {
		fail(c, h.logger, "set customer active", err)
		return
	}
	c.JSON(http.StatusOK, fromUser(customer))
}
