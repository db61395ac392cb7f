package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// CatalogService defines category and service management.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	RenameCategory(ctx context.Context, oldName, newName string) (model.Category, error)
	DeleteCategory(ctx context.Context, name string) error
	ListServices(ctx context.Context, includeInactive bool, requester model.Requester) ([]model.Service, error)
	GetService(ctx context.Context, id uuid.UUID, requester model.Requester) (model.Service, error)
	CreateService(ctx context.Context, in model.ServiceInput) (model.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, in model.ServiceInput) (model.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
}

// Catalog serves categories and services. Reads are public; writes are
// mounted under the admin group.
type Catalog struct {
	catalog        CatalogService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewCatalog(catalog CatalogService, contextManager model.ContextManager, logger *logger.Logger) *Catalog {
	return &Catalog{catalog: catalog, contextManager: contextManager, logger: logger}
}

func (h *Catalog) ListCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, h.logger, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": fromCategories(list)})
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Catalog) CreateCategory(c *gin.Context) {
	var in categoryRequest
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), in.Name)
	if err != nil {
		fail(c, h.logger, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, categoryView{Name: cat.Name, CreatedAt: cat.CreatedAt})
}

// RenameCategory handles PUT /admin/categories/:name.
func (h *Catalog) RenameCategory(c *gin.Context) {
	var in categoryRequest
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.catalog.RenameCategory(c.Request.Context(), c.Param("name"), in.Name)
	if err != nil {
		fail(c, h.logger, "rename category", err)
		return
	}
	c.JSON(http.StatusOK, categoryView{Name: cat.Name, CreatedAt: cat.CreatedAt})
}

func (h *Catalog) DeleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("name")); err != nil {
		fail(c, h.logger, "delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListServices handles GET /services. includeInactive is honored for
// administrators only.
func (h *Catalog) ListServices(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("includeInactive"))
	req, _ := h.contextManager.GetRequesterFromContext(c.Request.Context())

	list, err := h.catalog.ListServices(c.Request.Context(), includeInactive, req)
	if err != nil {
		fail(c, h.logger, "list services", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": fromServices(list)})
}

func (h *Catalog) GetService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, _ := h.contextManager.GetRequesterFromContext(c.Request.Context())

	svc, err := h.catalog.GetService(c.Request.Context(), id, req)
	if err != nil {
		fail(c, h.logger, "get service", err)
		return
	}
	c.JSON(http.StatusOK, fromService(svc))
}

type serviceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"isActive"`
}

func (r serviceRequest) input() model.ServiceInput {
	return model.ServiceInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Duration:    r.Duration,
		Price:       r.Price,
		IsActive:    r.IsActive,
	}
}

func (h *Catalog) CreateService(c *gin.Context) {
	var in serviceRequest
	if !bindJSON(c, &in) {
		return
	}
	svc, err := h.catalog.CreateService(c.Request.Context(), in.input())
	if err != nil {
		fail(c, h.logger, "create service", err)
		return
	}
	c.JSON(http.StatusCreated, fromService(svc))
}

func (h *Catalog) UpdateService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in serviceRequest
	if !bindJSON(c, &in) {
		return
	}
	svc, err := h.catalog.UpdateService(c.Request.Context(), id, in.input())
	if err != nil {
		fail(c, h.logger, "update service", err)
		return
	}
	c.JSON(http.StatusOK, fromService(svc))
}

func (h *Catalog) DeleteService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteService(c.Request.Context(), id); err != nil {
		fail(c, h.logger, "delete service", err)
		return
	}
	c.Status(http.StatusNoContent)
}
