package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Catalog manages service categories and the services offered in them.
type Catalog struct {
	categories model.CategoryStore
	services   model.ServiceStore
	logger     *logger.Logger
	now        func() time.Time
}

func NewCatalog(categories model.CategoryStore, services model.ServiceStore, logger *logger.Logger) *Catalog {
	return &Catalog{categories: categories, services: services, logger: logger, now: time.Now}
}

func (c *Catalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	return c.categories.List(ctx)
}

func (c *Catalog) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, fmt.Errorf("%w: category name is required", model.ErrInvalidArgument)
	}
	category, err := c.categories.Create(ctx, name)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	c.logger.Info("Catalog service: category created", "category", name)
	return category, nil
}

// RenameCategory renames a category. Services and staff specialties follow
// the new name.
func (c *Catalog) RenameCategory(ctx context.Context, oldName, newName string) (model.Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return model.Category{}, fmt.Errorf("%w: category name is required", model.ErrInvalidArgument)
	}
	category, err := c.categories.Rename(ctx, oldName, newName)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to rename category: %w", err)
	}
	c.logger.Info("Catalog service: category renamed", "from", oldName, "to", newName)
	return category, nil
}

func (c *Catalog) DeleteCategory(ctx context.Context, name string) error {
	if err := c.categories.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	c.logger.Info("Catalog service: category deleted", "category", name)
	return nil
}

// ListServices returns active services. Only administrators may include
// inactive ones.
func (c *Catalog) ListServices(ctx context.Context, includeInactive bool, requester model.Requester) ([]model.Service, error) {
	if includeInactive && !requester.IsAdmin() {
		includeInactive = false
	}
	return c.services.List(ctx, includeInactive)
}

// GetService hides inactive services from everyone but administrators.
func (c *Catalog) GetService(ctx context.Context, id uuid.UUID, requester model.Requester) (model.Service, error) {
	svc, err := c.services.GetByID(ctx, id)
	if err != nil {
		return model.Service{}, fmt.Errorf("failed to get service: %w", err)
	}
	if !svc.IsActive && !requester.IsAdmin() {
		return model.Service{}, model.ErrNotFound
	}
	return svc, nil
}

func (c *Catalog) CreateService(ctx context.Context, in model.ServiceInput) (model.Service, error) {
	if in.Name == nil || in.Category == nil || in.Duration == nil || in.Price == nil {
		return model.Service{}, fmt.Errorf("%w: name, category, duration and price are required", model.ErrInvalidArgument)
	}
	now := c.now()
	svc := model.Service{ID: uuid.New(), IsActive: true, CreatedAt: now, UpdatedAt: now}
	if err := applyServiceInput(&svc, in); err != nil {
		return model.Service{}, err
	}

	created, err := c.services.Create(ctx, svc)
	if err != nil {
		return model.Service{}, fmt.Errorf("failed to create service: %w", err)
	}
	c.logger.Info("Catalog service: service created", "service_id", created.ID, "category", created.Category)
	return created, nil
}

func (c *Catalog) UpdateService(ctx context.Context, id uuid.UUID, in model.ServiceInput) (model.Service, error) {
	svc, err := c.services.GetByID(ctx, id)
	if err != nil {
		return model.Service{}, fmt.Errorf("failed to get service: %w", err)
	}
	if err := applyServiceInput(&svc, in); err != nil {
		return model.Service{}, err
	}
	svc.UpdatedAt = c.now()

	updated, err := c.services.Update(ctx, svc)
	if err != nil {
		return model.Service{}, fmt.Errorf("failed to update service: %w", err)
	}
	c.logger.Info("Catalog service: service updated", "service_id", id)
	return updated, nil
}

// DeleteService fails with ErrInUse while non-terminal appointments
// reference the service.
func (c *Catalog) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := c.services.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	c.logger.Info("Catalog service: service deleted", "service_id", id)
	return nil
}

func applyServiceInput(svc *model.Service, in model.ServiceInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: service name is required", model.ErrInvalidArgument)
		}
		svc.Name = name
	}
	if in.Description != nil {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return fmt.Errorf("%w: category is required", model.ErrInvalidArgument)
		}
		svc.Category = category
	}
	if in.Duration != nil {
		if *in.Duration <= 0 {
			return fmt.Errorf("%w: duration must be positive", model.ErrInvalidArgument)
		}
		svc.Duration = *in.Duration
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return fmt.Errorf("%w: price must not be negative", model.ErrInvalidArgument)
		}
		svc.Price = *in.Price
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}
	return nil
}
