package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CategoryStore persists service categories. Renames cascade to services and
// staff specialties inside the store.
type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (Category, error)
	Rename(ctx context.Context, oldName, newName string) (Category, error)
	// Delete fails with ErrInUse while a live service or staff member
	// references the category.
	Delete(ctx context.Context, name string) error
}

// ServiceStore persists salon services.
type ServiceStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Service, error)
	List(ctx context.Context, includeInactive bool) ([]Service, error)
	Create(ctx context.Context, service Service) (Service, error)
	Update(ctx context.Context, service Service) (Service, error)
	// Delete soft-deletes a service. It fails with ErrInUse while
	// non-terminal appointments reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Category groups services and staff specialties.
type Category struct {
	Name      string
	CreatedAt time.Time
}

// Service is a bookable salon service.
type Service struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	// Duration in minutes.
	Duration  int
	Price     float64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceInput carries the editable fields of a service. Nil fields are left
// unchanged on update.
type ServiceInput struct {
	Name        *string
	Description *string
	Category    *string
	Duration    *int
	Price       *float64
	IsActive    *bool
}
