package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is a user's role in the salon.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// UserStore defines persistence operations for customers and staff.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (User, error)
	ListByRole(ctx context.Context, role Role, specialty string) ([]User, error)
	// FindActiveStaffByCategory returns active STAFF users whose specialty is category.
	FindActiveStaffByCategory(ctx context.Context, category string) ([]StaffSummary, error)
	// DeleteStaff soft-deletes a staff member. It fails with ErrInUse while
	// PENDING or CONFIRMED appointments are assigned to them.
	DeleteStaff(ctx context.Context, id uuid.UUID) error
}

// User is a customer, staff member or administrator.
type User struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Phone             string
	Role              Role
	SpecialtyCategory string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// Summary returns the staff view of u.
func (u User) Summary() StaffSummary {
	return StaffSummary{ID: u.ID, Name: u.Name, Email: u.Email, SpecialtyCategory: u.SpecialtyCategory}
}

// StaffSummary is the public view of a staff member.
type StaffSummary struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	SpecialtyCategory string    `json:"specialtyCategory"`
}

// Requester identifies the caller of an operation. It is always passed
// explicitly into the scheduling services.
type Requester struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the requester has the ADMIN role.
func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// StaffInput carries the editable fields of a staff member. Nil fields are
// left unchanged on update; Email is only read on create.
type StaffInput struct {
	Name              *string
	Email             *string
	Phone             *string
	SpecialtyCategory *string
	IsActive          *bool
}

// CustomerDetails is a customer together with their appointment history.
type CustomerDetails struct {
	Customer     User
	Appointments []Appointment
}
