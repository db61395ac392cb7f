package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Roster manages staff members and customer accounts.
type Roster struct {
	users        model.UserStore
	appointments model.AppointmentStore
	logger       *logger.Logger
	now          func() time.Time
}

func NewRoster(users model.UserStore, appointments model.AppointmentStore, logger *logger.Logger) *Roster {
	return &Roster{users: users, appointments: appointments, logger: logger, now: time.Now}
}

func (r *Roster) ListStaff(ctx context.Context, category string) ([]model.User, error) {
	return r.users.ListByRole(ctx, model.RoleStaff, category)
}

func (r *Roster) CreateStaff(ctx context.Context, in model.StaffInput) (model.User, error) {
	if in.Name == nil || in.Email == nil || in.SpecialtyCategory == nil {
		return model.User{}, fmt.Errorf("%w: name, email and specialty are required", model.ErrInvalidArgument)
	}
	email := strings.ToLower(strings.TrimSpace(*in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, fmt.Errorf("%w: invalid email %q", model.ErrInvalidArgument, email)
	}

	now := r.now()
	staff := model.User{
		ID:        uuid.New(),
		Email:     email,
		Role:      model.RoleStaff,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyStaffInput(&staff, in); err != nil {
		return model.User{}, err
	}

	created, err := r.users.Create(ctx, staff)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create staff member: %w", err)
	}
	r.logger.Info("Roster service: staff created", "staff_id", created.ID, "specialty", created.SpecialtyCategory)
	return created, nil
}

func (r *Roster) UpdateStaff(ctx context.Context, id uuid.UUID, in model.StaffInput) (model.User, error) {
	staff, err := r.getStaff(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if err := applyStaffInput(&staff, in); err != nil {
		return model.User{}, err
	}
	staff.UpdatedAt = r.now()

	updated, err := r.users.Update(ctx, staff)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update staff member: %w", err)
	}
	r.logger.Info("Roster service: staff updated", "staff_id", id)
	return updated, nil
}

func (r *Roster) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	if _, err := r.getStaff(ctx, id); err != nil {
		return err
	}
	if err := r.users.DeleteStaff(ctx, id); err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	r.logger.Info("Roster service: staff deleted", "staff_id", id)
	return nil
}

func (r *Roster) ListCustomers(ctx context.Context) ([]model.User, error) {
	return r.users.ListByRole(ctx, model.RoleCustomer, "")
}

func (r *Roster) GetCustomer(ctx context.Context, id uuid.UUID) (model.CustomerDetails, error) {
	customer, err := r.users.GetByID(ctx, id)
	if err != nil {
		return model.CustomerDetails{}, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer.Role != model.RoleCustomer {
		return model.CustomerDetails{}, model.ErrNotFound
	}

	history, err := r.appointments.List(ctx, model.AppointmentFilter{UserID: &id})
	if err != nil {
		return model.CustomerDetails{}, fmt.Errorf("failed to list customer appointments: %w", err)
	}
	return model.CustomerDetails{Customer: customer, Appointments: history}, nil
}

// SetCustomerActive bans or unbans a customer. Banned customers fail
// authentication with ErrUserInactive.
func (r *Roster) SetCustomerActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error) {
	customer, err := r.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer.Role != model.RoleCustomer {
		return model.User{}, model.ErrNotFound
	}

	updated, err := r.users.SetActive(ctx, id, active)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update customer: %w", err)
	}
	r.logger.Info("Roster service: customer status changed", "customer_id", id, "active", active)
	return updated, nil
}

func (r *Roster) getStaff(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	if user.Role != model.RoleStaff {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func applyStaffInput(u *model.User, in model.StaffInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", model.ErrInvalidArgument)
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.SpecialtyCategory != nil {
		specialty := strings.TrimSpace(*in.SpecialtyCategory)
		if specialty == "" {
			return fmt.Errorf("%w: specialty is required", model.ErrInvalidArgument)
		}
		u.SpecialtyCategory = specialty
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	return nil
}
