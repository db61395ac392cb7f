// Package mocks holds testify mocks of the model interfaces.
package mocks

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/salon-server/internal/model"
)

type AppointmentStore struct {
	mock.Mock
}

func (m *AppointmentStore) FindByCustomerAndDate(ctx context.Context, userID uuid.UUID, date time.Time, excludeStatuses []model.Status) ([]model.AppointmentWindow, error) {
	args := m.Called(ctx, userID, date, excludeStatuses)
	windows, _ := args.Get(0).([]model.AppointmentWindow)
	return windows, args.Error(1)
}

func (m *AppointmentStore) FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time, excludeStatuses []model.Status) ([]model.AppointmentWindow, error) {
	args := m.Called(ctx, staffID, date, excludeStatuses)
	windows, _ := args.Get(0).([]model.AppointmentWindow)
	return windows, args.Error(1)
}

func (m *AppointmentStore) Create(ctx context.Context, appointment model.Appointment) (model.Appointment, error) {
	args := m.Called(ctx, appointment)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (model.Appointment, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentStore) Update(ctx context.Context, appointment model.Appointment) (model.Appointment, error) {
	args := m.Called(ctx, appointment)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentStore) GetForUpdate(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *AppointmentStore) List(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]model.Appointment)
	return list, args.Error(1)
}

func (m *AppointmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, model.User) model.User); ok {
		return fn(ctx, user), args.Error(1)
	}
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error) {
	args := m.Called(ctx, id, active)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) ListByRole(ctx context.Context, role model.Role, specialty string) ([]model.User, error) {
	args := m.Called(ctx, role, specialty)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserStore) FindActiveStaffByCategory(ctx context.Context, category string) ([]model.StaffSummary, error) {
	args := m.Called(ctx, category)
	staff, _ := args.Get(0).([]model.StaffSummary)
	return staff, args.Error(1)
}

func (m *UserStore) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type ServiceStore struct {
	mock.Mock
}

func (m *ServiceStore) GetByID(ctx context.Context, id uuid.UUID) (model.Service, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Service), args.Error(1)
}

func (m *ServiceStore) List(ctx context.Context, includeInactive bool) ([]model.Service, error) {
	args := m.Called(ctx, includeInactive)
	list, _ := args.Get(0).([]model.Service)
	return list, args.Error(1)
}

func (m *ServiceStore) Create(ctx context.Context, service model.Service) (model.Service, error) {
	args := m.Called(ctx, service)
	if fn, ok := args.Get(0).(func(context.Context, model.Service) model.Service); ok {
		return fn(ctx, service), args.Error(1)
	}
	return args.Get(0).(model.Service), args.Error(1)
}

func (m *ServiceStore) Update(ctx context.Context, service model.Service) (model.Service, error) {
	args := m.Called(ctx, service)
	return args.Get(0).(model.Service), args.Error(1)
}

func (m *ServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type CategoryStore struct {
	mock.Mock
}

func (m *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Category)
	return list, args.Error(1)
}

func (m *CategoryStore) Create(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryStore) Rename(ctx context.Context, oldName, newName string) (model.Category, error) {
	args := m.Called(ctx, oldName, newName)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CategoryStore) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type EventStore struct {
	mock.Mock
}

func (m *EventStore) Append(ctx context.Context, event model.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}

type OutboxStore struct {
	mock.Mock
}

// PublishPending hands Events to publish when the expectation returns no error.
func (m *OutboxStore) PublishPending(ctx context.Context, limit int, publish func(ctx context.Context, events []model.OutboxEvent) error) (int, error) {
	args := m.Called(ctx, limit)
	if err := args.Error(1); err != nil {
		return 0, err
	}
	events, _ := args.Get(0).([]model.OutboxEvent)
	if len(events) == 0 {
		return 0, nil
	}
	if err := publish(ctx, events); err != nil {
		return 0, err
	}
	return len(events), nil
}

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) ParseAccessToken(token string) (model.AccessClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.AccessClaims), args.Error(1)
}

type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, reader, size, contentType).Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
