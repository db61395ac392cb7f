package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/salon-server/internal/model"
)

type BookingService struct {
	mock.Mock
}

func (m *BookingService) BookAppointment(ctx context.Context, params model.BookAppointmentParams) (model.Appointment, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *BookingService) ListAvailableStaff(ctx context.Context, category, date, startTime, endTime string) ([]model.StaffSummary, error) {
	args := m.Called(ctx, category, date, startTime, endTime)
	staff, _ := args.Get(0).([]model.StaffSummary)
	return staff, args.Error(1)
}

func (m *BookingService) TransitionAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, newStatus model.Status) (model.Appointment, error) {
	args := m.Called(ctx, id, requester, newStatus)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *BookingService) UpdateAppointment(ctx context.Context, id uuid.UUID, requester model.Requester, params model.UpdateAppointmentParams) (model.Appointment, error) {
	args := m.Called(ctx, id, requester, params)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *BookingService) AssignStaff(ctx context.Context, id, staffID uuid.UUID, requester model.Requester) (model.Appointment, error) {
	args := m.Called(ctx, id, staffID, requester)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *BookingService) GetAppointment(ctx context.Context, id uuid.UUID, requester model.Requester) (model.Appointment, error) {
	args := m.Called(ctx, id, requester)
	return args.Get(0).(model.Appointment), args.Error(1)
}

func (m *BookingService) ListAppointments(ctx context.Context, filter model.AppointmentFilter, requester model.Requester) ([]model.Appointment, error) {
	args := m.Called(ctx, filter, requester)
	list, _ := args.Get(0).([]model.Appointment)
	return list, args.Error(1)
}

func (m *BookingService) DeleteAppointment(ctx context.Context, id uuid.UUID, requester model.Requester) error {
	return m.Called(ctx, id, requester).Error(0)
}

type Authenticator struct {
	mock.Mock
}

func (m *Authenticator) Authenticate(ctx context.Context, token string) (model.Requester, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Requester), args.Error(1)
}

type Limiter struct {
	mock.Mock
}

func (m *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Category)
	return list, args.Error(1)
}

func (m *CatalogService) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CatalogService) RenameCategory(ctx context.Context, oldName, newName string) (model.Category, error) {
	args := m.Called(ctx, oldName, newName)
	return args.Get(0).(model.Category), args.Error(1)
}

func (m *CatalogService) DeleteCategory(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *CatalogService) ListServices(ctx context.Context, includeInactive bool, requester model.Requester) ([]model.Service, error) {
	args := m.Called(ctx, includeInactive, requester)
	list, _ := args.Get(0).([]model.Service)
	return list, args.Error(1)
}

func (m *CatalogService) GetService(ctx context.Context, id uuid.UUID, requester model.Requester) (model.Service, error) {
	args := m.Called(ctx, id, requester)
	return args.Get(0).(model.Service), args.Error(1)
}

func (m *CatalogService) CreateService(ctx context.Context, in model.ServiceInput) (model.Service, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Service), args.Error(1)
}

func (m *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, in model.ServiceInput) (model.Service, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(model.Service), args.Error(1)
}

func (m *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type RosterService struct {
	mock.Mock
}

func (m *RosterService) ListStaff(ctx context.Context, category string) ([]model.User, error) {
	args := m.Called(ctx, category)
	list, _ := args.Get(0).([]model.User)
	return list, args.Error(1)
}

func (m *RosterService) CreateStaff(ctx context.Context, in model.StaffInput) (model.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *RosterService) UpdateStaff(ctx context.Context, id uuid.UUID, in model.StaffInput) (model.User, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *RosterService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RosterService) ListCustomers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.User)
	return list, args.Error(1)
}

func (m *RosterService) GetCustomer(ctx context.Context, id uuid.UUID) (model.CustomerDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CustomerDetails), args.Error(1)
}

func (m *RosterService) SetCustomerActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error) {
	args := m.Called(ctx, id, active)
	return args.Get(0).(model.User), args.Error(1)
}

type ScheduleService struct {
	mock.Mock
}

func (m *ScheduleService) Export(ctx context.Context, date string) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

func (m *ScheduleService) Fetch(ctx context.Context, date string) (io.ReadCloser, error) {
	args := m.Called(ctx, date)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

type Pinger struct {
	mock.Mock
}

func (m *Pinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
