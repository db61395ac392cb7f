package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/model"
)

// memStore is an in-memory appointment store and transactor. InTx serializes
// units of work per lock key the same way the PostgreSQL transactor does.
type memStore struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]model.Appointment
	events       []model.OutboxEvent
	locks        sync.Map
	// pause widens the gap between validation and insert.
	pause time.Duration
	// afterGet runs once after the next GetByID, outside any lock.
	afterGet func(model.Appointment)
}

func newMemStore(seed ...model.Appointment) *memStore {
	s := &memStore{appointments: make(map[uuid.UUID]model.Appointment)}
	for _, a := range seed {
		s.appointments[a.ID] = a
	}
	return s
}

func (s *memStore) InTx(ctx context.Context, lockKeys []string, fn func(ctx context.Context, uow model.UnitOfWork) error) error {
	keys := append([]string(nil), lockKeys...)
	sort.Strings(keys)
	for _, k := range keys {
		m, _ := s.locks.LoadOrStore(k, &sync.Mutex{})
		m.(*sync.Mutex).Lock()
		defer m.(*sync.Mutex).Unlock()
	}
	return fn(ctx, memUoW{s})
}

type memUoW struct{ s *memStore }

func (u memUoW) Appointments() model.AppointmentStore { return u.s }
func (u memUoW) Events() model.EventStore { return u.s }

func (s *memStore) Append(_ context.Context, event model.OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *memStore) eventTypes() []model.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]model.EventType, 0, len(s.events))
	for _, e := range s.events {
		types = append(types, e.Type)
	}
	return types
}

func (s *memStore) get(id uuid.UUID) model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appointments[id]
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

func (s *memStore) windows(match func(model.Appointment) bool, date time.Time, exclude []model.Status) []model.AppointmentWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AppointmentWindow
	for _, a := range s.appointments {
		if !a.Date.Equal(date) || !match(a) || hasStatus(exclude, a.Status) {
			continue
		}
		out = append(out, a.Window())
	}
	return out
}

func (s *memStore) FindByCustomerAndDate(_ context.Context, userID uuid.UUID, date time.Time, exclude []model.Status) ([]model.AppointmentWindow, error) {
	return s.windows(func(a model.Appointment) bool { return a.UserID == userID }, date, exclude), nil
}

func (s *memStore) FindByStaffAndDate(_ context.Context, staffID uuid.UUID, date time.Time, exclude []model.Status) ([]model.AppointmentWindow, error) {
	return s.windows(func(a model.Appointment) bool { return a.StaffID != nil && *a.StaffID == staffID }, date, exclude), nil
}

func (s *memStore) Create(_ context.Context, a model.Appointment) (model.Appointment, error) {
	if s.pause > 0 {
		time.Sleep(s.pause)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[a.ID] = a
	return a, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.Status) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return model.Appointment{}, model.ErrNotFound
	}
	a.Status = status
	s.appointments[id] = a
	return a, nil
}

func (s *memStore) Update(_ context.Context, a model.Appointment) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[a.ID]; !ok {
		return model.Appointment{}, model.ErrNotFound
	}
	s.appointments[a.ID] = a
	return a, nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (model.Appointment, error) {
	s.mu.Lock()
	a, ok := s.appointments[id]
	hook := s.afterGet
	s.afterGet = nil
	s.mu.Unlock()
	if !ok {
		return model.Appointment{}, model.ErrNotFound
	}
	if hook != nil {
		hook(a)
	}
	return a, nil
}

func (s *memStore) GetForUpdate(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) List(_ context.Context, f model.AppointmentFilter) ([]model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Appointment{}
	for _, a := range s.appointments {
		switch {
		case f.UserID != nil && a.UserID != *f.UserID:
		case f.StaffID != nil && (a.StaffID == nil || *a.StaffID != *f.StaffID):
		case f.Date != nil && !a.Date.Equal(*f.Date):
		case f.Status != "" && a.Status != f.Status:
		default:
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

func hasStatus(list []model.Status, s model.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
