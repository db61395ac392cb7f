package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/salon-server/internal/model"
)

// UnitOfWork binds fixed stores to a transaction.
type UnitOfWork struct {
	AppointmentStore model.AppointmentStore
	EventStore       model.EventStore
}

func (u *UnitOfWork) Appointments() model.AppointmentStore { return u.AppointmentStore }
func (u *UnitOfWork) Events() model.EventStore { return u.EventStore }

// Transactor records the lock keys of each call and runs fn against UoW
// unless the expectation returns an error.
type Transactor struct {
	mock.Mock
	UoW model.UnitOfWork
}

func (m *Transactor) InTx(ctx context.Context, lockKeys []string, fn func(ctx context.Context, uow model.UnitOfWork) error) error {
	if err := m.Called(ctx, lockKeys).Error(0); err != nil {
		return err
	}
	return fn(ctx, m.UoW)
}
