package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/salon-server/internal/model"
)

type SecurityLayer struct {
	mock.Mock
}

func (m *SecurityLayer) Listen(network, address string) (net.Listener, error) {
	args := m.Called(network, address)
	l, _ := args.Get(0).(net.Listener)
	return l, args.Error(1)
}

type ContextManager struct {
	mock.Mock
}

func (m *ContextManager) SetRequesterToContext(ctx context.Context, requester model.Requester) context.Context {
	return m.Called(ctx, requester).Get(0).(context.Context)
}

func (m *ContextManager) GetRequesterFromContext(ctx context.Context) (model.Requester, bool) {
	args := m.Called(ctx)
	return args.Get(0).(model.Requester), args.Bool(1)
}
