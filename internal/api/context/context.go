package context

import (
	"context"

	"github.com/dtroode/salon-server/internal/model"
)

type requesterKey struct{}

// Manager keeps the authenticated requester in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetRequesterToContext returns a copy of ctx carrying requester.
func (m *Manager) SetRequesterToContext(ctx context.Context, requester model.Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, requester)
}

// GetRequesterFromContext returns the requester stored by SetRequesterToContext.
func (m *Manager) GetRequesterFromContext(ctx context.Context) (model.Requester, bool) {
	requester, ok := ctx.Value(requesterKey{}).(model.Requester)
	return requester, ok
}
