package middleware

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Authenticator resolves a bearer token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Requester, error)
}

// Authenticate validates bearer tokens and stores the requester in the context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc is an auth.AuthFunc reading the "authorization: Bearer" metadata.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil || token == "" {
		return nil, apierror.MissingToken()
	}

	requester, err := m.authenticator.Authenticate(ctx, token)
	if err != nil {
		m.logger.Debug("Authenticate middleware: rejected token", "error", err.Error())
		return nil, apierror.FromError(err)
	}

	return m.contextManager.SetRequesterToContext(ctx, requester), nil
}
