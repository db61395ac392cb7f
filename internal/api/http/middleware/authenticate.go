package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Authenticator resolves a bearer token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Requester, error)
}

// Authenticate verifies the Authorization header and stores the requester in
// the request context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

func (m *Authenticate) Handle(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		AbortWithError(c, apierror.MissingToken())
		return
	}

	requester, err := m.authenticator.Authenticate(c.Request.Context(), token)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected", "path", c.FullPath(), "error", err.Error())
		AbortWithError(c, err)
		return
	}

	c.Request = c.Request.WithContext(m.contextManager.SetRequesterToContext(c.Request.Context(), requester))
	c.Next()
}

// RequireRole rejects requesters whose role is not one of roles. It must run
// after Authenticate.
func RequireRole(contextManager model.ContextManager, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := contextManager.GetRequesterFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, apierror.MissingToken())
			return
		}
		for _, r := range roles {
			if requester.Role == r {
				c.Next()
				return
			}
		}
		AbortWithError(c, model.ErrForbidden)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
