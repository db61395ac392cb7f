package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit answers 429 once a caller is over budget. Authenticated callers
// are keyed by user id, anonymous ones by client IP.
type RateLimit struct {
	limiter        Limiter
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewRateLimit(limiter Limiter, contextManager model.ContextManager, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, contextManager: contextManager, logger: logger}
}

func (m *RateLimit) Handle(c *gin.Context) {
	key := "addr:" + c.ClientIP()
	if requester, ok := m.contextManager.GetRequesterFromContext(c.Request.Context()); ok {
		key = "user:" + requester.ID.String()
	}

	allowed, err := m.limiter.Allow(c.Request.Context(), key)
	if err != nil {
		m.logger.Warn("RateLimit middleware: limiter unavailable", "key", key, "allowed", allowed, "error", err.Error())
	}
	if !allowed {
		c.Header("Retry-After", "60")
		AbortWithError(c, apierror.RateLimited())
		return
	}
	c.Next()
}
