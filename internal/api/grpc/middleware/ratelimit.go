package middleware

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Limiter decides whether the caller identified by key may proceed. On
// backend failure it still returns the configured fail-open decision.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects callers over their request budget with ResourceExhausted.
type RateLimit struct {
	limiter        Limiter
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRateLimit creates a RateLimit interceptor.
func NewRateLimit(limiter Limiter, contextManager model.ContextManager, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, contextManager: contextManager, logger: logger}
}

func (m *RateLimit) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	key := m.key(ctx)

	allowed, err := m.limiter.Allow(ctx, key)
	if err != nil {
		m.logger.Warn("RateLimit middleware: limiter unavailable", "key", key, "allowed", allowed, "error", err.Error())
	}
	if !allowed {
		m.logger.Debug("RateLimit middleware: request rejected", "key", key, "method", info.FullMethod)
		return nil, apierror.RateLimited()
	}

	return handler(ctx, req)
}

// key is the authenticated user, else the peer address.
func (m *RateLimit) key(ctx context.Context) string {
	if requester, ok := m.contextManager.GetRequesterFromContext(ctx); ok {
		return "user:" + requester.ID.String()
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return "addr:" + hostOnly(p.Addr.String())
	}
	return "addr:unknown"
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
