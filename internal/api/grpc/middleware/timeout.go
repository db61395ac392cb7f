package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// Timeout bounds every unary call, and with it the database transaction the
// call runs.
type Timeout struct {
	timeout time.Duration
}

// NewTimeout creates a Timeout interceptor. A non-positive timeout disables it.
func NewTimeout(timeout time.Duration) *Timeout {
	return &Timeout{timeout: timeout}
}

func (m *Timeout) HandleGRPC(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if m.timeout <= 0 {
		return handler(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return handler(ctx, req)
}
