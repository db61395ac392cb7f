package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/logger"
)

// RecoveryHandler returns a recovery.RecoveryHandlerFuncContext that logs the
// panic with its stack and answers Internal.
func RecoveryHandler(lg *logger.Logger) func(ctx context.Context, p any) error {
	return func(ctx context.Context, p any) error {
		lg.ErrorContext(ctx, "gRPC handler panicked", "panic", fmt.Sprint(p), "stack", string(debug.Stack()))
		return apierror.Internal()
	}
}
