package router

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/dtroode/salon-server/internal/api/grpc/handler"
	"github.com/dtroode/salon-server/internal/api/grpc/middleware"
	"github.com/dtroode/salon-server/internal/api/grpc/wire"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Router builds the gRPC server for salon.v1.Scheduling.
type Router struct {
	booking        handler.BookingService
	authenticator  middleware.Authenticator
	limiter        middleware.Limiter
	contextManager model.ContextManager
	timeout        time.Duration
	logger         *logger.Logger
}

// New creates new gRPC Router instance. limiter may be nil to disable rate limiting.
func New(
	booking handler.BookingService,
	authenticator middleware.Authenticator,
	limiter middleware.Limiter,
	contextManager model.ContextManager,
	timeout time.Duration,
	logger *logger.Logger,
) *Router {
	return &Router{
		booking:        booking,
		authenticator:  authenticator,
		limiter:        limiter,
		contextManager: contextManager,
		timeout:        timeout,
		logger:         logger,
	}
}

// publicMethods can be called without a bearer token.
var publicMethods = map[string]bool{
	wire.MethodListAvailableStaff: true,
}

func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	return !publicMethods[c.FullMethod()]
}

// Register registers the scheduling service and its interceptor chain.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	timeout := middleware.NewTimeout(r.timeout)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)

	unary := []grpc.UnaryServerInterceptor{
		recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger))),
		logging.HandleGRPC,
		timeout.HandleGRPC,
		selector.UnaryServerInterceptor(
			auth.UnaryServerInterceptor(authenticate.AuthFunc),
			selector.MatchFunc(authRequired),
		),
	}
	if r.limiter != nil {
		unary = append(unary, middleware.NewRateLimit(r.limiter, r.contextManager, r.logger).HandleGRPC)
	}

	serverOpts := append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unary...),
	}, opts...)

	s := grpc.NewServer(serverOpts...)
	wire.RegisterSchedulingServer(s, handler.NewScheduling(r.booking, r.contextManager, r.logger))

	return s
}
