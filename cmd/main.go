package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	apictx "github.com/dtroode/salon-server/internal/api/context"
	grpcmiddleware "github.com/dtroode/salon-server/internal/api/grpc/middleware"
	grpcrouter "github.com/dtroode/salon-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/salon-server/internal/api/grpc/server"
	httprouter "github.com/dtroode/salon-server/internal/api/http/router"
	httpserver "github.com/dtroode/salon-server/internal/api/http/server"
	"github.com/dtroode/salon-server/internal/config"
	"github.com/dtroode/salon-server/internal/events"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/ratelimit"
	"github.com/dtroode/salon-server/internal/repository/postgres"
	"github.com/dtroode/salon-server/internal/server"
	"github.com/dtroode/salon-server/internal/service"
	storage "github.com/dtroode/salon-server/internal/storage/minio"
	"github.com/dtroode/salon-server/internal/telemetry"
	"github.com/dtroode/salon-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTel, cfg.ServiceName)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)

	bookingService := service.NewBooking(appointmentRepo, serviceRepo, userRepo, db, logger)
	catalogService := service.NewCatalog(categoryRepo, serviceRepo, logger)
	rosterService := service.NewRoster(userRepo, appointmentRepo, logger)
	identityService := service.NewIdentity(tokenManager, userRepo, logger)
	ctxMgr := apictx.NewManager()

	httpDeps := httprouter.Deps{
		Booking:        bookingService,
		Catalog:        catalogService,
		Roster:         rosterService,
		DB:             db,
		Authenticator:  identityService,
		ContextManager: ctxMgr,
		Timeout:        cfg.RequestTimeout,
		Logger:         logger,
	}

	if cfg.Storage.Enabled {
		storageClient, err := storage.Connect(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		httpDeps.Schedules = service.NewScheduleExport(appointmentRepo, storageClient, logger)
	}

	var grpcLimiter grpcmiddleware.Limiter
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		limiter := ratelimit.New(rdb, cfg.RateLimit)
		grpcLimiter = limiter
		httpDeps.Limiter = limiter
	}

	var wg sync.WaitGroup

	sink, err := newEventSink(cfg)
	if err != nil {
		logger.Fatal("failed to initialize event sink", "error", err)
	}
	if sink != nil {
		defer sink.Close()
		relay := events.NewRelay(outboxRepo, sink, cfg.Events, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.Run(ctx)
		}()
	}

	servers := []model.Server{
		newGRPCServer(cfg, bookingService, identityService, grpcLimiter, ctxMgr, logger),
		newHTTPServer(cfg, httpDeps),
	}

	sl := server.NewSecurityLayer(cfg.GRPC)

	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "server", s.Name(), "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "server", s.Name(), "error", err)
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "server", s.Name(), "error", err, "address", s.Address())
		}
	}

	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newGRPCServer(
	cfg *config.Config,
	booking *service.Booking,
	identity *service.Identity,
	limiter grpcmiddleware.Limiter,
	ctxMgr model.ContextManager,
	logger *logger.Logger,
) *grpcserver.GRPCServer {
	r := grpcrouter.New(booking, identity, limiter, ctxMgr, cfg.RequestTimeout, logger)
	return grpcserver.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
}

func newHTTPServer(cfg *config.Config, deps httprouter.Deps) *httpserver.HTTPServer {
	handler := httprouter.New(deps).Register()
	return httpserver.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadHeaderTimeout)
}

func newEventSink(cfg *config.Config) (events.Sink, error) {
	switch cfg.Events.Broker {
	case config.BrokerKafka:
		sink, err := events.NewKafkaSink(cfg.Kafka)
		if err != nil {
			return nil, err
		}
		return sink, nil
	case config.BrokerAMQP:
		sink, err := events.NewAMQPSink(cfg.AMQP)
		if err != nil {
			return nil, err
		}
		return sink, nil
	default:
		return nil, nil
	}
}
