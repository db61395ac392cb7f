package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/salon-server/internal/api/http/handler"
	"github.com/dtroode/salon-server/internal/api/http/middleware"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// Deps are the services behind the REST API. Schedules and Limiter may be nil
// to leave schedule export and rate limiting off.
type Deps struct {
	Booking        handler.BookingService
	Catalog        handler.CatalogService
	Roster         handler.RosterService
	Schedules      handler.ScheduleService
	DB             handler.Pinger
	Authenticator  middleware.Authenticator
	Limiter        middleware.Limiter
	ContextManager model.ContextManager
	Timeout        time.Duration
	Logger         *logger.Logger
}

// Router builds the REST handler tree.
type Router struct {
	deps Deps
}

func New(deps Deps) *Router {
	return &Router{deps: deps}
}

// Register builds the gin engine wrapped in OpenTelemetry instrumentation.
func (r *Router) Register() http.Handler {
	d := r.deps

	engine := gin.New()
	engine.Use(
		middleware.Recovery(d.Logger),
		middleware.SpanName(),
		middleware.Logging(d.Logger),
		middleware.Timeout(d.Timeout),
	)

	health := handler.NewHealth(d.DB, d.Logger)
	engine.GET("/healthz", health.Live)
	engine.GET("/readyz", health.Ready)

	var limit []gin.HandlerFunc
	if d.Limiter != nil {
		limit = append(limit, middleware.NewRateLimit(d.Limiter, d.ContextManager, d.Logger).Handle)
	}
	authenticate := middleware.NewAuthenticate(d.Authenticator, d.ContextManager, d.Logger)

	appointments := handler.NewAppointments(d.Booking, d.ContextManager, d.Logger)
	catalog := handler.NewCatalog(d.Catalog, d.ContextManager, d.Logger)
	roster := handler.NewRoster(d.Roster, d.Logger)

	api := engine.Group("/api/v1")

	public := api.Group("", limit...)
	public.GET("/categories", catalog.ListCategories)
	public.GET("/services", catalog.ListServices)
	public.GET("/services/:id", catalog.GetService)
	public.GET("/staff/available", appointments.AvailableStaff)

	authed := api.Group("", append([]gin.HandlerFunc{authenticate.Handle}, limit...)...)
	authed.POST("/appointments", appointments.Book)
	authed.GET("/appointments", appointments.List)
	authed.GET("/appointments/:id", appointments.Get)
	authed.PATCH("/appointments/:id", appointments.Update)
	authed.DELETE("/appointments/:id", appointments.Delete)
	authed.POST("/appointments/:id/status", appointments.Transition)

	admin := authed.Group("/admin", middleware.RequireRole(d.ContextManager, model.RoleAdmin))
	admin.PUT("/appointments/:id/staff", appointments.AssignStaff)

	admin.GET("/services", catalog.ListServices)
	admin.GET("/services/:id", catalog.GetService)
	admin.POST("/services", catalog.CreateService)
	admin.PATCH("/services/:id", catalog.UpdateService)
	admin.DELETE("/services/:id", catalog.DeleteService)

	admin.POST("/categories", catalog.CreateCategory)
	admin.PUT("/categories/:name", catalog.RenameCategory)
	admin.DELETE("/categories/:name", catalog.DeleteCategory)

	admin.GET("/staff", roster.ListStaff)
	admin.POST("/staff", roster.CreateStaff)
	admin.PATCH("/staff/:id", roster.UpdateStaff)
	admin.DELETE("/staff/:id", roster.DeleteStaff)

	admin.GET("/customers", roster.ListCustomers)
	admin.GET("/customers/:id", roster.GetCustomer)
	admin.PUT("/customers/:id/active", roster.SetCustomerActive)

	if d.Schedules != nil {
		schedules := handler.NewSchedules(d.Schedules, d.Logger)
		admin.POST("/schedules/:date", schedules.Export)
		admin.GET("/schedules/:date", schedules.Fetch)
	}

	return otelhttp.NewHandler(engine, "salon.http")
}
