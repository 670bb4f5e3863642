// Package router assembles the gin engine: global middleware, route groups
// with per-route permission checks, and the HTTP server lifecycle.
package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/internal/infrastructure/ratelimit"
	"github.com/resguardo/resguardo/internal/interfaces/http/handlers"
	"github.com/resguardo/resguardo/internal/interfaces/http/middleware"
	"github.com/resguardo/resguardo/pkg/constants"
	"github.com/resguardo/resguardo/pkg/logger"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Me           *handlers.MeHandler
	Dashboard    *handlers.DashboardHandler
	Organization *handlers.OrganizationHandler
	Site         *handlers.SiteHandler
	User         *handlers.UserHandler
	Asset        *handlers.AssetHandler
	Threat       *handlers.ThreatHandler
	Scenario     *handlers.ScenarioHandler
	Feedback     *handlers.FeedbackHandler
}

// Router owns the gin engine and the HTTP server.
type Router struct {
	engine   *gin.Engine
	config   *config.Config
	logger   logger.Logger
	handlers Handlers
	auth     gin.HandlerFunc
	tracer   trace.Tracer
	metrics  *monitoring.Metrics
	limiter  *ratelimit.RedisRateLimiter
	server   *http.Server
}

// NewRouter creates the router. Routes are registered by SetupRoutes.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	h Handlers,
	auth gin.HandlerFunc,
	tracer trace.Tracer,
	metrics *monitoring.Metrics,
	limiter *ratelimit.RedisRateLimiter,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		engine:   gin.New(),
		config:   cfg,
		logger:   log.WithComponent("router"),
		handlers: h,
		auth:     auth,
		tracer:   tracer,
		metrics:  metrics,
		limiter:  limiter,
	}
}

// SetupRoutes registers the middleware chain and every route group.
func (r *Router) SetupRoutes() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.Observability(r.tracer, r.metrics, r.logger))

	corsConfig := cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/health/live", r.handlers.Health.LivenessCheck)
	r.engine.GET("/health/ready", r.handlers.Health.ReadinessCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if r.config.Server.PprofEnabled {
		pprof.Register(r.engine)
	}

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.auth)
	v1.Use(middleware.RateLimit(r.limiter, &r.config.RateLimit, r.metrics, r.logger))

	v1.POST("/auth/logout", r.handlers.Auth.Logout)
	v1.GET("/me", r.handlers.Me.Me)
	v1.GET("/me/capabilities", r.handlers.Me.Capabilities)
	v1.GET("/dashboard/summary", r.handlers.Dashboard.Summary)

	r.mountOrganizations(v1)
	r.mountSites(v1)
	r.mountUsers(v1)
	r.mountAssets(v1)
	r.mountThreats(v1)
	r.mountScenarios(v1)

	v1.POST("/feedback",
		middleware.RequireCapability(constants.EntityFeedback, constants.ActionCreate, r.logger),
		r.handlers.Feedback.Create)

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})
}

func (r *Router) mountOrganizations(v1 *gin.RouterGroup) {
	h := r.handlers.Organization
	group := v1.Group("/organizations")
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", r.can(constants.EntityOrganization, constants.ActionCreate), h.Create)
	group.PUT("/:id", r.can(constants.EntityOrganization, constants.ActionEdit), h.Update)
	group.DELETE("/:id", r.can(constants.EntityOrganization, constants.ActionDelete), h.Delete)
	group.POST("/bulk-delete", r.can(constants.EntityOrganization, constants.ActionBulkDelete), h.BulkDelete)
}

func (r *Router) mountSites(v1 *gin.RouterGroup) {
	h := r.handlers.Site
	group := v1.Group("/sites")
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", r.can(constants.EntitySite, constants.ActionCreate), h.Create)
	group.PUT("/:id", r.can(constants.EntitySite, constants.ActionEdit), h.Update)
	group.DELETE("/:id", r.can(constants.EntitySite, constants.ActionDelete), h.Delete)
	group.POST("/bulk-delete", r.can(constants.EntitySite, constants.ActionBulkDelete), h.BulkDelete)
	group.POST("/:id/access/:user_id", r.can(constants.EntityUser, constants.ActionEdit), h.GrantAccess)
	group.DELETE("/:id/access/:user_id", r.can(constants.EntityUser, constants.ActionEdit), h.RevokeAccess)
}

func (r *Router) mountUsers(v1 *gin.RouterGroup) {
	h := r.handlers.User
	group := v1.Group("/users")
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", r.can(constants.EntityUser, constants.ActionCreate), h.Create)
	group.PUT("/:id", r.can(constants.EntityUser, constants.ActionEdit), h.Update)
	group.DELETE("/:id", r.can(constants.EntityUser, constants.ActionDelete), h.Delete)
	group.POST("/bulk-delete", r.can(constants.EntityUser, constants.ActionBulkDelete), h.BulkDelete)
	group.POST("/:id/avatar", r.can(constants.EntityUser, constants.ActionEdit), h.UploadAvatar)
}

func (r *Router) mountAssets(v1 *gin.RouterGroup) {
	h := r.handlers.Asset
	group := v1.Group("/assets")
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", r.can(constants.EntityAsset, constants.ActionCreate), h.Create)
	group.PUT("/:id", r.can(constants.EntityAsset, constants.ActionEdit), h.Update)
	group.DELETE("/:id", r.can(constants.EntityAsset, constants.ActionDelete), h.Delete)
	group.POST("/bulk-delete", r.can(constants.EntityAsset, constants.ActionBulkDelete), h.BulkDelete)
}

func (r *Router) mountThreats(v1 *gin.RouterGroup) {
	h := r.handlers.Threat
	group := v1.Group("/threats")
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", r.can(constants.EntityThreat, constants.ActionCreate), h.Create)
	group.PUT("/:id", r.can(constants.EntityThreat, constants.ActionEdit), h.Update)
	group.DELETE("/:id", r.can(constants.EntityThreat, constants.ActionDelete), h.Delete)
	group.POST("/bulk-delete", r.can(constants.EntityThreat, constants.ActionBulkDelete), h.BulkDelete)
}

func (r *Router) mountScenarios(v1 *gin.RouterGroup) {
	h := r.handlers.Scenario
	group := v1.Group("/scenarios")
	group.GET("", h.List)
	group.GET("/pairing-options", h.PairingOptions)
	group.GET("/:id", h.Get)
	group.POST("", r.can(constants.EntityScenario, constants.ActionCreate), h.CreateBatch)
	group.PUT("/:id", r.can(constants.EntityScenario, constants.ActionEdit), h.Update)
	group.DELETE("/:id", r.can(constants.EntityScenario, constants.ActionDelete), h.Delete)
	group.POST("/bulk-delete", r.can(constants.EntityScenario, constants.ActionBulkDelete), h.BulkDelete)
}

func (r *Router) can(entity constants.Entity, action constants.Action) gin.HandlerFunc {
	return middleware.RequireCapability(entity, action, r.logger)
}

// Engine exposes the underlying gin engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start runs the HTTP server until Stop is called.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	r.server = &http.Server{
		Addr:           addr,
		Handler:        r.engine,
		ReadTimeout:    time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(r.config.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	r.logger.Info(context.Background(), "starting http server", logger.Fields{"address": addr})
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.logger.Info(ctx, "stopping http server")
	return r.server.Shutdown(ctx)
}
