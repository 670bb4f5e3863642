package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appservice "github.com/resguardo/resguardo/internal/application/service"
	"github.com/resguardo/resguardo/internal/config"
	"github.com/resguardo/resguardo/internal/domain/service"
	"github.com/resguardo/resguardo/internal/infrastructure/ai"
	"github.com/resguardo/resguardo/internal/infrastructure/audit"
	"github.com/resguardo/resguardo/internal/infrastructure/monitoring"
	"github.com/resguardo/resguardo/internal/infrastructure/persistence/postgres"
	"github.com/resguardo/resguardo/internal/infrastructure/persistence/redis"
	"github.com/resguardo/resguardo/internal/infrastructure/provisioning"
	"github.com/resguardo/resguardo/internal/infrastructure/ratelimit"
	"github.com/resguardo/resguardo/internal/infrastructure/secrets"
	"github.com/resguardo/resguardo/internal/infrastructure/storage"
	"github.com/resguardo/resguardo/internal/interfaces/http/handlers"
	"github.com/resguardo/resguardo/internal/interfaces/http/middleware"
	"github.com/resguardo/resguardo/internal/interfaces/http/router"
)

func main() {
	startupLogger, _ := monitoring.NewZapLogger(&config.LogConfig{Level: "info", Format: "json"})

	cfg, err := config.LoadConfig(startupLogger)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx := context.Background()

	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracing", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	secretProvider, err := secrets.NewProvider(cfg, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize secret provider", err)
	}
	jwtSecret, err := secretProvider.JWTSecret(ctx)
	if err != nil {
		appLogger.Fatal(ctx, "failed to resolve jwt secret", err)
	}
	aiKey, err := secretProvider.APIKey(ctx, "ai")
	if err != nil {
		appLogger.Fatal(ctx, "failed to resolve ai api key", err)
	}
	storageKey, err := secretProvider.APIKey(ctx, "storage")
	if err != nil {
		appLogger.Fatal(ctx, "failed to resolve storage api key", err)
	}
	provisioningKey, err := secretProvider.APIKey(ctx, "provisioning")
	if err != nil {
		appLogger.Fatal(ctx, "failed to resolve provisioning api key", err)
	}

	db, err := postgres.NewDB(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to database", err)
	}
	if err := postgres.Migrate(db); err != nil {
		appLogger.Fatal(ctx, "failed to run migrations", err)
	}

	pool, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to create pgx pool", err)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to connect to redis", err)
	}
	defer redisClient.Close()

	metrics := monitoring.NewMetrics()

	// Audit events always land in postgres; kafka is an optional second sink.
	auditSvc := audit.NewGormAuditService(db)
	if cfg.Kafka.Enabled {
		producer := audit.NewKafkaProducer(cfg.Kafka, appLogger)
		defer producer.Close()
		auditSvc = audit.NewTee(auditSvc, producer)
	}

	orgRepo := postgres.NewOrganizationRepository(db, appLogger)
	siteRepo := postgres.NewSiteRepository(db, appLogger)
	userRepo := postgres.NewUserRepository(db, appLogger)
	assetRepo := postgres.NewAssetRepository(db, appLogger)
	threatRepo := postgres.NewThreatRepository(db, appLogger)
	scenarioRepo := postgres.NewScenarioRepository(db, appLogger)
	feedbackRepo := postgres.NewFeedbackRepository(db, appLogger)

	siteOrgCache := redis.NewSiteOrgCache(redisClient, siteRepo, appLogger)
	visibility := service.NewVisibilityResolver(siteRepo, siteOrgCache, appLogger)

	catalogMatcher := postgres.NewCatalogMatcher(pool, appLogger)
	generator := ai.NewGeneratorClient(&cfg.AI, aiKey, appLogger)
	avatarStore := storage.NewHTTPAvatarStore(&cfg.Storage, storageKey, appLogger)
	provisioner := provisioning.NewClient(&cfg.Provisioning, provisioningKey, appLogger)

	orgSvc := appservice.NewOrganizationAppService(orgRepo, visibility, auditSvc, appLogger)
	siteSvc := appservice.NewSiteAppService(siteRepo, catalogMatcher, generator, visibility, auditSvc, appLogger)
	userSvc := appservice.NewUserAppService(userRepo, siteRepo, provisioner, avatarStore, auditSvc, appLogger)
	assetSvc := appservice.NewAssetAppService(assetRepo, scenarioRepo, visibility, auditSvc, appLogger)
	threatSvc := appservice.NewThreatAppService(threatRepo, visibility, auditSvc, appLogger)
	scenarioSvc := appservice.NewScenarioAppService(scenarioRepo, threatRepo, visibility, auditSvc, appLogger)
	feedbackSvc := appservice.NewFeedbackAppService(feedbackRepo, appLogger)
	dashboardSvc := appservice.NewDashboardAppService(orgRepo, siteRepo, userRepo, assetRepo, threatRepo, scenarioRepo, visibility, appLogger)

	revocations := redis.NewTokenRevocationStore(redisClient)
	authMiddleware := middleware.RequireJWT([]byte(jwtSecret), cfg.JWT.Issuer, cfg.JWT.Audience, revocations, appLogger)
	rateLimiter := ratelimit.NewRedisRateLimiter(redisClient, cfg.RateLimit.DefaultRPM, appLogger)

	h := router.Handlers{
		Health:       handlers.NewHealthHandler(db, redisClient, appLogger),
		Auth:         handlers.NewAuthHandler(revocations, appLogger),
		Me:           handlers.NewMeHandler(appLogger),
		Dashboard:    handlers.NewDashboardHandler(dashboardSvc, appLogger),
		Organization: handlers.NewOrganizationHandler(orgSvc, metrics, appLogger),
		Site:         handlers.NewSiteHandler(siteSvc, metrics, appLogger),
		User:         handlers.NewUserHandler(userSvc, metrics, appLogger),
		Asset:        handlers.NewAssetHandler(assetSvc, metrics, appLogger),
		Threat:       handlers.NewThreatHandler(threatSvc, metrics, appLogger),
		Scenario:     handlers.NewScenarioHandler(scenarioSvc, metrics, appLogger),
		Feedback:     handlers.NewFeedbackHandler(feedbackSvc, appLogger),
	}

	r := router.NewRouter(cfg, appLogger, h, authMiddleware, tracing.Tracer(), metrics, rateLimiter)

	go func() {
		if err := r.Start(); err != nil {
			appLogger.Fatal(ctx, "http server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info(ctx, "shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := r.Stop(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "http server shutdown failed", err)
	}
}
