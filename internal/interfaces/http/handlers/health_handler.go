package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/resguardo/resguardo/internal/infrastructure/persistence/postgres"
	"github.com/resguardo/resguardo/pkg/logger"
)

// HealthHandler provides the liveness and readiness endpoints.
type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger logger.Logger
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(db *gorm.DB, rdb *redis.Client, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		redis:  rdb,
		logger: log.WithComponent("health_handler"),
	}
}

// LivenessCheck handles GET /health/live. The process is alive if it can
// answer at all.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

// ReadinessCheck handles GET /health/ready. Dependencies are probed
// concurrently; any failure marks the service not ready.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx := c.Request.Context()

	var mu sync.Mutex
	checks := make(map[string]string)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		status := "ok"
		if _, err := postgres.HealthCheck(ctx, h.db); err != nil {
			h.logger.Warn(ctx, "database readiness probe failed", logger.Fields{"error": err.Error()})
			status = "unavailable"
		}
		mu.Lock()
		checks["database"] = status
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		status := "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warn(ctx, "redis readiness probe failed", logger.Fields{"error": err.Error()})
			status = "unavailable"
		}
		mu.Lock()
		checks["redis"] = status
		mu.Unlock()
	}()
	wg.Wait()

	httpStatus := http.StatusOK
	overall := "ready"
	for _, status := range checks {
		if status != "ok" {
			httpStatus = http.StatusServiceUnavailable
			overall = "not_ready"
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}
