package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/database"
)

const healthCheckTimeout = 3 * time.Second

// DBPinger is the minimal database view needed for readiness checks
type DBPinger interface {
	Ping(ctx context.Context) error
}

// poolReporter is implemented by database.Manager
type poolReporter interface {
	PoolMetrics() database.ConnectionPoolMetrics
}

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	db           DBPinger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db DBPinger, timeProvider coreport.TimeProvider, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Live always reports ok
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: h.timeProvider.Now(),
	})
}

// Ready pings the database: 200 if reachable, 503 if not
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	start := h.timeProvider.Now()
	err := h.db.Ping(ctx)
	latency := h.timeProvider.Since(start)

	if err != nil {
		h.logger.Warn("Readiness check failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:     "down",
			Components: map[string]dto.ComponentStatus{"database": {Status: "down"}},
			Timestamp:  h.timeProvider.Now(),
		})
		return
	}

	status := dto.ComponentStatus{Status: "up", Latency: latency.Std().String()}
	if reporter, ok := h.db.(poolReporter); ok {
		metrics := reporter.PoolMetrics()
		status.OpenConnections = metrics.OpenConnections
		status.InUse = metrics.InUse
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:     "ok",
		Components: map[string]dto.ComponentStatus{"database": status},
		Timestamp:  h.timeProvider.Now(),
	})
}
