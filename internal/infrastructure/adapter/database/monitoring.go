package database

import (
	"context"
	"errors"
	"time"

	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
)

// DefaultSlowUnitThreshold is the duration above which a unit of work is reported as slow
const DefaultSlowUnitThreshold = 500 * time.Millisecond

// UnitMetrics holds metrics about one unit of work
type UnitMetrics struct {
	Operation    string
	Duration     time.Duration
	Failed       bool
	ErrorMessage string
}

// MetricsCollector measures units of work and reports slow ones
type MetricsCollector struct {
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	slowThreshold time.Duration
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger coreport.Logger, timeProvider coreport.TimeProvider) *MetricsCollector {
	return &MetricsCollector{
		logger:        logger,
		timeProvider:  timeProvider,
		slowThreshold: DefaultSlowUnitThreshold,
	}
}

// MeasureUnit runs fn and logs a warning when it takes longer than the slow threshold
func (c *MetricsCollector) MeasureUnit(ctx context.Context, operation string, fn func() error) error {
	start := c.timeProvider.Now()

	err := fn()

	metrics := UnitMetrics{
		Operation: operation,
		Duration:  c.timeProvider.Since(start).Std(),
		Failed:    err != nil,
	}
	if err != nil {
		metrics.ErrorMessage = err.Error()
	}

	if metrics.Duration > c.slowThreshold {
		fields := map[string]any{
			"operation":   operation,
			"duration_ms": metrics.Duration.Milliseconds(),
			"failed":      metrics.Failed,
		}
		if metrics.Failed {
			fields["error_message"] = metrics.ErrorMessage
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			fields["deadline_exceeded"] = true
		}
		c.logger.Warn("Slow unit of work detected", fields)
	}

	return err
}
