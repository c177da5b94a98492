package time

import (
	"time"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
)

// RealTimeProvider reads the system clock in UTC
type RealTimeProvider struct{}

func NewRealTimeProvider() *RealTimeProvider {
	return &RealTimeProvider{}
}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}
