package core

import "time"

// Duration is the elapsed-time unit used by scan metrics and request logs
type Duration time.Duration

const (
	Microsecond Duration = Duration(time.Microsecond)
	Millisecond          = Duration(time.Millisecond)
	Second               = Duration(time.Second)
)

// Std converts to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Milliseconds reports d as fractional milliseconds
func (d Duration) Milliseconds() float64 {
	return float64(d) / float64(Millisecond)
}

// TimeProvider is the clock used for receipt timestamps and latency measurement.
// Implementations must return UTC times so stored transactions sort consistently.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) Duration
}
