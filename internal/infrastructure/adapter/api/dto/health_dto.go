package dto

import "time"

// HealthResponse is the body of the liveness and readiness probes
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// ComponentStatus is the status of one dependency
type ComponentStatus struct {
	Status          string `json:"status"`
	Latency         string `json:"latency,omitempty"`
	OpenConnections int    `json:"openConnections,omitempty"`
	InUse           int    `json:"inUse,omitempty"`
}
