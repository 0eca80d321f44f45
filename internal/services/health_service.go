package services

import (
	"context"
	"runtime"
	"time"
)

// Version information, set at build time via -ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// HealthStatus is the response body of the health endpoints
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// VersionInfo is the response body of the version endpoint
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// HealthService reports process health and readiness
type HealthService struct {
	dashboard *DashboardService
	started   time.Time
}

// NewHealthService creates a health service
func NewHealthService(dashboard *DashboardService) *HealthService {
	return &HealthService{
		dashboard: dashboard,
		started:   time.Now(),
	}
}

// HealthCheck reports liveness plus a dataset readiness check
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Checks:    map[string]string{},
	}

	if _, err := s.dashboard.Dataset(ctx); err != nil {
		status.Status = "degraded"
		status.Checks["dataset"] = err.Error()
	} else {
		status.Checks["dataset"] = "ok"
	}

	return status
}

// LivenessCheck reports that the process is running
func (s *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	}
}

// Version returns build and runtime version information
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}
