package ridedine

import (
	"context"

	healthuc "github.com/ridedine/ridedine/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

// Health reports whether a catalog is loaded and, for redis-backed clients,
// whether the database answers.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
