// Package health aggregates component checks for the /health endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogChecker
	db      DBPinger
}

// New creates a Service. db can be nil when every source is file-backed.
func New(catalog CatalogChecker, db DBPinger) *Service {
	return &Service{catalog: catalog, db: db}
}

// Check runs health checks against all components. A missing catalog is
// unhealthy; a failing database only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.catalog.Loaded() {
		checks["catalog"] = CheckOK
	} else {
		checks["catalog"] = CheckError
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks["catalog"] == CheckError:
		status = Unhealthy
	case checks["database"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
