package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker reports whether a vendor catalog snapshot is active.
type CatalogChecker interface {
	Loaded() bool
}
