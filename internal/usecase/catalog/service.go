// Package catalog owns the active vendor index snapshot.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ridedine/ridedine/internal/domain"
	domcat "github.com/ridedine/ridedine/internal/domain/catalog"
	"github.com/ridedine/ridedine/internal/domain/food"
	"github.com/ridedine/ridedine/internal/metrics"
)

// Reload statuses.
const (
	statusOK        = "ok"
	statusMalformed = "malformed"
	statusError     = "error"
)

// CategoryCount is a category key with the size of its bucket.
type CategoryCount struct {
	Category food.Category
	Vendors  int
}

// Service builds the index from a Source and publishes it for lock-free reads.
type Service struct {
	source  Source
	logger  *zap.Logger
	current atomic.Pointer[domcat.Index]
	// reloadMu serializes builds; readers never take it.
	reloadMu sync.Mutex
}

// New creates a Service. Nothing is loaded until Reload is called.
func New(source Source, logger *zap.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// Reload reads the source, builds a fresh index and swaps it in.
// On any error the previous snapshot stays active.
func (s *Service) Reload(ctx context.Context) (*domcat.Index, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	records, err := s.source.Records(ctx)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues(statusError).Inc()
		s.logger.Warn("Vendor source read failed", zap.Error(err))
		return nil, fmt.Errorf("read vendor source: %w", err)
	}

	idx, err := domcat.Build(records)
	if err != nil {
		status := statusError
		if errors.Is(err, domain.ErrMalformedRecord) {
			status = statusMalformed
		}
		metrics.CatalogReloadsTotal.WithLabelValues(status).Inc()
		s.logger.Warn("Vendor catalog rejected", zap.Int("records", len(records)), zap.Error(err))
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	s.current.Store(idx)
	metrics.CatalogReloadsTotal.WithLabelValues(statusOK).Inc()
	metrics.CatalogVendors.Set(float64(idx.Len()))
	s.logger.Info("Vendor catalog loaded",
		zap.Int("vendors", idx.Len()),
		zap.Int("categories", len(idx.Categories())),
	)
	return idx, nil
}

// Current returns the active snapshot, or ErrCatalogNotLoaded before the first successful Reload.
func (s *Service) Current() (*domcat.Index, error) {
	idx := s.current.Load()
	if idx == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return idx, nil
}

// Loaded reports whether a snapshot is active.
func (s *Service) Loaded() bool {
	return s.current.Load() != nil
}

// Categories lists category keys of the active snapshot with bucket sizes, sorted by key.
func (s *Service) Categories() ([]CategoryCount, error) {
	idx, err := s.Current()
	if err != nil {
		return nil, err
	}

	cats := idx.Categories()
	out := make([]CategoryCount, len(cats))
	for i, c := range cats {
		b, _ := idx.Bucket(c)
		out[i] = CategoryCount{Category: c, Vendors: len(b)}
	}
	return out, nil
}
