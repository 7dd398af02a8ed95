// Package recommend filters catalog vendors against a diner's query.
package recommend

import (
	"context"

	"go.uber.org/zap"

	domcat "github.com/ridedine/ridedine/internal/domain/catalog"
	"github.com/ridedine/ridedine/internal/domain/food"
	"github.com/ridedine/ridedine/internal/domain/query"
	"github.com/ridedine/ridedine/internal/logger"
	"github.com/ridedine/ridedine/internal/metrics"
)

// Match returns the vendors of the cuisine bucket that are within ceiling km
// and whose price range contains budget, in bucket order. An unknown cuisine
// yields an empty, non-nil slice.
func Match(idx *domcat.Index, budget, ceiling float64, cuisine string) []food.Vendor {
	out, _ := match(idx, budget, ceiling, food.NewCategory(cuisine))
	return out
}

func match(idx *domcat.Index, budget, ceiling float64, c food.Category) ([]food.Vendor, bool) {
	bucket, ok := idx.Bucket(c)
	if !ok {
		return []food.Vendor{}, false
	}

	out := make([]food.Vendor, 0, len(bucket))
	for _, v := range bucket {
		if v.Within(ceiling) && v.Affordable(budget) {
			out = append(out, v)
		}
	}
	return out, true
}

// Service answers recommendation queries against the current catalog snapshot.
type Service struct {
	catalog Catalog
}

// New creates a Service.
func New(c Catalog) *Service {
	return &Service{catalog: c}
}

// Recommend validates q and returns the matching vendors. The preferred time
// is carried on the query but does not filter. ErrCatalogNotLoaded is the
// only non-validation error.
func (s *Service) Recommend(ctx context.Context, q query.Query) ([]food.Vendor, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	idx, err := s.catalog.Current()
	if err != nil {
		return nil, err
	}

	out, known := match(idx, q.Budget(), q.ProximityCeiling(), q.Category())

	outcome := metrics.OutcomeMatch
	switch {
	case !known:
		outcome = metrics.OutcomeUnknownCategory
	case len(out) == 0:
		outcome = metrics.OutcomeNoMatch
	}
	metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()
	metrics.RecommendationMatches.Observe(float64(len(out)))

	logger.FromContext(ctx).Debug("Recommendation computed",
		zap.String("category", q.Category().String()),
		zap.Float64("budget", q.Budget()),
		zap.Float64("proximity_km", q.ProximityCeiling()),
		zap.String("outcome", outcome),
		zap.Int("matches", len(out)),
	)
	return out, nil
}
