// Package dispatch pairs a chosen vendor with the closest available agent.
package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domagent "github.com/ridedine/ridedine/internal/domain/agent"
	"github.com/ridedine/ridedine/internal/domain/geo"
	"github.com/ridedine/ridedine/internal/domain/selection"
	"github.com/ridedine/ridedine/internal/logger"
	"github.com/ridedine/ridedine/internal/metrics"
)

// Assignment is the selected agent and its great-circle distance to the target.
type Assignment struct {
	Agent      domagent.Agent
	DistanceKm float64
}

// Nearest returns the available agent closest to target. ok is false when no
// agent is available. Exact distance ties go to the earlier agent unless a
// tie-break option says otherwise.
func Nearest(agents []domagent.Agent, target geo.Point, opts ...selection.Option[domagent.Agent]) (domagent.Agent, bool) {
	a, ok := nearest(agents, target, opts)
	return a.Agent, ok
}

func nearest(agents []domagent.Agent, target geo.Point, opts []selection.Option[domagent.Agent]) (Assignment, bool) {
	q := selection.NewQueue(opts...)
	for _, a := range agents {
		if !a.Available() {
			continue
		}
		q.Push(a, geo.Distance(a.Location(), target))
	}

	best, dist, ok := q.Pop()
	if !ok {
		return Assignment{}, false
	}
	return Assignment{Agent: best, DistanceKm: dist}, true
}

// ByID breaks exact distance ties by ascending agent id.
func ByID(a, b domagent.Agent) bool { return a.ID() < b.ID() }

// Service selects agents from a fresh source snapshot on every call.
type Service struct {
	source AgentSource
	opts   []selection.Option[domagent.Agent]
}

// New creates a Service.
func New(source AgentSource) *Service {
	return &Service{source: source}
}

// WithTieBreak sets the ordering used between agents at exactly the same distance.
func (s *Service) WithTieBreak(less func(a, b domagent.Agent) bool) *Service {
	s.opts = []selection.Option[domagent.Agent]{selection.WithTieBreak(less)}
	return s
}

// Nearest fetches the current agents and picks the closest available one.
// "Nobody available" is ok=false with a nil error.
func (s *Service) Nearest(ctx context.Context, target geo.Point) (Assignment, bool, error) {
	agents, err := s.source.Snapshot(ctx)
	if err != nil {
		return Assignment{}, false, fmt.Errorf("agent snapshot: %w", err)
	}

	a, ok := nearest(agents, target, s.opts)

	log := logger.FromContext(ctx)
	if !ok {
		metrics.DispatchTotal.WithLabelValues(metrics.OutcomeNone).Inc()
		log.Debug("No available agent", zap.Int("agents", len(agents)))
		return Assignment{}, false, nil
	}

	metrics.DispatchTotal.WithLabelValues(metrics.OutcomeAssigned).Inc()
	log.Debug("Agent selected",
		zap.String("agent_id", a.Agent.ID()),
		zap.Float64("distance_km", a.DistanceKm),
		zap.Int("agents", len(agents)),
	)
	return a, true, nil
}
