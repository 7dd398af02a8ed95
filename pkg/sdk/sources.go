package ridedine

import (
	"context"
	"fmt"

	domagent "github.com/ridedine/ridedine/internal/domain/agent"
	domcat "github.com/ridedine/ridedine/internal/domain/catalog"
	"github.com/ridedine/ridedine/internal/domain/geo"
)

// staticVendors serves records handed to WithVendors.
type staticVendors struct {
	records []domcat.RawRecord
}

func newStaticVendors(in []map[string]any) *staticVendors {
	records := make([]domcat.RawRecord, len(in))
	for i, r := range in {
		records[i] = domcat.RawRecord(r)
	}
	return &staticVendors{records: records}
}

func (s *staticVendors) Records(_ context.Context) ([]domcat.RawRecord, error) {
	return s.records, nil
}

// staticAgents serves riders handed to WithAgents.
type staticAgents struct {
	agents []domagent.Agent
}

func newStaticAgents(riders []Rider, depot geo.Point) (*staticAgents, error) {
	agents := make([]domagent.Agent, 0, len(riders))
	for i, r := range riders {
		loc := geo.NewPoint(r.Lat, r.Lon)
		if !geo.Valid(loc) {
			return nil, fmt.Errorf("ridedine: rider %d: coordinates out of range", i)
		}
		id := r.ID
		if id == "" {
			id = domagent.DeriveID(i, r.Name)
		}
		a, err := domagent.New(id, r.Name, loc, depot, r.Available, r.Contact)
		if err != nil {
			return nil, fmt.Errorf("ridedine: rider %d: %w", i, err)
		}
		agents = append(agents, a)
	}
	return &staticAgents{agents: agents}, nil
}

func (s *staticAgents) Snapshot(_ context.Context) ([]domagent.Agent, error) {
	out := make([]domagent.Agent, len(s.agents))
	copy(out, s.agents)
	return out, nil
}
