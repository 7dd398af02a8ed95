// Package agent models delivery riders that can be paired with a chosen vendor.
package agent

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ridedine/ridedine/internal/domain/geo"
)

// idNamespace scopes derived agent ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ridedine/agent"))

// DeriveID returns a stable id for a rider listed without one, from its
// position in the source and its name. The same input always yields the same id.
func DeriveID(pos int, name string) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d:%s", pos, name))).String()
}

// Agent is a delivery rider (immutable value object).
type Agent struct {
	id            string
	name          string
	location      geo.Point
	depotDistance float64
	available     bool
	contact       string
}

// New validates and creates an Agent. The distance from depot is computed
// once here and rounded to two decimals.
func New(id, name string, location, depot geo.Point, available bool, contact string) (Agent, error) {
	if id == "" {
		return Agent{}, fmt.Errorf("agent ID is required")
	}
	return Agent{
		id:            id,
		name:          name,
		location:      location,
		depotDistance: geo.Round2(geo.Distance(depot, location)),
		available:     available,
		contact:       contact,
	}, nil
}

// Reconstruct creates an Agent without validation (storage hydration).
func Reconstruct(id, name string, location geo.Point, depotDistance float64, available bool, contact string) Agent {
	return Agent{
		id:            id,
		name:          name,
		location:      location,
		depotDistance: depotDistance,
		available:     available,
		contact:       contact,
	}
}

// ID returns the agent identifier.
func (a Agent) ID() string { return a.id }

// Name returns the display name.
func (a Agent) Name() string { return a.name }

// Location returns the current position.
func (a Agent) Location() geo.Point { return a.location }

// DepotDistance returns the precomputed distance from the depot in kilometers.
func (a Agent) DepotDistance() float64 { return a.depotDistance }

// Available reports whether the agent can take a job.
func (a Agent) Available() bool { return a.available }

// Contact returns the phone number or other contact handle.
func (a Agent) Contact() string { return a.contact }
