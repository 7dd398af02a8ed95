package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridedine/ridedine/internal/domain"
	domagent "github.com/ridedine/ridedine/internal/domain/agent"
	"github.com/ridedine/ridedine/internal/domain/geo"
	"github.com/ridedine/ridedine/internal/domain/selection"
)

// --- Mocks ---

type mockSource struct {
	agents []domagent.Agent
	err    error
}

func (m *mockSource) Snapshot(_ context.Context) ([]domagent.Agent, error) {
	return m.agents, m.err
}

var origin = geo.NewPoint(0, 0)

// kmNorth places an agent d km due north of origin.
func kmNorth(t *testing.T, id string, d float64, available bool) domagent.Agent {
	t.Helper()
	lat := d / (geo.EarthRadiusKm * math.Pi / 180)
	a, err := domagent.New(id, "Agent "+id, geo.NewPoint(lat, 0), origin, available, "")
	require.NoError(t, err)
	return a
}

// --- Nearest ---

func TestNearest_PicksClosestAvailable(t *testing.T) {
	agents := []domagent.Agent{
		kmNorth(t, "x", 5.0, true),
		kmNorth(t, "y", 1.2, true),
		kmNorth(t, "z", 0.1, false),
	}

	got, ok := Nearest(agents, origin)
	require.True(t, ok)
	require.Equal(t, "y", got.ID())
}

func TestNearest_AllUnavailable(t *testing.T) {
	agents := []domagent.Agent{
		kmNorth(t, "x", 5.0, false),
		kmNorth(t, "y", 1.2, false),
	}

	_, ok := Nearest(agents, origin)
	require.False(t, ok)
}

func TestNearest_Empty(t *testing.T) {
	_, ok := Nearest(nil, origin)
	require.False(t, ok)
}

func TestNearest_TieBreakByID(t *testing.T) {
	agents := []domagent.Agent{
		kmNorth(t, "b", 2.0, true),
		kmNorth(t, "a", 2.0, true),
	}

	got, ok := Nearest(agents, origin, selection.WithTieBreak(ByID))
	require.True(t, ok)
	require.Equal(t, "a", got.ID())
}

func TestNearest_RandomizedInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	target := geo.NewPoint(13.7859177, 121.0706258)

	for round := 0; round < 50; round++ {
		n := rng.Intn(12)
		agents := make([]domagent.Agent, 0, n)
		anyAvailable := false
		for i := 0; i < n; i++ {
			avail := rng.Intn(2) == 0
			anyAvailable = anyAvailable || avail
			loc := geo.NewPoint(13.78+rng.Float64()*0.01, 121.065+rng.Float64()*0.01)
			a, err := domagent.New(fmt.Sprintf("r%d", i), "", loc, target, avail, "")
			require.NoError(t, err)
			agents = append(agents, a)
		}

		got, ok := Nearest(agents, target)
		require.Equal(t, anyAvailable, ok)
		if !ok {
			continue
		}
		require.True(t, got.Available())
		best := geo.Distance(got.Location(), target)
		for _, a := range agents {
			if a.Available() {
				require.LessOrEqual(t, best, geo.Distance(a.Location(), target))
			}
		}
	}
}

// --- Service ---

func TestService_Nearest(t *testing.T) {
	svc := New(&mockSource{agents: []domagent.Agent{
		kmNorth(t, "x", 5.0, true),
		kmNorth(t, "y", 1.2, true),
		kmNorth(t, "z", 0.1, false),
	}})

	got, ok, err := svc.Nearest(context.Background(), origin)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "y", got.Agent.ID())
	require.InDelta(t, 1.2, got.DistanceKm, 1e-6)
}

func TestService_NoneAvailable(t *testing.T) {
	svc := New(&mockSource{agents: []domagent.Agent{kmNorth(t, "x", 1, false)}})

	got, ok, err := svc.Nearest(context.Background(), origin)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, Assignment{}, got)
}

func TestService_SourceError(t *testing.T) {
	svc := New(&mockSource{err: fmt.Errorf("read: %w", domain.ErrSourceUnavailable)})

	_, _, err := svc.Nearest(context.Background(), origin)
	require.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestService_WithTieBreak(t *testing.T) {
	svc := New(&mockSource{agents: []domagent.Agent{
		kmNorth(t, "m", 3, true),
		kmNorth(t, "c", 3, true),
	}}).WithTieBreak(ByID)

	got, ok, err := svc.Nearest(context.Background(), origin)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "c", got.Agent.ID())
}
