package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ridedine/ridedine/internal/domain"
	domagent "github.com/ridedine/ridedine/internal/domain/agent"
	"github.com/ridedine/ridedine/internal/domain/geo"
)

// riderRow is one element of a riders JSON file.
// Proximity is informational: the depot distance is recomputed on load.
type riderRow struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Location     []float64 `json:"location"`
	Proximity    float64   `json:"proximity,omitempty"`
	Availability bool      `json:"availability"`
	PhoneNumber  string    `json:"phone_number"`
}

// FileSource reads agents from a riders JSON file on every Snapshot.
type FileSource struct {
	path  string
	depot geo.Point
}

// NewFileSource creates a file-backed agent source.
func NewFileSource(path string, depot geo.Point) *FileSource {
	return &FileSource{path: path, depot: depot}
}

// Snapshot reads and decodes the whole file. Rows without an id get one derived
// from their position and name, so ids are stable across reads.
func (s *FileSource) Snapshot(ctx context.Context) ([]domagent.Agent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read agents %s: %w: %w", s.path, domain.ErrSourceUnavailable, err)
	}
	return DecodeRiders(data, s.depot)
}

// DecodeRiders parses a riders JSON array into agents.
func DecodeRiders(data []byte, depot geo.Point) ([]domagent.Agent, error) {
	var rows []riderRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}

	agents := make([]domagent.Agent, 0, len(rows))
	for i, row := range rows {
		if len(row.Location) != 2 {
			return nil, fmt.Errorf("agent %d: location must be [lat, lon], got %d values", i, len(row.Location))
		}
		id := row.ID
		if id == "" {
			id = domagent.DeriveID(i, row.Name)
		}
		a, err := domagent.New(id, row.Name, geo.NewPoint(row.Location[0], row.Location[1]),
			depot, row.Availability, row.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
		agents = append(agents, a)
	}
	return agents, nil
}
