package agent

import (
	"fmt"
	"strconv"

	domagent "github.com/ridedine/ridedine/internal/domain/agent"
	"github.com/ridedine/ridedine/internal/domain/geo"
)

const (
	fieldName      = "name"
	fieldLat       = "lat"
	fieldLon       = "lon"
	fieldAvailable = "available"
	fieldContact   = "contact"
)

// agentToHash converts a domain Agent to a map for HSET.
func agentToHash(a domagent.Agent) map[string]string {
	loc := a.Location()
	return map[string]string{
		fieldName:      a.Name(),
		fieldLat:       strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		fieldLon:       strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
		fieldAvailable: formatBool(a.Available()),
		fieldContact:   a.Contact(),
	}
}

// agentFromHash restores an Agent from HGETALL output.
func agentFromHash(id string, m map[string]string, depot geo.Point) (domagent.Agent, error) {
	lat, err := strconv.ParseFloat(m[fieldLat], 64)
	if err != nil {
		return domagent.Agent{}, fmt.Errorf("parse %s: %w", fieldLat, err)
	}
	lon, err := strconv.ParseFloat(m[fieldLon], 64)
	if err != nil {
		return domagent.Agent{}, fmt.Errorf("parse %s: %w", fieldLon, err)
	}
	// Missing flag reads as unavailable.
	available := m[fieldAvailable] == "1"

	return domagent.New(id, m[fieldName], geo.NewPoint(lat, lon), depot, available, m[fieldContact])
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
