package ridedine

import (
	domagent "github.com/ridedine/ridedine/internal/domain/agent"
	"github.com/ridedine/ridedine/internal/domain/food"
	"github.com/ridedine/ridedine/internal/domain/geo"
	cataloguc "github.com/ridedine/ridedine/internal/usecase/catalog"
	dispatchuc "github.com/ridedine/ridedine/internal/usecase/dispatch"
)

// Preferences is what a diner asks for.
type Preferences struct {
	Budget        float64 // must be > 0
	Time          string  // HH:MM, carried but not used for filtering
	MaxDistanceKm float64 // must be > 0
	Cuisine       string  // case-insensitive
}

// Vendor is a recommended food store.
type Vendor struct {
	Name         string
	Cuisine      string
	DistanceKm   float64
	Rating       float64 // 0 when unrated
	FBPage       string
	LocationURL  string
	Availability string
	MinPrice     int
	MaxPrice     int
}

// Rider is a delivery agent as supplied to WithAgents.
type Rider struct {
	ID        string
	Name      string
	Lat, Lon  float64
	Available bool
	Contact   string
}

// Agent is a delivery agent as returned by the client.
type Agent struct {
	ID              string
	Name            string
	Lat, Lon        float64
	DepotDistanceKm float64
	Available       bool
	Contact         string
}

// Assignment is the agent picked for a delivery and its distance to the target.
type Assignment struct {
	Agent      Agent
	DistanceKm float64
}

// CategoryCount is a normalized cuisine key and how many vendors it holds.
type CategoryCount struct {
	Category string
	Vendors  int
}

func vendorFromDomain(v food.Vendor) Vendor {
	return Vendor{
		Name:         v.Name(),
		Cuisine:      v.Cuisine(),
		DistanceKm:   v.ProximityKm(),
		Rating:       v.Rating(),
		FBPage:       v.FBPage(),
		LocationURL:  v.LocationURL(),
		Availability: v.Availability(),
		MinPrice:     v.MinPrice(),
		MaxPrice:     v.MaxPrice(),
	}
}

func agentFromDomain(a domagent.Agent) Agent {
	return Agent{
		ID:              a.ID(),
		Name:            a.Name(),
		Lat:             a.Location().Latitude,
		Lon:             a.Location().Longitude,
		DepotDistanceKm: a.DepotDistance(),
		Available:       a.Available(),
		Contact:         a.Contact(),
	}
}

func assignmentFromDomain(a dispatchuc.Assignment) Assignment {
	return Assignment{Agent: agentFromDomain(a.Agent), DistanceKm: geo.Round2(a.DistanceKm)}
}

func categoriesFromDomain(counts []cataloguc.CategoryCount) []CategoryCount {
	out := make([]CategoryCount, len(counts))
	for i, c := range counts {
		out[i] = CategoryCount{Category: c.Category.String(), Vendors: c.Vendors}
	}
	return out
}
