package chi

import (
	"github.com/ridedine/ridedine/internal/domain/food"
	"github.com/ridedine/ridedine/internal/domain/geo"
	cataloguc "github.com/ridedine/ridedine/internal/usecase/catalog"
	dispatchuc "github.com/ridedine/ridedine/internal/usecase/dispatch"
)

// RecommendationRequest is the body of POST /v1/recommendations.
type RecommendationRequest struct {
	Budget    float64 `json:"budget" validate:"gt=0"`
	Time      string  `json:"time" validate:"required,hhmm"`
	Proximity float64 `json:"proximity" validate:"gt=0"`
	Cuisine   string  `json:"cuisine" validate:"required,notblank"`
}

// DispatchRequest is the body of POST /v1/dispatch/nearest. Omitted
// coordinates mean the depot; a lone coordinate is rejected.
type DispatchRequest struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// Vendor is a recommended vendor. Rating is null when the source had none.
type Vendor struct {
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine_type"`
	ProximityKm float64  `json:"proximity_km"`
	Rating      *float64 `json:"rating"`
	FBPageURL   string   `json:"fb_page_url"`
	LocationURL string   `json:"location_url"`
	Time        string   `json:"time"`
	MinPrice    int      `json:"min_price"`
	MaxPrice    int      `json:"max_price"`
}

// RecommendationResponse lists matches in catalog order.
type RecommendationResponse struct {
	Items []Vendor `json:"items"`
	Count int      `json:"count"`
}

// Agent is a selected delivery agent.
type Agent struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	DepotDistanceKm float64 `json:"depot_distance_km"`
	Available       bool    `json:"available"`
	Contact         string  `json:"contact"`
}

// DispatchResponse carries the selected agent, or nulls when nobody is available.
type DispatchResponse struct {
	Agent      *Agent   `json:"agent"`
	DistanceKm *float64 `json:"distance_km"`
}

// Category is a cuisine bucket and its size.
type Category struct {
	Category string `json:"category"`
	Vendors  int    `json:"vendors"`
}

// CategoriesResponse lists known categories sorted by key.
type CategoriesResponse struct {
	Items []Category `json:"items"`
	Count int        `json:"count"`
}

// ReloadResponse summarizes a freshly published catalog.
type ReloadResponse struct {
	Vendors    int `json:"vendors"`
	Categories int `json:"categories"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func vendorToResponse(v food.Vendor) Vendor {
	out := Vendor{
		Name:        v.Name(),
		Cuisine:     v.Cuisine(),
		ProximityKm: v.ProximityKm(),
		FBPageURL:   v.FBPage(),
		LocationURL: v.LocationURL(),
		Time:        v.Availability(),
		MinPrice:    v.MinPrice(),
		MaxPrice:    v.MaxPrice(),
	}
	if v.HasRating() {
		r := v.Rating()
		out.Rating = &r
	}
	return out
}

func assignmentToResponse(a dispatchuc.Assignment) DispatchResponse {
	loc := a.Agent.Location()
	dist := geo.Round2(a.DistanceKm)
	return DispatchResponse{
		Agent: &Agent{
			ID:              a.Agent.ID(),
			Name:            a.Agent.Name(),
			Latitude:        loc.Latitude,
			Longitude:       loc.Longitude,
			DepotDistanceKm: a.Agent.DepotDistance(),
			Available:       a.Agent.Available(),
			Contact:         a.Agent.Contact(),
		},
		DistanceKm: &dist,
	}
}

func categoriesToResponse(cats []cataloguc.CategoryCount) CategoriesResponse {
	items := make([]Category, len(cats))
	for i, c := range cats {
		items[i] = Category{Category: c.Category.String(), Vendors: c.Vendors}
	}
	return CategoriesResponse{Items: items, Count: len(items)}
}
