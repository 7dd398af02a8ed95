// Package geo holds great-circle geometry over WGS84-style degree coordinates.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for haversine distance.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewPoint creates a Point. Coordinates are not range-checked; see Valid.
func NewPoint(lat, lon float64) Point {
	return Point{Latitude: lat, Longitude: lon}
}

// Distance returns the haversine great-circle distance between a and b in kilometers.
// Out-of-range coordinates are passed through unchecked.
func Distance(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h a hair outside [0,1] for antipodal or identical points.
	h = math.Min(math.Max(h, 0), 1)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Valid reports whether latitude is in [-90,90] and longitude in [-180,180].
func Valid(p Point) bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// Round2 rounds a distance to two decimals.
func Round2(km float64) float64 {
	return math.Round(km*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
