// Package food models food vendors and the cuisine categories they are bucketed by.
package food

import "strings"

// NotAvailable is the placeholder for pass-through text fields missing from the source.
const NotAvailable = "N/A"

// Category is the normalized (lowercase) cuisine key vendors are bucketed by.
type Category string

// NewCategory normalizes a cuisine label into a bucket key.
func NewCategory(label string) Category {
	return Category(strings.ToLower(label))
}

// String returns the key.
func (c Category) String() string { return string(c) }

// Vendor is a food store record (immutable value object).
type Vendor struct {
	name         string
	cuisine      string
	proximityKm  float64
	rating       float64
	fbPage       string
	locationURL  string
	availability string
	minPrice     int
	maxPrice     int
}

// Fields carries the values a Vendor is built from.
// MinPrice <= MaxPrice is not enforced.
type Fields struct {
	Name         string
	Cuisine      string
	ProximityKm  float64
	Rating       float64
	FBPage       string
	LocationURL  string
	Availability string
	MinPrice     int
	MaxPrice     int
}

// New creates a Vendor.
func New(f Fields) Vendor {
	return Vendor{
		name:         f.Name,
		cuisine:      f.Cuisine,
		proximityKm:  f.ProximityKm,
		rating:       f.Rating,
		fbPage:       f.FBPage,
		locationURL:  f.LocationURL,
		availability: f.Availability,
		minPrice:     f.MinPrice,
		maxPrice:     f.MaxPrice,
	}
}

// Name returns the vendor name.
func (v Vendor) Name() string { return v.name }

// Cuisine returns the cuisine label as it appeared in the source.
func (v Vendor) Cuisine() string { return v.cuisine }

// Category returns the bucket key of the vendor.
func (v Vendor) Category() Category { return NewCategory(v.cuisine) }

// ProximityKm returns the distance from the reference point in kilometers.
func (v Vendor) ProximityKm() float64 { return v.proximityKm }

// Rating returns the star rating, 0 when unrated.
func (v Vendor) Rating() float64 { return v.rating }

// HasRating reports whether the source carried a usable rating.
func (v Vendor) HasRating() bool { return v.rating > 0 }

// FBPage returns the Facebook page URL.
func (v Vendor) FBPage() string { return v.fbPage }

// LocationURL returns the map link.
func (v Vendor) LocationURL() string { return v.locationURL }

// Availability returns the opening-hours text.
func (v Vendor) Availability() string { return v.availability }

// MinPrice returns the lower bound of the price range.
func (v Vendor) MinPrice() int { return v.minPrice }

// MaxPrice returns the upper bound of the price range.
func (v Vendor) MaxPrice() int { return v.maxPrice }

// Fields returns a copy of the vendor values.
func (v Vendor) Fields() Fields {
	return Fields{
		Name:         v.name,
		Cuisine:      v.cuisine,
		ProximityKm:  v.proximityKm,
		Rating:       v.rating,
		FBPage:       v.fbPage,
		LocationURL:  v.locationURL,
		Availability: v.availability,
		MinPrice:     v.minPrice,
		MaxPrice:     v.maxPrice,
	}
}

// Within reports whether the vendor is no farther than ceilingKm.
func (v Vendor) Within(ceilingKm float64) bool {
	return v.proximityKm <= ceilingKm
}

// Affordable reports whether budget falls inside [MinPrice, MaxPrice].
// An inverted range matches nothing.
func (v Vendor) Affordable(budget float64) bool {
	return float64(v.minPrice) <= budget && budget <= float64(v.maxPrice)
}
