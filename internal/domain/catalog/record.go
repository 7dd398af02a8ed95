package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ridedine/ridedine/internal/domain"
	"github.com/ridedine/ridedine/internal/domain/food"
)

// Recognized raw record keys.
const (
	KeyName        = "name"
	KeyCuisine     = "cuisine_type"
	KeyProximity   = "proximity"
	KeyRatings     = "ratings"
	KeyFBPage      = "fb_page_url"
	KeyLocationURL = "location_url"
	KeyTime        = "time"
	KeyMinPrice    = "min_price"
	KeyMaxPrice    = "max_price"
)

var errNull = errors.New("null value")

// Defaults for absent keys.
const (
	DefaultName    = "Unknown"
	DefaultCuisine = "Unknown Cuisine"
)

// RawRecord is one vendor row as delivered by a source. Values are strings for
// CSV-derived data, or JSON numbers/strings for hand-written catalogs.
type RawRecord map[string]any

// toVendor converts a raw record at position pos into a Vendor.
// Prices and proximity are required-and-well-formed when present; rating is tolerant.
func toVendor(pos int, r RawRecord) (food.Vendor, error) {
	proximityMeters, err := parseFloat(r, KeyProximity)
	if err != nil {
		return food.Vendor{}, domain.NewMalformedField(pos, KeyProximity, r[KeyProximity], err)
	}
	minPrice, err := parseInt(r, KeyMinPrice)
	if err != nil {
		return food.Vendor{}, domain.NewMalformedField(pos, KeyMinPrice, r[KeyMinPrice], err)
	}
	maxPrice, err := parseInt(r, KeyMaxPrice)
	if err != nil {
		return food.Vendor{}, domain.NewMalformedField(pos, KeyMaxPrice, r[KeyMaxPrice], err)
	}

	return food.New(food.Fields{
		Name:         stringOr(r, KeyName, DefaultName),
		Cuisine:      stringOr(r, KeyCuisine, DefaultCuisine),
		ProximityKm:  proximityMeters / 1000,
		Rating:       safeFloat(r[KeyRatings]),
		FBPage:       stringOr(r, KeyFBPage, food.NotAvailable),
		LocationURL:  stringOr(r, KeyLocationURL, food.NotAvailable),
		Availability: stringOr(r, KeyTime, food.NotAvailable),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
	}), nil
}

// stringOr returns the value at key, or def when the key is absent.
// A present-but-empty value is kept as is.
func stringOr(r RawRecord, key, def string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

// parseFloat reads a required real. Absent keys default to 0; a present null is malformed.
func parseFloat(r RawRecord, key string) (float64, error) {
	v, ok := r[key]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case nil:
		return 0, errNull
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// parseInt reads a required integer. Absent keys default to 0; a present null,
// an empty string or a fractional string is rejected. Fractional numbers are
// truncated toward zero.
func parseInt(r RawRecord, key string) (int, error) {
	v, ok := r[key]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case nil:
		return 0, errNull
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return truncate(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return truncate(f)
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func truncate(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return int(math.Trunc(f)), nil
}

// safeFloat parses an optional real, returning 0 for anything unusable.
func safeFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) {
			return 0
		}
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}
