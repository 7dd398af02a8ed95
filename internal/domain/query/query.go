// Package query holds the dining preferences a recommendation is computed from.
package query

import (
	"fmt"
	"strings"

	"github.com/ridedine/ridedine/internal/domain"
	"github.com/ridedine/ridedine/internal/domain/food"
)

// Query is a single user's dining preferences.
//
// PreferredTime is carried through but does not take part in matching:
// vendor opening hours are free text and no filter is applied on them.
type Query struct {
	budget           float64
	preferredTime    string
	proximityCeiling float64
	cuisine          string
}

// New creates a Query without validation. Collectors are expected to call
// Validate (or an equivalent) before handing the query to the core.
func New(budget float64, preferredTime string, proximityCeiling float64, cuisine string) Query {
	return Query{
		budget:           budget,
		preferredTime:    preferredTime,
		proximityCeiling: proximityCeiling,
		cuisine:          cuisine,
	}
}

// Budget returns the amount the user is willing to spend.
func (q Query) Budget() float64 { return q.budget }

// PreferredTime returns the HH:MM time the user wants to eat at.
func (q Query) PreferredTime() string { return q.preferredTime }

// ProximityCeiling returns the maximum acceptable vendor distance in kilometers.
func (q Query) ProximityCeiling() float64 { return q.proximityCeiling }

// Cuisine returns the cuisine label as entered.
func (q Query) Cuisine() string { return q.cuisine }

// Category returns the normalized bucket key for the cuisine.
func (q Query) Category() food.Category { return food.NewCategory(q.cuisine) }

// Validate performs the syntactic checks a collector owes the core.
func (q Query) Validate() error {
	if !(q.budget > 0) {
		return fmt.Errorf("%w: budget must be a positive number", domain.ErrInvalidQuery)
	}
	if !ValidTime(q.preferredTime) {
		return fmt.Errorf("%w: time must be HH:MM between 00:00 and 23:59", domain.ErrInvalidQuery)
	}
	if !(q.proximityCeiling > 0) {
		return fmt.Errorf("%w: proximity must be a positive number", domain.ErrInvalidQuery)
	}
	if strings.TrimSpace(q.cuisine) == "" {
		return fmt.Errorf("%w: cuisine type cannot be empty", domain.ErrInvalidQuery)
	}
	return nil
}

// ValidTime reports whether s is a 24-hour HH:MM time.
func ValidTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')
	return hours < 24 && minutes < 60
}
