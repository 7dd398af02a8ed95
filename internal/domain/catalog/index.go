// Package catalog builds the category index the recommendation engine reads from.
package catalog

import (
	"sort"

	"github.com/ridedine/ridedine/internal/domain/food"
)

// Index groups vendors by normalized cuisine. Built once per load and
// read-only afterwards, so it can be shared across goroutines.
type Index struct {
	flat    []food.Vendor
	buckets map[food.Category][]food.Vendor
}

// Build converts raw records into vendors and buckets them by lowercase cuisine.
// A malformed price or proximity aborts the whole build.
func Build(records []RawRecord) (*Index, error) {
	idx := &Index{
		flat:    make([]food.Vendor, 0, len(records)),
		buckets: make(map[food.Category][]food.Vendor),
	}
	for i, r := range records {
		v, err := toVendor(i, r)
		if err != nil {
			return nil, err
		}
		idx.flat = append(idx.flat, v)
		idx.buckets[v.Category()] = append(idx.buckets[v.Category()], v)
	}
	return idx, nil
}

// FromVendors indexes already-constructed vendors.
func FromVendors(vendors []food.Vendor) *Index {
	idx := &Index{
		flat:    make([]food.Vendor, len(vendors)),
		buckets: make(map[food.Category][]food.Vendor),
	}
	copy(idx.flat, vendors)
	for _, v := range idx.flat {
		idx.buckets[v.Category()] = append(idx.buckets[v.Category()], v)
	}
	return idx
}

// Flat returns every vendor in load order.
func (idx *Index) Flat() []food.Vendor {
	out := make([]food.Vendor, len(idx.flat))
	copy(out, idx.flat)
	return out
}

// Bucket returns the vendors of one category in insertion order.
// The returned slice must not be modified.
func (idx *Index) Bucket(c food.Category) ([]food.Vendor, bool) {
	b, ok := idx.buckets[c]
	return b, ok
}

// Categories returns the known category keys sorted alphabetically.
func (idx *Index) Categories() []food.Category {
	out := make([]food.Category, 0, len(idx.buckets))
	for c := range idx.buckets {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of indexed vendors.
func (idx *Index) Len() int { return len(idx.flat) }
