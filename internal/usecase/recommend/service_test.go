package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridedine/ridedine/internal/domain"
	domcat "github.com/ridedine/ridedine/internal/domain/catalog"
	"github.com/ridedine/ridedine/internal/domain/food"
	"github.com/ridedine/ridedine/internal/domain/query"
)

// --- Mocks ---

type mockCatalog struct {
	idx *domcat.Index
}

func (m *mockCatalog) Current() (*domcat.Index, error) {
	if m.idx == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return m.idx, nil
}

func bakeries() *domcat.Index {
	return domcat.FromVendors([]food.Vendor{
		food.New(food.Fields{Name: "Bakery A", Cuisine: "Bakery", ProximityKm: 1.5, MinPrice: 50, MaxPrice: 150}),
		food.New(food.Fields{Name: "Bakery B", Cuisine: "bakery", ProximityKm: 5.0, MinPrice: 300, MaxPrice: 500}),
		food.New(food.Fields{Name: "Jollibee", Cuisine: "Fast Food", ProximityKm: 0.8, MinPrice: 60, MaxPrice: 250}),
	})
}

func names(vs []food.Vendor) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name()
	}
	return out
}

// --- Match ---

func TestMatch_BakeryWithinBudgetAndRange(t *testing.T) {
	got := Match(bakeries(), 100, 2, "bakery")
	require.Equal(t, []string{"Bakery A"}, names(got))
}

func TestMatch_CaseInsensitiveCuisine(t *testing.T) {
	got := Match(bakeries(), 400, 10, "BaKeRy")
	require.Equal(t, []string{"Bakery B"}, names(got))
}

func TestMatch_UnknownCuisineIsEmptyNotNil(t *testing.T) {
	got := Match(bakeries(), 100, 10, "sushi")
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestMatch_BoundariesInclusive(t *testing.T) {
	idx := bakeries()

	require.Equal(t, []string{"Bakery A"}, names(Match(idx, 50, 1.5, "bakery")))
	require.Equal(t, []string{"Bakery A"}, names(Match(idx, 150, 1.5, "bakery")))
	require.Empty(t, Match(idx, 150, 1.49, "bakery"))
	require.Empty(t, Match(idx, 49.99, 10, "bakery"))
}

func TestMatch_InvertedRangeNeverMatches(t *testing.T) {
	idx := domcat.FromVendors([]food.Vendor{
		food.New(food.Fields{Name: "Odd", Cuisine: "Bakery", ProximityKm: 1, MinPrice: 200, MaxPrice: 100}),
	})
	for _, budget := range []float64{50, 100, 150, 200, 250} {
		require.Empty(t, Match(idx, budget, 10, "bakery"))
	}
}

func TestMatch_PreservesBucketOrder(t *testing.T) {
	vendors := make([]food.Vendor, 0, 10)
	for i := 0; i < 10; i++ {
		vendors = append(vendors, food.New(food.Fields{
			Name: fmt.Sprintf("v%d", i), Cuisine: "Grill", ProximityKm: float64(10 - i), MinPrice: 0, MaxPrice: 1000,
		}))
	}
	got := Match(domcat.FromVendors(vendors), 500, 100, "grill")
	require.Equal(t, names(vendors), names(got))
}

func TestMatch_NeverViolatesFilters(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cuisines := []string{"Bakery", "bakery", "Grill", "Cafe"}

	vendors := make([]food.Vendor, 0, 200)
	for i := 0; i < 200; i++ {
		lo := rng.Intn(500)
		vendors = append(vendors, food.New(food.Fields{
			Name:        fmt.Sprintf("v%d", i),
			Cuisine:     cuisines[rng.Intn(len(cuisines))],
			ProximityKm: rng.Float64() * 20,
			MinPrice:    lo,
			MaxPrice:    lo + rng.Intn(500) - 50,
		}))
	}
	idx := domcat.FromVendors(vendors)

	for i := 0; i < 100; i++ {
		budget := rng.Float64() * 1000
		ceiling := rng.Float64() * 20
		cuisine := cuisines[rng.Intn(len(cuisines))]

		for _, v := range Match(idx, budget, ceiling, cuisine) {
			require.LessOrEqual(t, v.ProximityKm(), ceiling)
			require.LessOrEqual(t, float64(v.MinPrice()), budget)
			require.GreaterOrEqual(t, float64(v.MaxPrice()), budget)
			require.Equal(t, food.NewCategory(cuisine), v.Category())
		}
	}
}

// --- Service ---

func TestRecommend_CatalogNotLoaded(t *testing.T) {
	svc := New(&mockCatalog{})

	_, err := svc.Recommend(context.Background(), query.New(100, "12:00", 2, "bakery"))
	require.ErrorIs(t, err, domain.ErrCatalogNotLoaded)
}

func TestRecommend_InvalidQuery(t *testing.T) {
	svc := New(&mockCatalog{idx: bakeries()})

	_, err := svc.Recommend(context.Background(), query.New(0, "12:00", 2, "bakery"))
	require.ErrorIs(t, err, domain.ErrInvalidQuery)

	_, err = svc.Recommend(context.Background(), query.New(100, "25:00", 2, "bakery"))
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestRecommend_TimeDoesNotFilter(t *testing.T) {
	svc := New(&mockCatalog{idx: bakeries()})

	for _, tm := range []string{"00:00", "06:30", "23:59"} {
		got, err := svc.Recommend(context.Background(), query.New(100, tm, 2, "Bakery"))
		require.NoError(t, err)
		require.Equal(t, []string{"Bakery A"}, names(got))
	}
}

func TestRecommend_NoMatchIsNotAnError(t *testing.T) {
	svc := New(&mockCatalog{idx: bakeries()})

	got, err := svc.Recommend(context.Background(), query.New(10000, "12:00", 0.1, "bakery"))
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = svc.Recommend(context.Background(), query.New(100, "12:00", 2, "ramen"))
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
