package ridedine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridedine/ridedine/internal/domain"
	"github.com/ridedine/ridedine/internal/domain/catalog"
	"github.com/ridedine/ridedine/internal/domain/food"
	"github.com/ridedine/ridedine/internal/domain/geo"
	"github.com/ridedine/ridedine/internal/domain/query"
	cataloguc "github.com/ridedine/ridedine/internal/usecase/catalog"
	dispatchuc "github.com/ridedine/ridedine/internal/usecase/dispatch"
)

// --- usecase mocks ---

type mockCatalogUC struct {
	reloadFn     func(ctx context.Context) (*catalog.Index, error)
	categoriesFn func() ([]cataloguc.CategoryCount, error)
}

func (m *mockCatalogUC) Reload(ctx context.Context) (*catalog.Index, error) {
	return m.reloadFn(ctx)
}

func (m *mockCatalogUC) Categories() ([]cataloguc.CategoryCount, error) {
	return m.categoriesFn()
}

type mockRecommendUC struct {
	recommendFn func(ctx context.Context, q query.Query) ([]food.Vendor, error)
}

func (m *mockRecommendUC) Recommend(ctx context.Context, q query.Query) ([]food.Vendor, error) {
	return m.recommendFn(ctx, q)
}

type mockDispatchUC struct {
	nearestFn func(ctx context.Context, target geo.Point) (dispatchuc.Assignment, bool, error)
}

func (m *mockDispatchUC) Nearest(ctx context.Context, target geo.Point) (dispatchuc.Assignment, bool, error) {
	return m.nearestFn(ctx, target)
}

// --- tests ---

func TestCategories_NotLoaded(t *testing.T) {
	c := &Client{catalogSvc: &mockCatalogUC{
		categoriesFn: func() ([]cataloguc.CategoryCount, error) { return nil, domain.ErrCatalogNotLoaded },
	}}

	_, err := c.Categories(context.Background())
	require.ErrorIs(t, err, ErrCatalogNotLoaded)
}

func TestReload_SourceError(t *testing.T) {
	c := &Client{catalogSvc: &mockCatalogUC{
		reloadFn: func(context.Context) (*catalog.Index, error) { return nil, domain.ErrSourceUnavailable },
	}}

	_, err := c.Reload(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRecommend_PassesPreferences(t *testing.T) {
	var got query.Query
	c := &Client{recommendSvc: &mockRecommendUC{
		recommendFn: func(_ context.Context, q query.Query) ([]food.Vendor, error) {
			got = q
			return []food.Vendor{}, nil
		},
	}}

	out, err := c.Recommend(context.Background(), Preferences{Budget: 250, Time: "19:45", MaxDistanceKm: 3, Cuisine: "Filipino"})
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 250.0, got.Budget())
	require.Equal(t, "19:45", got.PreferredTime())
	require.Equal(t, 3.0, got.ProximityCeiling())
	require.Equal(t, food.Category("filipino"), got.Category())
}

func TestNearestAgent_UsesDepotAndWrapsErrors(t *testing.T) {
	depot := geo.NewPoint(14.5995, 120.9842)
	var target geo.Point
	c := &Client{depot: depot, dispatchSvc: &mockDispatchUC{
		nearestFn: func(_ context.Context, p geo.Point) (dispatchuc.Assignment, bool, error) {
			target = p
			return dispatchuc.Assignment{}, false, errors.New("valkey down")
		},
	}}

	_, ok, err := c.NearestAgent(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "nearest agent")
	require.False(t, ok)
	require.Equal(t, depot, target)
}
