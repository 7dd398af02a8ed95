package ridedine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ridedine/ridedine/internal/config"
	dbRedis "github.com/ridedine/ridedine/internal/db/redis"
	"github.com/ridedine/ridedine/internal/domain/catalog"
	"github.com/ridedine/ridedine/internal/domain/food"
	"github.com/ridedine/ridedine/internal/domain/geo"
	"github.com/ridedine/ridedine/internal/domain/query"
	agentrepo "github.com/ridedine/ridedine/internal/repository/agent"
	foodrepo "github.com/ridedine/ridedine/internal/repository/food"
	cataloguc "github.com/ridedine/ridedine/internal/usecase/catalog"
	dispatchuc "github.com/ridedine/ridedine/internal/usecase/dispatch"
	healthuc "github.com/ridedine/ridedine/internal/usecase/health"
	recommenduc "github.com/ridedine/ridedine/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "ridedine:"
)

// Internal interfaces so tests can substitute the usecases.
type catalogUseCase interface {
	Reload(ctx context.Context) (*catalog.Index, error)
	Categories() ([]cataloguc.CategoryCount, error)
}

type recommendUseCase interface {
	Recommend(ctx context.Context, q query.Query) ([]food.Vendor, error)
}

type dispatchUseCase interface {
	Nearest(ctx context.Context, target geo.Point) (dispatchuc.Assignment, bool, error)
}

// Client is the ridedine SDK entry point.
type Client struct {
	store        *dbRedis.Store
	depot        geo.Point
	catalogSvc   catalogUseCase
	recommendSvc recommendUseCase
	dispatchSvc  dispatchUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client and loads the vendor catalog once. A vendor source is
// required: WithVendorFile, WithVendors, or a database via WithRedis/WithValkey.
// The provided context bounds the readiness check and the initial load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
		depotLat:  config.DefaultDepotLatitude,
		depotLon:  config.DefaultDepotLongitude,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	depot := geo.NewPoint(cfg.depotLat, cfg.depotLon)
	if !geo.Valid(depot) {
		return nil, errors.New("ridedine: depot coordinates out of range")
	}

	var store *dbRedis.Store
	if cfg.driver != "" {
		s, err := createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("ridedine: database not ready: %w", err)
		}
		store = s
	}

	c, err := wireClient(cfg, store, depot)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	if _, err := c.Reload(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (*dbRedis.Store, error) {
	switch cfg.driver {
	case config.DriverRedis, config.DriverValkey:
		// Valkey speaks the same protocol; rueidis serves both.
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("ridedine: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("ridedine: unknown driver %q", cfg.driver)
	}
}

func wireClient(cfg *clientConfig, store *dbRedis.Store, depot geo.Point) (*Client, error) {
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	vendors, err := vendorSource(cfg, store)
	if err != nil {
		return nil, err
	}
	agents, err := agentSource(cfg, store, depot)
	if err != nil {
		return nil, err
	}

	catalogSvc := cataloguc.New(vendors, obs.logger)
	dispatchSvc := dispatchuc.New(agents)
	if cfg.tieBreakByID {
		dispatchSvc = dispatchSvc.WithTieBreak(dispatchuc.ByID)
	}

	// Pass nil interface (not typed nil pointer) when no database is configured.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:        store,
		depot:        depot,
		catalogSvc:   catalogSvc,
		recommendSvc: recommenduc.New(catalogSvc),
		dispatchSvc:  dispatchSvc,
		healthSvc:    healthuc.New(catalogSvc, pinger),
		obs:          obs,
	}, nil
}

func vendorSource(cfg *clientConfig, store *dbRedis.Store) (cataloguc.Source, error) {
	switch {
	case cfg.vendors != nil:
		return newStaticVendors(cfg.vendors), nil
	case cfg.vendorsPath != "":
		src, err := foodrepo.NewFileSource(cfg.vendorsPath)
		if err != nil {
			return nil, fmt.Errorf("ridedine: %w", err)
		}
		return src, nil
	case store != nil:
		return foodrepo.NewRedisSource(store), nil
	default:
		return nil, errors.New("ridedine: vendor source required (use WithVendorFile, WithVendors or WithRedis)")
	}
}

func agentSource(cfg *clientConfig, store *dbRedis.Store, depot geo.Point) (dispatchuc.AgentSource, error) {
	switch {
	case cfg.agentsSet:
		return newStaticAgents(cfg.agents, depot)
	case cfg.agentsPath != "":
		return agentrepo.NewFileSource(cfg.agentsPath, depot), nil
	case store != nil:
		return agentrepo.NewRedisRepo(store, depot), nil
	default:
		// No agents configured: every dispatch finds nobody.
		return &staticAgents{}, nil
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Recommend returns the vendors matching prefs, ordered as stored in the
// catalog. An unknown cuisine or no match yields an empty slice.
func (c *Client) Recommend(ctx context.Context, prefs Preferences) (_ []Vendor, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	q := query.New(prefs.Budget, prefs.Time, prefs.MaxDistanceKm, prefs.Cuisine)
	matches, err := c.recommendSvc.Recommend(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	out := make([]Vendor, len(matches))
	for i, v := range matches {
		out[i] = vendorFromDomain(v)
	}
	return out, nil
}

// NearestAgent picks the available agent closest to the depot.
// ok is false when no agent is available.
func (c *Client) NearestAgent(ctx context.Context) (Assignment, bool, error) {
	return c.nearest(ctx, c.depot)
}

// NearestAgentTo picks the available agent closest to (lat, lon).
func (c *Client) NearestAgentTo(ctx context.Context, lat, lon float64) (Assignment, bool, error) {
	target := geo.NewPoint(lat, lon)
	if !geo.Valid(target) {
		return Assignment{}, false, fmt.Errorf("%w: coordinates out of range", ErrInvalidQuery)
	}
	return c.nearest(ctx, target)
}

func (c *Client) nearest(ctx context.Context, target geo.Point) (_ Assignment, _ bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nearest_agent", start, err) }()

	a, ok, err := c.dispatchSvc.Nearest(ctx, target)
	if err != nil {
		return Assignment{}, false, fmt.Errorf("nearest agent: %w", err)
	}
	if !ok {
		return Assignment{}, false, nil
	}
	return assignmentFromDomain(a), true, nil
}

// Categories lists the cuisine keys of the loaded catalog with their sizes.
func (c *Client) Categories(_ context.Context) (_ []CategoryCount, err error) {
	start := time.Now()
	defer func() { c.obs.observe("categories", start, err) }()

	counts, err := c.catalogSvc.Categories()
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return categoriesFromDomain(counts), nil
}

// Reload rebuilds the catalog from its source and returns the vendor count.
// On failure the previously loaded catalog stays active.
func (c *Client) Reload(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err) }()

	idx, err := c.catalogSvc.Reload(ctx)
	if err != nil {
		return 0, fmt.Errorf("reload: %w", err)
	}
	return idx.Len(), nil
}
