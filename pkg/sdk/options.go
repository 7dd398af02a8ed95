package ridedine

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "valkey" or "redis"; empty means no database
	addrs     []string
	password  string
	keyPrefix string

	vendorsPath string
	vendors     []map[string]any
	agentsPath  string
	agents      []Rider
	agentsSet   bool

	depotLat, depotLon float64
	tieBreakByID       bool

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithValkey configures the client to read vendors and agents from a Valkey
// instance unless a file or in-memory source overrides them.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis is WithValkey for a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix namespaces every database key. Default: "ridedine:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithVendorFile loads the catalog from a .json, .csv or .parquet file.
func WithVendorFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.vendorsPath = path
	})
}

// WithVendors loads the catalog from raw records keyed like the vendor file
// columns (name, cuisine_type, proximity in meters, ratings, min_price, ...).
func WithVendors(records ...map[string]any) Option {
	return optionFunc(func(c *clientConfig) {
		c.vendors = append(c.vendors, records...)
	})
}

// WithAgentFile reads delivery agents from a JSON rider file on every dispatch.
func WithAgentFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.agentsPath = path
	})
}

// WithAgents uses a fixed set of delivery agents.
func WithAgents(riders ...Rider) Option {
	return optionFunc(func(c *clientConfig) {
		c.agents = append(c.agents, riders...)
		c.agentsSet = true
	})
}

// WithDepot sets the point NearestAgent measures from and agents' depot
// distances are computed against.
func WithDepot(lat, lon float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.depotLat = lat
		c.depotLon = lon
	})
}

// WithTieBreakByID resolves exact distance ties by the smaller agent ID
// instead of source order.
func WithTieBreakByID() Option {
	return optionFunc(func(c *clientConfig) {
		c.tieBreakByID = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
