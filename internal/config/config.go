// Package config loads per-environment YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source kinds for vendors and agents.
const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

// Database drivers. Both speak RESP through the same client.
const (
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// Depot defaults to the fixed dispatch point of the original deployment.
const (
	DefaultDepotLatitude  = 13.7859177
	DefaultDepotLongitude = 121.0706258
)

// Config holds the ridedine API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Depot     DepotConfig     `yaml:"depot"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// RateLimitConfig holds per-client request limits. Zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// CatalogConfig selects where vendors and agents come from.
type CatalogConfig struct {
	VendorSource string `yaml:"vendor_source"` // file, redis (default: file)
	VendorsPath  string `yaml:"vendors_path"`  // .json, .csv or .parquet
	AgentSource  string `yaml:"agent_source"`  // file, redis (default: file)
	AgentsPath   string `yaml:"agents_path"`
}

// DepotConfig is the default dispatch target.
type DepotConfig struct {
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverRedis
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "ridedine:"
	}
	if c.Catalog.VendorSource == "" {
		c.Catalog.VendorSource = SourceFile
	}
	if c.Catalog.AgentSource == "" {
		c.Catalog.AgentSource = SourceFile
	}
	if c.Depot.Latitude == nil {
		lat := DefaultDepotLatitude
		c.Depot.Latitude = &lat
	}
	if c.Depot.Longitude == nil {
		lon := DefaultDepotLongitude
		c.Depot.Longitude = &lon
	}
	if c.RateLimit.RequestsPerSec > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = max(1, int(c.RateLimit.RequestsPerSec))
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverRedis, DriverValkey:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverRedis, DriverValkey, c.Database.Driver)
	}
	if err := validateSource("catalog.vendor_source", c.Catalog.VendorSource, c.Catalog.VendorsPath, "catalog.vendors_path"); err != nil {
		return err
	}
	if err := validateSource("catalog.agent_source", c.Catalog.AgentSource, c.Catalog.AgentsPath, "catalog.agents_path"); err != nil {
		return err
	}
	if c.UsesRedis() && len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required when a redis source is selected")
	}
	if lat := *c.Depot.Latitude; lat < -90 || lat > 90 {
		return fmt.Errorf("depot.latitude must be between -90 and 90, got %v", lat)
	}
	if lon := *c.Depot.Longitude; lon < -180 || lon > 180 {
		return fmt.Errorf("depot.longitude must be between -180 and 180, got %v", lon)
	}
	if c.RateLimit.RequestsPerSec < 0 {
		return fmt.Errorf("rate_limit.requests_per_sec must not be negative, got %v", c.RateLimit.RequestsPerSec)
	}
	return nil
}

// UsesRedis reports whether any source needs the database.
func (c *Config) UsesRedis() bool {
	return c.Catalog.VendorSource == SourceRedis || c.Catalog.AgentSource == SourceRedis
}

func validateSource(field, kind, path, pathField string) error {
	switch kind {
	case SourceFile:
		if path == "" {
			return fmt.Errorf("%s is required when %s is %q", pathField, field, SourceFile)
		}
	case SourceRedis:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", field, SourceFile, SourceRedis, kind)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
