package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/papapumpkin/uptake/internal/adoption"
)

// ServerConfig holds the dashboard listener settings.
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	OpenBrowser bool   `mapstructure:"open_browser"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// CatalogConfig points at an optional TOML catalog file. An empty path means
// the compiled-in catalog.
type CatalogConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// SimulationConfig holds the integrator options, both in years.
type SimulationConfig struct {
	Step         float64 `mapstructure:"step"`
	HorizonYears float64 `mapstructure:"horizon_years"`
}

// TelemetryConfig enables the JSONL event stream when Path is set.
type TelemetryConfig struct {
	Path string `mapstructure:"path"`
}

// MCPConfig controls the SSE endpoint mounted by serve.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config holds all runtime configuration for an uptake process.
// Values are populated from .uptake.yaml, UPTAKE_* env vars, and CLI flags.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	MCP        MCPConfig        `mapstructure:"mcp"`
	Verbose    bool             `mapstructure:"verbose"`
}

// SetDefaults registers the built-in defaults with viper.
func SetDefaults() {
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8050)
	viper.SetDefault("server.open_browser", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("catalog.path", "")
	viper.SetDefault("catalog.watch", true)
	viper.SetDefault("simulation.step", 0.01)
	viper.SetDefault("simulation.horizon_years", 2.0)
	viper.SetDefault("telemetry.path", "")
	viper.SetDefault("mcp.enabled", false)
	viper.SetDefault("verbose", false)
}

// BindEnv maps UPTAKE_SECTION_KEY environment variables onto section.key.
func BindEnv() {
	viper.SetEnvPrefix("UPTAKE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Verbose && cfg.Log.Level == "info" {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks ranges that viper cannot express.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q, want text or json", ErrInvalidConfig, c.Log.Format)
	}
	if !(c.Simulation.Step > 0) || math.IsInf(c.Simulation.Step, 0) {
		return fmt.Errorf("%w: simulation.step must be > 0", ErrInvalidConfig)
	}
	if !(c.Simulation.HorizonYears >= 0) || math.IsInf(c.Simulation.HorizonYears, 0) {
		return fmt.Errorf("%w: simulation.horizon_years must be >= 0", ErrInvalidConfig)
	}
	opts := adoption.Options{Step: c.Simulation.Step, Horizon: c.Simulation.HorizonYears}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: simulation: %w", ErrInvalidConfig, err)
	}
	return nil
}
