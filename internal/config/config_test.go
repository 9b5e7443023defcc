package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Server.Host", cfg.Server.Host, "127.0.0.1"},
		{"Server.Port", cfg.Server.Port, 8050},
		{"Server.OpenBrowser", cfg.Server.OpenBrowser, false},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "text"},
		{"Catalog.Path", cfg.Catalog.Path, ""},
		{"Catalog.Watch", cfg.Catalog.Watch, true},
		{"Simulation.Step", cfg.Simulation.Step, 0.01},
		{"Simulation.HorizonYears", cfg.Simulation.HorizonYears, 2.0},
		{"Telemetry.Path", cfg.Telemetry.Path, ""},
		{"MCP.Enabled", cfg.MCP.Enabled, false},
		{"Addr", cfg.Server.Addr(), "127.0.0.1:8050"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "port",
			envKey: "UPTAKE_SERVER_PORT",
			envVal: "9090",
			field:  func(c Config) any { return c.Server.Port },
			want:   9090,
		},
		{
			name:   "catalog path",
			envKey: "UPTAKE_CATALOG_PATH",
			envVal: "/etc/uptake/frameworks.toml",
			field:  func(c Config) any { return c.Catalog.Path },
			want:   "/etc/uptake/frameworks.toml",
		},
		{
			name:   "log format",
			envKey: "UPTAKE_LOG_FORMAT",
			envVal: "json",
			field:  func(c Config) any { return c.Log.Format },
			want:   "json",
		},
		{
			name:   "mcp enabled",
			envKey: "UPTAKE_MCP_ENABLED",
			envVal: "true",
			field:  func(c Config) any { return c.MCP.Enabled },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			t.Setenv(tt.envKey, tt.envVal)
			BindEnv()

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), ".uptake.yaml")
	content := "server:\n  port: 8123\nsimulation:\n  step: 0.05\nverbose: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want 8123", cfg.Server.Port)
	}
	if cfg.Simulation.Step != 0.05 {
		t.Errorf("Simulation.Step = %v, want 0.05", cfg.Simulation.Step)
	}
	if cfg.Simulation.HorizonYears != 2.0 {
		t.Errorf("Simulation.HorizonYears = %v, want default 2", cfg.Simulation.HorizonYears)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("verbose should raise Log.Level to debug, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Server:     ServerConfig{Host: "127.0.0.1", Port: 8050},
			Log:        LogConfig{Level: "info", Format: "text"},
			Simulation: SimulationConfig{Step: 0.01, HorizonYears: 2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"port zero lets the OS pick", func(c *Config) { c.Server.Port = 0 }, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"zero step", func(c *Config) { c.Simulation.Step = 0 }, true},
		{"negative horizon", func(c *Config) { c.Simulation.HorizonYears = -1 }, true},
		{"zero horizon", func(c *Config) { c.Simulation.HorizonYears = 0 }, false},
		{"sub-nanosecond step", func(c *Config) { c.Simulation.Step = 1e-18 }, true},
		{"too many steps", func(c *Config) { c.Simulation.Step = 1e-13 }, true},
		{"huge horizon", func(c *Config) { c.Simulation.HorizonYears = 1e300 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
