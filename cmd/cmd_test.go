package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/uptake/internal/adoption"
	"github.com/papapumpkin/uptake/internal/export"
)

const oneFramework = `
[[framework]]
name = "Solid"
launch_date = "2018-04-24"
color = "#2C4F7C"
npm_weekly = 1200000
github_stars = 33000
r = 0.61
k = 0.35
d = 0.06
u0 = 0.001
`

func TestCommands_Registered(t *testing.T) {
	t.Parallel()

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "simulate", "frameworks", "validate", "tui", "mcp", "version"} {
		if !names[want] {
			t.Errorf("expected %q subcommand to be registered on rootCmd", want)
		}
	}
}

func TestCommands_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  string
		flag string
	}{
		{"serve", "host"},
		{"serve", "port"},
		{"serve", "open"},
		{"serve", "no-watch"},
		{"serve", "mcp"},
		{"simulate", "framework"},
		{"simulate", "format"},
		{"simulate", "stride"},
		{"simulate", "now"},
		{"frameworks", "toml"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd+"/"+tt.flag, func(t *testing.T) {
			t.Parallel()
			c, _, err := rootCmd.Find([]string{tt.cmd})
			if err != nil {
				t.Fatalf("Find(%s): %v", tt.cmd, err)
			}
			if c.Flags().Lookup(tt.flag) == nil {
				t.Errorf("expected flag %q on %s", tt.flag, tt.cmd)
			}
		})
	}

	for _, flag := range []string{"config", "catalog", "log-level", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag %q", flag)
		}
	}
}

func TestWriteSimulation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	cache, err := adoption.NewCache(adoption.DefaultCatalog(), now, adoption.DefaultOptions())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	t.Run("selected frameworks keep flag order", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := writeSimulation(&buf, cache, []string{"Vue", "React"}, export.FormatCSV, 500); err != nil {
			t.Fatalf("writeSimulation: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if lines[0] != "framework,date,adoption" {
			t.Fatalf("header = %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "Vue,") {
			t.Errorf("first row = %q, want Vue first", lines[1])
		}
		if !strings.HasPrefix(lines[len(lines)-1], "React,") {
			t.Errorf("last row = %q, want React last", lines[len(lines)-1])
		}
		for _, l := range lines[1:] {
			if !strings.HasPrefix(l, "Vue,") && !strings.HasPrefix(l, "React,") {
				t.Errorf("unexpected row %q", l)
			}
		}
	})

	t.Run("all frameworks by default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := writeSimulation(&buf, cache, nil, export.FormatCSV, 10_000); err != nil {
			t.Fatalf("writeSimulation: %v", err)
		}
		for _, name := range adoption.DefaultCatalog().Names() {
			if !strings.Contains(buf.String(), name+",") {
				t.Errorf("output missing %s", name)
			}
		}
	})

	t.Run("unknown framework", func(t *testing.T) {
		t.Parallel()
		err := writeSimulation(&bytes.Buffer{}, cache, []string{"Ember"}, export.FormatCSV, 1)
		if !errors.Is(err, adoption.ErrUnknownFramework) {
			t.Errorf("err = %v, want ErrUnknownFramework", err)
		}
	})
}

func TestRunValidate(t *testing.T) {
	// Not parallel: uses global viper state and validateCmd's writers.
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(good, []byte(oneFramework), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(strings.Replace(oneFramework, "k = 0.35", "k = 2.0", 1)), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{"compiled-in", nil, false, "compiled-in catalog: 6 framework(s)"},
		{"valid file", []string{good}, false, "1 framework(s), no errors"},
		{"invalid file", []string{bad}, true, "category: bounds_violation"},
		{"missing file", []string{filepath.Join(dir, "absent.toml")}, true, "absent.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			var buf bytes.Buffer
			validateCmd.SetErr(&buf)
			defer validateCmd.SetErr(nil)

			err := runValidate(validateCmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runValidate err = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	// Not parallel: sets versionCmd's output writer.
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	if got := buf.String(); got != "uptake "+version+"\n" {
		t.Errorf("version output = %q", got)
	}
}
