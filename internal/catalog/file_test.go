package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papapumpkin/uptake/internal/adoption"
)

const twoFrameworks = `
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

[[framework]]
name = "Qwik"
launch_date = "2021-09-21"
color = "#AC7EF4"
npm_weekly = 90000
github_stars = 21000
r = 0.7
k = 0.2
d = 0.1
u0 = 0.001
`

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "frameworks.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	return path
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()
	cat, err := Parse([]byte(twoFrameworks))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cat.Names(); len(got) != 2 || got[0] != "Solid" || got[1] != "Qwik" {
		t.Fatalf("Names() = %v, want [Solid Qwik]", got)
	}
	solid, _ := cat.Lookup("Solid")
	if p := solid.Params(); p.R != 0.61 || p.K != 0.35 || p.D != 0.06 || p.U0 != 0.001 {
		t.Errorf("Solid params = %+v", p)
	}
	if solid.NPMWeekly() != 1_200_000 || solid.GitHubStars() != 33_000 {
		t.Errorf("Solid counts = %d/%d", solid.NPMWeekly(), solid.GitHubStars())
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		sentinel error
		contains string
	}{
		{"empty file", "", adoption.ErrEmptyCatalog, "validating catalog"},
		{"zero capacity", strings.Replace(twoFrameworks, "k = 0.35", "k = 0.0", 1), adoption.ErrInvalidParameter, "framework Solid"},
		{"bad date", strings.Replace(twoFrameworks, "2021-09-21", "21/09/2021", 1), adoption.ErrInvalidDate, "framework Qwik"},
		{"duplicate name", strings.Replace(twoFrameworks, `"Qwik"`, `"Solid"`, 1), adoption.ErrDuplicateName, "entry 2"},
		{"unknown key", strings.Replace(twoFrameworks, "d = 0.06", "decay = 0.06", 1), nil, "decay"},
		{"not toml", "[[framework]\nname = ", nil, "parsing catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("err = %v, want errors.Is %v", err, tt.sentinel)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %q, want it to contain %q", err, tt.contains)
			}
		})
	}
}

func TestEncode_RoundTripsDefaultCatalog(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Encode(&buf, adoption.DefaultCatalog()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	cat, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse(Encode(default)): %v\n%s", err, buf.String())
	}
	want := adoption.DefaultSpecs()
	got := cat.Specs()
	if len(got) != len(want) {
		t.Fatalf("round trip has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, ErrNoCatalog) {
		t.Errorf("err = %v, want ErrNoCatalog", err)
	}
}

func TestLoad_PrefixesPath(t *testing.T) {
	t.Parallel()
	path := writeCatalog(t, t.TempDir(), strings.Replace(twoFrameworks, "r = 0.61", "r = -1.0", 1))
	_, err := Load(path)
	if err == nil || !strings.HasPrefix(err.Error(), path) {
		t.Errorf("err = %v, want prefix %q", err, path)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	cat, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\"): %v", err)
	}
	if cat.Len() != 6 || cat.First().Name() != "React" {
		t.Errorf("Resolve(\"\") = %v, want compiled-in catalog", cat.Names())
	}

	path := writeCatalog(t, t.TempDir(), twoFrameworks)
	cat, err = Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", path, err)
	}
	if cat.First().Name() != "Solid" {
		t.Errorf("Resolve(file).First() = %q, want Solid", cat.First().Name())
	}
}
