package adoption

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for launch dates.
const DateLayout = "2006-01-02"

// Params are the coefficients of dU/dt = r·U·(1 − U/K) − d·U.
type Params struct {
	R  float64 `json:"r" yaml:"r"`   // growth rate
	K  float64 `json:"k" yaml:"k"`   // carrying capacity
	D  float64 `json:"d" yaml:"d"`   // decay rate
	U0 float64 `json:"u0" yaml:"u0"` // initial adoption fraction
}

// Validate checks every coefficient against its domain. The returned error
// is a *ValidationError wrapping ErrInvalidParameter.
func (p Params) Validate() error {
	check := func(field string, v float64, ok bool, want string) error {
		if ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return nil
		}
		return &ValidationError{
			Category: ValCatBounds,
			Field:    field,
			Err:      fmt.Errorf("%w: %s = %v, want %s", ErrInvalidParameter, field, v, want),
		}
	}
	if err := check("r", p.R, p.R > 0, "r > 0"); err != nil {
		return err
	}
	if err := check("k", p.K, p.K > 0 && p.K <= 1, "0 < K <= 1"); err != nil {
		return err
	}
	if err := check("d", p.D, p.D >= 0, "d >= 0"); err != nil {
		return err
	}
	if err := check("u0", p.U0, p.U0 >= 0 && p.U0 <= 1, "0 <= U0 <= 1"); err != nil {
		return err
	}
	return nil
}

// FrameworkSpec is the raw, unvalidated form of a framework entry, as it
// appears in the compiled-in table or a TOML catalog file.
type FrameworkSpec struct {
	Name        string  `toml:"name"`
	LaunchDate  string  `toml:"launch_date"`
	Color       string  `toml:"color"`
	NPMWeekly   int64   `toml:"npm_weekly"`
	GitHubStars int64   `toml:"github_stars"`
	R           float64 `toml:"r"`
	K           float64 `toml:"k"`
	D           float64 `toml:"d"`
	U0          float64 `toml:"u0"`
}

// Framework is a validated, immutable framework entry. The zero value is
// not valid; build one with NewFramework.
type Framework struct {
	name        string
	launch      time.Time
	color       string
	npmWeekly   int64
	githubStars int64
	params      Params
}

// NewFramework validates spec and returns the corresponding Framework.
func NewFramework(spec FrameworkSpec) (Framework, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return Framework{}, &ValidationError{Category: ValCatMissingField, Field: "name", Err: ErrMissingField}
	}

	fail := func(err error) (Framework, error) {
		if ve, ok := err.(*ValidationError); ok {
			ve.Framework = name
			return Framework{}, ve
		}
		return Framework{}, err
	}

	launch, err := ParseDate(spec.LaunchDate)
	if err != nil {
		return fail(&ValidationError{Category: ValCatDate, Field: "launch_date", Err: err})
	}
	color, err := normalizeColor(spec.Color)
	if err != nil {
		return fail(&ValidationError{Category: ValCatColor, Field: "color", Err: err})
	}
	if spec.NPMWeekly < 0 {
		return fail(&ValidationError{Category: ValCatBounds, Field: "npm_weekly",
			Err: fmt.Errorf("%w: npm_weekly = %d, want >= 0", ErrInvalidParameter, spec.NPMWeekly)})
	}
	if spec.GitHubStars < 0 {
		return fail(&ValidationError{Category: ValCatBounds, Field: "github_stars",
			Err: fmt.Errorf("%w: github_stars = %d, want >= 0", ErrInvalidParameter, spec.GitHubStars)})
	}

	params := Params{R: spec.R, K: spec.K, D: spec.D, U0: spec.U0}
	if err := params.Validate(); err != nil {
		return fail(err)
	}

	return Framework{
		name:        name,
		launch:      launch,
		color:       color,
		npmWeekly:   spec.NPMWeekly,
		githubStars: spec.GitHubStars,
		params:      params,
	}, nil
}

// Name returns the framework's display name.
func (f Framework) Name() string { return f.name }

// LaunchDate returns the launch date at UTC midnight.
func (f Framework) LaunchDate() time.Time { return f.launch }

// LaunchDateString returns the launch date formatted as YYYY-MM-DD.
func (f Framework) LaunchDateString() string {
	if f.launch.IsZero() {
		return ""
	}
	return f.launch.Format(DateLayout)
}

// Color returns the #RRGGBB display color.
func (f Framework) Color() string { return f.color }

// NPMWeekly returns the weekly npm download snapshot.
func (f Framework) NPMWeekly() int64 { return f.npmWeekly }

// GitHubStars returns the GitHub star snapshot.
func (f Framework) GitHubStars() int64 { return f.githubStars }

// Params returns the model coefficients.
func (f Framework) Params() Params { return f.params }

// Spec converts the framework back to its raw form.
func (f Framework) Spec() FrameworkSpec {
	return FrameworkSpec{
		Name:        f.name,
		LaunchDate:  f.LaunchDateString(),
		Color:       f.color,
		NPMWeekly:   f.npmWeekly,
		GitHubStars: f.githubStars,
		R:           f.params.R,
		K:           f.params.K,
		D:           f.params.D,
		U0:          f.params.U0,
	}
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// RGB splits a #RRGGBB color into its components.
func RGB(color string) (r, g, b uint8, err error) {
	c, err := normalizeColor(color)
	if err != nil {
		return 0, 0, 0, err
	}
	v, _ := strconv.ParseUint(c[1:], 16, 32)
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func normalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return "", fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidColor, s)
	}
	if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
		return "", fmt.Errorf("%w: %q is not #RRGGBB", ErrInvalidColor, s)
	}
	return strings.ToUpper(s), nil
}
