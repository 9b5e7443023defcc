package adoption

import (
	"fmt"
	"math"
	"time"
)

// Simulation defaults.
const (
	DefaultStep    = 0.01   // years per Euler step
	DefaultHorizon = 2.0    // years simulated past now
	DaysPerYear    = 365.25 // calendar conversion for step dates

	// MaxSteps bounds the integration grid of a single series.
	MaxSteps = 1_000_000
)

// Options control the integration grid.
type Options struct {
	Step    float64 // years per step, > 0
	Horizon float64 // years past now, >= 0
}

// DefaultOptions returns the standard 0.01-year step and 2-year horizon.
func DefaultOptions() Options {
	return Options{Step: DefaultStep, Horizon: DefaultHorizon}
}

// Validate rejects a non-positive step or a negative horizon.
func (o Options) Validate() error {
	if !(o.Step > 0) || math.IsInf(o.Step, 0) {
		return fmt.Errorf("%w: step = %v, want > 0", ErrInvalidOptions, o.Step)
	}
	if !(o.Horizon >= 0) || math.IsInf(o.Horizon, 0) {
		return fmt.Errorf("%w: horizon = %v, want >= 0", ErrInvalidOptions, o.Horizon)
	}
	if o.StepDuration() <= 0 {
		return fmt.Errorf("%w: step = %v is shorter than a nanosecond", ErrInvalidOptions, o.Step)
	}
	if o.Horizon/o.Step > MaxSteps {
		return fmt.Errorf("%w: horizon %v / step %v exceeds %d steps", ErrInvalidOptions, o.Horizon, o.Step, MaxSteps)
	}
	return nil
}

// StepDuration converts a step in years to a calendar duration using
// 365.25-day years, rounded to the nanosecond.
func (o Options) StepDuration() time.Duration {
	return time.Duration(math.Round(o.Step * DaysPerYear * float64(24*time.Hour)))
}

// Derivative returns dU/dt = r·U·(1 − U/K) − d·U. K must be positive.
func Derivative(p Params, u float64) float64 {
	return p.R*u*(1-u/p.K) - p.D*u
}

// EulerStep advances u by one explicit Euler step of size dt. Negative
// results are clamped to zero so a large decay term cannot push adoption
// below the origin.
func EulerStep(p Params, u, dt float64) float64 {
	return math.Max(0, u+dt*Derivative(p, u))
}

// ElapsedYears returns whole days between launch and now, in 365.25-day
// years. Partial days are floored, so the result only changes at day
// boundaries.
func ElapsedYears(launch, now time.Time) float64 {
	// now.Sub saturates at ~292 years; Unix seconds do not.
	days := math.Floor(float64(now.Unix()-launch.Unix()) / 86400)
	return days / DaysPerYear
}

// Simulate integrates fw from its launch date to two years past now with
// the default options.
func Simulate(fw Framework, now time.Time) (Series, error) {
	return SimulateWith(fw, now, DefaultOptions())
}

// SimulateWith integrates fw over [launch, now + opts.Horizon] on a fixed
// grid of opts.Step years. The initial condition at t=0 is not part of the
// returned series; the first sample is at t=Step.
func SimulateWith(fw Framework, now time.Time, opts Options) (Series, error) {
	p := fw.Params()
	if err := p.Validate(); err != nil {
		return Series{}, fmt.Errorf("simulate %q: %w", fw.Name(), err)
	}
	if err := opts.Validate(); err != nil {
		return Series{}, fmt.Errorf("simulate %q: %w", fw.Name(), err)
	}

	duration := ElapsedYears(fw.LaunchDate(), now) + opts.Horizon
	n := math.Floor(duration / opts.Step)
	if n > MaxSteps {
		return Series{}, fmt.Errorf("simulate %q: %w: %.0f steps exceeds %d", fw.Name(), ErrInvalidOptions, n, MaxSteps)
	}

	s := Series{name: fw.Name(), step: opts.StepDuration()}
	if n <= 1 {
		return s, nil
	}
	steps := int(n)

	s.samples = make([]Sample, 0, steps-1)
	date := fw.LaunchDate()
	u := p.U0
	for i := 1; i < steps; i++ {
		u = EulerStep(p, u, opts.Step)
		date = date.Add(s.step)
		s.samples = append(s.samples, Sample{Date: date, Adoption: u * 100})
	}
	return s, nil
}
