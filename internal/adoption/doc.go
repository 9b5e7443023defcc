// Package adoption models framework adoption as a logistic-growth-with-decay
// ODE,
//
//	dU/dt = r·U·(1 − U/K) − d·U
//
// integrated with fixed-step explicit Euler from each framework's launch
// date to a horizon past the reference date. Frameworks and catalogs are
// validated value objects; a Cache holds the precomputed series for a
// catalog and is never mutated once built.
package adoption
