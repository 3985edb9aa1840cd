// Package linesearch implements derivative-free bracketing minimizers for
// unimodal scalar functions: binary (bisection-style) search, golden-section
// search, and parabolic interpolation search.
//
// All three operate on an initial bracket [a, b] assumed to contain a single
// local minimizer and narrow it until its width drops to the requested
// accuracy or the iteration budget runs out. They are pure functions with no
// shared state and are safe to call concurrently as long as the objective
// itself is reentrant.
package linesearch

import (
	"github.com/mcolyer/descent/internal/optimization"
)

// Result describes the outcome of one bracketing search.
type Result struct {
	optimization.Stats

	// X is the approximate minimizer.
	X float64
	// Fun is the objective value at X.
	Fun float64
}

// validate checks the common preconditions of the three searches.
// A zero maxSteps is legal and yields an immediate non-converged Result;
// only a negative budget is rejected.
func validate(op string, a, b, accuracy float64, maxSteps int) error {
	if a >= b {
		return optimization.NewInvalidInput(op, "bracket [%g, %g] is empty", a, b)
	}
	if accuracy <= 0 {
		return optimization.NewInvalidInput(op, "accuracy must be positive, got %g", accuracy)
	}
	if maxSteps < 0 {
		return optimization.NewInvalidInput(op, "maxSteps must be non-negative, got %d", maxSteps)
	}
	return nil
}
