// Package optimization defines the shared types of the descent optimization core.
package optimization

import (
	"gonum.org/v1/gonum/floats"
)

// Objective is a multivariate objective function f: R^n -> R.
type Objective func(x []float64) float64

// Gradient evaluates the gradient of an objective at x.
// The returned slice is owned by the caller.
type Gradient func(x []float64) []float64

// Univariate is a scalar objective used by the bracketing line searches.
type Univariate func(x float64) float64

// AcceptTest decides whether a descent iterate is good enough to stop.
// It receives the gradient function rather than a precomputed gradient so the
// caller controls how many evaluations convergence checking costs. A nil
// AcceptTest means the driver has no convergence check and always runs to its
// iteration budget.
type AcceptTest func(df Gradient, x []float64, tol float64) bool

// GradNormTest is the stock accept test: stop once the squared Euclidean norm
// of the gradient drops to tol or below.
func GradNormTest(df Gradient, x []float64, tol float64) bool {
	g := df(x)
	return floats.Dot(g, g) <= tol
}

// Stats records the bookkeeping every optimization result carries.
// Success is true only when the algorithm terminated through its stopping
// condition; exhausting the iteration budget leaves it false with an empty
// Message, which callers may populate.
type Stats struct {
	// Success reports whether the stopping condition was met before the
	// iteration budget ran out.
	Success bool

	// Message optionally describes how the run ended. The core leaves it
	// empty for ordinary non-convergence.
	Message string

	// FuncEvals counts objective evaluations made by the algorithm.
	FuncEvals int

	// GradEvals counts gradient evaluations made by the algorithm.
	GradEvals int

	// HessEvals counts Hessian evaluations. No second-order method exists
	// in this core, so it is always zero.
	HessEvals int

	// Iterations counts completed narrowing or update steps.
	Iterations int
}
