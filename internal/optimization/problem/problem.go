// Package problem defines the contract a caller-supplied optimization
// problem satisfies and adapts it to the plain function types the core
// consumes. The core itself never differentiates; when a problem carries no
// analytic gradient the fallback here supplies central finite differences.
package problem

import (
	"gonum.org/v1/gonum/diff/fd"

	"github.com/mcolyer/descent/internal/optimization"
)

// Problem supplies an objective to minimize.
type Problem interface {
	Func(x []float64) float64
}

// Differentiable is implemented by problems that also carry an analytic
// gradient.
type Differentiable interface {
	Problem
	Grad(x []float64) []float64
}

// Objective adapts a Problem to the core's objective type.
func Objective(p Problem) optimization.Objective {
	return p.Func
}

// GradientOf returns p's analytic gradient when it has one, and a central
// finite-difference approximation otherwise.
func GradientOf(p Problem) optimization.Gradient {
	if d, ok := p.(Differentiable); ok {
		return d.Grad
	}
	settings := &fd.Settings{Formula: fd.Central}
	return func(x []float64) []float64 {
		g := make([]float64, len(x))
		fd.Gradient(g, p.Func, x, settings)
		return g
	}
}
