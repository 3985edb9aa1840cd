// Package functions provides benchmark objectives with analytic gradients.
// They back the algorithm tests and are the functions the HTTP service lets
// callers minimize by name.
package functions

import (
	"math"

	"github.com/mcolyer/descent/internal/optimization"
)

// Sphere is f(x) = sum x_i^2, minimized at the origin.
type Sphere struct{}

func (Sphere) Func(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func (Sphere) Grad(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, v := range x {
		g[i] = 2 * v
	}
	return g
}

// ShiftedSphere is f(x) = sum (x_i - Shift)^2, minimized at [Shift, ...].
type ShiftedSphere struct {
	Shift float64
}

func (s ShiftedSphere) Func(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += (v - s.Shift) * (v - s.Shift)
	}
	return sum
}

func (s ShiftedSphere) Grad(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, v := range x {
		g[i] = 2 * (v - s.Shift)
	}
	return g
}

// Rosenbrock is the classic banana-valley function, minimized at [1, ..., 1].
// Its narrow curved valley makes it a stress test for first-order methods.
type Rosenbrock struct{}

func (Rosenbrock) Func(x []float64) float64 {
	sum := 0.0
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		sum += 100*a*a + b*b
	}
	return sum
}

func (Rosenbrock) Grad(x []float64) []float64 {
	g := make([]float64, len(x))
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		g[i] += -400*x[i]*a - 2*(1-x[i])
		g[i+1] += 200 * a
	}
	return g
}

// Quadratic is the scalar benchmark (x - Center)^2 for the line searches.
type Quadratic struct {
	Center float64
}

func (q Quadratic) Eval(x float64) float64 {
	d := x - q.Center
	return d * d
}

// Multivariate looks up a named multivariate benchmark, returning its
// objective and gradient.
func Multivariate(name string) (optimization.Objective, optimization.Gradient, bool) {
	switch name {
	case "sphere":
		f := Sphere{}
		return f.Func, f.Grad, true
	case "shifted_sphere":
		f := ShiftedSphere{Shift: 1}
		return f.Func, f.Grad, true
	case "rosenbrock":
		f := Rosenbrock{}
		return f.Func, f.Grad, true
	}
	return nil, nil, false
}

// Scalar looks up a named scalar benchmark for the line searches.
func Scalar(name string) (optimization.Univariate, bool) {
	switch name {
	case "quadratic":
		return Quadratic{Center: 2}.Eval, true
	case "abs":
		return func(x float64) float64 { return math.Abs(x - 2) }, true
	case "cosh":
		return func(x float64) float64 { return math.Cosh(x - 1) }, true
	}
	return nil, false
}
