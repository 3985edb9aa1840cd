package functions

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
)

func TestKnownValues(t *testing.T) {
	tests := []struct {
		name string
		f    func([]float64) float64
		x    []float64
		want float64
	}{
		{"sphere at origin", Sphere{}.Func, []float64{0, 0, 0}, 0},
		{"sphere off origin", Sphere{}.Func, []float64{1, 2}, 5},
		{"shifted sphere at minimum", ShiftedSphere{Shift: 1}.Func, []float64{1, 1}, 0},
		{"rosenbrock at minimum", Rosenbrock{}.Func, []float64{1, 1, 1}, 0},
		{"rosenbrock at origin", Rosenbrock{}.Func, []float64{0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f(tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("f(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestGradientsMatchFiniteDifferences(t *testing.T) {
	tests := []struct {
		name string
		f    func([]float64) float64
		grad func([]float64) []float64
		x    []float64
	}{
		{"sphere", Sphere{}.Func, Sphere{}.Grad, []float64{0.3, -1.7, 2.2}},
		{"shifted sphere", ShiftedSphere{Shift: 1}.Func, ShiftedSphere{Shift: 1}.Grad, []float64{4, 3}},
		{"rosenbrock", Rosenbrock{}.Func, Rosenbrock{}.Grad, []float64{-1.2, 1, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.grad(tt.x)
			want := make([]float64, len(tt.x))
			fd.Gradient(want, tt.f, tt.x, nil)

			for i := range got {
				if math.Abs(got[i]-want[i]) > 1e-5 {
					t.Errorf("grad[%d] = %v, finite differences say %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestLookups(t *testing.T) {
	for _, name := range []string{"sphere", "shifted_sphere", "rosenbrock"} {
		f, grad, ok := Multivariate(name)
		if !ok || f == nil || grad == nil {
			t.Errorf("Multivariate(%q) should resolve", name)
		}
	}
	if _, _, ok := Multivariate("himmelblau"); ok {
		t.Error("unknown multivariate name should not resolve")
	}

	for _, name := range []string{"quadratic", "abs", "cosh"} {
		if _, ok := Scalar(name); !ok {
			t.Errorf("Scalar(%q) should resolve", name)
		}
	}
	if _, ok := Scalar("sinc"); ok {
		t.Error("unknown scalar name should not resolve")
	}
}
