package linesearch

import (
	"math"
	"testing"

	"github.com/mcolyer/descent/internal/optimization"
)

// Search is the common shape of the three bracketing searches.
type Search func(f optimization.Univariate, a, b, accuracy float64, maxSteps int) (*Result, error)

var searches = []struct {
	name   string
	search Search
}{
	{"binary", Binary},
	{"golden", Golden},
	{"parabolic", Parabolic},
}

func TestSearchesFindMinimizer(t *testing.T) {
	tests := []struct {
		name     string
		f        optimization.Univariate
		a, b     float64
		min      float64
		accuracy float64
	}{
		{
			name:     "shifted quadratic",
			f:        func(x float64) float64 { return (x - 2) * (x - 2) },
			a:        0,
			b:        4,
			min:      2,
			accuracy: 1e-4,
		},
		{
			name:     "asymmetric bracket",
			f:        func(x float64) float64 { return (x - 2) * (x - 2) },
			a:        -1,
			b:        10,
			min:      2,
			accuracy: 1e-5,
		},
		{
			name:     "quartic",
			f:        func(x float64) float64 { return math.Pow(x-1.5, 4) },
			a:        0,
			b:        3,
			min:      1.5,
			accuracy: 1e-4,
		},
		{
			name:     "abs value",
			f:        func(x float64) float64 { return math.Abs(x + 0.5) },
			a:        -2,
			b:        1,
			min:      -0.5,
			accuracy: 1e-5,
		},
	}

	for _, s := range searches {
		for _, tt := range tests {
			t.Run(s.name+"/"+tt.name, func(t *testing.T) {
				res, err := s.search(tt.f, tt.a, tt.b, tt.accuracy, 1000)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !res.Success {
					t.Fatalf("search did not converge: %+v", res.Stats)
				}
				// Parabolic convergence is non-monotone, so allow a small
				// constant factor on the location tolerance.
				tol := 4 * tt.accuracy
				if math.Abs(res.X-tt.min) > tol {
					t.Errorf("X = %v, want within %v of %v", res.X, tol, tt.min)
				}
				if res.Fun != tt.f(res.X) {
					t.Errorf("Fun = %v, want f(X) = %v", res.Fun, tt.f(res.X))
				}
				if res.GradEvals != 0 || res.HessEvals != 0 {
					t.Errorf("derivative-free search reported GradEvals=%d HessEvals=%d", res.GradEvals, res.HessEvals)
				}
				if res.FuncEvals <= 0 || res.Iterations <= 0 {
					t.Errorf("implausible counters: %+v", res.Stats)
				}
			})
		}
	}
}

func TestGoldenReferenceCase(t *testing.T) {
	f := func(x float64) float64 { return (x - 2) * (x - 2) }
	res, err := Golden(f, 0, 4, 1e-4, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatal("golden search did not converge")
	}
	if math.Abs(res.X-2.0) > 1e-4 {
		t.Errorf("X = %v, want within 1e-4 of 2.0", res.X)
	}
}

func TestSearchesRejectInvalidInput(t *testing.T) {
	f := func(x float64) float64 { return x * x }

	tests := []struct {
		name     string
		a, b     float64
		accuracy float64
		maxSteps int
	}{
		{"empty bracket", 2, 1, 1e-5, 100},
		{"point bracket", 1, 1, 1e-5, 100},
		{"zero accuracy", 0, 1, 0, 100},
		{"negative accuracy", 0, 1, -1e-3, 100},
		{"negative budget", 0, 1, 1e-5, -1},
	}

	for _, s := range searches {
		for _, tt := range tests {
			t.Run(s.name+"/"+tt.name, func(t *testing.T) {
				res, err := s.search(f, tt.a, tt.b, tt.accuracy, tt.maxSteps)
				if err == nil {
					t.Fatal("expected an error")
				}
				if res != nil {
					t.Errorf("expected nil result on error, got %+v", res)
				}
				if !optimization.IsInvalidInput(err) {
					t.Errorf("error %v should unwrap to ErrInvalidInput", err)
				}
			})
		}
	}
}

func TestSearchesZeroBudget(t *testing.T) {
	f := func(x float64) float64 { return (x - 2) * (x - 2) }

	for _, s := range searches {
		t.Run(s.name, func(t *testing.T) {
			res, err := s.search(f, 0, 4, 1e-6, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Success {
				t.Error("Success should be false with a zero budget")
			}
			if res.Iterations != 0 {
				t.Errorf("Iterations = %d, want 0", res.Iterations)
			}
			if res.X != 2 { // initial midpoint of [0, 4]
				t.Errorf("X = %v, want the initial midpoint 2", res.X)
			}
		})
	}
}

func TestSearchesAreDeterministic(t *testing.T) {
	f := func(x float64) float64 { return math.Cos(x) + x*x/10 }

	for _, s := range searches {
		t.Run(s.name, func(t *testing.T) {
			first, err := s.search(f, -1, 5, 1e-6, 500)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			second, err := s.search(f, -1, 5, 1e-6, 500)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *first != *second {
				t.Errorf("results differ between identical calls:\n%+v\n%+v", first, second)
			}
		})
	}
}

func TestSearchesExhaustBudget(t *testing.T) {
	f := func(x float64) float64 { return (x - 2) * (x - 2) }

	for _, s := range searches {
		t.Run(s.name, func(t *testing.T) {
			res, err := s.search(f, 0, 4, 1e-12, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Success {
				t.Error("Success should be false when the budget runs out")
			}
			if res.Iterations != 3 {
				t.Errorf("Iterations = %d, want 3", res.Iterations)
			}
		})
	}
}

func TestParabolicDegenerateBracket(t *testing.T) {
	// Piecewise-linear vee: every interior triple is collinear on one side,
	// so the vertex formula degenerates and the bisection fallback has to
	// carry the search.
	f := func(x float64) float64 { return math.Abs(x - 1) }

	res, err := Parabolic(f, 0, 4, 1e-5, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("parabolic search did not converge on a vee: %+v", res.Stats)
	}
	if math.Abs(res.X-1) > 4e-5 {
		t.Errorf("X = %v, want within 4e-5 of 1", res.X)
	}
	if math.IsNaN(res.X) || math.IsInf(res.X, 0) {
		t.Errorf("degenerate bracket leaked a non-finite X: %v", res.X)
	}
}

func TestBinaryEvaluationAccounting(t *testing.T) {
	// Nothing is cached, so the probe counter must equal the number of
	// times f actually ran, on both the two- and four-evaluation branches.
	evals := 0
	f := func(x float64) float64 {
		evals++
		return (x - 1) * (x - 1)
	}

	res, err := Binary(f, 0, 4, 1e-3, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatal("binary search did not converge")
	}
	// The final f(c) for Result.Fun is not part of the probe count.
	if evals != res.FuncEvals+1 {
		t.Errorf("observed %d evaluations, counter says %d probes", evals, res.FuncEvals)
	}
}
