package descent

import (
	"gonum.org/v1/gonum/floats"

	"github.com/mcolyer/descent/internal/optimization"
	"github.com/mcolyer/descent/internal/optimization/linesearch"
)

// Steepest minimizes f from x0 with steepest descent: each iteration picks
// the step length by exactly minimizing alpha -> f(x - alpha*grad) over
// [0, 1] with a golden-section search and applies
//
//	x <- x - alpha* * df(x)
//
// The inner search's objective evaluations are aggregated into the outer
// FuncEvals counter.
func Steepest(f optimization.Objective, df optimization.Gradient, x0 []float64, s Settings) (*Result, error) {
	if err := s.validate("steepest descent", f, df, x0, false); err != nil {
		return nil, err
	}
	if s.LineSearchAccuracy <= 0 {
		s.LineSearchAccuracy = 1e-5
	}
	if s.LineSearchSteps <= 0 {
		s.LineSearchSteps = 1000
	}

	x := append([]float64(nil), x0...)
	trial := make([]float64, len(x))
	res := &Result{}
	if s.RecordTrajectory {
		res.Trajectory = make([][]float64, 0, s.MaxSteps)
	}

	for i := 0; i < s.MaxSteps; i++ {
		if s.AcceptTest != nil && s.AcceptTest(df, x, s.Accuracy) {
			res.Success = true
			break
		}
		if s.RecordTrajectory {
			res.Trajectory = append(res.Trajectory, append([]float64(nil), x...))
		}
		g := df(x)
		res.GradEvals++

		along := func(alpha float64) float64 {
			floats.AddScaledTo(trial, x, -alpha, g)
			return f(trial)
		}
		ls, err := linesearch.Golden(along, 0, 1, s.LineSearchAccuracy, s.LineSearchSteps)
		if err != nil {
			return nil, optimization.WrapError(err, "steepest descent: inner line search failed")
		}
		res.FuncEvals += ls.FuncEvals

		floats.AddScaled(x, -ls.X, g)
		res.Iterations++
	}

	return finish(res, f, df, x, s), nil
}
