package descent

import (
	"gonum.org/v1/gonum/floats"

	"github.com/mcolyer/descent/internal/optimization"
)

// Fixed minimizes f from x0 with fixed-step gradient descent:
//
//	x <- x - StepSize * df(x)
//
// The objective itself is never evaluated inside the loop; only the gradient
// drives the updates. FuncEvals therefore stays zero unless CountFinalEvals
// is set.
func Fixed(f optimization.Objective, df optimization.Gradient, x0 []float64, s Settings) (*Result, error) {
	if err := s.validate("fixed descent", f, df, x0, true); err != nil {
		return nil, err
	}

	x := append([]float64(nil), x0...)
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
		floats.AddScaled(x, -s.StepSize, g)
		res.Iterations++
	}

	return finish(res, f, df, x, s), nil
}
