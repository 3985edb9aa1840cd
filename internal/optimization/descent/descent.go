// Package descent implements first-order unconstrained minimizers: fixed-step
// gradient descent and steepest descent with an exact golden-section line
// search for the step length.
//
// Both drivers share the same skeleton. The accept test, when present, is
// evaluated strictly on the pre-update iterate, and the trajectory (when
// recorded) stores exactly the iterates from which updates were computed, so
// len(Result.Trajectory) == Result.Iterations on every exit path. Without an
// accept test the loop always runs to its budget and reports Success false:
// what convergence means is the caller's policy, not the driver's.
package descent

import (
	"github.com/mcolyer/descent/internal/optimization"
)

// Settings configures a descent run.
type Settings struct {
	// StepSize is the fixed step length used by Fixed. Steepest ignores it.
	StepSize float64

	// Accuracy is the tolerance handed to the accept test.
	Accuracy float64

	// MaxSteps bounds the number of update iterations. Zero is legal and
	// returns the starting point untouched.
	MaxSteps int

	// RecordTrajectory enables recording of the pre-update iterates.
	RecordTrajectory bool

	// AcceptTest is the termination policy. Nil disables convergence
	// checking entirely.
	AcceptTest optimization.AcceptTest

	// CountFinalEvals includes the objective and gradient evaluations made
	// while building the final Result in the counters. The reference
	// accounting leaves them out.
	CountFinalEvals bool

	// LineSearchAccuracy is the bracket tolerance of the inner
	// golden-section search used by Steepest.
	LineSearchAccuracy float64

	// LineSearchSteps is the iteration budget of the inner search.
	LineSearchSteps int
}

// DefaultSettings returns the settings the reference methods default to.
func DefaultSettings() Settings {
	return Settings{
		StepSize:           1e-2,
		Accuracy:           1e-5,
		MaxSteps:           1000,
		LineSearchAccuracy: 1e-5,
		LineSearchSteps:    1000,
	}
}

// Result describes the outcome of one descent run.
type Result struct {
	optimization.Stats

	// X is the final iterate.
	X []float64
	// Fun is the objective value at X.
	Fun float64
	// Grad is the gradient at X. Its evaluation is one beyond the loop's
	// GradEvals count unless CountFinalEvals is set.
	Grad []float64
	// Trajectory holds the pre-update iterates, one per iteration, when
	// recording was requested. Nil otherwise.
	Trajectory [][]float64
}

func (s *Settings) validate(op string, f optimization.Objective, df optimization.Gradient, x0 []float64, needStep bool) error {
	if f == nil {
		return optimization.NewInvalidInput(op, "objective function is nil")
	}
	if df == nil {
		return optimization.NewInvalidInput(op, "gradient function is nil")
	}
	if len(x0) == 0 {
		return optimization.NewInvalidInput(op, "starting point is empty")
	}
	if s.Accuracy <= 0 {
		return optimization.NewInvalidInput(op, "accuracy must be positive, got %g", s.Accuracy)
	}
	if s.MaxSteps < 0 {
		return optimization.NewInvalidInput(op, "maxSteps must be non-negative, got %d", s.MaxSteps)
	}
	if needStep && s.StepSize <= 0 {
		return optimization.NewInvalidInput(op, "step size must be positive, got %g", s.StepSize)
	}
	return nil
}

// finish builds the tail of a Result shared by both drivers.
func finish(res *Result, f optimization.Objective, df optimization.Gradient, x []float64, s Settings) *Result {
	res.X = x
	res.Fun = f(x)
	res.Grad = df(x)
	if s.CountFinalEvals {
		res.FuncEvals++
		res.GradEvals++
	}
	return res
}
