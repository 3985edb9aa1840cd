package linesearch

import (
	"math"

	"github.com/mcolyer/descent/internal/optimization"
)

// tau is the golden ratio. The two interior probes sit at a + (b-a)/tau² and
// a + (b-a)/tau, so each narrowing step shrinks the bracket by a factor 1/tau.
var tau = (1 + math.Sqrt(5)) / 2

// Golden minimizes a unimodal f over [a, b] with a golden-section search.
// Both interior points are re-evaluated every iteration, costing two
// objective evaluations per narrowing step.
//
// The search succeeds once b-a <= accuracy; the returned X is the midpoint
// of the final bracket.
func Golden(f optimization.Univariate, a, b, accuracy float64, maxSteps int) (*Result, error) {
	if err := validate("golden", a, b, accuracy, maxSteps); err != nil {
		return nil, err
	}

	res := &Result{}
	y := a + (b-a)/(tau*tau)
	z := a + (b-a)/tau
	for i := 0; i < maxSteps; i++ {
		if b-a <= accuracy {
			res.Success = true
			break
		}
		res.Iterations++
		res.FuncEvals += 2
		if f(y) <= f(z) {
			b = z
			z = y
			y = a + (b-a)/(tau*tau)
		} else {
			a = y
			y = z
			z = a + (b-a)/tau
		}
	}

	res.X = (a + b) / 2
	res.Fun = f(res.X)
	return res, nil
}
