package linesearch

import (
	"math"

	"github.com/mcolyer/descent/internal/optimization"
)

// Binary minimizes a unimodal f over [a, b] by repeated bisection. Each
// iteration probes the midpoints of the two halves around the current center
// c and discards the sub-interval shown to have higher cost, so the bracket
// roughly halves every two probe pairs.
//
// The search succeeds once |b-a| <= accuracy; exhausting maxSteps first
// leaves Success false. The returned X is the final center.
func Binary(f optimization.Univariate, a, b, accuracy float64, maxSteps int) (*Result, error) {
	if err := validate("binary", a, b, accuracy, maxSteps); err != nil {
		return nil, err
	}

	res := &Result{}
	c := (a + b) / 2
	for i := 0; i < maxSteps; i++ {
		if math.Abs(b-a) <= accuracy {
			res.Success = true
			break
		}
		res.Iterations++
		y := (a + c) / 2
		res.FuncEvals += 2
		if f(y) <= f(c) {
			b = c
			c = y
			continue
		}
		res.FuncEvals += 2
		z := (b + c) / 2
		if f(c) <= f(z) {
			a = y
			b = z
		} else {
			a = c
			c = z
		}
	}

	res.X = c
	res.Fun = f(c)
	return res, nil
}
