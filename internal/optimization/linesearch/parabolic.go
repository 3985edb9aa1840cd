package linesearch

import (
	"math"

	"github.com/mcolyer/descent/internal/optimization"
)

// Parabolic minimizes a unimodal f over [a, b] by successive parabolic
// interpolation: it keeps a triple x1 < x2 < x3, fits a parabola through the
// three (x, f(x)) pairs, probes its vertex, and keeps the two points that
// bracket the probe.
//
// When the three values are nearly collinear the vertex formula is
// ill-conditioned; in that case the step falls back to bisecting the wider
// sub-interval so the bracket keeps shrinking and no NaN or Inf can enter it.
// The search succeeds once x3-x1 <= accuracy; the returned X is the midpoint
// of the final bracket.
func Parabolic(f optimization.Univariate, a, b, accuracy float64, maxSteps int) (*Result, error) {
	if err := validate("parabolic", a, b, accuracy, maxSteps); err != nil {
		return nil, err
	}

	res := &Result{}
	x1, x3 := a, b
	x2 := (a + b) / 2
	f1, f2, f3 := f(x1), f(x2), f(x3)
	res.FuncEvals += 3
	for i := 0; i < maxSteps; i++ {
		if x3-x1 <= accuracy {
			res.Success = true
			break
		}
		res.Iterations++

		u, ok := vertex(x1, x2, x3, f1, f2, f3)
		if !ok {
			// Degenerate triple. Bisect the wider side instead.
			if x3-x2 > x2-x1 {
				u = (x2 + x3) / 2
			} else {
				u = (x1 + x2) / 2
			}
		}
		fu := f(u)
		res.FuncEvals++

		if x2 <= u {
			if f2 <= fu {
				x3, f3 = u, fu
			} else {
				x1, x2, f1, f2 = x2, u, f2, fu
			}
		} else {
			if fu <= f2 {
				x2, x3, f2, f3 = u, x2, fu, f2
			} else {
				x1, f1 = u, fu
			}
		}
	}

	res.X = (x1 + x3) / 2
	res.Fun = f(res.X)
	return res, nil
}

// vertex computes the minimizer of the parabola through the three points.
// It reports false when the denominator is too small relative to the bracket
// to trust, or when the vertex lands on or outside the bracket edges.
func vertex(x1, x2, x3, f1, f2, f3 float64) (float64, bool) {
	d21 := x2 - x1
	d23 := x2 - x3
	num := d21*d21*(f2-f3) - d23*d23*(f2-f1)
	den := 2 * (d21*(f2-f3) - d23*(f2-f1))

	scale := math.Max(math.Abs(f1), math.Max(math.Abs(f2), math.Abs(f3)))
	if math.Abs(den) <= 1e-12*(1+scale)*(x3-x1) {
		return 0, false
	}
	u := x2 - num/den
	if math.IsNaN(u) || u <= x1 || u >= x3 {
		return 0, false
	}
	return u, true
}
