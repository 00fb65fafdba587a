package interpolate

import (
	"github.com/phil-mansfield/interp1d/math/mat"
)

// Lagrange is the unique polynomial of degree n-1 through all n samples,
// evaluated in barycentric form.
//
// High degree interpolants through evenly spaced points oscillate wildly near
// the edges of the domain (Runge's phenomenon). Lagrange does nothing to
// correct for this.
type Lagrange struct {
	base
	ws []float64
	// diff is the barycentric differentiation matrix: diff * f(t) = f'(t) for
	// any polynomial f of degree n-1 or less.
	diff *mat.Matrix
}

// NewLagrange creates a global polynomial interpolator through (ts, us).
// Construction is O(n^2) and each evaluation is O(n).
func NewLagrange(ts, us []float64, opts ...Option) (*Lagrange, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newLagrange(s, loadOptions(opts)), nil
}

func newLagrange(s *SampleSet, opt *Options) *Lagrange {
	n := s.Len()
	lag := &Lagrange{base: newBase(s, opt, "lagrange")}

	// Rescaling the differences by a quarter of the domain width keeps the
	// products from over- or underflowing. The barycentric formula is
	// invariant under a common rescaling of the weights.
	lo, hi := s.Domain()
	scale := (hi - lo) / 4

	lag.ws = make([]float64, n)
	for i := range lag.ws {
		prod := 1.0
		for j := range s.ts {
			if j != i {
				prod *= (s.ts[i] - s.ts[j]) / scale
			}
		}
		lag.ws[i] = 1 / prod
	}

	lag.diff = mat.NewMatrix(nil, n, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d := (lag.ws[j] / lag.ws[i]) / (s.ts[i] - s.ts[j])
			lag.diff.Set(i, j, d)
			sum += d
		}
		lag.diff.Set(i, i, -sum)
	}

	return lag
}

// Weights returns a copy of the (rescaled) barycentric weights.
func (lag *Lagrange) Weights() []float64 {
	return append([]float64(nil), lag.ws...)
}

// Eval evaluates the polynomial at x.
func (lag *Lagrange) Eval(x float64) float64 {
	x, _, _ = lag.locate(x)
	return lag.bary(x, lag.s.us)
}

// bary evaluates the polynomial which takes the values vals at the sample
// points.
func (lag *Lagrange) bary(x float64, vals []float64) float64 {
	num, den := 0.0, 0.0
	for i, t := range lag.s.ts {
		if x == t {
			return vals[i]
		}
		c := lag.ws[i] / (x - t)
		num += c * vals[i]
		den += c
	}
	return num / den
}

// EvalAll evaluates the polynomial at all the given x values.
func (lag *Lagrange) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(lag, xs, out)
}

// Deriv evaluates the order-th derivative of the polynomial at x. Orders up
// to n-1 are supported. Each order costs O(n^2).
func (lag *Lagrange) Deriv(x float64, order int) (float64, error) {
	if err := checkOrder(order, lag.s.Len()-1); err != nil {
		return 0, err
	}

	x, _, pos := lag.locate(x)
	if lag.flatDeriv(pos, order) {
		return 0, nil
	}

	vals := lag.s.us
	for k := 0; k < order; k++ {
		vals = lag.diff.MultVector(vals)
	}
	return lag.bary(x, vals), nil
}
