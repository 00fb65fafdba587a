package interpolate

import (
	"fmt"

	"github.com/phil-mansfield/interp1d/math/mat"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points. The second derivative is continuous everywhere
// and zero at both ends of the domain.
type Spline struct {
	base
	y2s    []float64
	coeffs []splineCoeff
}

// NewSpline creates a spline based off a table of t and u values.
func NewSpline(ts, us []float64, opts ...Option) (*Spline, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newSpline(s, loadOptions(opts))
}

func newSpline(s *SampleSet, opt *Options) (*Spline, error) {
	sp := &Spline{base: newBase(s, opt, "cubic-spline")}
	sp.y2s = make([]float64, s.Len())
	sp.coeffs = make([]splineCoeff, s.Len()-1)

	if err := sp.calcY2s(); err != nil {
		return nil, err
	}
	sp.calcCoeffs()
	return sp, nil
}

// calcY2s computes the second derivative (the "moment") at every knot by
// solving the n x n tridiagonal system
//
// h_{j-1}/6 M_{j-1} + (h_{j-1} + h_j)/3 M_j + h_j/6 M_{j+1} =
//
//	(u_{j+1} - u_j)/h_j - (u_j - u_{j-1})/h_{j-1}
//
// for the interior knots, with the boundary rows pinning M_0 = M_{n-1} = 0.
func (sp *Spline) calcY2s() error {
	n := sp.s.Len()
	as, bs := make([]float64, n), make([]float64, n)
	cs, rs := make([]float64, n), make([]float64, n)

	bs[0], bs[n-1] = 1, 1

	xs, ys := sp.s.ts, sp.s.us
	for j := 1; j < n-1; j++ {
		as[j] = (xs[j] - xs[j-1]) / 6
		bs[j] = (xs[j+1] - xs[j-1]) / 3
		cs[j] = (xs[j+1] - xs[j]) / 6
		rs[j] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	if err := mat.TriDiagAt(as, bs, cs, rs, sp.y2s); err != nil {
		return fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	return nil
}

func (sp *Spline) calcCoeffs() {
	coeffs, xs, ys, y2s := sp.coeffs, sp.s.ts, sp.s.us, sp.y2s
	for i := range coeffs {
		h := xs[i+1] - xs[i]
		coeffs[i].a = (y2s[i+1] - y2s[i]) / (6 * h)
		coeffs[i].b = y2s[i] / 2
		coeffs[i].c = (ys[i+1]-ys[i])/h - h*(2*y2s[i]+y2s[i+1])/6
		coeffs[i].d = ys[i]
	}
}

// Moments returns a copy of the second derivatives at each knot.
func (sp *Spline) Moments() []float64 {
	return append([]float64(nil), sp.y2s...)
}

// Eval computes the value of the spline at the given point. Outside of the
// domain, the cubic of the boundary segment is extended.
func (sp *Spline) Eval(x float64) float64 {
	v, _ := sp.Deriv(x, 0)
	return v
}

// EvalAll evaluates the spline at all the given x values.
func (sp *Spline) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(sp, xs, out)
}

// Deriv computes the derivative of spline at the given point to the
// specified order.
func (sp *Spline) Deriv(x float64, order int) (float64, error) {
	if err := checkOrder(order, 3); err != nil {
		return 0, err
	}

	x, i, pos := sp.locate(x)
	if sp.flatDeriv(pos, order) {
		return 0, nil
	}

	dx := x - sp.s.ts[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	switch order {
	case 0:
		return a*dx*dx*dx + b*dx*dx + c*dx + d, nil
	case 1:
		return 3*a*dx*dx + 2*b*dx + c, nil
	case 2:
		return 6*a*dx + 2*b, nil
	default:
		return 6 * a, nil
	}
}
