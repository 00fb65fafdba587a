package interpolate

import (
	"fmt"

	"github.com/phil-mansfield/interp1d/math/mat"
)

////////////////////////////////////
// Local Quadratic Implementation //
////////////////////////////////////

// Quadratic is a piecewise quadratic interpolator. Each segment is evaluated
// on the parabola through its two endpoints and whichever neighboring sample
// is closer to the segment. The result is continuous, but its derivative
// jumps at the knots.
type Quadratic struct {
	base
	// windows[i] is the index of the first of the three samples used by
	// segment i.
	windows []int
}

// NewQuadratic creates a local quadratic interpolator through (ts, us). At
// least three samples are required.
func NewQuadratic(ts, us []float64, opts ...Option) (*Quadratic, error) {
	s, err := NewSampleSet(ts, us, 3)
	if err != nil {
		return nil, err
	}
	return newQuadratic(s, loadOptions(opts)), nil
}

func newQuadratic(s *SampleSet, opt *Options) *Quadratic {
	n := s.Len()
	q := &Quadratic{base: newBase(s, opt, "quadratic")}
	q.windows = make([]int, n-1)

	for i := range q.windows {
		switch {
		case i == 0:
			q.windows[i] = 0
		case i == n-2:
			q.windows[i] = n - 3
		case s.ts[i]-s.ts[i-1] <= s.ts[i+2]-s.ts[i+1]:
			q.windows[i] = i - 1
		default:
			q.windows[i] = i
		}
	}

	return q
}

// Eval returns the interpolated value at x.
func (q *Quadratic) Eval(x float64) float64 {
	v, _ := q.Deriv(x, 0)
	return v
}

// EvalAll evaluates the interpolator at all the given x values.
func (q *Quadratic) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(q, xs, out)
}

// Deriv returns the order-th derivative of the local parabola at x. At a
// knot, the parabola of the segment to the right is used.
func (q *Quadratic) Deriv(x float64, order int) (float64, error) {
	if err := checkOrder(order, 2); err != nil {
		return 0, err
	}

	x, i, pos := q.locate(x)
	if q.flatDeriv(pos, order) {
		return 0, nil
	}

	w := q.windows[i]
	x0, x1, x2 := q.s.ts[w], q.s.ts[w+1], q.s.ts[w+2]
	u0, u1, u2 := q.s.us[w], q.s.us[w+1], q.s.us[w+2]

	// Lagrange basis denominators.
	d0 := (x0 - x1) * (x0 - x2)
	d1 := (x1 - x0) * (x1 - x2)
	d2 := (x2 - x0) * (x2 - x1)

	switch order {
	case 0:
		return u0*(x-x1)*(x-x2)/d0 +
			u1*(x-x0)*(x-x2)/d1 +
			u2*(x-x0)*(x-x1)/d2, nil
	case 1:
		return u0*((x-x1)+(x-x2))/d0 +
			u1*((x-x0)+(x-x2))/d1 +
			u2*((x-x0)+(x-x1))/d2, nil
	default:
		return 2 * (u0/d0 + u1/d1 + u2/d2), nil
	}
}

/////////////////////////////////////
// Quadratic Spline Implementation //
/////////////////////////////////////

type quadCoeff struct {
	a, b, c float64
}

// QuadraticSpline is a piecewise quadratic interpolator with a continuous
// first derivative.
//
// The slope at the first knot is pinned to the slope of the first segment,
// (u_1 - u_0) / (t_1 - t_0), which makes the first segment a straight line.
// Every later slope follows from continuity.
type QuadraticSpline struct {
	base
	coeffs []quadCoeff
}

// NewQuadraticSpline creates a quadratic spline through (ts, us).
func NewQuadraticSpline(
	ts, us []float64, opts ...Option,
) (*QuadraticSpline, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newQuadraticSpline(s, loadOptions(opts))
}

func newQuadraticSpline(s *SampleSet, opt *Options) (*QuadraticSpline, error) {
	zs, err := s.quadSlopes()
	if err != nil {
		return nil, err
	}

	sp := &QuadraticSpline{base: newBase(s, opt, "quadratic-spline")}
	sp.coeffs = make([]quadCoeff, s.Len()-1)
	for i := range sp.coeffs {
		h := s.ts[i+1] - s.ts[i]
		sp.coeffs[i].a = (zs[i+1] - zs[i]) / (2 * h)
		sp.coeffs[i].b = zs[i]
		sp.coeffs[i].c = s.us[i]
	}

	return sp, nil
}

// quadSlopes computes the slopes z_i at each knot. Continuity of the first
// derivative gives z_i + z_{i+1} = 2 (u_{i+1} - u_i) / h_i, a lower
// bidiagonal system which the Thomas algorithm solves by forward
// substitution.
func (s *SampleSet) quadSlopes() ([]float64, error) {
	n := s.Len()
	as, bs := make([]float64, n), make([]float64, n)
	cs, rs := make([]float64, n), make([]float64, n)

	xs, ys := s.ts, s.us
	bs[0] = 1
	rs[0] = (ys[1] - ys[0]) / (xs[1] - xs[0])
	for i := 1; i < n; i++ {
		as[i], bs[i] = 1, 1
		rs[i] = 2 * (ys[i] - ys[i-1]) / (xs[i] - xs[i-1])
	}

	zs, err := mat.TriDiag(as, bs, cs, rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	return zs, nil
}

// Eval computes the value of the spline at the given point.
func (sp *QuadraticSpline) Eval(x float64) float64 {
	v, _ := sp.Deriv(x, 0)
	return v
}

// EvalAll evaluates the spline at all the given x values.
func (sp *QuadraticSpline) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(sp, xs, out)
}

// Deriv computes the derivative of the spline at the given point to the
// specified order.
func (sp *QuadraticSpline) Deriv(x float64, order int) (float64, error) {
	if err := checkOrder(order, 2); err != nil {
		return 0, err
	}

	x, i, pos := sp.locate(x)
	if sp.flatDeriv(pos, order) {
		return 0, nil
	}

	dx := x - sp.s.ts[i]
	a, b, c := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c
	switch order {
	case 0:
		return a*dx*dx + b*dx + c, nil
	case 1:
		return 2*a*dx + b, nil
	default:
		return 2 * a, nil
	}
}
