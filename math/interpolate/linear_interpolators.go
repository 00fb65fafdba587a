package interpolate

import (
	"fmt"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a piecewise linear interpolator.
type Linear struct {
	base
}

// NewLinear creates a linear interpolator through the points (ts, us).
//
// Lookups will occur in O(log |ts|), and in O(1) for evenly spaced ts.
func NewLinear(ts, us []float64, opts ...Option) (*Linear, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newLinear(s, loadOptions(opts)), nil
}

func newLinear(s *SampleSet, opt *Options) *Linear {
	return &Linear{newBase(s, opt, "linear")}
}

// Eval returns the interpolated value at x. Outside of the domain, the slope
// of the boundary segment is used.
func (lin *Linear) Eval(x float64) float64 {
	x, i, _ := lin.locate(x)
	x1, x2 := lin.s.ts[i], lin.s.ts[i+1]
	v1, v2 := lin.s.us[i], lin.s.us[i+1]

	return v1 + (v2-v1)*(x-x1)/(x2-x1)
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(lin, xs, out)
}

// Deriv returns the order-th derivative at x. The first derivative is the
// slope of the segment containing x. At a knot, the segment to the right is
// used.
func (lin *Linear) Deriv(x float64, order int) (float64, error) {
	if err := checkOrder(order, 1); err != nil {
		return 0, err
	} else if order == 0 {
		return lin.Eval(x), nil
	}

	_, i, pos := lin.locate(x)
	if lin.flatDeriv(pos, order) {
		return 0, nil
	}
	return (lin.s.us[i+1] - lin.s.us[i]) / (lin.s.ts[i+1] - lin.s.ts[i]), nil
}

/////////////////////////////
// Constant Implementation //
/////////////////////////////

// Constant is a piecewise constant ("zero spline") interpolator.
type Constant struct {
	base
	dir Direction
}

// NewConstant creates a piecewise constant interpolator through (ts, us). With
// Left, [t_i, t_{i+1}) takes the value u_i. With Right, (t_i, t_{i+1}] takes
// the value u_{i+1}.
func NewConstant(ts, us []float64, opts ...Option) (*Constant, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newConstant(s, loadOptions(opts))
}

func newConstant(s *SampleSet, opt *Options) (*Constant, error) {
	if opt.Direction != Left && opt.Direction != Right {
		return nil, fmt.Errorf(
			"%w: unrecognized direction %d", ErrInvalidInput, opt.Direction,
		)
	}
	return &Constant{newBase(s, opt, "constant"), opt.Direction}, nil
}

// Eval returns the value of the step containing x. Outside of the domain,
// the nearest sample's value is used.
func (c *Constant) Eval(x float64) float64 {
	x, i, pos := c.locate(x)
	n := c.s.Len()

	switch {
	case pos == Below:
		return c.s.us[0]
	case pos == Above:
		return c.s.us[n-1]
	case c.dir == Left:
		if x == c.s.ts[i+1] {
			return c.s.us[i+1]
		}
		return c.s.us[i]
	default:
		if x == c.s.ts[i] {
			return c.s.us[i]
		}
		return c.s.us[i+1]
	}
}

// EvalAll evaluates the interpolator at all the given x values.
func (c *Constant) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(c, xs, out)
}

// Deriv only supports order 0: a step function has no derivative at its
// knots.
func (c *Constant) Deriv(x float64, order int) (float64, error) {
	if order < 0 {
		return 0, checkOrder(order, 0)
	} else if order == 0 {
		return c.Eval(x), nil
	}
	return 0, fmt.Errorf(
		"%w: piecewise constant interpolants are not differentiable",
		ErrUnsupportedOperation,
	)
}

// Direction returns the side of each segment the steps take their value
// from.
func (c *Constant) Direction() Direction { return c.dir }
