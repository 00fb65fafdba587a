/*
package interpolate builds one-dimensional interpolants and smoothers from
tables of (t, u) samples.

Every interpolant is immutable once constructed, so a single interpolant may
be evaluated from many goroutines at once without locking.
*/
package interpolate

import (
	"github.com/sgostarter/i/l"
)

// Interpolator is a 1D model built from a table of samples.
type Interpolator interface {
	// Eval evaluates the interpolator at x. Points outside of the sample
	// domain are resolved by the interpolator's extrapolation policy.
	Eval(x float64) float64
	// EvalAll evaluates a sequence of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
	// Deriv evaluates the order-th derivative at x. Order 0 is Eval.
	Deriv(x float64, order int) (float64, error)
	// Samples returns the table the interpolator was built from.
	Samples() *SampleSet
}

var (
	_ Interpolator = &Linear{}
	_ Interpolator = &Quadratic{}
	_ Interpolator = &Lagrange{}
	_ Interpolator = &Constant{}
	_ Interpolator = &QuadraticSpline{}
	_ Interpolator = &Spline{}
	_ Interpolator = &BSpline{}
	_ Interpolator = &BSplineApprox{}
	_ Interpolator = &Loess{}
)

// base holds the state shared by every interpolator.
type base struct {
	s      *SampleSet
	ext    Extrapolation
	logger l.Wrapper
}

func newBase(s *SampleSet, opt *Options, cls string) base {
	logger := opt.Logger
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	logger = logger.WithFields(l.StringField(l.ClsKey, cls))
	logger.WithFields(l.IntField("samples", s.Len())).Debug("constructed")

	return base{s: s, ext: opt.Extrapolation, logger: logger}
}

// Samples returns the table the interpolator was built from.
func (b *base) Samples() *SampleSet { return b.s }

// locate returns the segment that x should be evaluated in. Under the Flat
// policy, x is moved onto the nearest boundary.
func (b *base) locate(x float64) (float64, int, Position) {
	i, pos := b.s.xs.search(x)
	if pos == Inside {
		return x, i, pos
	}

	lo, hi := b.s.Domain()
	b.logger.WithFields(l.StringField("position", pos.String())).
		Warn((&OutOfDomainWarning{X: x, Lo: lo, Hi: hi}).Error())

	if b.ext == Flat {
		if pos == Below {
			x = lo
		} else {
			x = hi
		}
	}
	return x, i, pos
}

// flatDeriv reports whether a derivative at a point with the given position
// is identically zero because of the extrapolation policy.
func (b *base) flatDeriv(pos Position, order int) bool {
	return b.ext == Flat && pos != Inside && order > 0
}

func evalAll(in Interpolator, xs []float64, out [][]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = in.Eval(x)
	}
	return out[0]
}
