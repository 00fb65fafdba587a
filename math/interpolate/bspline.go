package interpolate

import (
	"fmt"

	"github.com/phil-mansfield/interp1d/math/mat"
)

// bsplineModel evaluates a B-spline whose parameter is a piecewise linear
// function of t.
type bsplineModel struct {
	base
	params []float64
	// curves[k] is the kth derivative of the curve with respect to its
	// parameter.
	curves []*bsplineCurve
}

func (m *bsplineModel) init(knots KnotVec, ctrl []float64, degree int) {
	m.curves = make([]*bsplineCurve, degree+1)
	m.curves[0] = &bsplineCurve{knots: knots, ctrl: ctrl, degree: degree}
	for k := 1; k <= degree; k++ {
		m.curves[k] = m.curves[k-1].deriv()
	}
}

// param maps t onto the curve's parameter and returns dparam/dt.
func (m *bsplineModel) param(x float64, i int) (u, slope float64) {
	ts := m.s.ts
	slope = (m.params[i+1] - m.params[i]) / (ts[i+1] - ts[i])
	return m.params[i] + (x-ts[i])*slope, slope
}

func (m *bsplineModel) eval(x float64) float64 {
	x, i, _ := m.locate(x)
	u, _ := m.param(x, i)
	return m.curves[0].eval(u)
}

func (m *bsplineModel) deriv(x float64, order int) (float64, error) {
	if err := checkOrder(order, m.Degree()); err != nil {
		return 0, err
	}

	x, i, pos := m.locate(x)
	if m.flatDeriv(pos, order) {
		return 0, nil
	}

	// The parameter is linear in t within a segment, so each derivative
	// picks up one factor of its slope.
	u, slope := m.param(x, i)
	v := m.curves[order].eval(u)
	for k := 0; k < order; k++ {
		v *= slope
	}
	return v, nil
}

// Degree returns the polynomial degree of the curve.
func (m *bsplineModel) Degree() int { return m.curves[0].degree }

// Knots returns a copy of the clamped knot vector.
func (m *bsplineModel) Knots() KnotVec {
	return append(KnotVec(nil), m.curves[0].knots...)
}

// ControlPoints returns a copy of the control points.
func (m *bsplineModel) ControlPoints() []float64 {
	return append([]float64(nil), m.curves[0].ctrl...)
}

// Params returns a copy of the parameter assigned to each sample.
func (m *bsplineModel) Params() []float64 {
	return append([]float64(nil), m.params...)
}

// collocation builds the matrix whose ith row holds every basis function
// evaluated at the ith sample's parameter.
func collocation(params []float64, degree int, knots KnotVec, h int) *mat.Matrix {
	b := mat.NewMatrix(nil, h, len(params))
	for i, u := range params {
		basisRow(u, degree, knots, b.Row(i))
	}
	return b
}

func resolveDegree(degree int) int {
	if degree == DefaultDegree {
		return 3
	}
	return degree
}

////////////////////////////
// BSpline Implementation //
////////////////////////////

// BSpline is a clamped B-spline which passes through every sample. It has one
// control point per sample.
type BSpline struct {
	bsplineModel
}

// NewBSpline creates an interpolating B-spline through (ts, us). The degree,
// parametrization and knot policy are read from opts. The degree must be
// positive and less than the number of samples.
func NewBSpline(ts, us []float64, opts ...Option) (*BSpline, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newBSpline(s, loadOptions(opts))
}

func newBSpline(s *SampleSet, opt *Options) (*BSpline, error) {
	n := s.Len()
	degree := resolveDegree(opt.Degree)
	if degree < 1 || degree >= n {
		return nil, fmt.Errorf(
			"%w: B-spline degree must be in [1, %d], not %d",
			ErrInvalidDegree, n-1, degree,
		)
	}

	params, err := Parameters(s, opt.Parametrization)
	if err != nil {
		return nil, err
	}
	knots, err := BuildKnots(params, degree, n, opt.Knots)
	if err != nil {
		return nil, err
	}

	b := collocation(params, degree, knots, n)
	ctrl, err := b.SolveVector(s.us)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	sp := &BSpline{bsplineModel{base: newBase(s, opt, "bspline"), params: params}}
	sp.init(knots, ctrl, degree)
	return sp, nil
}

// Eval evaluates the B-spline at the parameter corresponding to x.
func (sp *BSpline) Eval(x float64) float64 { return sp.eval(x) }

// EvalAll evaluates the B-spline at all the given x values.
func (sp *BSpline) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(sp, xs, out)
}

// Deriv evaluates the order-th derivative with respect to t. Orders up to the
// degree are supported.
func (sp *BSpline) Deriv(x float64, order int) (float64, error) {
	return sp.deriv(x, order)
}

//////////////////////////////////
// BSplineApprox Implementation //
//////////////////////////////////

// BSplineApprox is a clamped B-spline with fewer control points than samples,
// fit by least squares. It smooths the data rather than passing through it.
type BSplineApprox struct {
	bsplineModel
	residual float64
}

// NewBSplineApprox creates a least-squares B-spline through (ts, us) with
// opts.ControlPoints control points. The number of control points must be
// larger than the degree and smaller than the number of samples.
func NewBSplineApprox(
	ts, us []float64, opts ...Option,
) (*BSplineApprox, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newBSplineApprox(s, loadOptions(opts))
}

func newBSplineApprox(s *SampleSet, opt *Options) (*BSplineApprox, error) {
	n, h := s.Len(), opt.ControlPoints
	degree := resolveDegree(opt.Degree)
	if degree < 1 {
		return nil, fmt.Errorf(
			"%w: B-spline degree must be positive, not %d",
			ErrInvalidDegree, degree,
		)
	} else if h >= n || h <= degree {
		return nil, fmt.Errorf(
			"%w: need %d < control points < %d, but got %d",
			ErrInvalidControlPointCount, degree, n, h,
		)
	}

	params, err := Parameters(s, opt.Parametrization)
	if err != nil {
		return nil, err
	}
	knots, err := BuildKnots(params, degree, h, opt.Knots)
	if err != nil {
		return nil, err
	}

	b := collocation(params, degree, knots, h)
	ctrl, err := b.LeastSquares(s.us)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	sp := &BSplineApprox{
		bsplineModel: bsplineModel{
			base: newBase(s, opt, "bspline-approx"), params: params,
		},
	}
	sp.init(knots, ctrl, degree)

	for i, v := range b.MultVector(ctrl) {
		d := v - s.us[i]
		sp.residual += d * d
	}

	return sp, nil
}

// Eval evaluates the B-spline at the parameter corresponding to x.
func (sp *BSplineApprox) Eval(x float64) float64 { return sp.eval(x) }

// EvalAll evaluates the B-spline at all the given x values.
func (sp *BSplineApprox) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(sp, xs, out)
}

// Deriv evaluates the order-th derivative with respect to t. Orders up to the
// degree are supported.
func (sp *BSplineApprox) Deriv(x float64, order int) (float64, error) {
	return sp.deriv(x, order)
}

// Residual returns the sum of squared differences between the curve and the
// samples.
func (sp *BSplineApprox) Residual() float64 { return sp.residual }
