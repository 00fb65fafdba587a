package interpolate

import (
	"fmt"
)

// minPoints is the smallest sample table each method accepts.
var minPoints = map[Method]int{
	LinearMethod:          2,
	QuadraticMethod:       3,
	LagrangeMethod:        2,
	ConstantMethod:        2,
	QuadraticSplineMethod: 2,
	CubicSplineMethod:     2,
	BSplineMethod:         2,
	BSplineApproxMethod:   2,
	LoessMethod:           2,
}

// Build constructs the interpolator selected by method through the samples
// (t_i, u_i). Note that the values come before the abscissae.
//
// Every error is detected before anything is returned: Build either returns
// a complete interpolator or an error wrapping ErrInvalidInput,
// ErrInvalidDegree, ErrInvalidControlPointCount or ErrSingularSystem.
func Build(method Method, us, ts []float64, opts ...Option) (Interpolator, error) {
	m, ok := minPoints[method]
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized method %d", ErrInvalidInput, method)
	}

	s, err := NewSampleSet(ts, us, m)
	if err != nil {
		return nil, err
	}
	return BuildSamples(method, s, opts...)
}

// BuildSamples is Build for an already validated sample table. The table is
// shared, not copied: SampleSets are immutable.
func BuildSamples(method Method, s *SampleSet, opts ...Option) (Interpolator, error) {
	opt := loadOptions(opts)

	if m, ok := minPoints[method]; ok && s.Len() < m {
		return nil, fmt.Errorf(
			"%w: %s needs at least %d samples, but got %d",
			ErrInvalidInput, method, m, s.Len(),
		)
	}

	switch method {
	case LinearMethod:
		return newLinear(s, opt), nil
	case QuadraticMethod:
		return newQuadratic(s, opt), nil
	case LagrangeMethod:
		return newLagrange(s, opt), nil
	case ConstantMethod:
		return nilOnErr(newConstant(s, opt))
	case QuadraticSplineMethod:
		return nilOnErr(newQuadraticSpline(s, opt))
	case CubicSplineMethod:
		return nilOnErr(newSpline(s, opt))
	case BSplineMethod:
		return nilOnErr(newBSpline(s, opt))
	case BSplineApproxMethod:
		return nilOnErr(newBSplineApprox(s, opt))
	case LoessMethod:
		return nilOnErr(newLoess(s, opt))
	}

	return nil, fmt.Errorf("%w: unrecognized method %d", ErrInvalidInput, method)
}

// nilOnErr keeps typed nil pointers from leaking out as non-nil
// Interpolators.
func nilOnErr[T Interpolator](in T, err error) (Interpolator, error) {
	if err != nil {
		return nil, err
	}
	return in, nil
}
