package interpolate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKnotsAverage(t *testing.T) {
	params := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	knots, err := BuildKnots(params, 3, len(params), Average)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 0, 0, 0, 0.4, 0.6, 1, 1, 1, 1}, knots, 1e-12)
	assert.True(t, knots.IsClamped(3))
	assert.False(t, knots.IsClamped(4))
}

func TestBuildKnotsApprox(t *testing.T) {
	params := linspace(0, 1, 20)
	for _, policy := range []KnotPolicy{Average, UniformKnots} {
		for degree := 1; degree <= 4; degree++ {
			for h := degree + 1; h < len(params); h++ {
				knots, err := BuildKnots(params, degree, h, policy)
				require.NoError(t, err)
				assert.Len(t, knots, h+degree+1)
				assert.True(t, knots.IsClamped(degree),
					"policy %s, degree %d, h = %d: %v", policy, degree, h, knots)
			}
		}
	}

	knots, err := BuildKnots(params, 2, 6, UniformKnots)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0.25, 0.5, 0.75, 1, 1, 1}, knots, 1e-12)
}

func TestBuildKnotsErrors(t *testing.T) {
	params := linspace(0, 1, 5)

	_, err := BuildKnots(params, 0, 5, Average)
	assert.ErrorIs(t, err, ErrInvalidDegree)
	_, err = BuildKnots(params, 2, 2, Average)
	assert.ErrorIs(t, err, ErrInvalidControlPointCount)
	_, err = BuildKnots(params, 2, 6, Average)
	assert.ErrorIs(t, err, ErrInvalidControlPointCount)
	_, err = BuildKnots(params, 2, 4, KnotPolicy(9))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParameters(t *testing.T) {
	s, err := NewSampleSet([]float64{0, 3, 4}, []float64{0, 4, 4}, 2)
	require.NoError(t, err)

	ps, err := Parameters(s, Uniform)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, ps, 1e-12)

	// Chord lengths are 5 and 1.
	ps, err = Parameters(s, ArcLen)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 5.0 / 6, 1}, ps, 1e-12)

	_, err = Parameters(s, Parametrization(5))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCoxDeBoorMatchesBasisFuncs(t *testing.T) {
	params := []float64{0, 0.1, 0.15, 0.5, 0.55, 0.7, 0.9, 1}
	for degree := 1; degree <= 4; degree++ {
		for _, h := range []int{degree + 1, len(params) - 1, len(params)} {
			knots, err := BuildKnots(params, degree, h, Average)
			require.NoError(t, err)

			row := make([]float64, h)
			for _, u := range linspace(0, 1, 41) {
				basisRow(u, degree, knots, row)

				sum := 0.0
				for i := range row {
					expected := CoxDeBoor(i, degree, u, knots)
					assert.InDelta(t, expected, row[i], 1e-12,
						"degree %d, h = %d, i = %d, u = %g", degree, h, i, u)
					assert.GreaterOrEqual(t, row[i], -1e-15)
					sum += row[i]
				}
				assert.InDelta(t, 1.0, sum, 1e-12, "partition of unity at u = %g", u)
			}
		}
	}
}

func TestBSplineInterpolates(t *testing.T) {
	for _, p := range []Parametrization{Uniform, ArcLen} {
		for _, k := range []KnotPolicy{Average, UniformKnots} {
			for degree := 1; degree <= 3; degree++ {
				sp, err := NewBSpline(profileTs, profileUs,
					WithDegree(degree), WithParametrization(p), WithKnots(k))
				require.NoError(t, err)

				assert.Equal(t, degree, sp.Degree())
				assert.Len(t, sp.ControlPoints(), len(profileTs))
				assert.True(t, sp.Knots().IsClamped(degree))

				for i := range profileTs {
					assert.InDelta(t, profileUs[i], sp.Eval(profileTs[i]), 1e-9,
						"%s/%s degree %d at t_%d", p, k, degree, i)
				}
			}
		}
	}
}

func TestBSplineReproducesCubics(t *testing.T) {
	f := func(x float64) float64 { return 0.5*x*x*x - x*x + 3 }
	df := func(x float64) float64 { return 1.5*x*x - 2*x }
	ddf := func(x float64) float64 { return 3*x - 2 }

	// With evenly spaced samples and uniform parameters, the parameter is an
	// affine function of t, so cubics in t are cubics in the parameter.
	ts := linspace(-1, 3, 9)
	sp, err := NewBSpline(ts, mapFunc(ts, f))
	require.NoError(t, err)

	for _, x := range linspace(-1, 3, 37) {
		assert.InDelta(t, f(x), sp.Eval(x), 1e-9, "x = %g", x)

		d1, err := sp.Deriv(x, 1)
		require.NoError(t, err)
		assert.InDelta(t, df(x), d1, 1e-8, "x = %g", x)

		d2, err := sp.Deriv(x, 2)
		require.NoError(t, err)
		assert.InDelta(t, ddf(x), d2, 1e-7, "x = %g", x)

		d3, err := sp.Deriv(x, 3)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, d3, 1e-6, "x = %g", x)
	}

	_, err = sp.Deriv(0, 4)
	assert.ErrorIs(t, err, ErrOrderTooHigh)

	// Extrapolation continues the boundary polynomial pieces.
	assert.InDelta(t, f(-1.5), sp.Eval(-1.5), 1e-8)
	assert.InDelta(t, f(3.5), sp.Eval(3.5), 1e-8)
}

func TestBSplineDerivFiniteDifference(t *testing.T) {
	sp, err := NewBSpline(profileTs, profileUs, WithParametrization(ArcLen))
	require.NoError(t, err)

	eps := 1e-5
	for i := 0; i < len(profileTs)-1; i++ {
		x := (profileTs[i] + profileTs[i+1]) / 2
		fd := (sp.Eval(x+eps) - sp.Eval(x-eps)) / (2 * eps)
		d, err := sp.Deriv(x, 1)
		require.NoError(t, err)
		assert.InDelta(t, fd, d, 1e-6, "segment %d", i)
	}
}

func TestBSplineErrors(t *testing.T) {
	ts, us := []float64{0, 1, 2}, []float64{1, 0, 1}

	_, err := NewBSpline(ts, us, WithDegree(3))
	assert.ErrorIs(t, err, ErrInvalidDegree)
	_, err = NewBSpline(ts, us, WithDegree(0))
	assert.ErrorIs(t, err, ErrInvalidDegree)
	_, err = NewBSpline(ts, us)
	assert.ErrorIs(t, err, ErrInvalidDegree)

	_, err = NewBSpline(ts, us, WithDegree(2))
	assert.NoError(t, err)
}

// noisySine returns deterministic noisy samples of sin(t).
func noisySine(n int) (ts, us []float64) {
	ts = linspace(0, 10, n)
	us = make([]float64, n)
	for i, x := range ts {
		us[i] = math.Sin(x) + 0.1*math.Sin(37*x)
	}
	return ts, us
}

func TestBSplineApproxOptimal(t *testing.T) {
	ts, us := noisySine(30)
	sp, err := NewBSplineApprox(ts, us, WithControlPoints(8), WithDegree(3))
	require.NoError(t, err)
	assert.Len(t, sp.ControlPoints(), 8)
	assert.Len(t, sp.Knots(), 8+3+1)

	r0 := 0.0
	for i := range ts {
		d := sp.Eval(ts[i]) - us[i]
		r0 += d * d
	}
	assert.InDelta(t, r0, sp.Residual(), 1e-9)
	assert.Greater(t, r0, 0.0)

	// No other curve with the same knots fits the data better.
	knots, ctrl := sp.Knots(), sp.ControlPoints()
	b := collocation(sp.Params(), 3, knots, len(ctrl))
	rng := rand.New(rand.NewSource(17))
	for trial := 0; trial < 25; trial++ {
		other := append([]float64(nil), ctrl...)
		for j := range other {
			other[j] += 0.05 * (2*rng.Float64() - 1)
		}

		r := 0.0
		for i, v := range b.MultVector(other) {
			d := v - us[i]
			r += d * d
		}
		assert.GreaterOrEqual(t, r, r0-1e-12)
	}
}

func TestBSplineApproxSmooths(t *testing.T) {
	ts, us := noisySine(40)
	sp, err := NewBSplineApprox(ts, us, WithControlPoints(10))
	require.NoError(t, err)

	exact := 0
	maxErr := 0.0
	for i := range ts {
		if math.Abs(sp.Eval(ts[i])-us[i]) < 1e-9 {
			exact++
		}
		maxErr = math.Max(maxErr, math.Abs(sp.Eval(ts[i])-math.Sin(ts[i])))
	}
	assert.Less(t, exact, len(ts))
	assert.Less(t, maxErr, 0.25)
}

func TestBSplineApproxExactForCubics(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - 4*x }
	ts := linspace(-2, 2, 15)
	sp, err := NewBSplineApprox(ts, mapFunc(ts, f), WithControlPoints(6))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, sp.Residual(), 1e-12)
	for _, x := range linspace(-2, 2, 21) {
		assert.InDelta(t, f(x), sp.Eval(x), 1e-8)
	}
}

func TestBSplineApproxErrors(t *testing.T) {
	ts, us := noisySine(10)

	table := []struct {
		degree, h int
		err       error
	}{
		{3, 10, ErrInvalidControlPointCount},
		{3, 11, ErrInvalidControlPointCount},
		{3, 3, ErrInvalidControlPointCount},
		{3, 0, ErrInvalidControlPointCount},
		{0, 5, ErrInvalidDegree},
	}
	for _, test := range table {
		_, err := NewBSplineApprox(ts, us,
			WithDegree(test.degree), WithControlPoints(test.h))
		assert.ErrorIs(t, err, test.err, "degree %d, h = %d", test.degree, test.h)
	}
}
