package interpolate

import (
	"fmt"
	"math"
)

// KnotVec is a non-decreasing sequence of B-spline knots.
type KnotVec []float64

// Span returns the index i of the knot span [k_i, k_{i+1}) containing u for
// a B-spline of the given degree. Parameters outside of the knots are
// assigned to the boundary spans, and the last knot belongs to the last
// non-empty span.
func (k KnotVec) Span(degree int, u float64) int {
	n := len(k) - degree - 2

	if u >= k[n+1] {
		return n
	} else if u < k[degree] {
		return degree
	}

	lo, hi := degree, n+1
	mid := (lo + hi) / 2
	for u < k[mid] || u >= k[mid+1] {
		if u < k[mid] {
			hi = mid
		} else {
			lo = mid
		}
		mid = (lo + hi) / 2
	}

	return mid
}

// IsClamped returns true if the first and last knots are each repeated
// degree+1 times and the knots are non-decreasing.
func (k KnotVec) IsClamped(degree int) bool {
	if len(k) < 2*(degree+1) {
		return false
	}
	for i := 1; i < len(k); i++ {
		if k[i] < k[i-1] {
			return false
		}
	}
	for i := 1; i <= degree; i++ {
		if k[i] != k[0] || k[len(k)-1-i] != k[len(k)-1] {
			return false
		}
	}
	return true
}

// Parameters assigns a parameter in [0, 1] to each sample.
func Parameters(s *SampleSet, p Parametrization) ([]float64, error) {
	n := s.Len()
	ps := make([]float64, n)

	switch p {
	case Uniform:
		for i := range ps {
			ps[i] = float64(i) / float64(n-1)
		}
	case ArcLen:
		for i := 1; i < n; i++ {
			dt, du := s.ts[i]-s.ts[i-1], s.us[i]-s.us[i-1]
			ps[i] = ps[i-1] + math.Hypot(dt, du)
		}
		total := ps[n-1]
		for i := range ps {
			ps[i] /= total
		}
		ps[n-1] = 1
	default:
		return nil, fmt.Errorf(
			"%w: unrecognized parametrization %d", ErrInvalidInput, p,
		)
	}

	return ps, nil
}

// BuildKnots creates a clamped knot vector with h + degree + 1 knots for a
// B-spline with h control points fit to data with the given parameters.
//
// With the Average policy and h == len(params), interior knots are the
// averages of degree consecutive parameters (de Boor's averaging rule). With
// h < len(params), each interior knot blends the two parameters nearest to
// an evenly spaced position in the data, so that every knot span contains at
// least one parameter.
func BuildKnots(
	params []float64, degree, h int, policy KnotPolicy,
) (KnotVec, error) {
	n := len(params)
	if degree < 1 {
		return nil, fmt.Errorf(
			"%w: B-spline degree must be positive, not %d",
			ErrInvalidDegree, degree,
		)
	} else if h <= degree || h > n {
		return nil, fmt.Errorf(
			"%w: %d control points for degree %d and %d samples",
			ErrInvalidControlPointCount, h, degree, n,
		)
	}

	knots := make(KnotVec, h+degree+1)
	for i := 0; i <= degree; i++ {
		knots[i] = params[0]
		knots[h+i] = params[n-1]
	}

	switch policy {
	case Average:
		if h == n {
			for j := 1; j < n-degree; j++ {
				sum := 0.0
				for i := j; i < j+degree; i++ {
					sum += params[i]
				}
				knots[j+degree] = sum / float64(degree)
			}
		} else {
			d := float64(n) / float64(h-degree)
			for j := 1; j < h-degree; j++ {
				i := int(float64(j) * d)
				alpha := float64(j)*d - float64(i)
				knots[j+degree] = (1-alpha)*params[i-1] + alpha*params[i]
			}
		}
	case UniformKnots:
		lo, hi := params[0], params[n-1]
		for j := 1; j < h-degree; j++ {
			knots[j+degree] = lo + (hi-lo)*float64(j)/float64(h-degree)
		}
	default:
		return nil, fmt.Errorf(
			"%w: unrecognized knot policy %d", ErrInvalidInput, policy,
		)
	}

	return knots, nil
}
