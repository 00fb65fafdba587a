package interpolate

import (
	"errors"
	"fmt"
)

// Construction errors. Every error returned by a constructor wraps exactly
// one of these, so callers can test for them with errors.Is.
var (
	// ErrInvalidInput indicates malformed samples: mismatched lengths, too
	// few points, non-finite values or duplicate abscissae.
	ErrInvalidInput = errors.New("interpolate: invalid input")

	// ErrInvalidDegree indicates a polynomial degree that the samples cannot
	// support.
	ErrInvalidDegree = errors.New("interpolate: invalid degree")

	// ErrInvalidControlPointCount indicates a B-spline approximation with
	// too many or too few control points.
	ErrInvalidControlPointCount = errors.New(
		"interpolate: invalid control point count",
	)

	// ErrSingularSystem indicates that the linear system defining the
	// interpolant has no unique solution.
	ErrSingularSystem = errors.New("interpolate: singular system")
)

// Evaluation errors, returned by Deriv.
var (
	// ErrUnsupportedOperation indicates that the interpolant has no
	// derivative of the requested kind.
	ErrUnsupportedOperation = errors.New("interpolate: unsupported operation")

	// ErrOrderTooHigh indicates a derivative order above the degree of the
	// local polynomial.
	ErrOrderTooHigh = errors.New("interpolate: derivative order too high")
)

// OutOfDomainWarning describes a query outside of [Lo, Hi]. It is not fatal:
// the query is resolved by the interpolant's extrapolation policy.
type OutOfDomainWarning struct {
	X, Lo, Hi float64
}

func (w *OutOfDomainWarning) Error() string {
	return fmt.Sprintf(
		"interpolate: point %g is outside of the sample domain [%g, %g]",
		w.X, w.Lo, w.Hi,
	)
}

// checkOrder validates a derivative order against the maximum order that an
// interpolant supports.
func checkOrder(order, maxOrder int) error {
	if order < 0 {
		return fmt.Errorf("%w: negative derivative order %d", ErrInvalidInput, order)
	} else if order > maxOrder {
		return fmt.Errorf(
			"%w: order %d requested, but the local polynomial has degree %d",
			ErrOrderTooHigh, order, maxOrder,
		)
	}
	return nil
}
