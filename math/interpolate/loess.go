package interpolate

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/interp1d/math/mat"
	"github.com/sgostarter/i/l"
)

// Loess is a local weighted polynomial regression. Every evaluation fits its
// own polynomial to the ceil(alpha * n) samples nearest to the query, with
// samples weighted by the tri-cube kernel (1 - (d/d_max)^3)^3.
//
// No state is shared between evaluations, so the result at a point does not
// depend on which points were evaluated before it.
type Loess struct {
	base
	degree int
	alpha  float64
	k      int
}

// NewLoess creates a LOESS smoother over (ts, us). opts.Degree sets the
// degree of the local polynomials and opts.Alpha, which must lie in (0, 1],
// sets the fraction of samples in each neighborhood.
func NewLoess(ts, us []float64, opts ...Option) (*Loess, error) {
	s, err := NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}
	return newLoess(s, loadOptions(opts))
}

func newLoess(s *SampleSet, opt *Options) (*Loess, error) {
	degree := opt.Degree
	if degree == DefaultDegree {
		degree = 2
	}

	if !(opt.Alpha > 0 && opt.Alpha <= 1) {
		return nil, fmt.Errorf(
			"%w: alpha must be in (0, 1], not %g", ErrInvalidInput, opt.Alpha,
		)
	} else if degree < 0 {
		return nil, fmt.Errorf(
			"%w: LOESS degree must be non-negative, not %d",
			ErrInvalidDegree, degree,
		)
	}

	k := neighborhoodSize(opt.Alpha, s.Len())
	if need := minNeighborhood(degree); k < need {
		return nil, fmt.Errorf(
			"%w: neighborhoods of %d samples cannot fit degree %d polynomials, "+
				"at least %d are needed", ErrInvalidDegree, k, degree, need,
		)
	}

	return &Loess{
		base:   newBase(s, opt, "loess"),
		degree: degree, alpha: opt.Alpha, k: k,
	}, nil
}

// neighborhoodSize returns ceil(alpha * n). Products which land within
// rounding error of an integer are rounded down, so alpha = 0.55 with
// n = 100 gives 55 rather than 56.
func neighborhoodSize(alpha float64, n int) int {
	k := int(math.Ceil(alpha*float64(n) - 1e-9*float64(n)))
	if k < 1 {
		return 1
	} else if k > n {
		return n
	}
	return k
}

// minNeighborhood returns the smallest neighborhood which determines a
// polynomial of the given degree at every query. The farthest neighbor on
// each side of the query can sit at d_max and get zero weight, so two
// samples beyond the degree+1 needed for the fit are required.
func minNeighborhood(degree int) int {
	if degree == 0 {
		return 1
	}
	return degree + 3
}

// Degree returns the degree of the local polynomials.
func (lo *Loess) Degree() int { return lo.degree }

// Alpha returns the neighborhood fraction.
func (lo *Loess) Alpha() float64 { return lo.alpha }

// Eval fits a local polynomial around x and evaluates it at x.
//
// Construction guarantees that enough samples carry non-zero weight to
// determine the requested degree. If the weighted system is still too
// ill-conditioned to solve, lower degrees are tried down to the weighted
// mean and the degradation is logged.
func (lo *Loess) Eval(x float64) float64 {
	x, _, _ = lo.locate(x)
	idx := lo.neighbors(x)

	dxs := make([]float64, len(idx))
	ys := make([]float64, len(idx))
	ws := make([]float64, len(idx))

	dMax := 0.0
	for j, i := range idx {
		dxs[j], ys[j] = lo.s.ts[i]-x, lo.s.us[i]
		dMax = math.Max(dMax, math.Abs(dxs[j]))
	}
	for j := range ws {
		ws[j] = triCube(dxs[j], dMax)
	}

	// The polynomial is centered on x, so its value there is the constant
	// coefficient.
	for degree := lo.degree; degree >= 0; degree-- {
		cs, err := mat.PolyFit(dxs, ys, ws, degree)
		if err == nil {
			if degree < lo.degree {
				lo.logger.WithFields(l.IntField("degree", degree)).
					Warn("local fit degraded")
			}
			return cs[0]
		}
	}

	lo.logger.Warn("local fit failed, using the neighborhood mean")
	mean := 0.0
	for _, y := range ys {
		mean += y
	}
	return mean / float64(len(ys))
}

// neighbors returns the indices of the k samples nearest to x.
func (lo *Loess) neighbors(x float64) []int {
	ts := lo.s.ts
	n := len(ts)

	i := lo.s.xs.nearest(x)
	left, right := i, i+1
	for right-left < lo.k {
		switch {
		case left == 0:
			right++
		case right == n:
			left--
		case x-ts[left-1] <= ts[right]-x:
			left--
		default:
			right++
		}
	}

	idx := make([]int, 0, lo.k)
	for j := left; j < right; j++ {
		idx = append(idx, j)
	}
	return idx
}

func triCube(d, dMax float64) float64 {
	if dMax == 0 {
		return 1
	}
	r := math.Abs(d) / dMax
	if r >= 1 {
		return 0
	}
	c := 1 - r*r*r
	return c * c * c
}

// EvalAll evaluates the smoother at all the given x values.
func (lo *Loess) EvalAll(xs []float64, out ...[]float64) []float64 {
	return evalAll(lo, xs, out)
}

// Deriv only supports order 0.
func (lo *Loess) Deriv(x float64, order int) (float64, error) {
	if order < 0 {
		return 0, checkOrder(order, 0)
	} else if order == 0 {
		return lo.Eval(x), nil
	}
	return 0, fmt.Errorf(
		"%w: LOESS smoothers are not differentiable", ErrUnsupportedOperation,
	)
}
