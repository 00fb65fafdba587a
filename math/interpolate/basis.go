package interpolate

// CoxDeBoor evaluates the ith B-spline basis function of degree k at u with
// the Cox-de Boor recursion:
//
//	B_{i,0}(u) = 1 if k_i <= u < k_{i+1}, else 0
//	B_{i,k}(u) = (u - k_i) / (k_{i+k} - k_i) B_{i,k-1}(u) +
//	    (k_{i+k+1} - u) / (k_{i+k+1} - k_{i+1}) B_{i+1,k-1}(u)
//
// Terms with a zero denominator are zero. The last knot is included in the
// last non-empty span so that the basis sums to one over the closed domain.
//
// This is O(2^k); BasisFuncs computes the same values in O(k^2).
func CoxDeBoor(i, k int, u float64, knots KnotVec) float64 {
	if k == 0 {
		if knots[i] <= u && u < knots[i+1] {
			return 1
		}
		last := knots[len(knots)-1]
		if u == last && knots[i] < knots[i+1] && knots[i+1] == last {
			return 1
		}
		return 0
	}

	sum := 0.0
	if den := knots[i+k] - knots[i]; den != 0 {
		sum += (u - knots[i]) / den * CoxDeBoor(i, k-1, u, knots)
	}
	if den := knots[i+k+1] - knots[i+1]; den != 0 {
		sum += (knots[i+k+1] - u) / den * CoxDeBoor(i+1, k-1, u, knots)
	}
	return sum
}

// BasisFuncs computes the degree+1 basis functions which can be non-zero
// within the knot span with the given index: B_{span-degree}, ...,
// B_{span}. It uses the triangular form of the Cox-de Boor recursion, which
// never divides by zero for a valid span. For u outside of the span, the
// result is the polynomial continuation of the basis from inside the span.
func BasisFuncs(span int, u float64, degree int, knots KnotVec) []float64 {
	bs := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)

	bs[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0

		for r := 0; r < j; r++ {
			tmp := bs[r] / (right[r+1] + left[j-r])
			bs[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}

		bs[j] = saved
	}

	return bs
}

// basisRow writes every basis function at u into row, which must have one
// element per control point.
func basisRow(u float64, degree int, knots KnotVec, row []float64) {
	for i := range row {
		row[i] = 0
	}
	span := knots.Span(degree, u)
	for r, b := range BasisFuncs(span, u, degree, knots) {
		row[span-degree+r] = b
	}
}

// bsplineCurve is a clamped B-spline function of one parameter.
type bsplineCurve struct {
	knots  KnotVec
	ctrl   []float64
	degree int
}

func (c *bsplineCurve) eval(u float64) float64 {
	span := c.knots.Span(c.degree, u)
	sum := 0.0
	for r, b := range BasisFuncs(span, u, c.degree, c.knots) {
		sum += b * c.ctrl[span-c.degree+r]
	}
	return sum
}

// deriv returns the derivative of the curve, a B-spline of one lower degree
// over the same knots with the outermost two removed.
func (c *bsplineCurve) deriv() *bsplineCurve {
	p := c.degree
	ctrl := make([]float64, len(c.ctrl)-1)
	for i := range ctrl {
		den := c.knots[i+p+1] - c.knots[i+1]
		if den != 0 {
			ctrl[i] = float64(p) * (c.ctrl[i+1] - c.ctrl[i]) / den
		}
	}
	return &bsplineCurve{
		knots:  c.knots[1 : len(c.knots)-1],
		ctrl:   ctrl,
		degree: p - 1,
	}
}
