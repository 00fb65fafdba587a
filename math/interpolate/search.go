package interpolate

// Position describes where a query lies relative to the sample domain.
type Position int

const (
	Below Position = iota
	Inside
	Above
)

func (p Position) String() string {
	switch p {
	case Below:
		return "below"
	case Inside:
		return "inside"
	case Above:
		return "above"
	}
	return "unknown"
}

// searcher finds the segment containing a point in a strictly increasing
// sequence of knots.
type searcher struct {
	xs          []float64
	x0, dx, lim float64
	n           int
}

func (s *searcher) init(xs []float64) {
	s.xs = xs
	s.x0 = xs[0]
	s.lim = xs[len(xs)-1]
	s.dx = (s.lim - s.x0) / float64(len(xs)-1)
	s.n = len(xs)
}

// search returns the index i of the segment [xs[i], xs[i+1]) containing x.
// Points outside the knots are assigned to the nearest boundary segment and
// the last knot belongs to the last segment.
func (s *searcher) search(x float64) (int, Position) {
	if x < s.x0 {
		return 0, Below
	} else if x > s.lim {
		return s.n - 2, Above
	} else if x == s.lim {
		return s.n - 2, Inside
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - s.x0) / s.dx)
	if guess >= 0 && guess < s.n-1 &&
		s.xs[guess] <= x && x < s.xs[guess+1] {

		return guess, Inside
	}

	// Binary search.
	lo, hi := 0, s.n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= s.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}

	return lo, Inside
}

// nearest returns the index of the knot closest to x.
func (s *searcher) nearest(x float64) int {
	i, _ := s.search(x)
	if x-s.xs[i] > s.xs[i+1]-x {
		return i + 1
	}
	return i
}
