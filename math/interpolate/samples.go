package interpolate

import (
	"cmp"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// SampleSet is an immutable table of (t, u) samples sorted by t. No two
// samples share the same t value.
type SampleSet struct {
	ts, us []float64
	xs     searcher
}

// NewSampleSet validates and sorts a table of samples. ts and us are copied,
// so the caller may modify them afterwards. The samples need not be sorted,
// but no value of ts may repeat.
//
// minPoints is the smallest table the caller can work with; it is never
// taken to be less than 2.
func NewSampleSet(ts, us []float64, minPoints int) (*SampleSet, error) {
	if minPoints < 2 {
		minPoints = 2
	}

	if len(ts) != len(us) {
		return nil, fmt.Errorf(
			"%w: len(t) = %d, but len(u) = %d", ErrInvalidInput, len(ts), len(us),
		)
	} else if len(ts) < minPoints {
		return nil, fmt.Errorf(
			"%w: %d samples given, but at least %d are required",
			ErrInvalidInput, len(ts), minPoints,
		)
	}

	for i := range ts {
		if !isFinite(ts[i]) || !isFinite(us[i]) {
			return nil, fmt.Errorf(
				"%w: sample %d, (%g, %g), is not finite",
				ErrInvalidInput, i, ts[i], us[i],
			)
		}
	}

	idx := make([]int, len(ts))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(ts[a], ts[b])
	})

	s := &SampleSet{
		ts: make([]float64, len(ts)),
		us: make([]float64, len(us)),
	}
	for i, j := range idx {
		s.ts[i], s.us[i] = ts[j], us[j]
	}

	for i := 1; i < len(s.ts); i++ {
		if s.ts[i] == s.ts[i-1] {
			return nil, fmt.Errorf(
				"%w: t = %g appears more than once", ErrInvalidInput, s.ts[i],
			)
		}
	}

	s.xs.init(s.ts)
	return s, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Len returns the number of samples.
func (s *SampleSet) Len() int { return len(s.ts) }

// T returns the ith abscissa.
func (s *SampleSet) T(i int) float64 { return s.ts[i] }

// U returns the ith value.
func (s *SampleSet) U(i int) float64 { return s.us[i] }

// Ts returns a copy of the sorted abscissae.
func (s *SampleSet) Ts() []float64 { return append([]float64(nil), s.ts...) }

// Us returns a copy of the values, in the same order as Ts.
func (s *SampleSet) Us() []float64 { return append([]float64(nil), s.us...) }

// Domain returns the smallest and largest abscissae.
func (s *SampleSet) Domain() (lo, hi float64) {
	return s.ts[0], s.ts[len(s.ts)-1]
}

// Locate returns the index i of the segment [t_i, t_{i+1}) containing x. For
// x outside of the domain, i is the nearest boundary segment and pos reports
// which side x fell on.
func (s *SampleSet) Locate(x float64) (i int, pos Position) {
	return s.xs.search(x)
}

// CheckDomain returns an *OutOfDomainWarning if x lies outside of the
// domain and nil otherwise.
func (s *SampleSet) CheckDomain(x float64) error {
	if _, pos := s.xs.search(x); pos != Inside {
		lo, hi := s.Domain()
		return &OutOfDomainWarning{X: x, Lo: lo, Hi: hi}
	}
	return nil
}
