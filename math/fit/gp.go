package fit

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/interp1d/math/interpolate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Process is a distribution over functions which can report its marginal
// distribution at a point.
type Process interface {
	Predict(t float64) (mean, variance float64)
}

// Kernel is a covariance function.
type Kernel func(t1, t2 float64) float64

// SquaredExponential returns the kernel s^2 exp(-(t1 - t2)^2 / (2 l^2)).
func SquaredExponential(scale, sigma float64) Kernel {
	return func(t1, t2 float64) float64 {
		d := (t1 - t2) / scale
		return sigma * sigma * math.Exp(-d*d/2)
	}
}

// GaussianProcess is the posterior of a Gaussian process prior conditioned
// on noisy samples.
type GaussianProcess struct {
	s      *interpolate.SampleSet
	mean   func(t float64) float64
	kernel Kernel
	chol   mat.Cholesky
	alpha  *mat.VecDense
}

var _ Process = &GaussianProcess{}

// NewGaussianProcess conditions the prior with the given mean function and
// covariance kernel on (ts, us). noise is the variance of the observational
// noise and is added to the diagonal of the covariance matrix. A nil mean is
// treated as zero.
func NewGaussianProcess(
	ts, us []float64, mean func(float64) float64, kernel Kernel, noise float64,
) (*GaussianProcess, error) {
	if kernel == nil {
		return nil, fmt.Errorf("%w: nil kernel", interpolate.ErrInvalidInput)
	} else if noise < 0 || math.IsNaN(noise) {
		return nil, fmt.Errorf(
			"%w: negative noise variance %g", interpolate.ErrInvalidInput, noise,
		)
	}
	if mean == nil {
		mean = func(float64) float64 { return 0 }
	}

	s, err := interpolate.NewSampleSet(ts, us, 2)
	if err != nil {
		return nil, err
	}

	n := s.Len()
	k := mat.NewSymDense(n, nil)
	r := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k.SetSym(i, j, kernel(s.T(i), s.T(j)))
		}
		k.SetSym(i, i, k.At(i, i)+noise)
		r.SetVec(i, s.U(i)-mean(s.T(i)))
	}

	gp := &GaussianProcess{s: s, mean: mean, kernel: kernel}
	if ok := gp.chol.Factorize(k); !ok {
		return nil, fmt.Errorf(
			"%w: covariance matrix is not positive definite",
			interpolate.ErrSingularSystem,
		)
	}
	gp.alpha = mat.NewVecDense(n, nil)
	if err := gp.chol.SolveVecTo(gp.alpha, r); err != nil {
		return nil, fmt.Errorf("%w: %v", interpolate.ErrSingularSystem, err)
	}

	return gp, nil
}

// Predict returns the posterior mean and variance at t.
func (gp *GaussianProcess) Predict(t float64) (mean, variance float64) {
	n := gp.s.Len()
	kt := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		kt.SetVec(i, gp.kernel(t, gp.s.T(i)))
	}

	mean = gp.mean(t) + mat.Dot(kt, gp.alpha)

	v := mat.NewVecDense(n, nil)
	if err := gp.chol.SolveVecTo(v, kt); err != nil {
		return mean, math.NaN()
	}
	variance = gp.kernel(t, t) - mat.Dot(kt, v)
	return mean, math.Max(variance, 0)
}

// Stochastic draws values from a Process. Every call to Sample draws an
// independent value, so results differ between calls.
type Stochastic struct {
	p Process
}

// NewStochastic wraps p.
func NewStochastic(p Process) *Stochastic { return &Stochastic{p} }

// Sample draws a value at t and returns it along with the process's mean
// and variance there.
func (st *Stochastic) Sample(t float64) (value, mean, variance float64) {
	mean, variance = st.p.Predict(t)
	if variance <= 0 {
		return mean, mean, variance
	}
	value = distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance)}.Rand()
	return value, mean, variance
}
