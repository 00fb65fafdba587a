/*
package fit wraps external fitting machinery behind the same evaluation
surface as the interpolators: nonlinear least-squares curve fitting through
gonum's optimizers and sampling from Gaussian processes.
*/
package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/interp1d/math/interpolate"
	"github.com/sgostarter/i/l"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// ErrOptimizer wraps every failure reported by the optimizer.
var ErrOptimizer = errors.New("fit: optimizer failed")

// Model is a parametric curve u = m(t, p).
type Model func(t float64, p []float64) float64

// CurveFit finds the parameters of a Model which minimize the squared
// residuals against a table of samples. Unlike the interpolators, the samples
// need not be sorted and may repeat t values, as repeated measurements do.
type CurveFit struct {
	ts, us   []float64
	model    Model
	p0       []float64
	method   optimize.Method
	settings *optimize.Settings
	logger   l.Wrapper
}

// Option configures a CurveFit.
type Option func(*CurveFit)

// WithMethod sets the optimization method. NelderMead is used by default.
func WithMethod(m optimize.Method) Option {
	return func(cf *CurveFit) { cf.method = m }
}

// WithSettings sets the optimizer's convergence settings.
func WithSettings(s *optimize.Settings) Option {
	return func(cf *CurveFit) { cf.settings = s }
}

// WithLogger sets the logger used to report fits.
func WithLogger(logger l.Wrapper) Option {
	return func(cf *CurveFit) { cf.logger = logger }
}

// NewCurveFit prepares a fit of model to (ts, us) starting from the
// parameters p0.
func NewCurveFit(
	ts, us []float64, model Model, p0 []float64, opts ...Option,
) (*CurveFit, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil model", interpolate.ErrInvalidInput)
	} else if len(p0) == 0 {
		return nil, fmt.Errorf(
			"%w: no initial parameters", interpolate.ErrInvalidInput,
		)
	}

	if len(ts) != len(us) {
		return nil, fmt.Errorf(
			"%w: len(t) = %d, but len(u) = %d",
			interpolate.ErrInvalidInput, len(ts), len(us),
		)
	} else if len(ts) < len(p0) {
		return nil, fmt.Errorf(
			"%w: %d samples cannot determine %d parameters",
			interpolate.ErrInvalidInput, len(ts), len(p0),
		)
	}
	for i := range ts {
		if !isFinite(ts[i]) || !isFinite(us[i]) {
			return nil, fmt.Errorf(
				"%w: sample %d, (%g, %g), is not finite",
				interpolate.ErrInvalidInput, i, ts[i], us[i],
			)
		}
	}

	cf := &CurveFit{
		ts: append([]float64(nil), ts...), us: append([]float64(nil), us...),
		model: model, p0: append([]float64(nil), p0...),
		method: &optimize.NelderMead{},
		logger: l.NewNopLoggerWrapper(),
	}
	for _, opt := range opts {
		opt(cf)
	}
	cf.logger = cf.logger.WithFields(l.StringField(l.ClsKey, "curve-fit"))

	return cf, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Len returns the number of samples being fit.
func (cf *CurveFit) Len() int { return len(cf.ts) }

func (cf *CurveFit) residual(p []float64) float64 {
	sum := 0.0
	for i := range cf.ts {
		d := cf.model(cf.ts[i], p) - cf.us[i]
		sum += d * d
	}
	return sum
}

// Fit runs the optimizer. Whether it converges is entirely up to the
// optimizer, whose errors are returned wrapped in ErrOptimizer.
func (cf *CurveFit) Fit() (*Result, error) {
	problem := optimize.Problem{
		Func: cf.residual,
		Grad: func(grad, p []float64) {
			fd.Gradient(grad, cf.residual, p, &fd.Settings{Formula: fd.Central})
		},
	}

	res, err := optimize.Minimize(problem, cf.p0, cf.settings, cf.method)
	if err != nil {
		cf.logger.WithFields(l.ErrorField(err)).Error("fit failed")
		return nil, fmt.Errorf("%w: %v", ErrOptimizer, err)
	}

	cf.logger.WithFields(
		l.StringField("status", res.Status.String()),
		l.IntField("iterations", res.Stats.MajorIterations),
		l.IntField("evaluations", res.Stats.FuncEvaluations),
	).Debug("fit finished")

	return &Result{
		model:    cf.model,
		params:   append([]float64(nil), res.X...),
		residual: res.F,
		status:   res.Status,
	}, nil
}

// Result is a fitted Model. It is immutable.
type Result struct {
	model    Model
	params   []float64
	residual float64
	status   optimize.Status
}

// Eval evaluates the fitted model at t.
func (r *Result) Eval(t float64) float64 { return r.model(t, r.params) }

// EvalAll evaluates the fitted model at every value in ts. An optional
// output array can be supplied to prevent unneeded heap allocations.
func (r *Result) EvalAll(ts []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(ts))}
	}
	for i, t := range ts {
		out[0][i] = r.Eval(t)
	}
	return out[0]
}

// Params returns a copy of the resolved parameters.
func (r *Result) Params() []float64 { return append([]float64(nil), r.params...) }

// Residual returns the sum of squared residuals at the resolved parameters.
func (r *Result) Residual() float64 { return r.residual }

// Status returns the optimizer's reason for stopping.
func (r *Result) Status() optimize.Status { return r.status }
