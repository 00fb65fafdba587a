package interpolate

import (
	"fmt"
	"strings"

	"github.com/sgostarter/i/l"
)

// Method selects an interpolation scheme for Build.
type Method int

const (
	LinearMethod Method = iota
	QuadraticMethod
	LagrangeMethod
	ConstantMethod
	QuadraticSplineMethod
	CubicSplineMethod
	BSplineMethod
	BSplineApproxMethod
	LoessMethod
)

var methodNames = []string{
	"linear", "quadratic", "lagrange", "constant",
	"quadratic-spline", "cubic-spline", "bspline", "bspline-approx", "loess",
}

// Direction selects which end of a segment a piecewise constant interpolant
// takes its value from.
type Direction int

const (
	// Left holds u_i over [t_i, t_{i+1}).
	Left Direction = iota
	// Right holds u_{i+1} over (t_i, t_{i+1}].
	Right
)

var directionNames = []string{"left", "right"}

// Parametrization selects how B-spline parameter values are assigned to
// samples.
type Parametrization int

const (
	// Uniform spaces parameters evenly over [0, 1].
	Uniform Parametrization = iota
	// ArcLen spaces parameters by the cumulative chord length of the
	// (t, u) polyline.
	ArcLen
)

var parametrizationNames = []string{"uniform", "arclen"}

// KnotPolicy selects how interior B-spline knots are placed.
type KnotPolicy int

const (
	// Average places knots by averaging consecutive parameter values.
	Average KnotPolicy = iota
	// UniformKnots spaces interior knots evenly over [0, 1].
	UniformKnots
)

var knotPolicyNames = []string{"average", "uniform"}

// Extrapolation selects how queries outside of the sample domain are
// handled.
type Extrapolation int

const (
	// Extend evaluates the boundary segment's local formula.
	Extend Extrapolation = iota
	// Flat holds the boundary value. Derivatives are zero outside of the
	// domain.
	Flat
)

var extrapolationNames = []string{"extend", "flat"}

func (m Method) String() string          { return enumName(methodNames, int(m)) }
func (d Direction) String() string       { return enumName(directionNames, int(d)) }
func (p Parametrization) String() string { return enumName(parametrizationNames, int(p)) }
func (k KnotPolicy) String() string      { return enumName(knotPolicyNames, int(k)) }
func (e Extrapolation) String() string   { return enumName(extrapolationNames, int(e)) }

func (m *Method) UnmarshalText(text []byte) error {
	return parseEnum("method", methodNames, text, (*int)(m))
}
func (d *Direction) UnmarshalText(text []byte) error {
	return parseEnum("direction", directionNames, text, (*int)(d))
}
func (p *Parametrization) UnmarshalText(text []byte) error {
	return parseEnum("parametrization", parametrizationNames, text, (*int)(p))
}
func (k *KnotPolicy) UnmarshalText(text []byte) error {
	return parseEnum("knot policy", knotPolicyNames, text, (*int)(k))
}
func (e *Extrapolation) UnmarshalText(text []byte) error {
	return parseEnum("extrapolation", extrapolationNames, text, (*int)(e))
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(kind string, names []string, text []byte, out *int) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range names {
		if s == name {
			*out = i
			return nil
		}
	}
	return fmt.Errorf(
		"%w: unrecognized %s '%s', must be one of [ %s ]",
		ErrInvalidInput, kind, string(text), strings.Join(names, " | "),
	)
}

// DefaultDegree asks Build to use the method's default degree: 3 for the
// B-spline methods and 2 for LOESS.
const DefaultDegree = -1

// Options holds every per-method knob. Fields which a method does not use
// are ignored.
type Options struct {
	// Direction is used by ConstantMethod.
	Direction Direction
	// Degree is used by the B-spline methods and LoessMethod.
	Degree int
	// ControlPoints is used by BSplineApproxMethod.
	ControlPoints int
	// Parametrization and Knots are used by the B-spline methods.
	Parametrization Parametrization
	Knots           KnotPolicy
	// Alpha is the fraction of samples in each LOESS neighborhood.
	Alpha float64

	Extrapolation Extrapolation
	Logger        l.Wrapper
}

// DefaultOptions returns the options Build starts from.
func DefaultOptions() *Options {
	return &Options{
		Direction:       Left,
		Degree:          DefaultDegree,
		Parametrization: Uniform,
		Knots:           Average,
		Alpha:           0.75,
		Extrapolation:   Extend,
		Logger:          l.NewNopLoggerWrapper(),
	}
}

// Option modifies Options.
type Option func(*Options)

// WithDirection sets the direction of a piecewise constant interpolant.
func WithDirection(d Direction) Option {
	return func(o *Options) { o.Direction = d }
}

// WithDegree sets the degree of a B-spline or LOESS interpolant.
func WithDegree(degree int) Option {
	return func(o *Options) { o.Degree = degree }
}

// WithControlPoints sets the number of control points of a B-spline
// approximation.
func WithControlPoints(h int) Option {
	return func(o *Options) { o.ControlPoints = h }
}

// WithParametrization sets how B-spline parameters are assigned.
func WithParametrization(p Parametrization) Option {
	return func(o *Options) { o.Parametrization = p }
}

// WithKnots sets how interior B-spline knots are placed.
func WithKnots(k KnotPolicy) Option {
	return func(o *Options) { o.Knots = k }
}

// WithAlpha sets the LOESS neighborhood fraction.
func WithAlpha(alpha float64) Option {
	return func(o *Options) { o.Alpha = alpha }
}

// WithExtrapolation sets the out-of-domain policy.
func WithExtrapolation(e Extrapolation) Option {
	return func(o *Options) { o.Extrapolation = e }
}

// WithLogger sets the logger used to report construction and out-of-domain
// queries.
func WithLogger(logger l.Wrapper) Option {
	return func(o *Options) { o.Logger = logger }
}

func (o *Options) loadOptions(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = l.NewNopLoggerWrapper()
	}
}

func loadOptions(opts []Option) *Options {
	o := DefaultOptions()
	o.loadOptions(opts)
	return o
}
