package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/phil-mansfield/interp1d/math/interpolate"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
	"golang.org/x/exp/slices"
	"gopkg.in/gcfg.v1"
)

const (
	ExampleInterpolatorFile = `# Each [Interpolator "name"] section describes one model. Any number of
# sections may appear in a single file.
[Interpolator "profile"]

#######################
# Required Parameters #
#######################

# The interpolation method. One of linear, quadratic, lagrange, constant,
# quadratic-spline, cubic-spline, bspline, bspline-approx, or loess.
Method = cubic-spline

# Whitespace-separated column file containing the samples. Lines starting
# with '#' are ignored. Relative paths are relative to this file.
Input = path/to/profile.txt

# Zero-indexed columns holding t and u.
TColumn = 0
UColumn = 1

#######################
# Optional Parameters #
#######################

# What to do with queries outside of the sampled range. extend (default)
# continues the boundary segment and flat holds the boundary value.
# Extrapolation = extend

# Which end of each segment the constant method uses: left or right.
# Direction = left

# Polynomial degree for the B-spline methods (default 3) and loess (default
# 2).
# Degree = 3

# Number of control points for bspline-approx. Must be larger than Degree and
# smaller than the number of samples.
# ControlPoints = 8

# How B-spline parameters are assigned (uniform or arclen) and how interior
# knots are placed (average or uniform).
# Parametrization = uniform
# Knots = average

# Fraction of the samples used in each loess neighborhood, in (0, 1].
# Alpha = 0.75`
)

// InterpolatorConfig describes a single named interpolator.
type InterpolatorConfig struct {
	// Required
	Method           string
	Input            string
	TColumn, UColumn int

	// Optional
	Extrapolation   string
	Direction       string
	Degree          string
	ControlPoints   int
	Parametrization string
	Knots           string
	Alpha           float64

	Name    string
	method  interpolate.Method
	opt     interpolate.Options
	checked bool
}

// InterpolatorWrapper is the top-level structure of an interpolator
// configuration file.
type InterpolatorWrapper struct {
	Interpolator map[string]*InterpolatorConfig
}

func (con *InterpolatorConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *InterpolatorConfig) ValidColumns() bool {
	return con.TColumn >= 0 && con.UColumn >= 0 && con.TColumn != con.UColumn
}
func (con *InterpolatorConfig) ValidAlpha() bool {
	return con.Alpha == 0 || (con.Alpha > 0 && con.Alpha <= 1)
}
func (con *InterpolatorConfig) ValidControlPoints() bool {
	return con.ControlPoints >= 0
}

// CheckInit validates the section with the given name and resolves its
// string-valued fields.
func (con *InterpolatorConfig) CheckInit(name string) error {
	var method interpolate.Method
	if err := method.UnmarshalText([]byte(con.Method)); err != nil {
		return fmt.Errorf(
			"invalid/non-existent 'Method' value for Interpolator '%s': %w",
			name, err,
		)
	} else if !con.ValidInput() {
		return fmt.Errorf(
			"%w: need to specify an 'Input' file for Interpolator '%s'",
			interpolate.ErrInvalidInput, name,
		)
	} else if !con.ValidColumns() {
		return fmt.Errorf(
			"%w: Interpolator '%s' needs two distinct non-negative columns, "+
				"but has TColumn = %d and UColumn = %d",
			interpolate.ErrInvalidInput, name, con.TColumn, con.UColumn,
		)
	} else if !con.ValidAlpha() {
		return fmt.Errorf(
			"%w: 'Alpha' of Interpolator '%s' must be in (0, 1], but is %g",
			interpolate.ErrInvalidInput, name, con.Alpha,
		)
	} else if !con.ValidControlPoints() {
		return fmt.Errorf(
			"%w: Interpolator '%s' given a negative 'ControlPoints', %d",
			interpolate.ErrInvalidInput, name, con.ControlPoints,
		)
	}

	opt := interpolate.DefaultOptions()
	enums := []struct {
		val string
		out interface{ UnmarshalText([]byte) error }
	}{
		{con.Extrapolation, &opt.Extrapolation},
		{con.Direction, &opt.Direction},
		{con.Parametrization, &opt.Parametrization},
		{con.Knots, &opt.Knots},
	}
	for _, e := range enums {
		if e.val == "" {
			continue
		}
		if err := e.out.UnmarshalText([]byte(e.val)); err != nil {
			return fmt.Errorf("Interpolator '%s': %w", name, err)
		}
	}

	if strings.TrimSpace(con.Degree) != "" {
		degree, err := cast.ToIntE(strings.TrimSpace(con.Degree))
		if err != nil {
			return fmt.Errorf(
				"%w: 'Degree' of Interpolator '%s' is not an integer: %v",
				interpolate.ErrInvalidDegree, name, err,
			)
		}
		opt.Degree = degree
	}
	if con.ControlPoints > 0 {
		opt.ControlPoints = con.ControlPoints
	}
	if con.Alpha > 0 {
		opt.Alpha = con.Alpha
	}

	con.Name = name
	con.method = method
	con.opt = *opt
	con.checked = true
	return nil
}

// MethodValue returns the method parsed by CheckInit.
func (con *InterpolatorConfig) MethodValue() interpolate.Method {
	return con.method
}

// Options returns the construction options described by the section. It is
// only meaningful after CheckInit has succeeded.
func (con *InterpolatorConfig) Options(logger l.Wrapper) []interpolate.Option {
	opt := con.opt
	return []interpolate.Option{
		interpolate.WithExtrapolation(opt.Extrapolation),
		interpolate.WithDirection(opt.Direction),
		interpolate.WithDegree(opt.Degree),
		interpolate.WithControlPoints(opt.ControlPoints),
		interpolate.WithParametrization(opt.Parametrization),
		interpolate.WithKnots(opt.Knots),
		interpolate.WithAlpha(opt.Alpha),
		interpolate.WithLogger(logger),
	}
}

// ReadInterpolatorConfig reads every [Interpolator "name"] section from a
// gcfg file. The result is sorted by name, and relative Input paths are
// resolved against the file's directory.
func ReadInterpolatorConfig(fname string) ([]*InterpolatorConfig, error) {
	wrap := &InterpolatorWrapper{}
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return checkConfigs(wrap.Interpolator, filepath.Dir(fname))
}

func checkConfigs(
	cons map[string]*InterpolatorConfig, dir string,
) ([]*InterpolatorConfig, error) {
	if len(cons) == 0 {
		return nil, fmt.Errorf(
			"%w: no Interpolator sections found", interpolate.ErrInvalidInput,
		)
	}

	out := make([]*InterpolatorConfig, 0, len(cons))
	for name, con := range cons {
		if err := con.CheckInit(name); err != nil {
			return nil, err
		}
		if !filepath.IsAbs(con.Input) {
			con.Input = filepath.Join(dir, con.Input)
		}
		out = append(out, con)
	}

	slices.SortFunc(out, func(a, b *InterpolatorConfig) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}
