package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phil-mansfield/interp1d/math/interpolate"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const ExampleInterpolatorYAML = `interpolators:
  profile:
    method: cubic-spline
    input: path/to/profile.txt
    tcolumn: 0
    ucolumn: 1
  smooth:
    method: bspline-approx
    input: path/to/profile.txt
    tcolumn: 0
    ucolumn: 1
    degree: 3
    controlpoints: 8
    parametrization: arclen
`

type yamlFile struct {
	Interpolators map[string]map[string]interface{} `yaml:"interpolators"`
}

// ReadInterpolatorYAML reads interpolator configurations from a YAML file with
// the same fields as the gcfg format under a top-level "interpolators"
// mapping. Keys are case-insensitive and scalars are coerced loosely, so
// "degree: '3'" and "degree: 3" are equivalent.
func ReadInterpolatorYAML(fname string) ([]*InterpolatorConfig, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	cons, err := parseInterpolatorYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return checkConfigs(cons, filepath.Dir(fname))
}

func parseInterpolatorYAML(data []byte) (map[string]*InterpolatorConfig, error) {
	file := yamlFile{}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	cons := make(map[string]*InterpolatorConfig, len(file.Interpolators))
	for name, fields := range file.Interpolators {
		con := &InterpolatorConfig{}
		for key, val := range fields {
			if err := con.setField(key, val); err != nil {
				return nil, fmt.Errorf(
					"%w: field '%s' of interpolator '%s': %v",
					interpolate.ErrInvalidInput, key, name, err,
				)
			}
		}
		cons[name] = con
	}
	return cons, nil
}

func (con *InterpolatorConfig) setField(key string, val interface{}) error {
	var err error
	switch strings.ToLower(key) {
	case "method":
		con.Method, err = cast.ToStringE(val)
	case "input":
		con.Input, err = cast.ToStringE(val)
	case "tcolumn":
		con.TColumn, err = cast.ToIntE(val)
	case "ucolumn":
		con.UColumn, err = cast.ToIntE(val)
	case "extrapolation":
		con.Extrapolation, err = cast.ToStringE(val)
	case "direction":
		con.Direction, err = cast.ToStringE(val)
	case "degree":
		con.Degree, err = cast.ToStringE(val)
	case "controlpoints":
		con.ControlPoints, err = cast.ToIntE(val)
	case "parametrization":
		con.Parametrization, err = cast.ToStringE(val)
	case "knots":
		con.Knots, err = cast.ToStringE(val)
	case "alpha":
		con.Alpha, err = cast.ToFloat64E(val)
	default:
		err = errors.New("unrecognized field")
	}
	return err
}
