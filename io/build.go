package io

import (
	"fmt"

	"github.com/phil-mansfield/interp1d/math/interpolate"
	"github.com/phil-mansfield/table"
	"github.com/sgostarter/i/l"
)

// ReadSamples reads the t and u columns of a whitespace-separated text table.
// Lines starting with '#' are skipped.
func ReadSamples(fname string, tCol, uCol int) (ts, us []float64, err error) {
	cols, err := table.ReadTable(fname, []int{tCol, uCol}, nil)
	if err != nil {
		return nil, nil, err
	}
	return cols[0], cols[1], nil
}

// Model is an interpolator built from a configuration section.
type Model struct {
	Name   string
	Method interpolate.Method
	interpolate.Interpolator
}

// BuildAll reads the samples of every configuration and constructs the
// interpolators they describe, in order. Tables shared between several
// configurations are only read once.
func BuildAll(cons []*InterpolatorConfig, logger l.Wrapper) ([]*Model, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	type tableKey struct {
		input      string
		tCol, uCol int
	}
	tables := map[tableKey]*interpolate.SampleSet{}

	models := make([]*Model, 0, len(cons))
	for _, con := range cons {
		if !con.checked {
			return nil, fmt.Errorf(
				"%w: Interpolator '%s' has not been validated with CheckInit",
				interpolate.ErrInvalidInput, con.Name,
			)
		}
		method := con.MethodValue()
		mLog := logger.WithFields(
			l.StringField("interpolator", con.Name),
			l.StringField("method", method.String()),
		)

		key := tableKey{con.Input, con.TColumn, con.UColumn}
		s, ok := tables[key]
		if !ok {
			ts, us, err := ReadSamples(con.Input, con.TColumn, con.UColumn)
			if err != nil {
				mLog.WithFields(l.ErrorField(err)).Error("read samples failed")
				return nil, fmt.Errorf("Interpolator '%s': %w", con.Name, err)
			}
			if s, err = interpolate.NewSampleSet(ts, us, 2); err != nil {
				mLog.WithFields(l.ErrorField(err)).Error("invalid samples")
				return nil, fmt.Errorf("Interpolator '%s': %w", con.Name, err)
			}
			tables[key] = s
		}

		in, err := interpolate.BuildSamples(method, s, con.Options(mLog)...)
		if err != nil {
			mLog.WithFields(l.ErrorField(err)).Error("build failed")
			return nil, fmt.Errorf("Interpolator '%s': %w", con.Name, err)
		}

		mLog.WithFields(l.IntField("samples", s.Len())).Debug("built")
		models = append(models, &Model{con.Name, method, in})
	}

	return models, nil
}
