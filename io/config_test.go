package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phil-mansfield/interp1d/math/interpolate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileTable = `# t u
0.0    14.7
62.25  11.51
109.66 10.41
162.66 14.95
205.8  12.24
252.3  11.22
`

func writeFile(t *testing.T, dir, name, text string) string {
	fname := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestExampleInterpolatorFile(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "example.ini", ExampleInterpolatorFile)

	cons, err := ReadInterpolatorConfig(fname)
	require.NoError(t, err)
	require.Len(t, cons, 1)

	con := cons[0]
	assert.Equal(t, "profile", con.Name)
	assert.Equal(t, interpolate.CubicSplineMethod, con.MethodValue())
	assert.Equal(t, filepath.Join(dir, "path/to/profile.txt"), con.Input)
	assert.Equal(t, 0, con.TColumn)
	assert.Equal(t, 1, con.UColumn)
	assert.Equal(t, interpolate.DefaultDegree, con.opt.Degree)
	assert.Equal(t, 0.75, con.opt.Alpha)
	assert.Equal(t, interpolate.Extend, con.opt.Extrapolation)
}

func TestReadInterpolatorConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "profile.txt", profileTable)
	fname := writeFile(t, dir, "models.ini", `
[Interpolator "step"]
Method = constant
Input = profile.txt
TColumn = 0
UColumn = 1
Direction = Right

[Interpolator "lin"]
Method = linear
Input = profile.txt
TColumn = 0
UColumn = 1
Extrapolation = flat

[Interpolator "smooth"]
Method = bspline-approx
Input = profile.txt
TColumn = 0
UColumn = 1
Degree = 2
ControlPoints = 4
Parametrization = arclen
Knots = uniform

[Interpolator "local"]
Method = loess
Input = profile.txt
TColumn = 0
UColumn = 1
Degree = 0
Alpha = 0.5
`)

	cons, err := ReadInterpolatorConfig(fname)
	require.NoError(t, err)
	require.Len(t, cons, 4)
	names := []string{}
	for _, con := range cons {
		names = append(names, con.Name)
	}
	assert.Equal(t, []string{"lin", "local", "smooth", "step"}, names)

	assert.Equal(t, interpolate.Flat, cons[0].opt.Extrapolation)
	assert.Equal(t, 0, cons[1].opt.Degree)
	assert.Equal(t, 0.5, cons[1].opt.Alpha)
	assert.Equal(t, 2, cons[2].opt.Degree)
	assert.Equal(t, 4, cons[2].opt.ControlPoints)
	assert.Equal(t, interpolate.ArcLen, cons[2].opt.Parametrization)
	assert.Equal(t, interpolate.UniformKnots, cons[2].opt.Knots)
	assert.Equal(t, interpolate.Right, cons[3].opt.Direction)

	models, err := BuildAll(cons, nil)
	require.NoError(t, err)
	require.Len(t, models, 4)

	lin, local, smooth, step := models[0], models[1], models[2], models[3]
	assert.Equal(t, interpolate.LinearMethod, lin.Method)
	assert.InDelta(t, 11.51, lin.Eval(62.25), 1e-12)
	assert.InDelta(t, 14.7, lin.Eval(-100), 1e-12)

	assert.IsType(t, &interpolate.Loess{}, local.Interpolator)
	assert.Equal(t, 0, local.Interpolator.(*interpolate.Loess).Degree())

	sp, ok := smooth.Interpolator.(*interpolate.BSplineApprox)
	require.True(t, ok)
	assert.Equal(t, 2, sp.Degree())
	assert.Len(t, sp.ControlPoints(), 4)

	assert.Equal(t, 11.51, step.Eval(30))

	// Every model built from the same table shares it.
	assert.Same(t, lin.Samples(), step.Samples())
}

func TestInterpolatorConfigErrors(t *testing.T) {
	table := []struct {
		name string
		body string
		err  error
	}{
		{"method", "Method = akima\nInput = a\nUColumn = 1", interpolate.ErrInvalidInput},
		{"no method", "Input = a\nUColumn = 1", interpolate.ErrInvalidInput},
		{"input", "Method = linear\nUColumn = 1", interpolate.ErrInvalidInput},
		{"columns", "Method = linear\nInput = a", interpolate.ErrInvalidInput},
		{"negative column", "Method = linear\nInput = a\nTColumn = -1", interpolate.ErrInvalidInput},
		{"alpha", "Method = loess\nInput = a\nUColumn = 1\nAlpha = 2", interpolate.ErrInvalidInput},
		{"control points", "Method = linear\nInput = a\nUColumn = 1\nControlPoints = -3", interpolate.ErrInvalidInput},
		{"degree", "Method = bspline\nInput = a\nUColumn = 1\nDegree = three", interpolate.ErrInvalidDegree},
		{"direction", "Method = constant\nInput = a\nUColumn = 1\nDirection = up", interpolate.ErrInvalidInput},
		{"knots", "Method = bspline\nInput = a\nUColumn = 1\nKnots = chebyshev", interpolate.ErrInvalidInput},
	}

	for _, test := range table {
		dir := t.TempDir()
		fname := writeFile(t, dir, "bad.ini",
			"[Interpolator \"bad\"]\n"+test.body+"\n")
		_, err := ReadInterpolatorConfig(fname)
		assert.ErrorIs(t, err, test.err, test.name)
	}

	dir := t.TempDir()
	fname := writeFile(t, dir, "empty.ini", "# nothing here\n")
	_, err := ReadInterpolatorConfig(fname)
	assert.ErrorIs(t, err, interpolate.ErrInvalidInput)

	_, err = ReadInterpolatorConfig(filepath.Join(dir, "missing.ini"))
	assert.Error(t, err)
}

func TestReadInterpolatorYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "profile.txt", profileTable)
	fname := writeFile(t, dir, "models.yaml", `interpolators:
  spline:
    method: Cubic-Spline
    input: profile.txt
    tcolumn: 0
    ucolumn: "1"
  smooth:
    Method: bspline-approx
    input: profile.txt
    ucolumn: 1
    degree: "2"
    controlpoints: 4
    alpha: 0.5
`)

	cons, err := ReadInterpolatorYAML(fname)
	require.NoError(t, err)
	require.Len(t, cons, 2)
	assert.Equal(t, "smooth", cons[0].Name)
	assert.Equal(t, 2, cons[0].opt.Degree)
	assert.Equal(t, 4, cons[0].opt.ControlPoints)
	assert.Equal(t, 0.5, cons[0].opt.Alpha)
	assert.Equal(t, "spline", cons[1].Name)
	assert.Equal(t, 1, cons[1].UColumn)
	assert.Equal(t, filepath.Join(dir, "profile.txt"), cons[1].Input)

	models, err := BuildAll(cons, nil)
	require.NoError(t, err)
	for i, u := range []float64{14.7, 11.51, 10.41, 14.95, 12.24, 11.22} {
		assert.InDelta(t, u, models[1].Eval(models[1].Samples().T(i)), 1e-9)
	}
}

func TestExampleInterpolatorYAML(t *testing.T) {
	cons, err := parseInterpolatorYAML([]byte(ExampleInterpolatorYAML))
	require.NoError(t, err)
	require.Len(t, cons, 2)
	assert.Equal(t, "3", cons["smooth"].Degree)
	assert.Equal(t, 8, cons["smooth"].ControlPoints)
	assert.Equal(t, "arclen", cons["smooth"].Parametrization)

	for name, con := range cons {
		assert.NoError(t, con.CheckInit(name))
	}
}

func TestInterpolatorYAMLErrors(t *testing.T) {
	_, err := parseInterpolatorYAML([]byte("interpolators:\n  a:\n    colour: red\n"))
	assert.ErrorIs(t, err, interpolate.ErrInvalidInput)

	_, err = parseInterpolatorYAML([]byte("interpolators:\n  a:\n    tcolumn: first\n"))
	assert.ErrorIs(t, err, interpolate.ErrInvalidInput)

	_, err = parseInterpolatorYAML([]byte("interpolators: [1, 2"))
	assert.Error(t, err)

	dir := t.TempDir()
	fname := writeFile(t, dir, "empty.yaml", "interpolators: {}\n")
	_, err = ReadInterpolatorYAML(fname)
	assert.ErrorIs(t, err, interpolate.ErrInvalidInput)
}

func TestBuildAllErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dup.txt", "1 1\n1 2\n")
	writeFile(t, dir, "profile.txt", profileTable)

	table := []struct {
		name string
		body string
		err  error
	}{
		{"duplicate", "Method = linear\nInput = dup.txt\nUColumn = 1", interpolate.ErrInvalidInput},
		{"degree", "Method = bspline\nInput = profile.txt\nUColumn = 1\nDegree = 9", interpolate.ErrInvalidDegree},
		{"control points", "Method = bspline-approx\nInput = profile.txt\nUColumn = 1", interpolate.ErrInvalidControlPointCount},
	}

	for _, test := range table {
		fname := writeFile(t, dir, "bad.ini",
			"[Interpolator \"bad\"]\n"+test.body+"\n")
		cons, err := ReadInterpolatorConfig(fname)
		require.NoError(t, err, test.name)

		models, err := BuildAll(cons, nil)
		assert.ErrorIs(t, err, test.err, test.name)
		assert.Nil(t, models, test.name)
	}

	fname := writeFile(t, dir, "missing.ini",
		"[Interpolator \"gone\"]\nMethod = linear\nInput = gone.txt\nUColumn = 1\n")
	cons, err := ReadInterpolatorConfig(fname)
	require.NoError(t, err)
	_, err = BuildAll(cons, nil)
	assert.Error(t, err)
}

func TestReadSamples(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "cols.txt", "# a b c\n1 10 100\n2 20 200\n3 30 300\n")

	ts, us, err := ReadSamples(fname, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300}, ts)
	assert.Equal(t, []float64{1, 2, 3}, us)
}

func TestCheckInitMethod(t *testing.T) {
	con := &InterpolatorConfig{Method: " LOESS ", Input: "a.txt", UColumn: 1}

	// Unvalidated configs are never built.
	_, err := BuildAll([]*InterpolatorConfig{con}, nil)
	assert.ErrorIs(t, err, interpolate.ErrInvalidInput)

	require.NoError(t, con.CheckInit("smooth"))
	assert.Equal(t, interpolate.LoessMethod, con.MethodValue())

	bad := &InterpolatorConfig{Method: "akima", Input: "a.txt", UColumn: 1}
	assert.ErrorIs(t, bad.CheckInit("bad"), interpolate.ErrInvalidInput)
	assert.Equal(t, interpolate.Method(0), bad.MethodValue())
	assert.False(t, bad.checked)
}
