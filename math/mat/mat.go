/*
mat contains the linear algebra routines needed to fit interpolants. Banded
systems (the ones splines produce) are solved directly with the Thomas
algorithm. Dense systems are handed off to gonum.

Pretty much everything here works on float64 slices in row-major order
because that's how the interpolators build their systems.
*/
package mat

import (
	"errors"
	"fmt"
	"math"

	gonum "gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when a system of equations has no unique solution.
var ErrSingular = errors.New("mat: singular system")

// Matrix represents a matrix of float64 values stored in row-major order.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// NewMatrix creates a matrix with the specified values and dimensions. If
// vals is nil, a zeroed matrix is allocated.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	}

	if vals == nil {
		vals = make([]float64, width*height)
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.Vals[i*m.Width+j] }

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.Vals[i*m.Width+j] = v }

// Row returns the ith row. The returned slice shares memory with m.
func (m *Matrix) Row(i int) []float64 {
	return m.Vals[i*m.Width : (i+1)*m.Width]
}

func (m *Matrix) dense() *gonum.Dense {
	return gonum.NewDense(m.Height, m.Width, m.Vals)
}

// MultVector computes m * xs.
func (m *Matrix) MultVector(xs []float64) []float64 {
	if len(xs) != m.Width {
		panic("Multiplication of incompatible matrix and vector sizes.")
	}

	out := make([]float64, m.Height)
	for i := range out {
		row := m.Row(i)
		sum := 0.0
		for j := range row {
			sum += row[j] * xs[j]
		}
		out[i] = sum
	}
	return out
}

// SolveVector solves the equation m * xs = bs for xs using an LU
// decomposition. m must be square.
func (m *Matrix) SolveVector(bs []float64) ([]float64, error) {
	if m.Width != m.Height {
		panic("m is non-square.")
	} else if len(bs) != m.Height {
		panic("len(bs) != m.Height")
	}

	var lu gonum.LU
	lu.Factorize(m.dense())
	if math.IsInf(lu.Cond(), 1) {
		return nil, fmt.Errorf("%w: LU factorization has a zero pivot", ErrSingular)
	}

	var xs gonum.VecDense
	err := lu.SolveVecTo(&xs, false, gonum.NewVecDense(len(bs), bs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return vecVals(&xs), nil
}

// LeastSquares returns the xs which minimize |m * xs - bs|^2. The normal
// equations m^T m xs = m^T bs are solved with a Cholesky decomposition, so m
// must have full column rank.
func (m *Matrix) LeastSquares(bs []float64) ([]float64, error) {
	if len(bs) != m.Height {
		panic("len(bs) != m.Height")
	} else if m.Height < m.Width {
		return nil, fmt.Errorf(
			"%w: %d equations for %d unknowns", ErrSingular, m.Height, m.Width,
		)
	}

	a := m.dense()

	var ata gonum.SymDense
	ata.SymOuterK(1, a.T())

	var chol gonum.Cholesky
	if ok := chol.Factorize(&ata); !ok {
		return nil, fmt.Errorf(
			"%w: normal equations are not positive definite", ErrSingular,
		)
	}

	var atb gonum.VecDense
	atb.MulVec(a.T(), gonum.NewVecDense(len(bs), bs))

	var xs gonum.VecDense
	if err := chol.SolveVecTo(&xs, &atb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return vecVals(&xs), nil
}

// PolyFit fits a polynomial of the given degree to the points (xs, ys) with
// weights ws by weighted least squares. The coefficients are returned in
// increasing order of power: cs[0] + cs[1]*x + cs[2]*x^2 + ...
//
// ws may be nil, in which case every point has unit weight. Rank deficient
// systems return ErrSingular.
func PolyFit(xs, ys, ws []float64, degree int) ([]float64, error) {
	n := len(xs)
	if len(ys) != n || (ws != nil && len(ws) != n) {
		panic("Length of input slices are not equal.")
	} else if degree < 0 {
		panic("degree must be non-negative.")
	}
	if n < degree+1 {
		return nil, fmt.Errorf(
			"%w: %d points cannot determine a degree %d polynomial",
			ErrSingular, n, degree,
		)
	}

	a := gonum.NewDense(n, degree+1, nil)
	b := gonum.NewVecDense(n, nil)
	for i := range xs {
		sw := 1.0
		if ws != nil {
			sw = math.Sqrt(ws[i])
		}
		for j, p := 0, sw; j <= degree; j, p = j+1, p*xs[i] {
			a.Set(i, j, p)
		}
		b.SetVec(i, sw*ys[i])
	}

	var qr gonum.QR
	qr.Factorize(a)

	var cs gonum.VecDense
	if err := qr.SolveVecTo(&cs, false, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return vecVals(&cs), nil
}

func vecVals(v *gonum.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
