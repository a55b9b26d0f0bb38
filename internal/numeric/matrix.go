// Package numeric provides the matrix and probability-distribution helpers
// shared by the analytics engine. All matrix routines operate on row-major
// [][]float64 slices and delegate the heavy lifting to gonum.
package numeric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSingular is returned when a matrix inverse is requested for a
	// matrix whose determinant is zero within the caller's tolerance.
	ErrSingular = errors.New("singular matrix")

	// ErrDimension is returned when operand shapes do not line up.
	ErrDimension = errors.New("dimension mismatch")
)

// Transpose returns the transpose of m. A nil or empty matrix transposes to nil.
func Transpose(m [][]float64) [][]float64 {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil
	}
	rows, cols := len(m), len(m[0])
	out := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		out[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// MatMul returns the product a·b.
func MatMul(a, b [][]float64) ([][]float64, error) {
	da, err := toDense(a)
	if err != nil {
		return nil, err
	}
	db, err := toDense(b)
	if err != nil {
		return nil, err
	}
	ra, ca := da.Dims()
	rb, cb := db.Dims()
	if ca != rb {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d", ErrDimension, ra, ca, rb, cb)
	}
	var prod mat.Dense
	prod.Mul(da, db)
	return fromDense(&prod), nil
}

// MatVec returns the product a·v.
func MatVec(a [][]float64, v []float64) ([]float64, error) {
	da, err := toDense(a)
	if err != nil {
		return nil, err
	}
	r, c := da.Dims()
	if c != len(v) {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by vector of length %d", ErrDimension, r, c, len(v))
	}
	var out mat.VecDense
	out.MulVec(da, mat.NewVecDense(len(v), v))
	result := make([]float64, r)
	for i := range result {
		result[i] = out.AtVec(i)
	}
	return result, nil
}

// Inverse returns the inverse of the square matrix m. The determinant is
// checked against tol first so that near-singular systems fail with
// ErrSingular instead of returning garbage coefficients.
func Inverse(m [][]float64, tol float64) ([][]float64, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, err
	}
	r, c := d.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: inverse requires a square matrix, got %dx%d", ErrDimension, r, c)
	}
	if det := mat.Det(d); math.Abs(det) <= tol {
		return nil, fmt.Errorf("%w: determinant %.3e within tolerance %.3e", ErrSingular, det, tol)
	}
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return fromDense(&inv), nil
}

func toDense(m [][]float64) (*mat.Dense, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrDimension)
	}
	rows, cols := len(m), len(m[0])
	data := make([]float64, 0, rows*cols)
	for i, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimension, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(rows, cols, data), nil
}

func fromDense(d *mat.Dense) [][]float64 {
	rows, cols := d.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = d.At(i, j)
		}
	}
	return out
}
