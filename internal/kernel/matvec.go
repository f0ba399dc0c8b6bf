package kernel

import (
	"fmt"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/parallel"
)

// Matrix is a dense row-major matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

// NewMatrix wraps data as a rows×cols matrix.
func NewMatrix(rows, cols int, data []float64) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, apperrors.ValidationError{Field: "matrix", Message: fmt.Sprintf("negative shape %dx%d", rows, cols)}
	}
	if len(data) != rows*cols {
		return Matrix{}, apperrors.ValidationError{
			Field:   "matrix",
			Message: fmt.Sprintf("%d elements do not fill a %dx%d matrix", len(data), rows, cols),
		}
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := Matrix{Rows: n, Cols: n, Data: make([]float64, n*n)}
	for i := range n {
		m.Data[i*n+i] = 1
	}
	return m
}

// Row returns row i.
func (m Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

func dot(a, b []float64) float64 {
	s := 0.0
	for j, x := range a {
		s += x * b[j]
	}
	return s
}

func checkShape(m Matrix, v []float64) error {
	if len(v) != m.Cols {
		return apperrors.ValidationError{
			Field:   "vector",
			Message: fmt.Sprintf("length %d does not match %d columns", len(v), m.Cols),
		}
	}
	return nil
}

// MulVecSequential returns m·v.
func MulVecSequential(m Matrix, v []float64) ([]float64, error) {
	if err := checkShape(m, v); err != nil {
		return nil, err
	}
	out := make([]float64, m.Rows)
	for i := range out {
		out[i] = dot(m.Row(i), v)
	}
	return out, nil
}

// MulVecParallel returns m·v with output rows statically partitioned across
// the executor's workers. Each worker writes only its own rows.
func MulVecParallel(e *parallel.Executor, m Matrix, v []float64) ([]float64, error) {
	if err := checkShape(m, v); err != nil {
		return nil, err
	}
	out := make([]float64, m.Rows)
	arena, err := parallel.NewArena(out, 1)
	if err != nil {
		return nil, err
	}
	_, err = parallel.RunStatic(e, parallel.Range{Start: 0, End: m.Rows}, func(p parallel.Partition) (struct{}, error) {
		view := arena.View(p)
		for i := range view {
			view[i] = dot(m.Row(p.Start+i), v)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Vector is the output of the matrix-vector kernel.
type Vector []float64

// Summary implements Result.
func (v Vector) Summary() string {
	return fmt.Sprintf("len=%d sum=%.4f", len(v), sumRange(v))
}

// Fingerprint implements Result.
func (v Vector) Fingerprint() Fingerprint {
	return Fingerprint{Values: v}
}
