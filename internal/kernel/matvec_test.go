package kernel

import (
	"testing"

	"github.com/agbru/parbench/internal/datagen"
	apperrors "github.com/agbru/parbench/internal/errors"
)

func TestMulVec_IdentityReturnsInput(t *testing.T) {
	t.Parallel()
	const n = 50
	v := datagen.New(3).Vector(n, 1)
	m := Identity(n)

	check := func(label string, got []float64) {
		t.Helper()
		for i := range v {
			if got[i] != v[i] {
				t.Fatalf("%s: out[%d] = %v, want %v", label, i, got[i], v[i])
			}
		}
	}

	seq, err := MulVecSequential(m, v)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	check("sequential", seq)

	for threads := 1; threads <= 8; threads++ {
		par, err := MulVecParallel(newExecutor(t, threads), m, v)
		if err != nil {
			t.Fatalf("threads=%d: %v", threads, err)
		}
		check("parallel", par)
	}
}

func TestMulVec_SmallProduct(t *testing.T) {
	t.Parallel()
	m, err := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	got, err := MulVecParallel(newExecutor(t, 2), m, []float64{1, 0, -1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != -2 || got[1] != -2 {
		t.Errorf("got %v, want [-2 -2]", got)
	}
}

func TestMulVec_ShapeErrors(t *testing.T) {
	t.Parallel()
	if _, err := NewMatrix(2, 2, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for short matrix data")
	}
	_, err := MulVecSequential(Identity(3), []float64{1, 2})
	if !apperrors.IsConfigError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := MulVecParallel(newExecutor(t, 2), Identity(3), []float64{1}); err == nil {
		t.Error("expected error for mismatched vector in parallel product")
	}
}
