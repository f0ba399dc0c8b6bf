package datagen

import "testing"

func TestGenerator_Deterministic(t *testing.T) {
	t.Parallel()
	a := New(DefaultSeed).Vector(100, 100)
	b := New(DefaultSeed).Vector(100, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: %v != %v for the same seed", i, a[i], b[i])
		}
	}
	c := New(7).Vector(100, 100)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical vectors")
	}
}

func TestGenerator_Ranges(t *testing.T) {
	t.Parallel()
	g := New(DefaultSeed)
	for _, v := range g.Vector(1000, 100) {
		if v < 0 || v >= 100 {
			t.Fatalf("vector value %v outside [0, 100)", v)
		}
	}
	m := g.Matrix(10, 20)
	if len(m) != 200 {
		t.Fatalf("matrix length %d, want 200", len(m))
	}
	for _, v := range m {
		if v < 0 || v >= 1 {
			t.Fatalf("matrix value %v outside [0, 1)", v)
		}
	}
	for _, p := range g.Pixels(1000) {
		if p < 0 || p > 255 {
			t.Fatalf("pixel %d outside [0, 255]", p)
		}
	}
}
