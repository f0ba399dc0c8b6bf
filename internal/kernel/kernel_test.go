package kernel

import (
	"math"
	"testing"

	"github.com/agbru/parbench/internal/datagen"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/parallel"
)

func newExecutor(t *testing.T, threads int) *parallel.Executor {
	t.Helper()
	e, err := parallel.NewExecutor(threads)
	if err != nil {
		t.Fatalf("NewExecutor(%d): %v", threads, err)
	}
	return e
}

func closeEnough(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

func TestRegistry_ListIsSorted(t *testing.T) {
	t.Parallel()
	got := NewDefaultRegistry().List()
	want := []string{"blur", "matvec", "primes", "stats"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_Select(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{"all", []string{"all"}, []string{"blur", "matvec", "primes", "stats"}, false},
		{"subset keeps order", []string{"stats", "primes"}, []string{"stats", "primes"}, false},
		{"unknown", []string{"fft"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ks, err := r.Select(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Select(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(ks) != len(tt.want) {
				t.Fatalf("Select(%v) returned %d kernels, want %d", tt.input, len(ks), len(tt.want))
			}
			for i, k := range ks {
				if k.Name() != tt.want[i] {
					t.Errorf("kernel %d = %q, want %q", i, k.Name(), tt.want[i])
				}
			}
		})
	}
}

// TestWorkloads_ParallelMatchesSequential runs every built-in kernel through
// every supported mode on a small input and compares against the baseline.
func TestWorkloads_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()
	sizes := map[string]int{"stats": 10_000, "matvec": 64, "primes": 5_000, "blur": 37}

	kernels, err := NewDefaultRegistry().Select([]string{"all"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	for _, k := range kernels {
		t.Run(k.Name(), func(t *testing.T) {
			t.Parallel()
			w, err := k.Prepare(sizes[k.Name()], datagen.New(datagen.DefaultSeed))
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			base, err := w.Run(Sequential, Options{})
			if err != nil {
				t.Fatalf("sequential run: %v", err)
			}
			want := base.Fingerprint()

			for _, mode := range k.Modes() {
				for threads := 1; threads <= 8; threads++ {
					got, err := w.Run(mode, Options{Threads: threads, BlockSize: 100})
					if err != nil {
						t.Fatalf("%s threads=%d: %v", mode, threads, err)
					}
					fp := got.Fingerprint()
					if len(fp.Values) != len(want.Values) {
						t.Fatalf("%s threads=%d: %d values, want %d", mode, threads, len(fp.Values), len(want.Values))
					}
					for i := range fp.Values {
						ok := fp.Values[i] == want.Values[i]
						if !want.Exact {
							ok = closeEnough(fp.Values[i], want.Values[i])
						}
						if !ok {
							t.Fatalf("%s threads=%d: value %d = %v, want %v", mode, threads, i, fp.Values[i], want.Values[i])
						}
					}
					if got.Summary() == "" {
						t.Errorf("%s threads=%d: empty summary", mode, threads)
					}
				}
			}
		})
	}
}

func TestWorkloads_UnsupportedMode(t *testing.T) {
	t.Parallel()
	w, err := StatsKernel{}.Prepare(10, datagen.New(1))
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if _, err := w.Run(Dynamic, Options{Threads: 2}); err == nil {
		t.Error("expected an error for dynamic stats")
	}
}

func TestWorkloads_InvalidThreads(t *testing.T) {
	t.Parallel()
	w, _ := PrimesKernel{}.Prepare(100, nil)
	if _, err := w.Run(Static, Options{Threads: 0}); !apperrors.IsConfigError(err) {
		t.Errorf("expected ConfigError for zero threads, got %v", err)
	}
}
