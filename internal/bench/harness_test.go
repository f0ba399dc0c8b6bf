package bench

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/agbru/parbench/internal/datagen"
	"github.com/agbru/parbench/internal/kernel"
)

type fakeResult float64

func (r fakeResult) Summary() string { return strconv.FormatFloat(float64(r), 'g', -1, 64) }
func (r fakeResult) Fingerprint() kernel.Fingerprint {
	return kernel.Fingerprint{Values: []float64{float64(r)}}
}

// fakeKernel returns value for every mode, except that the modes listed in
// wrong return value+1 and those in failing return an error.
type fakeKernel struct {
	value      float64
	wrong      map[kernel.Mode]bool
	failing    map[kernel.Mode]bool
	prepareErr error
}

func (fakeKernel) Name() string        { return "fake" }
func (fakeKernel) Description() string { return "test kernel" }
func (fakeKernel) Modes() []kernel.Mode {
	return []kernel.Mode{kernel.Static, kernel.Dynamic}
}
func (fakeKernel) DefaultSizes() []int { return []int{10} }

func (k fakeKernel) Prepare(int, *datagen.Generator) (kernel.Workload, error) {
	if k.prepareErr != nil {
		return nil, k.prepareErr
	}
	return k, nil
}

func (k fakeKernel) Run(mode kernel.Mode, _ kernel.Options) (kernel.Result, error) {
	if k.failing[mode] {
		return nil, errors.New("boom")
	}
	if k.wrong[mode] {
		return fakeResult(k.value + 1), nil
	}
	return fakeResult(k.value), nil
}

func TestHarness_RunsEveryConfiguration(t *testing.T) {
	t.Parallel()
	cfg := Config{Threads: []int{1, 2, 4}, Seed: 1}
	h := NewHarness(cfg, nil)

	var (
		mu       sync.Mutex
		observed []string
	)
	h.OnMeasurement = func(name string, size int, m Measurement) {
		mu.Lock()
		defer mu.Unlock()
		observed = append(observed, m.Label())
	}

	k := fakeKernel{value: 3}
	c, err := h.Run(context.Background(), k, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := Configurations(k, cfg); len(c.Parallel) != want {
		t.Fatalf("got %d parallel measurements, want %d", len(c.Parallel), want)
	}
	if !c.Consistent() || !c.Baseline.Consistent {
		t.Error("expected a consistent case")
	}
	if c.Baseline.Summary != "3" {
		t.Errorf("baseline summary = %q, want 3", c.Baseline.Summary)
	}
	if len(observed) != 7 || observed[0] != "sequential" || observed[6] != "dynamic/4" {
		t.Errorf("observed = %v", observed)
	}
}

func TestHarness_FlagsMismatch(t *testing.T) {
	t.Parallel()
	h := NewHarness(Config{Threads: []int{2}}, nil)
	c, err := h.Run(context.Background(), fakeKernel{value: 1, wrong: map[kernel.Mode]bool{kernel.Dynamic: true}}, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Consistent() {
		t.Fatal("expected an inconsistent case")
	}
	if !c.Parallel[0].Consistent || c.Parallel[1].Consistent {
		t.Errorf("consistency flags = %v, %v", c.Parallel[0].Consistent, c.Parallel[1].Consistent)
	}
	if c.Parallel[1].Detail == "" {
		t.Error("expected a mismatch detail")
	}
}

func TestHarness_ParallelFailureIsRecorded(t *testing.T) {
	t.Parallel()
	h := NewHarness(Config{Threads: []int{2}}, nil)
	c, err := h.Run(context.Background(), fakeKernel{failing: map[kernel.Mode]bool{kernel.Static: true}}, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Parallel[0].Err == nil {
		t.Error("expected the static run to carry its error")
	}
	if c.Parallel[1].Err != nil {
		t.Errorf("dynamic run should still succeed: %v", c.Parallel[1].Err)
	}
	if !c.Consistent() {
		t.Error("failed runs do not count as mismatches")
	}
}

func TestHarness_BaselineFailureAborts(t *testing.T) {
	t.Parallel()
	h := NewHarness(Config{Threads: []int{2}}, nil)
	_, err := h.Run(context.Background(), fakeKernel{failing: map[kernel.Mode]bool{kernel.Sequential: true}}, 10)
	if err == nil {
		t.Fatal("expected baseline failure")
	}

	prepErr := errors.New("no memory")
	if _, err := h.Run(context.Background(), fakeKernel{prepareErr: prepErr}, 10); !errors.Is(err, prepErr) {
		t.Errorf("expected wrapped prepare error, got %v", err)
	}
}

func TestHarness_RealKernel(t *testing.T) {
	t.Parallel()
	h := NewHarness(Config{Threads: []int{1, 3}, Seed: datagen.DefaultSeed}, nil)
	c, err := h.Run(context.Background(), kernel.PrimesKernel{}, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Baseline.Summary != "count=4" {
		t.Errorf("baseline summary = %q, want count=4", c.Baseline.Summary)
	}
	for _, m := range c.Parallel {
		if m.Err != nil || !m.Consistent || m.Summary != "count=4" {
			t.Errorf("%s: %+v", m.Label(), m)
		}
	}
}
