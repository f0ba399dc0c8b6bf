package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBenchmarkMetrics_Observe(t *testing.T) {
	t.Parallel()
	m := NewBenchmarkMetrics()

	m.Observe(Run{Kernel: "primes", Size: 1000, Mode: "sequential", Threads: 1, Seconds: 0.4, Baseline: true})
	m.Observe(Run{Kernel: "primes", Size: 1000, Mode: "static", Threads: 4, Seconds: 0.1, Speedup: 4, Efficiency: 1})
	m.Observe(Run{Kernel: "primes", Size: 1000, Mode: "dynamic", Threads: 4, Mismatch: true, Seconds: 0.2, Speedup: 2, Efficiency: 0.5})
	m.Observe(Run{Kernel: "blur", Size: 10, Mode: "static", Threads: 2, Failed: true})

	if got := testutil.ToFloat64(m.speedup.WithLabelValues("primes", "1000", "static", "4")); got != 4 {
		t.Errorf("speedup = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("primes", "ok")); got != 2 {
		t.Errorf("ok runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.mismatches.WithLabelValues("primes")); got != 1 {
		t.Errorf("mismatches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.runs.WithLabelValues("blur", "failed")); got != 1 {
		t.Errorf("failed runs = %v, want 1", got)
	}
	// The baseline sets a duration but no speedup series.
	if got := testutil.CollectAndCount(m.speedup); got != 2 {
		t.Errorf("speedup series = %d, want 2", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 3 {
		t.Errorf("duration series = %d, want 3", got)
	}
}

func TestBenchmarkMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()
	m := NewBenchmarkMetrics()
	m.Observe(Run{Kernel: "stats", Size: 100, Mode: "static", Threads: 2, Seconds: 0.01, Speedup: 1.5, Efficiency: 0.75})

	path := filepath.Join(t.TempDir(), "parbench.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"parbench_speedup_ratio", `kernel="stats"`, "parbench_runs_total"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
