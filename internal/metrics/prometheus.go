package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parbench"

// BenchmarkMetrics holds the series describing one suite run. It owns its
// registry so that runs never leak into the process-wide default.
type BenchmarkMetrics struct {
	registry   *prometheus.Registry
	duration   *prometheus.GaugeVec
	speedup    *prometheus.GaugeVec
	efficiency *prometheus.GaugeVec
	runs       *prometheus.CounterVec
	mismatches *prometheus.CounterVec
}

// NewBenchmarkMetrics creates and registers the benchmark series.
func NewBenchmarkMetrics() *BenchmarkMetrics {
	labels := []string{"kernel", "size", "mode", "threads"}
	m := &BenchmarkMetrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time of a kernel run.",
		}, labels),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "speedup_ratio",
			Help:      "Sequential time divided by parallel time.",
		}, labels),
		efficiency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "efficiency_ratio",
			Help:      "Speedup divided by thread count.",
		}, labels),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Kernel runs by outcome.",
		}, []string{"kernel", "outcome"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mismatches_total",
			Help:      "Parallel runs whose value differed from the sequential baseline.",
		}, []string{"kernel"}),
	}
	m.registry.MustRegister(m.duration, m.speedup, m.efficiency, m.runs, m.mismatches)
	return m
}

// Run describes one measured run for Observe.
type Run struct {
	Kernel     string
	Size       int
	Mode       string
	Threads    int
	Seconds    float64
	Speedup    float64
	Efficiency float64
	Failed     bool
	Mismatch   bool
	Baseline   bool
}

// Observe records r.
func (m *BenchmarkMetrics) Observe(r Run) {
	lv := []string{r.Kernel, strconv.Itoa(r.Size), r.Mode, strconv.Itoa(r.Threads)}
	switch {
	case r.Failed:
		m.runs.WithLabelValues(r.Kernel, "failed").Inc()
		return
	case r.Mismatch:
		m.runs.WithLabelValues(r.Kernel, "mismatch").Inc()
		m.mismatches.WithLabelValues(r.Kernel).Inc()
	default:
		m.runs.WithLabelValues(r.Kernel, "ok").Inc()
	}
	m.duration.WithLabelValues(lv...).Set(r.Seconds)
	if !r.Baseline {
		m.speedup.WithLabelValues(lv...).Set(r.Speedup)
		m.efficiency.WithLabelValues(lv...).Set(r.Efficiency)
	}
}

// Registry exposes the underlying registry for gathering.
func (m *BenchmarkMetrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every series in the node-exporter textfile format.
func (m *BenchmarkMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
