package bench

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/parbench/internal/datagen"
	"github.com/agbru/parbench/internal/kernel"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/sysmon"
)

// Config holds the parameters shared by every case of a run.
type Config struct {
	Threads   []int
	BlockSize int
	Seed      uint64
	Tolerance float64
}

// Case is the result of benchmarking one kernel at one size.
type Case struct {
	Kernel   string
	Size     int
	Baseline Measurement
	Parallel []Measurement
}

// Consistent reports whether every successful parallel run matched the
// baseline.
func (c Case) Consistent() bool {
	for _, m := range c.Parallel {
		if m.Err == nil && !m.Consistent {
			return false
		}
	}
	return true
}

// Configurations returns how many parallel runs a case of k performs.
func Configurations(k kernel.Kernel, cfg Config) int {
	return len(k.Modes()) * len(cfg.Threads)
}

// Harness runs benchmark cases.
type Harness struct {
	cfg    Config
	logger logging.Logger
	tracer trace.Tracer
	memory *metrics.MemoryCollector
	// OnMeasurement, when set, is called after every run, baseline included.
	OnMeasurement func(kernelName string, size int, m Measurement)
}

// NewHarness returns a harness for cfg.
func NewHarness(cfg Config, logger logging.Logger) *Harness {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = kernel.DefaultBlockSize
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Harness{
		cfg:    cfg,
		logger: logger,
		tracer: otel.Tracer("github.com/agbru/parbench/internal/bench"),
		memory: metrics.NewMemoryCollector(),
	}
}

// Run generates the input of k at size, times the sequential baseline, then
// times every supported mode at every configured thread count. A failing
// baseline aborts the case. A failing parallel run is recorded in its
// Measurement and the remaining configurations still run.
func (h *Harness) Run(ctx context.Context, k kernel.Kernel, size int) (Case, error) {
	ctx, span := h.tracer.Start(ctx, "bench.case", trace.WithAttributes(
		attribute.String("kernel", k.Name()),
		attribute.Int("size", size),
	))
	defer span.End()

	c := Case{Kernel: k.Name(), Size: size}
	w, err := k.Prepare(size, datagen.New(h.cfg.Seed))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prepare failed")
		return c, fmt.Errorf("preparing %s input of size %d: %w", k.Name(), size, err)
	}

	base, result := h.measure(ctx, k.Name(), size, w, kernel.Sequential, 1)
	base.Consistent = base.Err == nil
	c.Baseline = base
	h.notify(k.Name(), size, base)
	if base.Err != nil {
		span.RecordError(base.Err)
		span.SetStatus(codes.Error, "baseline failed")
		return c, fmt.Errorf("%s baseline: %w", k.Name(), base.Err)
	}
	want := result.Fingerprint()

	for _, mode := range k.Modes() {
		for _, threads := range h.cfg.Threads {
			m, got := h.measure(ctx, k.Name(), size, w, mode, threads)
			if m.Err == nil {
				m.Speedup = Speedup(base.Elapsed, m.Elapsed)
				m.Efficiency = Efficiency(m.Speedup, threads)
				if err := Compare(want, got.Fingerprint(), h.cfg.Tolerance); err != nil {
					m.Detail = err.Error()
					h.logger.Warn("result differs from baseline",
						logging.String("kernel", k.Name()),
						logging.String("config", m.Label()),
						logging.String("detail", m.Detail))
				} else {
					m.Consistent = true
				}
			}
			c.Parallel = append(c.Parallel, m)
			h.notify(k.Name(), size, m)
		}
	}
	return c, nil
}

func (h *Harness) measure(ctx context.Context, name string, size int, w kernel.Workload, mode kernel.Mode, threads int) (Measurement, kernel.Result) {
	_, span := h.tracer.Start(ctx, "bench.run", trace.WithAttributes(
		attribute.String("kernel", name),
		attribute.String("mode", string(mode)),
		attribute.Int("threads", threads),
	))
	defer span.End()

	opts := kernel.Options{Threads: threads, BlockSize: h.cfg.BlockSize, Logger: h.logger}
	probe := sysmon.Begin()
	before := h.memory.Snapshot()
	start := time.Now()
	result, err := w.Run(mode, opts)
	elapsed := time.Since(start)
	usage := probe.End()
	alloc := h.memory.Snapshot().Delta(before)

	m := Measurement{
		Mode:       mode,
		Threads:    threads,
		Elapsed:    elapsed,
		Err:        err,
		CPUPercent: usage.CPUPercent,
		AllocBytes: alloc.TotalAlloc,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
		h.logger.Error("run failed", err,
			logging.String("kernel", name),
			logging.String("config", m.Label()))
	} else {
		m.Summary = result.Summary()
		span.SetAttributes(attribute.Int64("elapsed_ns", elapsed.Nanoseconds()))
	}
	h.logger.Debug("run complete",
		logging.String("kernel", name),
		logging.Int("size", size),
		logging.String("config", m.Label()),
		logging.Duration("elapsed", elapsed))
	return m, result
}

func (h *Harness) notify(name string, size int, m Measurement) {
	if h.OnMeasurement != nil {
		h.OnMeasurement(name, size, m)
	}
}
