package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/parbench/internal/bench"
	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/kernel"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/sysmon"
)

// ProgressBufferMultiplier sizes the progress channel relative to the number
// of kernels so the harness rarely blocks on a slow display.
const ProgressBufferMultiplier = 5

// SuiteOptions carries the collaborators of a suite run.
type SuiteOptions struct {
	Config config.AppConfig
	Logger logging.Logger
	// Metrics, when set, receives every measurement.
	Metrics *metrics.BenchmarkMetrics
}

// ExecuteSuite runs every case of the plan one after the other; cases never
// overlap since they would compete for the same cores. Progress updates go to
// reporter, which runs in its own goroutine until the suite is done.
func ExecuteSuite(ctx context.Context, plans []Plan, opts SuiteOptions, reporter ProgressReporter, out io.Writer) SuiteReport {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	ctx, span := otel.Tracer("github.com/agbru/parbench/internal/orchestration").Start(ctx, "suite",
		trace.WithAttributes(
			attribute.Int("kernels", len(plans)),
			attribute.IntSlice("threads", cfg.Threads),
		))
	defer span.End()

	report := SuiteReport{
		Host:      sysmon.DescribeHost(),
		Threads:   cfg.Threads,
		BlockSize: cfg.BlockSize,
		Seed:      cfg.Seed,
		Tolerance: cfg.Tolerance,
		Started:   time.Now(),
	}

	totalRuns := TotalRuns(plans, cfg.Threads)
	progressChan := make(chan ProgressUpdate, max(len(plans), 1)*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, totalRuns, out)

	harness := bench.NewHarness(bench.Config{
		Threads:   cfg.Threads,
		BlockSize: cfg.BlockSize,
		Seed:      cfg.Seed,
		Tolerance: cfg.Tolerance,
	}, logger)
	sent := 0
	harness.OnMeasurement = func(kernelName string, size int, m bench.Measurement) {
		if opts.Metrics != nil {
			opts.Metrics.Observe(metrics.Run{
				Kernel:     kernelName,
				Size:       size,
				Mode:       string(m.Mode),
				Threads:    m.Threads,
				Seconds:    m.Elapsed.Seconds(),
				Speedup:    m.Speedup,
				Efficiency: m.Efficiency,
				Failed:     m.Err != nil,
				Mismatch:   m.Err == nil && !m.Consistent,
				Baseline:   m.Mode == kernel.Sequential,
			})
		}
		sent++
		progressChan <- ProgressUpdate{Kernel: kernelName, Size: size, Label: m.Label(), Err: m.Err}
	}

	for _, p := range plans {
		for _, size := range p.Sizes {
			logger.Info("benchmarking",
				logging.String("kernel", p.Kernel.Name()),
				logging.Int("size", size))
			sent = 0
			c, err := harness.Run(ctx, p.Kernel, size)
			if err != nil {
				logger.Error("case failed", err,
					logging.String("kernel", p.Kernel.Name()),
					logging.Int("size", size))
				report.Failures = append(report.Failures, CaseFailure{Kernel: p.Kernel.Name(), Size: size, Err: err})
				// The remaining runs of this case never happen; keep the
				// progress total honest.
				for range 1 + len(p.Kernel.Modes())*len(cfg.Threads) - sent {
					progressChan <- ProgressUpdate{Kernel: p.Kernel.Name(), Size: size, Label: "skipped", Err: err}
				}
				continue
			}
			report.Cases = append(report.Cases, c)
		}
	}

	close(progressChan)
	displayWg.Wait()
	report.Elapsed = time.Since(report.Started)
	span.SetAttributes(attribute.Int("cases", len(report.Cases)), attribute.Int("failures", len(report.Failures)))
	return report
}

// FirstError returns the error that decides the exit status of report: the
// first failed case or run, otherwise the first inconsistent run as a
// MismatchError, otherwise nil.
func FirstError(report SuiteReport) error {
	if len(report.Failures) > 0 {
		f := report.Failures[0]
		return fmt.Errorf("%s size %d: %w", f.Kernel, f.Size, f.Err)
	}
	for _, c := range report.Cases {
		for _, m := range c.Parallel {
			if m.Err != nil {
				return fmt.Errorf("%s size %d %s: %w", c.Kernel, c.Size, m.Label(), m.Err)
			}
		}
	}
	for _, c := range report.Cases {
		for _, m := range c.Parallel {
			if !m.Consistent {
				return apperrors.MismatchError{
					Benchmark: fmt.Sprintf("%s size %d %s", c.Kernel, c.Size, m.Label()),
					Detail:    m.Detail,
				}
			}
		}
	}
	return nil
}

// AnalyzeSuite presents every case and the summary, then prints the global
// status and returns the process exit code.
func AnalyzeSuite(report SuiteReport, verbose bool, presenter ResultPresenter, out io.Writer) int {
	for _, c := range report.Cases {
		presenter.PresentCase(c, verbose, out)
	}
	presenter.PresentSummary(report, out)

	err := FirstError(report)
	if err == nil {
		fmt.Fprintf(out, "\nGlobal Status: Success. All parallel results match their sequential baseline.\n")
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "\nGlobal Status: Failure.\n")
	return apperrors.HandleRunError(err, out)
}
