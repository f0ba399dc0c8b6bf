package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/parbench/internal/bench"
	"github.com/agbru/parbench/internal/sysmon"
)

// ProgressUpdate reports one completed run.
type ProgressUpdate struct {
	Kernel string
	Size   int
	// Label identifies the configuration, e.g. "static/4".
	Label string
	Err   error
}

// ProgressReporter displays suite progress.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done. totalRuns is the number of updates to expect.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, totalRuns int, out io.Writer) {
	f(wg, progressChan, totalRuns, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// CaseFailure is a case that could not produce a baseline.
type CaseFailure struct {
	Kernel string
	Size   int
	Err    error
}

// SuiteReport is the complete outcome of a suite run.
type SuiteReport struct {
	Host      sysmon.Host
	Threads   []int
	BlockSize int
	Seed      uint64
	Tolerance float64
	Started   time.Time
	Elapsed   time.Duration
	Cases     []bench.Case
	Failures  []CaseFailure
}

// ResultPresenter renders a suite report.
type ResultPresenter interface {
	// PresentCase displays the comparison table of one case.
	PresentCase(c bench.Case, verbose bool, out io.Writer)
	// PresentSummary displays the closing summary of the suite.
	PresentSummary(report SuiteReport, out io.Writer)
}
