package orchestration

import (
	"time"

	"github.com/agbru/parbench/internal/format"
)

// ProgressAggregator folds ProgressUpdates into a completed fraction and an
// ETA, so that every reporter shares the same accounting.
type ProgressAggregator struct {
	state     *format.SuiteProgress
	totalRuns int
	failed    int
}

// NewProgressAggregator creates an aggregator expecting totalRuns updates.
// Returns nil if totalRuns <= 0.
func NewProgressAggregator(totalRuns int) *ProgressAggregator {
	if totalRuns <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewSuiteProgress(totalRuns), totalRuns: totalRuns}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	Update   ProgressUpdate
	Fraction float64
	ETA      time.Duration
	Failed   int
}

// Update records a completed run.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if update.Err != nil {
		a.failed++
	}
	frac, eta := a.state.Advance(1)
	return AggregatedProgress{Update: update, Fraction: frac, ETA: eta, Failed: a.failed}
}

// Fraction returns the completed share without updating.
func (a *ProgressAggregator) Fraction() float64 { return a.state.Fraction() }

// TotalRuns returns the number of runs being tracked.
func (a *ProgressAggregator) TotalRuns() int { return a.totalRuns }

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
