//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/ui"
)

const (
	// ProgressRefreshRate is the spinner animation interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// FormatProgressSuffix renders the spinner text for the state after an update.
func FormatProgressSuffix(p orchestration.AggregatedProgress, totalRuns int) string {
	done := int(p.Fraction*float64(totalRuns) + 0.5)
	suffix := fmt.Sprintf(" %s %d/%d %s%s n=%d %s%s",
		format.FormatProgressBarWithETA(p.Fraction, p.ETA, ProgressBarWidth),
		done, totalRuns,
		ui.ColorBlue(), p.Update.Kernel, p.Update.Size, p.Update.Label, ui.ColorReset())
	if p.Failed > 0 {
		suffix += fmt.Sprintf(" %s(%d failed)%s", ui.ColorRed(), p.Failed, ui.ColorReset())
	}
	return suffix
}

// DisplayProgress shows a spinner with a progress bar and ETA until
// progressChan is closed. It implements the orchestration.ProgressReporter
// contract and calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, totalRuns int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(totalRuns)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" %s 0/%d", format.FormatProgressBarWithETA(0, 0, ProgressBarWidth), totalRuns))
	s.Start()

	failed := 0
	for update := range progressChan {
		p := agg.Update(update)
		failed = p.Failed
		s.UpdateSuffix(FormatProgressSuffix(p, totalRuns))
	}
	s.Stop()

	if failed > 0 {
		fmt.Fprintf(out, "%s%d of %d runs failed.%s\n", ui.ColorRed(), failed, totalRuns, ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s%d runs completed.%s\n", ui.ColorGreen(), totalRuns, ui.ColorReset())
}
