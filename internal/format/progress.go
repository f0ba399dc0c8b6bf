package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// SuiteProgress tracks how many runs of a suite have completed and estimates
// the remaining time from the average run duration so far.
type SuiteProgress struct {
	mu        sync.Mutex
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewSuiteProgress creates a tracker for total runs.
func NewSuiteProgress(total int) *SuiteProgress {
	return &SuiteProgress{total: total, startTime: time.Now(), now: time.Now}
}

// Advance records n more completed runs and returns the completed fraction
// and the estimated time remaining.
func (p *SuiteProgress) Advance(n int) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = min(max(p.done+n, 0), p.total)
	return p.fraction(), p.eta()
}

// Fraction returns the completed share in [0, 1].
func (p *SuiteProgress) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fraction()
}

func (p *SuiteProgress) fraction() float64 {
	if p.total <= 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

// eta extrapolates the mean time per completed run. It is zero until the
// first run completes.
func (p *SuiteProgress) eta() time.Duration {
	if p.done == 0 || p.done >= p.total {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	perRun := elapsed / time.Duration(p.done)
	return perRun * time.Duration(p.total-p.done)
}

// FormatETA formats the estimated time remaining.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatProgressBar renders a bar of the given width for a fraction in [0, 1].
func FormatProgressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// FormatProgressBarWithETA renders the bar, the percentage and the ETA.
func FormatProgressBarWithETA(fraction float64, eta time.Duration, width int) string {
	return fmt.Sprintf("%s %5.1f%% ETA: %s", FormatProgressBar(fraction, width), min(max(fraction, 0), 1)*100, FormatETA(eta))
}
