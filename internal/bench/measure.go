package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/agbru/parbench/internal/kernel"
)

// DefaultTolerance is the relative tolerance for floating-point outputs.
const DefaultTolerance = 1e-9

// Measurement is the outcome of one timed run.
type Measurement struct {
	Mode    kernel.Mode
	Threads int
	Elapsed time.Duration
	// Summary is the human readable output value.
	Summary string
	// Speedup and Efficiency are zero for the baseline.
	Speedup    float64
	Efficiency float64
	Consistent bool
	// Detail explains an inconsistency.
	Detail     string
	CPUPercent float64
	// AllocBytes is the heap allocated during the run.
	AllocBytes uint64
	Err        error
}

// Label identifies the measurement in reports, e.g. "static/4".
func (m Measurement) Label() string {
	if m.Mode == kernel.Sequential {
		return string(kernel.Sequential)
	}
	return fmt.Sprintf("%s/%d", m.Mode, m.Threads)
}

// Speedup returns seq/par. A zero parallel time yields 0 rather than +Inf so
// reports stay finite.
func Speedup(seq, par time.Duration) float64 {
	if par <= 0 {
		return 0
	}
	return float64(seq) / float64(par)
}

// Efficiency returns speedup per thread.
func Efficiency(speedup float64, threads int) float64 {
	if threads <= 0 {
		return 0
	}
	return speedup / float64(threads)
}

// Compare checks got against the baseline fingerprint. Exact fingerprints
// must match exactly; the others within the relative tolerance tol. NaN
// matches NaN.
func Compare(base, got kernel.Fingerprint, tol float64) error {
	if len(base.Values) != len(got.Values) {
		return fmt.Errorf("length %d, baseline %d", len(got.Values), len(base.Values))
	}
	for i, want := range base.Values {
		v := got.Values[i]
		if math.IsNaN(want) && math.IsNaN(v) {
			continue
		}
		if base.Exact || got.Exact {
			if v != want {
				return fmt.Errorf("value %d is %v, baseline %v", i, v, want)
			}
			continue
		}
		if !withinTolerance(v, want, tol) {
			return fmt.Errorf("value %d is %v, baseline %v (tolerance %g)", i, v, want, tol)
		}
	}
	return nil
}

func withinTolerance(a, b, tol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}
