package kernel

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/parallel"
)

// Stats is the mean and population standard deviation of a vector.
type Stats struct {
	Mean   float64
	StdDev float64
}

// Summary implements Result.
func (s Stats) Summary() string {
	return fmt.Sprintf("mean=%.4f stddev=%.4f", s.Mean, s.StdDev)
}

// Fingerprint implements Result.
func (s Stats) Fingerprint() Fingerprint {
	return Fingerprint{Values: []float64{s.Mean, s.StdDev}}
}

func sumRange(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}

func squaredDeviations(v []float64, mean float64) float64 {
	s := 0.0
	for _, x := range v {
		d := x - mean
		s += d * d
	}
	return s
}

// StatsSequential computes mean and stddev in two passes. An empty vector
// yields NaN for both.
func StatsSequential(v []float64) Stats {
	n := float64(len(v))
	mean := sumRange(v) / n
	return Stats{Mean: mean, StdDev: math.Sqrt(squaredDeviations(v, mean) / n)}
}

// StatsParallel computes the same statistics with two executor runs. The
// deviation pass starts only after the mean has been fully reduced.
func StatsParallel(e *parallel.Executor, v []float64) (Stats, error) {
	span := parallel.Range{Start: 0, End: len(v)}

	sums, err := parallel.RunStatic(e, span, func(p parallel.Partition) (float64, error) {
		return sumRange(v[p.Start:p.End]), nil
	})
	if err != nil {
		return Stats{}, apperrors.WrapError(err, "mean phase")
	}
	mean := parallel.Mean(sums, len(v))

	squares, err := parallel.RunStatic(e, span, func(p parallel.Partition) (float64, error) {
		return squaredDeviations(v[p.Start:p.End], mean), nil
	})
	if err != nil {
		return Stats{}, apperrors.WrapError(err, "deviation phase")
	}
	return Stats{Mean: mean, StdDev: math.Sqrt(parallel.Mean(squares, len(v)))}, nil
}
