package parallel

import (
	"fmt"

	apperrors "github.com/agbru/parbench/internal/errors"
)

// Range is a half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange returns [start, end) or a ConfigError when end < start.
func NewRange(start, end int) (Range, error) {
	if end < start {
		return Range{}, apperrors.NewConfigError("negative-length range [%d, %d)", start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range holds no index.
func (r Range) Empty() bool { return r.End <= r.Start }

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Start, r.End) }

// Partition is a Range assigned to exactly one worker. ID is the position of
// the partition in its static layout, or the block ordinal for dynamic claims.
type Partition struct {
	ID int
	Range
}
