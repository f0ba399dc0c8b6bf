package parallel

import apperrors "github.com/agbru/parbench/internal/errors"

// StaticPartitions divides span into exactly threads contiguous partitions, in
// ascending order. Every partition but the last holds span.Len()/threads
// indices; the last one absorbs the remainder. When threads exceeds the span
// length the leading partitions are empty and only the last one does work.
func StaticPartitions(span Range, threads int) ([]Partition, error) {
	if threads <= 0 {
		return nil, apperrors.NewConfigError("thread count must be positive, got %d", threads)
	}
	if span.Len() < 0 {
		return nil, apperrors.NewConfigError("negative-length range %s", span)
	}

	blockSize := span.Len() / threads
	parts := make([]Partition, threads)
	for i := range parts {
		start := span.Start + i*blockSize
		end := start + blockSize
		if i == threads-1 {
			end = span.End
		}
		parts[i] = Partition{ID: i, Range: Range{Start: start, End: end}}
	}
	return parts, nil
}
