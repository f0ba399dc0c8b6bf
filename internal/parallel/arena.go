package parallel

import apperrors "github.com/agbru/parbench/internal/errors"

// Arena is an output buffer whose rows are owned by partitions. A partition
// [s, e) owns buf[s*stride : e*stride]. Views are capacity-clipped, so an
// append on one view can never spill into a neighbour's rows.
type Arena[T any] struct {
	buf    []T
	stride int
}

// NewArena wraps buf as rows of stride elements each.
func NewArena[T any](buf []T, stride int) (*Arena[T], error) {
	if stride <= 0 {
		return nil, apperrors.NewConfigError("arena stride must be positive, got %d", stride)
	}
	if len(buf)%stride != 0 {
		return nil, apperrors.NewConfigError("arena length %d is not a multiple of stride %d", len(buf), stride)
	}
	return &Arena[T]{buf: buf, stride: stride}, nil
}

// Rows returns the number of rows in the arena.
func (a *Arena[T]) Rows() int { return len(a.buf) / a.stride }

// View returns the sub-slice owned by p. It panics if p lies outside the
// arena, which the executor reports as a worker failure.
func (a *Arena[T]) View(p Partition) []T {
	lo, hi := p.Start*a.stride, p.End*a.stride
	return a.buf[lo:hi:hi]
}

// Buffer returns the whole underlying buffer. It must only be read after the
// executor barrier.
func (a *Arena[T]) Buffer() []T { return a.buf }
