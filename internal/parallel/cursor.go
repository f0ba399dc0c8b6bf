package parallel

import (
	"math"
	"sync/atomic"

	apperrors "github.com/agbru/parbench/internal/errors"
)

// Cursor hands out fixed-size blocks of an inclusive index interval
// [start, limit] on demand. Claims are made with a single atomic fetch-and-add
// on the shared position, so no two claims ever overlap and every index is
// handed out exactly once.
type Cursor struct {
	position  atomic.Int64
	start     int
	limit     int
	blockSize int
}

// claimHeadroom is the number of blocks the position may overshoot limit by
// before the counter could wrap. Each caller stops at its first failed claim,
// so it bounds the number of goroutines racing on one cursor.
const claimHeadroom = 1 << 16

// NewCursor creates a cursor over the inclusive interval [start, limit].
// limit == start-1 denotes an empty interval. A block size larger than the
// interval is clipped to it. The interval must end at least claimHeadroom
// blocks below math.MaxInt.
func NewCursor(start, limit, blockSize int) (*Cursor, error) {
	if blockSize <= 0 {
		return nil, apperrors.NewConfigError("block size must be positive, got %d", blockSize)
	}
	if limit < start-1 {
		return nil, apperrors.NewConfigError("negative-length range [%d, %d]", start, limit)
	}
	if start < 0 && limit > math.MaxInt+start-1 {
		return nil, apperrors.NewConfigError("range [%d, %d] is longer than math.MaxInt", start, limit)
	}
	blockSize = min(blockSize, max(limit-start+1, 1))
	if limit > 0 && (math.MaxInt-limit)/blockSize < claimHeadroom {
		return nil, apperrors.NewConfigError("range limit %d is too close to math.MaxInt for block size %d", limit, blockSize)
	}
	c := &Cursor{start: start, limit: limit, blockSize: blockSize}
	c.position.Store(int64(start))
	return c, nil
}

// NewCursorOver creates a cursor over the half-open span.
func NewCursorOver(span Range, blockSize int) (*Cursor, error) {
	return NewCursor(span.Start, span.End-1, blockSize)
}

// Claim reserves the next block. It returns false once the position has moved
// past the limit; the returned partition is half-open and clipped at limit.
// An exhausted cursor is not advanced any further.
func (c *Cursor) Claim() (Partition, bool) {
	if int(c.position.Load()) > c.limit {
		return Partition{}, false
	}
	fetched := int(c.position.Add(int64(c.blockSize))) - c.blockSize
	if fetched > c.limit || fetched < c.start {
		return Partition{}, false
	}
	end := min(fetched+c.blockSize-1, c.limit) + 1
	return Partition{
		ID:    (fetched - c.start) / c.blockSize,
		Range: Range{Start: fetched, End: end},
	}, true
}

// BlockSize returns the number of indices per claim.
func (c *Cursor) BlockSize() int { return c.blockSize }

// Blocks returns how many successful claims the interval yields, which is also
// the number of contended fetch-and-add operations that do work.
func (c *Cursor) Blocks() int {
	n := c.limit - c.start + 1
	return (n + c.blockSize - 1) / c.blockSize
}
