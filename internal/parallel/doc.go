// Package parallel implements the partition / execute / aggregate engine used by
// every kernel of the suite.
//
// Work over an index range is split either statically, into exactly T
// contiguous partitions computed before any worker starts (StaticPartitions),
// or dynamically, with workers claiming fixed-size blocks from a shared atomic
// Cursor until it runs past its limit. RunStatic and RunDynamic spawn exactly T
// goroutines, wait for all of them, and return the per-partition partial
// results or the first worker failure. Array-producing kernels write through
// an Arena, which hands each partition a capacity-clipped view of the output
// buffer so that no two workers can reach the same index.
package parallel
