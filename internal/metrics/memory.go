package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc  uint64 // bytes in use by the heap
	TotalAlloc uint64 // cumulative bytes allocated
	Sys        uint64 // total bytes obtained from OS
	NumGC      uint32 // number of completed GC cycles
	Mallocs    uint64 // cumulative count of heap objects allocated
}

// MemoryDelta is the allocation activity between two snapshots.
type MemoryDelta struct {
	TotalAlloc uint64
	Mallocs    uint64
	NumGC      uint32
}

// Delta returns the activity between before and s. Counters are cumulative,
// so the result is never negative.
func (s MemorySnapshot) Delta(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		TotalAlloc: s.TotalAlloc - before.TotalAlloc,
		Mallocs:    s.Mallocs - before.Mallocs,
		NumGC:      s.NumGC - before.NumGC,
	}
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. It stops the world briefly, so
// it is taken outside the timed region.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		Mallocs:    m.Mallocs,
	}
}
