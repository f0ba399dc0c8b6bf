// Package sysmon samples host CPU and memory usage around benchmark runs.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Usage is the system-wide resource usage observed over a run.
type Usage struct {
	CPUPercent float64 // 0.0 .. 100.0, averaged over all cores
	MemPercent float64 // 0.0 .. 100.0, at the end of the run
}

// Host describes the machine the suite runs on.
type Host struct {
	Model         string
	LogicalCores  int
	PhysicalCores int
	TotalMemory   uint64
}

// Probe measures CPU utilisation between Begin and End.
type Probe struct {
	start []cpu.TimesStat
}

// Begin records the current CPU times.
func Begin() Probe {
	times, err := cpu.Times(false)
	if err != nil {
		return Probe{}
	}
	return Probe{start: times}
}

// End returns the usage since Begin. Fields are zero when the platform does
// not expose the counters.
func (p Probe) End() Usage {
	var u Usage
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		u.MemPercent = vmem.UsedPercent
	}
	if len(p.start) == 0 {
		return u
	}
	end, err := cpu.Times(false)
	if err != nil || len(end) == 0 {
		return u
	}
	u.CPUPercent = busyPercent(p.start[0], end[0])
	return u
}

func busy(t cpu.TimesStat) (busy, total float64) {
	total = t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
	return total - t.Idle - t.Iowait, total
}

func busyPercent(a, b cpu.TimesStat) float64 {
	busyA, totalA := busy(a)
	busyB, totalB := busy(b)
	if totalB <= totalA {
		return 0
	}
	pct := (busyB - busyA) / (totalB - totalA) * 100
	return min(max(pct, 0), 100)
}

// DescribeHost returns what is known about the host. Missing information is
// left zero, except LogicalCores which falls back to runtime.NumCPU.
func DescribeHost() Host {
	h := Host{LogicalCores: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCores = n
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.Model = infos[0].ModelName
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	return h
}
