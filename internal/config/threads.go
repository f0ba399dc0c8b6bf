package config

import "runtime"

// Thread list resolution (highest priority first):
//   1. CLI flag -threads
//   2. Environment variable PARBENCH_THREADS
//   3. Adaptive hardware estimation (this file)

// DefaultThreads is the baseline thread list.
var DefaultThreads = []int{2, 4, 8}

// ApplyAdaptiveThreads fills in the thread list from the CPU count when none
// was configured.
func ApplyAdaptiveThreads(cfg AppConfig) AppConfig {
	if len(cfg.Threads) == 0 {
		cfg.Threads = EstimateThreadList(runtime.NumCPU())
	}
	return cfg
}

// EstimateThreadList returns DefaultThreads extended to numCPU. Counts above
// twice the core count are dropped since they only measure oversubscription;
// numCPU itself is appended when it is not already listed so the table
// always shows a run using every core.
func EstimateThreadList(numCPU int) []int {
	if numCPU < 1 {
		numCPU = 1
	}
	var out []int
	for _, t := range DefaultThreads {
		if t <= 2*numCPU {
			out = append(out, t)
		}
	}
	if numCPU > 1 && (len(out) == 0 || out[len(out)-1] < numCPU) {
		out = append(out, numCPU)
	}
	if len(out) == 0 {
		out = []int{1}
	}
	return out
}
