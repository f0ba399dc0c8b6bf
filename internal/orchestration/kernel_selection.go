package orchestration

import (
	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/kernel"
)

// SelectKernels resolves the kernels named in the configuration. "all"
// yields every registered kernel in sorted order, for reproducible reports.
func SelectKernels(cfg config.AppConfig, registry *kernel.Registry) ([]kernel.Kernel, error) {
	return registry.Select(cfg.Kernels)
}

// Plan is one kernel with the sizes it will run at.
type Plan struct {
	Kernel kernel.Kernel
	Sizes  []int
}

// BuildPlan pairs each kernel with its sizes from cfg.
func BuildPlan(kernels []kernel.Kernel, cfg config.AppConfig) []Plan {
	plans := make([]Plan, 0, len(kernels))
	for _, k := range kernels {
		plans = append(plans, Plan{Kernel: k, Sizes: cfg.SizesFor(k.DefaultSizes())})
	}
	return plans
}

// TotalRuns counts every timed run of the plan, baselines included.
func TotalRuns(plans []Plan, threads []int) int {
	total := 0
	for _, p := range plans {
		total += len(p.Sizes) * (1 + len(p.Kernel.Modes())*len(threads))
	}
	return total
}
