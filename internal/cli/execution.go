package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/ui"
)

// PrintExecutionConfig displays the run configuration: kernels with their
// sizes, thread counts and the environment.
func PrintExecutionConfig(cfg config.AppConfig, plans []orchestration.Plan, out io.Writer) {
	fmt.Fprintf(out, "%s\n", ui.Banner("parbench: sequential vs parallel"))
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, GOMAXPROCS=%d, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), runtime.GOMAXPROCS(0),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Threads: %s%v%s, dynamic block size %d, seed %d.\n",
		ui.ColorYellow(), cfg.Threads, ui.ColorReset(), cfg.BlockSize, cfg.Seed)
	for _, p := range plans {
		sizes := make([]string, len(p.Sizes))
		for i, s := range p.Sizes {
			sizes[i] = fmt.Sprint(s)
		}
		modes := make([]string, len(p.Kernel.Modes()))
		for i, m := range p.Kernel.Modes() {
			modes[i] = string(m)
		}
		fmt.Fprintf(out, "  %s%-7s%s %-34s sizes %s, modes %s\n",
			ui.ColorBlue(), p.Kernel.Name(), ui.ColorReset(), p.Kernel.Description(),
			strings.Join(sizes, ", "), strings.Join(modes, ", "))
	}
	fmt.Fprintf(out, "Total runs: %d\n\n", orchestration.TotalRuns(plans, cfg.Threads))
}

// DisplayReportSaved confirms a written report or metrics file.
func DisplayReportSaved(what, path string, out io.Writer) {
	fmt.Fprintf(out, "%s✓ %s saved to: %s%s%s\n", ui.ColorGreen(), what, ui.ColorCyan(), path, ui.ColorReset())
}
