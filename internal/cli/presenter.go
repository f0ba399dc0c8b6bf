package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/olekukonko/tablewriter"

	"github.com/agbru/parbench/internal/bench"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/ui"
)

// LowEfficiency is the efficiency below which a run is highlighted.
const LowEfficiency = 0.5

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, totalRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, totalRuns, out)
}

// CLIResultPresenter renders cases as colored comparison tables.
type CLIResultPresenter struct{}

// QuietPresenter renders one plain line per run, suitable for scripting.
type QuietPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ResultPresenter = QuietPresenter{}
)

func newTable(out io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(true)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func statusCell(m bench.Measurement, baseline bool) string {
	switch {
	case m.Err != nil:
		return fmt.Sprintf("%sFAILED%s", ui.ColorRed(), ui.ColorReset())
	case baseline:
		return fmt.Sprintf("%sbaseline%s", ui.ColorGrey(), ui.ColorReset())
	case !m.Consistent:
		return fmt.Sprintf("%sMISMATCH%s", ui.ColorRed(), ui.ColorReset())
	}
	return fmt.Sprintf("%sok%s", ui.ColorGreen(), ui.ColorReset())
}

func efficiencyCell(m bench.Measurement) string {
	cell := format.FormatPercent(m.Efficiency)
	if m.Efficiency < LowEfficiency {
		return ui.ColorYellow() + cell + ui.ColorReset()
	}
	return cell
}

func measurementRow(m bench.Measurement, baseline, verbose bool) []string {
	value := m.Summary
	if m.Err != nil {
		value = m.Err.Error()
	}
	row := []string{m.Label(), format.FormatExecutionDuration(m.Elapsed), value}
	if baseline || m.Err != nil {
		row = append(row, "-", "-")
	} else {
		row = append(row, format.FormatSpeedup(m.Speedup), efficiencyCell(m))
	}
	if verbose {
		row = append(row, fmt.Sprintf("%.0f%%", m.CPUPercent), format.FormatBytes(m.AllocBytes))
	}
	return append(row, statusCell(m, baseline))
}

// PresentCase displays a banner naming the case followed by one row per run.
func (CLIResultPresenter) PresentCase(c bench.Case, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Banner(fmt.Sprintf("%s  n=%d", c.Kernel, c.Size)))

	header := []string{"Config", "Time", "Value", "Speedup", "Efficiency"}
	if verbose {
		header = append(header, "CPU", "Alloc")
	}
	header = append(header, "Check")

	table := newTable(out, header)
	table.Append(measurementRow(c.Baseline, true, verbose))
	for _, m := range c.Parallel {
		table.Append(measurementRow(m, false, verbose))
	}
	table.Render()

	for _, m := range c.Parallel {
		if m.Err == nil && !m.Consistent {
			fmt.Fprintf(out, "%s  %s: %s%s\n", ui.ColorRed(), m.Label(), m.Detail, ui.ColorReset())
		}
	}
}

func bestRun(c bench.Case) (bench.Measurement, bool) {
	var (
		best  bench.Measurement
		found bool
	)
	for _, m := range c.Parallel {
		if m.Err == nil && m.Consistent && (!found || m.Speedup > best.Speedup) {
			best, found = m, true
		}
	}
	return best, found
}

// PresentSummary displays the host, the best configuration of every case and
// the cases that could not run.
func (CLIResultPresenter) PresentSummary(report orchestration.SuiteReport, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Banner("Summary"))
	h := report.Host
	fmt.Fprintf(out, "Host: %s%s%s, %d logical / %d physical cores, %s RAM\n",
		ui.ColorCyan(), orUnknown(h.Model), ui.ColorReset(), h.LogicalCores, h.PhysicalCores, format.FormatBytes(h.TotalMemory))
	fmt.Fprintf(out, "Threads: %v, block size %d, seed %d, tolerance %g\n",
		report.Threads, report.BlockSize, report.Seed, report.Tolerance)

	if len(report.Cases) > 0 {
		table := newTable(out, []string{"Kernel", "Size", "Baseline", "Best", "Speedup", "Efficiency"})
		for _, c := range report.Cases {
			row := []string{c.Kernel, strconv.Itoa(c.Size), format.FormatExecutionDuration(c.Baseline.Elapsed)}
			if best, ok := bestRun(c); ok {
				row = append(row, best.Label(), format.FormatSpeedup(best.Speedup), efficiencyCell(best))
			} else {
				row = append(row, "-", "-", "-")
			}
			table.Append(row)
		}
		table.Render()
	}

	for _, f := range report.Failures {
		fmt.Fprintf(out, "%sFailed: %s n=%d: %v%s\n", ui.ColorRed(), f.Kernel, f.Size, f.Err, ui.ColorReset())
	}
	fmt.Fprintf(out, "Total time: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(report.Elapsed), ui.ColorReset())
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown CPU"
	}
	return s
}

// PresentCase prints one line per run: kernel, size, config, time, speedup
// and status.
func (QuietPresenter) PresentCase(c bench.Case, _ bool, out io.Writer) {
	line := func(m bench.Measurement, status string) {
		fmt.Fprintf(out, "%s %d %s %d %.3f %s\n", c.Kernel, c.Size, m.Label(), m.Elapsed.Nanoseconds(), m.Speedup, status)
	}
	line(c.Baseline, "baseline")
	for _, m := range c.Parallel {
		switch {
		case m.Err != nil:
			line(m, "failed")
		case !m.Consistent:
			line(m, "mismatch")
		default:
			line(m, "ok")
		}
	}
}

// PresentSummary prints nothing in quiet mode.
func (QuietPresenter) PresentSummary(orchestration.SuiteReport, io.Writer) {}

// DisplayMemoryStats shows process memory statistics after the suite.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(snap.TotalAlloc))
	fmt.Fprintf(out, "  Obtained from OS: %s\n", format.FormatBytes(snap.Sys))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
}
