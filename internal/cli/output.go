// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayMemoryStats].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatProgressSuffix].
//
//   - Write* and Encode* functions serialize reports, to a file or a writer.
//     Examples: [WriteReport], [EncodeReport].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/parbench/internal/bench"
	"github.com/agbru/parbench/internal/orchestration"
)

// Report is the machine-readable form of a suite run.
type Report struct {
	Tool           string          `json:"tool" yaml:"tool"`
	Version        string          `json:"version" yaml:"version"`
	Generated      time.Time       `json:"generated" yaml:"generated"`
	Host           HostReport      `json:"host" yaml:"host"`
	Threads        []int           `json:"threads" yaml:"threads"`
	BlockSize      int             `json:"block_size" yaml:"block_size"`
	Seed           uint64          `json:"seed" yaml:"seed"`
	Tolerance      float64         `json:"tolerance" yaml:"tolerance"`
	ElapsedSeconds float64         `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Cases          []CaseReport    `json:"cases" yaml:"cases"`
	Failures       []FailureReport `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// HostReport describes the machine.
type HostReport struct {
	Model         string `json:"model,omitempty" yaml:"model,omitempty"`
	LogicalCores  int    `json:"logical_cores" yaml:"logical_cores"`
	PhysicalCores int    `json:"physical_cores" yaml:"physical_cores"`
	TotalMemory   uint64 `json:"total_memory" yaml:"total_memory"`
}

// CaseReport is one kernel at one size.
type CaseReport struct {
	Kernel string      `json:"kernel" yaml:"kernel"`
	Size   int         `json:"size" yaml:"size"`
	Runs   []RunReport `json:"runs" yaml:"runs"`
}

// RunReport is one timed run. The first run of a case is its baseline.
type RunReport struct {
	Mode           string  `json:"mode" yaml:"mode"`
	Threads        int     `json:"threads" yaml:"threads"`
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Value          string  `json:"value,omitempty" yaml:"value,omitempty"`
	Speedup        float64 `json:"speedup" yaml:"speedup"`
	Efficiency     float64 `json:"efficiency" yaml:"efficiency"`
	Consistent     bool    `json:"consistent" yaml:"consistent"`
	Detail         string  `json:"detail,omitempty" yaml:"detail,omitempty"`
	CPUPercent     float64 `json:"cpu_percent" yaml:"cpu_percent"`
	AllocBytes     uint64  `json:"alloc_bytes" yaml:"alloc_bytes"`
	Error          string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// FailureReport is a case that produced no baseline.
type FailureReport struct {
	Kernel string `json:"kernel" yaml:"kernel"`
	Size   int    `json:"size" yaml:"size"`
	Error  string `json:"error" yaml:"error"`
}

func runReport(m bench.Measurement) RunReport {
	r := RunReport{
		Mode:           string(m.Mode),
		Threads:        m.Threads,
		ElapsedSeconds: m.Elapsed.Seconds(),
		Value:          m.Summary,
		Speedup:        m.Speedup,
		Efficiency:     m.Efficiency,
		Consistent:     m.Consistent,
		Detail:         m.Detail,
		CPUPercent:     m.CPUPercent,
		AllocBytes:     m.AllocBytes,
	}
	if m.Err != nil {
		r.Error = m.Err.Error()
	}
	return r
}

// NewReport converts a suite report into its serializable form.
func NewReport(s orchestration.SuiteReport, version string) Report {
	r := Report{
		Tool:      "parbench",
		Version:   version,
		Generated: s.Started.UTC(),
		Host: HostReport{
			Model:         s.Host.Model,
			LogicalCores:  s.Host.LogicalCores,
			PhysicalCores: s.Host.PhysicalCores,
			TotalMemory:   s.Host.TotalMemory,
		},
		Threads:        s.Threads,
		BlockSize:      s.BlockSize,
		Seed:           s.Seed,
		Tolerance:      s.Tolerance,
		ElapsedSeconds: s.Elapsed.Seconds(),
		Cases:          make([]CaseReport, 0, len(s.Cases)),
	}
	for _, c := range s.Cases {
		cr := CaseReport{Kernel: c.Kernel, Size: c.Size, Runs: []RunReport{runReport(c.Baseline)}}
		for _, m := range c.Parallel {
			cr.Runs = append(cr.Runs, runReport(m))
		}
		r.Cases = append(r.Cases, cr)
	}
	for _, f := range s.Failures {
		r.Failures = append(r.Failures, FailureReport{Kernel: f.Kernel, Size: f.Size, Error: f.Err.Error()})
	}
	return r
}

// EncodeReport writes r to w as "json" or "yaml".
func EncodeReport(w io.Writer, r Report, formatName string) error {
	switch formatName {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported report format %q", formatName)
}

// WriteReport writes r to path, creating parent directories. The format is
// "json" or "yaml"; "table" falls back to json since tables are for
// terminals.
func WriteReport(r Report, path, formatName string) error {
	if path == "" {
		return nil
	}
	if formatName == "table" {
		formatName = "json"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := EncodeReport(file, r, formatName); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return file.Close()
}
