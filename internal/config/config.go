// Package config parses and validates the command-line configuration of
// parbench.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/agbru/parbench/internal/errors"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "PARBENCH_"

// Defaults.
const (
	DefaultKernel    = "all"
	DefaultBlockSize = 1000
	DefaultSeed      = 42
	DefaultTolerance = 1e-9
	DefaultFormat    = "table"
	// QuickDivisor shrinks every default size in quick mode.
	QuickDivisor = 10
)

// Output formats accepted by -format.
var Formats = []string{"table", "json", "yaml"}

// AppConfig is the resolved run configuration.
type AppConfig struct {
	// Kernels lists the selected kernel names, or ["all"].
	Kernels []string
	// Threads lists the parallel thread counts. Empty until
	// ApplyAdaptiveThreads fills it in when no -threads was given.
	Threads []int
	// Size, when positive, replaces every kernel's default sizes.
	Size       int
	Quick      bool
	BlockSize  int
	Seed       uint64
	Tolerance  float64
	Format     string
	OutputFile string
	// MetricsFile is the Prometheus textfile path; empty disables export.
	MetricsFile string
	Verbose     bool
	Quiet       bool
	NoColor     bool
}

// SizesFor returns the problem sizes to run for a kernel whose defaults are
// defaults.
func (c AppConfig) SizesFor(defaults []int) []int {
	if c.Size > 0 {
		return []int{c.Size}
	}
	sizes := slices.Clone(defaults)
	if c.Quick {
		for i := range sizes {
			sizes[i] = max(sizes[i]/QuickDivisor, 1)
		}
	}
	return sizes
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies PARBENCH_* environment overrides for flags absent from args, and
// validates the result against the available kernel names. Usage and parse
// errors go to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableKernels []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	var (
		cfg     AppConfig
		kernels string
		threads string
		seed    uint64
	)
	fs.StringVar(&kernels, "kernel", DefaultKernel, fmt.Sprintf("Kernels to run: 'all' or a comma list of %s.", strings.Join(availableKernels, ", ")))
	fs.StringVar(&threads, "threads", "", "Comma-separated thread counts (default: 2,4,8 adapted to the CPU count).")
	fs.IntVar(&cfg.Size, "size", 0, "Run every selected kernel at this single size.")
	fs.BoolVar(&cfg.Quick, "quick", false, "Divide the default sizes by 10.")
	fs.IntVar(&cfg.BlockSize, "block", DefaultBlockSize, "Block size for dynamic partitioning.")
	fs.Uint64Var(&seed, "seed", DefaultSeed, "Seed of the input generator.")
	fs.Float64Var(&cfg.Tolerance, "tolerance", DefaultTolerance, "Relative tolerance for floating-point consistency checks.")
	fs.StringVar(&cfg.Format, "format", DefaultFormat, "Output format: table, json or yaml.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the report to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the report to this file (shorthand).")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output: memory and CPU statistics, debug logs.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (long form).")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode: results only.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode (long form).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.Bool("version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument: %q", fs.Arg(0))
	}

	cfg.Seed = seed
	cfg.Kernels = splitList(kernels)
	if threads != "" {
		parsed, err := ParseThreadList(threads)
		if err != nil {
			return AppConfig{}, err
		}
		cfg.Threads = parsed
	}

	if err := applyEnvOverrides(&cfg, fs); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(availableKernels); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate(availableKernels []string) error {
	if len(c.Kernels) == 0 {
		return apperrors.ValidationError{Field: "kernel", Message: "no kernel selected"}
	}
	if !(len(c.Kernels) == 1 && c.Kernels[0] == "all") {
		for _, k := range c.Kernels {
			if !slices.Contains(availableKernels, k) {
				return apperrors.ValidationError{
					Field:   "kernel",
					Message: fmt.Sprintf("unknown kernel %q (available: %s)", k, strings.Join(availableKernels, ", ")),
				}
			}
		}
	}
	for _, t := range c.Threads {
		if t <= 0 {
			return apperrors.ValidationError{Field: "threads", Message: fmt.Sprintf("thread count must be positive, got %d", t)}
		}
	}
	if c.Size < 0 {
		return apperrors.ValidationError{Field: "size", Message: fmt.Sprintf("size must be positive, got %d", c.Size)}
	}
	if c.BlockSize <= 0 {
		return apperrors.ValidationError{Field: "block", Message: fmt.Sprintf("block size must be positive, got %d", c.BlockSize)}
	}
	if c.Tolerance < 0 {
		return apperrors.ValidationError{Field: "tolerance", Message: "tolerance cannot be negative"}
	}
	if !slices.Contains(Formats, c.Format) {
		return apperrors.ValidationError{Field: "format", Message: fmt.Sprintf("unknown format %q (expected table, json or yaml)", c.Format)}
	}
	if c.Verbose && c.Quiet {
		return apperrors.ValidationError{Field: "quiet", Message: "-v and -q are mutually exclusive"}
	}
	return nil
}

// ParseThreadList parses a comma-separated list of positive thread counts,
// dropping duplicates and keeping the given order.
func ParseThreadList(s string) ([]int, error) {
	var out []int
	for _, field := range splitList(s) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, apperrors.ValidationError{Field: "threads", Message: fmt.Sprintf("invalid thread count %q", field)}
		}
		if n <= 0 {
			return nil, apperrors.ValidationError{Field: "threads", Message: fmt.Sprintf("thread count must be positive, got %d", n)}
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.ValidationError{Field: "threads", Message: "empty thread list"}
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, strings.ToLower(field))
		}
	}
	return out
}
