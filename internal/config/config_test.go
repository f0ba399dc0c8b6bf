package config

import (
	"bytes"
	"errors"
	"flag"
	"slices"
	"testing"

	apperrors "github.com/agbru/parbench/internal/errors"
)

var kernels = []string{"blur", "matvec", "primes", "stats"}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("parbench", nil, &bytes.Buffer{}, kernels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(cfg.Kernels, []string{"all"}) {
		t.Errorf("Kernels = %v, want [all]", cfg.Kernels)
	}
	if cfg.Threads != nil {
		t.Errorf("Threads = %v, want nil before adaptive resolution", cfg.Threads)
	}
	if cfg.BlockSize != DefaultBlockSize || cfg.Seed != DefaultSeed || cfg.Tolerance != DefaultTolerance {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Format != "table" {
		t.Errorf("Format = %q, want table", cfg.Format)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"-kernel", "primes, Stats", "-threads", "1,3,3,6", "-size", "500", "-block", "64",
		"-seed", "7", "-tolerance", "1e-6", "-format", "json", "-o", "out.json",
		"-metrics-file", "m.prom", "-verbose", "-no-color",
	}
	cfg, err := ParseConfig("parbench", args, &bytes.Buffer{}, kernels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(cfg.Kernels, []string{"primes", "stats"}) {
		t.Errorf("Kernels = %v", cfg.Kernels)
	}
	if !slices.Equal(cfg.Threads, []int{1, 3, 6}) {
		t.Errorf("Threads = %v, want [1 3 6]", cfg.Threads)
	}
	if cfg.Size != 500 || cfg.BlockSize != 64 || cfg.Seed != 7 || cfg.Tolerance != 1e-6 {
		t.Errorf("numeric flags not applied: %+v", cfg)
	}
	if cfg.Format != "json" || cfg.OutputFile != "out.json" || cfg.MetricsFile != "m.prom" {
		t.Errorf("string flags not applied: %+v", cfg)
	}
	if !cfg.Verbose || !cfg.NoColor {
		t.Errorf("bool flags not applied: %+v", cfg)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown kernel", []string{"-kernel", "fft"}},
		{"zero threads", []string{"-threads", "0"}},
		{"negative threads", []string{"-threads", "2,-1"}},
		{"garbage threads", []string{"-threads", "two"}},
		{"zero block", []string{"-block", "0"}},
		{"negative size", []string{"-size", "-5"}},
		{"unknown format", []string{"-format", "xml"}},
		{"negative tolerance", []string{"-tolerance", "-1"}},
		{"verbose and quiet", []string{"-v", "-q"}},
		{"positional argument", []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("parbench", tt.args, &bytes.Buffer{}, kernels)
			if !apperrors.IsConfigError(err) {
				t.Errorf("expected a configuration error, got %v", err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("parbench", []string{"-h"}, &buf, kernels)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("-kernel")) {
		t.Error("usage output should list -kernel")
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PARBENCH_THREADS", "3,5")
	t.Setenv("PARBENCH_BLOCK", "250")
	t.Setenv("PARBENCH_QUICK", "yes")
	t.Setenv("PARBENCH_FORMAT", "YAML")
	t.Setenv("PARBENCH_SEED", "9")

	cfg, err := ParseConfig("parbench", []string{"-block", "100"}, &bytes.Buffer{}, kernels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(cfg.Threads, []int{3, 5}) {
		t.Errorf("Threads = %v, want [3 5]", cfg.Threads)
	}
	if cfg.BlockSize != 100 {
		t.Errorf("BlockSize = %d, flag must win over env", cfg.BlockSize)
	}
	if !cfg.Quick || cfg.Format != "yaml" || cfg.Seed != 9 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestParseConfig_InvalidEnv(t *testing.T) {
	t.Setenv("PARBENCH_SIZE", "lots")
	if _, err := ParseConfig("parbench", nil, &bytes.Buffer{}, kernels); !apperrors.IsConfigError(err) {
		t.Errorf("expected a configuration error, got %v", err)
	}
}

func TestSizesFor(t *testing.T) {
	t.Parallel()
	defaults := []int{1000, 2000, 5}
	tests := []struct {
		name string
		cfg  AppConfig
		want []int
	}{
		{"defaults", AppConfig{}, []int{1000, 2000, 5}},
		{"quick", AppConfig{Quick: true}, []int{100, 200, 1}},
		{"explicit size wins", AppConfig{Size: 42, Quick: true}, []int{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.SizesFor(defaults); !slices.Equal(got, tt.want) {
				t.Errorf("SizesFor = %v, want %v", got, tt.want)
			}
		})
	}
	if defaults[0] != 1000 {
		t.Error("SizesFor must not modify the defaults")
	}
}

func TestEstimateThreadList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		numCPU int
		want   []int
	}{
		{0, []int{2}},
		{1, []int{2}},
		{2, []int{2, 4}},
		{3, []int{2, 4}},
		{4, []int{2, 4, 8}},
		{16, []int{2, 4, 8, 16}},
	}
	for _, tt := range tests {
		if got := EstimateThreadList(tt.numCPU); !slices.Equal(got, tt.want) {
			t.Errorf("EstimateThreadList(%d) = %v, want %v", tt.numCPU, got, tt.want)
		}
	}
}

func TestApplyAdaptiveThreads_KeepsExplicitList(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveThreads(AppConfig{Threads: []int{5}})
	if !slices.Equal(cfg.Threads, []int{5}) {
		t.Errorf("Threads = %v, want [5]", cfg.Threads)
	}
	if cfg = ApplyAdaptiveThreads(AppConfig{}); len(cfg.Threads) == 0 {
		t.Error("expected an adaptive thread list")
	}
}

func TestParseConfig_UnknownFlag(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("parbench", []string{"-n", "10"}, &buf, kernels)
	if !apperrors.IsConfigError(err) {
		t.Errorf("expected a configuration error, got %v", err)
	}
}
