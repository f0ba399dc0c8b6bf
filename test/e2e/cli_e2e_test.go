package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "parbench"
	if runtime.GOOS == "windows" {
		binName = "parbench.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD; build from the module root.
	rootDir := "../.."

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/parbench")
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build parbench: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Primes Case",
			args:     []string{"-kernel", "primes", "-size", "1000", "-threads", "2"},
			wantOut:  "count=168",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "All Kernels Quick",
			args:     []string{"-kernel", "all", "-quick", "-threads", "2,3"},
			wantOut:  "Global Status: Success",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"-kernel", "stats", "-size", "500", "-threads", "2", "-q"},
			wantOut:  "stats 500 static/2",
			wantCode: 0,
		},
		{
			name:     "JSON Report",
			args:     []string{"-kernel", "primes", "-size", "100", "-threads", "2", "-format", "json"},
			wantOut:  `"kernel": "primes"`,
			wantCode: 0,
		},
		{
			name:     "Zero Threads",
			args:     []string{"-threads", "0"},
			wantOut:  "",
			wantCode: 4,
		},
		{
			name:     "Unknown Kernel",
			args:     []string{"-kernel", "fft"},
			wantOut:  "",
			wantCode: 4,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "parbench",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() != tt.wantCode {
					t.Errorf("Exit code = %d, want %d\nOutput: %s", exitErr.ExitCode(), tt.wantCode, outStr)
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
