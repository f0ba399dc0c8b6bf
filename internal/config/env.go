// This file contains environment variable overrides for the configuration.

package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/agbru/parbench/internal/errors"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set,
// for aliased flags such as -q and -quiet.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the PARBENCH_ prefix) to the flag
// name(s) it shadows and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

func envNumberError(key, v string) error {
	return apperrors.NewConfigError("invalid %s%s value %q", EnvPrefix, key, v)
}

var envOverrides = []envOverride{
	// Numeric overrides
	{"SIZE", []string{"size"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return envNumberError("SIZE", v)
		}
		c.Size = parsed
		return nil
	}},
	{"BLOCK", []string{"block"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return envNumberError("BLOCK", v)
		}
		c.BlockSize = parsed
		return nil
	}},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envNumberError("SEED", v)
		}
		c.Seed = parsed
		return nil
	}},
	{"TOLERANCE", []string{"tolerance"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envNumberError("TOLERANCE", v)
		}
		c.Tolerance = parsed
		return nil
	}},
	{"THREADS", []string{"threads"}, func(c *AppConfig, v string) error {
		parsed, err := ParseThreadList(v)
		if err != nil {
			return fmt.Errorf("%sTHREADS: %w", EnvPrefix, err)
		}
		c.Threads = parsed
		return nil
	}},

	// String overrides
	{"KERNEL", []string{"kernel"}, func(c *AppConfig, v string) error {
		c.Kernels = splitList(v)
		return nil
	}},
	{"FORMAT", []string{"format"}, func(c *AppConfig, v string) error {
		c.Format = strings.ToLower(v)
		return nil
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error {
		c.OutputFile = v
		return nil
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) error {
		c.MetricsFile = v
		return nil
	}},

	// Boolean overrides
	{"QUICK", []string{"quick"}, func(c *AppConfig, v string) error {
		c.Quick = parseBoolEnv(v, c.Quick)
		return nil
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) error {
		c.Verbose = parseBoolEnv(v, c.Verbose)
		return nil
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with PARBENCH_):
//   - SIZE, BLOCK, SEED, TOLERANCE, THREADS, KERNEL, FORMAT, OUTPUT,
//     METRICS_FILE, QUICK, VERBOSE, QUIET, NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return err
			}
		}
	}
	return nil
}
