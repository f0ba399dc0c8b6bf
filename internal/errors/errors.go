package apperrors

import (
	"errors"
	"fmt"
	"io"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0 // Indicates successful execution.
	ExitErrorGeneric  = 1 // Indicates a generic error, including worker failures.
	ExitErrorMismatch = 3 // Indicates a parallel result that differs from the sequential baseline.
	ExitErrorConfig   = 4 // Indicates a configuration error.
)

// ConfigError represents an invalid configuration, such as a non-positive
// thread count or a negative-length range. It is always raised before any
// worker is started.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WorkerError records a failure raised inside one worker's task body. The
// partition bounds identify the work the worker was executing when it failed.
type WorkerError struct {
	// Worker is the index of the failing worker (0..T-1).
	Worker int
	// Partition is the id of the partition being processed.
	Partition int
	// Start and End are the half-open bounds of that partition.
	Start, End int
	// Cause is the error returned by the task, or the recovered panic.
	Cause error
}

// Error returns a formatted message naming the worker, its partition and the cause.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed on partition %d [%d, %d): %v",
		e.Worker, e.Partition, e.Start, e.End, e.Cause)
}

// Unwrap returns the original cause, allowing errors.Is and errors.As to
// inspect it.
func (e *WorkerError) Unwrap() error { return e.Cause }

// MismatchError reports a parallel result that is not consistent with the
// sequential baseline of the same benchmark.
type MismatchError struct {
	// Benchmark names the kernel and configuration that diverged.
	Benchmark string
	// Detail describes the first divergence found.
	Detail string
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch in %s: %s", e.Benchmark, e.Detail)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsConfigError reports whether err is, or wraps, a ConfigError or a
// ValidationError.
func IsConfigError(err error) bool {
	var cfgErr ConfigError
	var valErr ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}

// ExitCodeFor maps an error to the exit code the process should return.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var mismatch MismatchError
	switch {
	case IsConfigError(err):
		return ExitErrorConfig
	case errors.As(err, &mismatch):
		return ExitErrorMismatch
	default:
		return ExitErrorGeneric
	}
}

// HandleRunError prints the failure cause for err to out and returns the
// matching exit code. A nil error prints nothing and returns ExitSuccess.
func HandleRunError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorConfig:
		fmt.Fprintf(out, "Configuration error: %v\n", err)
	case ExitErrorMismatch:
		fmt.Fprintf(out, "Consistency check failed: %v\n", err)
	default:
		var workerErr *WorkerError
		if errors.As(err, &workerErr) {
			fmt.Fprintf(out, "Benchmark aborted, worker failure: %v\n", err)
		} else {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
	return code
}
