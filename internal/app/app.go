// Package app wires configuration, kernels, the benchmark suite and the
// presentation layer into the parbench command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/parbench/internal/cli"
	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/kernel"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/orchestration"
	"github.com/agbru/parbench/internal/ui"
)

// Application represents the parbench application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *kernel.Registry
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom kernel registry.
func WithRegistry(r *kernel.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithLogger sets the logger instead of the default console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = kernel.NewDefaultRegistry()
	}

	programName := "parbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveThreads(cfg)

	if app.Logger == nil {
		console := zerolog.ConsoleWriter{Out: errWriter, NoColor: cfg.NoColor, TimeFormat: "15:04:05"}
		app.Logger = logging.NewLogger(console, "parbench")
	}
	return app, nil
}

func logLevel(cfg config.AppConfig) zerolog.Level {
	switch {
	case cfg.Verbose:
		return zerolog.DebugLevel
	case cfg.Quiet:
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Run executes the benchmark suite and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	cfg := a.Config
	zerolog.SetGlobalLevel(logLevel(cfg))
	ui.InitTheme(cfg.NoColor)

	kernels, err := orchestration.SelectKernels(cfg, a.Registry)
	if err != nil {
		return apperrors.HandleRunError(apperrors.ConfigError{Message: err.Error()}, a.ErrWriter)
	}
	plans := orchestration.BuildPlan(kernels, cfg)
	table := cfg.Format == "table"

	if table && !cfg.Quiet {
		cli.PrintExecutionConfig(cfg, plans, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet || !table {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	var benchMetrics *metrics.BenchmarkMetrics
	if cfg.MetricsFile != "" {
		benchMetrics = metrics.NewBenchmarkMetrics()
	}

	report := orchestration.ExecuteSuite(ctx, plans, orchestration.SuiteOptions{
		Config:  cfg,
		Logger:  a.Logger,
		Metrics: benchMetrics,
	}, reporter, progressOut)

	var code int
	if table {
		var presenter orchestration.ResultPresenter = cli.CLIResultPresenter{}
		if cfg.Quiet {
			presenter = cli.QuietPresenter{}
		}
		code = orchestration.AnalyzeSuite(report, cfg.Verbose, presenter, out)
	} else {
		if cfg.OutputFile == "" {
			if err := cli.EncodeReport(out, cli.NewReport(report, Version), cfg.Format); err != nil {
				a.Logger.Error("encoding report failed", err)
				return apperrors.ExitErrorGeneric
			}
		}
		code = apperrors.HandleRunError(orchestration.FirstError(report), a.ErrWriter)
	}

	if code == apperrors.ExitSuccess {
		code = a.writeArtifacts(report, benchMetrics, out)
	} else if _, err := a.writeArtifactsQuietly(report, benchMetrics); err != nil {
		a.Logger.Error("writing artifacts failed", err)
	}

	if cfg.Verbose {
		cli.DisplayMemoryStats(metrics.NewMemoryCollector().Snapshot(), out)
	}
	return code
}

// writeArtifacts writes the report and metrics files and confirms them on
// out. A write failure turns a successful run into ExitErrorGeneric.
func (a *Application) writeArtifacts(report orchestration.SuiteReport, m *metrics.BenchmarkMetrics, out io.Writer) int {
	written, err := a.writeArtifactsQuietly(report, m)
	if !a.Config.Quiet && a.Config.Format == "table" {
		for _, w := range written {
			cli.DisplayReportSaved(w.kind, w.path, out)
		}
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

type artifact struct{ kind, path string }

func (a *Application) writeArtifactsQuietly(report orchestration.SuiteReport, m *metrics.BenchmarkMetrics) ([]artifact, error) {
	var written []artifact
	if path := a.Config.OutputFile; path != "" {
		if err := cli.WriteReport(cli.NewReport(report, Version), path, a.Config.Format); err != nil {
			return written, err
		}
		written = append(written, artifact{"Report", path})
	}
	if m != nil {
		if err := m.WriteTextfile(a.Config.MetricsFile); err != nil {
			return written, fmt.Errorf("failed to write metrics: %w", err)
		}
		written = append(written, artifact{"Metrics", a.Config.MetricsFile})
	}
	return written, nil
}

// IsHelpError checks if the error is a help flag error (-h was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
