// Package orchestration runs a benchmark suite (every selected kernel at
// every configured size) and turns the outcome into an exit code. It
// decouples the run from presentation via the ProgressReporter and
// ResultPresenter interfaces.
package orchestration
