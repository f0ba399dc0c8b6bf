package parallel

import (
	"cmp"
	"slices"
	"sync"

	"github.com/sourcegraph/conc/panics"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
)

// Task computes the partial result of one partition. It must read only
// immutable shared input and write only to indices the partition owns.
type Task[T any] func(p Partition) (T, error)

// Executor runs tasks on a fixed number of workers.
type Executor struct {
	threads int
	logger  logging.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for dispatch and failure messages.
func WithLogger(l logging.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor returns an executor that spawns exactly threads workers per run.
func NewExecutor(threads int, opts ...Option) (*Executor, error) {
	if threads <= 0 {
		return nil, apperrors.NewConfigError("thread count must be positive, got %d", threads)
	}
	e := &Executor{threads: threads, logger: logging.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Threads returns the worker count.
func (e *Executor) Threads() int { return e.threads }

// RunStatic splits span into e.Threads() static partitions, runs task on each
// in its own goroutine and waits for all of them. The result slice is indexed
// by partition id. If any task fails the first failure is returned as a
// *apperrors.WorkerError and no results are returned.
func RunStatic[T any](e *Executor, span Range, task Task[T]) ([]T, error) {
	parts, err := StaticPartitions(span, e.threads)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("dispatching static partitions",
		logging.Int("threads", e.threads),
		logging.Int("length", span.Len()),
		logging.Int("block", span.Len()/e.threads))

	results := make([]T, len(parts))
	var g errgroup.Group
	for _, p := range parts {
		g.Go(func() error {
			v, err := guard(p.ID, p, task)
			if err != nil {
				return err
			}
			results[p.ID] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Error("static run failed", err, logging.Int("threads", e.threads))
		return nil, err
	}
	return results, nil
}

type claimed[T any] struct {
	id    int
	value T
}

// RunDynamic starts e.Threads() workers that repeatedly claim blocks from c
// and run task on them until the cursor is exhausted. It returns one result
// per claimed block, ordered by block ordinal. A failing task does not stop
// its siblings; the barrier waits for all of them and the first failure is
// returned.
func RunDynamic[T any](e *Executor, c *Cursor, task Task[T]) ([]T, error) {
	e.logger.Debug("dispatching dynamic blocks",
		logging.Int("threads", e.threads),
		logging.Int("block", c.BlockSize()),
		logging.Int("blocks", c.Blocks()))

	perWorker := make([][]claimed[T], e.threads)
	var (
		wg sync.WaitGroup
		ec ErrorCollector
	)
	wg.Add(e.threads)
	for w := range e.threads {
		go func() {
			defer wg.Done()
			for {
				p, ok := c.Claim()
				if !ok {
					return
				}
				v, err := guard(w, p, task)
				if err != nil {
					ec.SetError(err)
					continue
				}
				perWorker[w] = append(perWorker[w], claimed[T]{id: p.ID, value: v})
			}
		}()
	}
	wg.Wait()

	if err := ec.Err(); err != nil {
		e.logger.Error("dynamic run failed", err, logging.Int("threads", e.threads))
		return nil, err
	}

	merged := make([]claimed[T], 0, c.Blocks())
	for _, rs := range perWorker {
		merged = append(merged, rs...)
	}
	slices.SortFunc(merged, func(a, b claimed[T]) int { return cmp.Compare(a.id, b.id) })

	results := make([]T, len(merged))
	for i, r := range merged {
		results[i] = r.value
	}
	return results, nil
}

// guard runs task on p, turning both returned errors and panics into a
// *apperrors.WorkerError for the given worker.
func guard[T any](worker int, p Partition, task Task[T]) (T, error) {
	var (
		v   T
		err error
		pc  panics.Catcher
	)
	pc.Try(func() { v, err = task(p) })
	if r := pc.Recovered(); r != nil {
		err = r.AsError()
	}
	if err != nil {
		var zero T
		return zero, &apperrors.WorkerError{
			Worker:    worker,
			Partition: p.ID,
			Start:     p.Start,
			End:       p.End,
			Cause:     err,
		}
	}
	return v, nil
}
