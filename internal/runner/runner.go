// Package runner executes one pipeline step at a time and normalizes its result
// into a domain.StepOutcome.
//
// The runner never prompts and never retries. A cancellation request observed
// while a step runs interrupts the step; deciding what happens next belongs to
// the pipeline and the interruption coordinator.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/create-filecoin-app/internal/domain"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/logging"
)

// Operation is one external, potentially long-running step.
type Operation interface {
	// Name identifies the step in logs (e.g., "clone").
	Name() string
	// FailurePrefix starts the user-facing failure message
	// (e.g., "Failed to clone repository").
	FailurePrefix() string
	// FailureKind is the sentinel error attached to failures of this step.
	FailureKind() error
	// Commands lists the external commands the step runs, for plans and logs.
	Commands() []string
	// Execute performs the step.
	Execute(ctx context.Context, exec Executor) error
}

// Watcher exposes pending cancellation requests. interrupt.Coordinator satisfies it.
type Watcher interface {
	Requests() <-chan struct{}
	IsPending() bool
}

// StepError is the DomainFailure of one step. Its message is the step's
// failure prefix followed by the cause.
type StepError struct {
	Step   string
	Prefix string
	Kind   error
	Err    error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return e.Prefix + ": " + e.Err.Error()
}

// Unwrap exposes both the step sentinel and the underlying cause.
func (e *StepError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Runner runs operations.
type Runner struct {
	exec   Executor
	watch  Watcher
	logger zerolog.Logger
}

// New creates a Runner. watch may be nil when no cancellation source exists.
func New(exec Executor, watch Watcher, logger zerolog.Logger) *Runner {
	return &Runner{
		exec:   exec,
		watch:  watch,
		logger: logger.With().Str("component", "runner").Logger(),
	}
}

// Run executes op and classifies the result as Success, DomainFailure or Interrupted.
func (r *Runner) Run(ctx context.Context, op Operation) domain.StepOutcome {
	log := r.logger.With().Str("step", op.Name()).Logger()
	stepCtx, cancel := context.WithCancelCause(log.WithContext(ctx))
	defer cancel(nil)

	done := make(chan struct{})
	var wg sync.WaitGroup
	if r.watch != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case <-r.watch.Requests():
				log.Debug().Msg("cancellation requested, interrupting step")
				cancel(apperrors.ErrInterrupted)
			case <-done:
			case <-stepCtx.Done():
			}
		}()
	}

	start := time.Now()
	log.Info().Strs("commands", logging.FilterAll(op.Commands())).Msg("step started")

	err := op.Execute(stepCtx, r.exec)
	close(done)
	wg.Wait()

	outcome := r.classify(stepCtx, op, err)
	log.Info().
		Str("outcome", outcome.Kind.String()).
		Dur("duration_ms", time.Since(start)).
		Err(outcome.Err).
		Msg("step finished")
	return outcome
}

// classify maps an operation error onto a StepOutcome. A step that finished
// cleanly is a success even if a request arrived at the very end; the request
// stays pending for the caller's next suspension point.
func (r *Runner) classify(stepCtx context.Context, op Operation, err error) domain.StepOutcome {
	if err == nil {
		return domain.Success()
	}
	if errors.Is(err, apperrors.ErrInterrupted) || errors.Is(context.Cause(stepCtx), apperrors.ErrInterrupted) {
		return domain.Interrupted()
	}
	// A child that handles SIGINT itself may exit with an ordinary failure
	// before the watcher reacts; the pending request explains that failure.
	if r.watch != nil && r.watch.IsPending() {
		return domain.Interrupted()
	}
	return domain.DomainFailure(&StepError{
		Step:   op.Name(),
		Prefix: op.FailurePrefix(),
		Kind:   op.FailureKind(),
		Err:    err,
	})
}
