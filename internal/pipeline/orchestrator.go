// Package pipeline drives one scaffolding run through its states: create the
// project directory, populate it from the template, reinitialize its
// repository and install dependencies.
//
// Interruption handling is centralized here. Before each state's work the
// orchestrator checks for a pending cancellation request; when a step reports
// that it was interrupted, the orchestrator asks for confirmation and applies
// the decision. Abort removes the directory this run created; Resume follows
// the configured policy.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/ctxutil"
	"github.com/mrz1836/create-filecoin-app/internal/domain"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/interrupt"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
)

// projectDirPerm is the permission of the created project directory.
const projectDirPerm = 0o755

// StepRunner executes one operation. runner.Runner satisfies it.
type StepRunner interface {
	Run(ctx context.Context, op runner.Operation) domain.StepOutcome
}

// Confirmer resolves cancellation requests. interrupt.Coordinator satisfies it.
type Confirmer interface {
	IsPending() bool
	Confirm(ctx context.Context) (interrupt.Decision, error)
}

// Reporter prints progress for the user. tui.Output satisfies it.
type Reporter interface {
	Info(msg string)
}

// Observer receives every state transition.
type Observer func(from, to State)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithResumePolicy sets what happens when the user declines to terminate after
// a step was interrupted ("retry" or "stop").
func WithResumePolicy(policy string) Option {
	return func(o *Orchestrator) {
		o.resume = policy
	}
}

// WithObserver registers a transition observer.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) {
		o.observer = fn
	}
}

// WithReporter sets where progress messages go.
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		o.out = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator runs the steps of one project. It is not reusable: create one per run.
type Orchestrator struct {
	runner   StepRunner
	confirm  Confirmer
	resume   string
	observer Observer
	out      Reporter
	logger   zerolog.Logger

	state   State
	created bool
}

// NewOrchestrator creates an Orchestrator in StateIdle with the retry policy.
func NewOrchestrator(stepRunner StepRunner, confirm Confirmer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		runner:  stepRunner,
		confirm: confirm,
		resume:  constants.ResumePolicyRetry,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With().Str("component", "pipeline").Logger()
	return o
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Run executes the pipeline for pc. steps are normally Steps(pc, cfg).
//
// It returns nil when every step succeeded, ErrAborted when the user confirmed
// termination, ErrStepInterrupted when the user declined termination under the
// stop policy, and the step's error on a domain failure.
func (o *Orchestrator) Run(ctx context.Context, pc domain.PipelineContext, steps []Step) error {
	log := o.logger.With().Str("project", pc.ProjectName).Logger()

	o.transition(StateCreatingDirectory)
	if err := o.checkpoint(ctx, pc); err != nil {
		return err
	}
	if err := o.createDirectory(pc); err != nil {
		return o.fail(err)
	}

	for _, step := range steps {
		o.transition(step.State)
		if err := o.checkpoint(ctx, pc); err != nil {
			return err
		}
		if err := o.runStep(ctx, pc, step); err != nil {
			return err
		}
	}

	if err := o.checkpoint(ctx, pc); err != nil {
		return err
	}
	o.transition(StateDone)
	log.Info().Msg("project created")
	return nil
}

// runStep runs one step until it succeeds or the run has to end.
func (o *Orchestrator) runStep(ctx context.Context, pc domain.PipelineContext, step Step) error {
	for attempt := 1; ; attempt++ {
		outcome := o.runner.Run(ctx, step.Op)

		switch outcome.Kind {
		case domain.OutcomeSuccess:
			return nil
		case domain.OutcomeDomainFailure:
			return o.fail(outcome.Err)
		case domain.OutcomeInterrupted:
		}

		decision, err := o.confirm.Confirm(ctx)
		if err != nil {
			o.logger.Warn().Err(err).Msg("confirmation prompt failed, continuing")
		}
		if decision == interrupt.DecisionAbort {
			return o.abort(pc)
		}

		if o.resume == constants.ResumePolicyStop {
			o.transition(StateStopped)
			o.logger.Info().Str("step", step.Op.Name()).Msg("stopped after interrupted step")
			return fmt.Errorf("%s: %w", step.Op.Name(), apperrors.ErrStepInterrupted)
		}

		o.logger.Info().
			Str("step", step.Op.Name()).
			Int("attempt", attempt+1).
			Msg("retrying interrupted step")
	}
}

// checkpoint is a suspension point: a pending request is resolved before any
// further work starts.
func (o *Orchestrator) checkpoint(ctx context.Context, pc domain.PipelineContext) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return o.fail(err)
	}
	if !o.confirm.IsPending() {
		return nil
	}

	decision, err := o.confirm.Confirm(ctx)
	if err != nil {
		o.logger.Warn().Err(err).Msg("confirmation prompt failed, continuing")
	}
	if decision == interrupt.DecisionAbort {
		return o.abort(pc)
	}
	return nil
}

// createDirectory creates exactly pc.ProjectPath. An existing path is never
// reused or removed.
func (o *Orchestrator) createDirectory(pc domain.PipelineContext) error {
	if o.out != nil {
		o.out.Info("Creating project directory: " + pc.ProjectName)
	}

	if err := os.Mkdir(pc.ProjectPath, projectDirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("Failed to create project directory: %s: %w", pc.ProjectPath, apperrors.ErrProjectExists) //nolint:staticcheck // user-facing message
		}
		return fmt.Errorf("Failed to create project directory: %w: %w", err, apperrors.ErrProjectDirectory) //nolint:staticcheck // user-facing message
	}
	o.created = true
	o.logger.Debug().Str("path", pc.ProjectPath).Msg("created project directory")
	return nil
}

// abort removes what this run created and returns ErrAborted. Removal is best effort.
func (o *Orchestrator) abort(pc domain.PipelineContext) error {
	o.transition(StateAborting)
	if o.created {
		if err := os.RemoveAll(pc.ProjectPath); err != nil {
			o.logger.Error().Err(err).Str("path", pc.ProjectPath).Msg("failed to remove project directory")
		} else {
			o.logger.Info().Str("path", pc.ProjectPath).Msg("removed project directory")
		}
	}
	return apperrors.ErrAborted
}

func (o *Orchestrator) fail(err error) error {
	o.transition(StateFailed)
	o.logger.Error().Err(err).Msg("pipeline failed")
	return err
}

func (o *Orchestrator) transition(to State) {
	from := o.state
	o.state = to
	o.logger.Debug().Str("from", from.String()).Str("to", to.String()).Msg("state transition")
	if o.observer != nil {
		o.observer(from, to)
	}
}
