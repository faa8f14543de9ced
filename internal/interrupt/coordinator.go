// Package interrupt turns asynchronous user cancellation signals into a single,
// synchronous confirm-to-exit decision.
//
// A burst of signals collapses into one pending request: the first Notify sets
// the guard and wakes the main control path, later ones are dropped until the
// prompt is resolved. The prompt itself always runs on the caller's goroutine.
package interrupt

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
)

// Confirmation prompt and notices shown to the user.
const (
	DetectedNotice   = "Interruption detected!"
	ConfirmQuestion  = "Do you want to terminate the process?"
	TerminatedNotice = "Process terminated by user."
	ContinuingNotice = "Continuing process..."
)

// Decision is the user's answer to the confirm-to-exit question.
type Decision int

const (
	// DecisionResume means the user declined to terminate.
	DecisionResume Decision = iota
	// DecisionAbort means the user confirmed termination. The caller must
	// clean up what it owns and stop.
	DecisionAbort
)

// String returns a human-readable representation of the decision.
func (d Decision) String() string {
	if d == DecisionAbort {
		return "abort"
	}
	return "resume"
}

// Prompter asks a yes/no question on the terminal.
type Prompter interface {
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
}

// InputRestorer re-enables terminal input a child process may have left in a
// raw or paused mode.
type InputRestorer interface {
	Restore() error
}

// Reporter prints user-facing notices. tui.Output satisfies it.
type Reporter interface {
	Warning(msg string)
	Info(msg string)
}

// Coordinator owns the re-entrancy guard and the confirmation prompt.
// A single instance is shared by everything that can observe cancellation.
type Coordinator struct {
	pending  atomic.Bool
	requests chan struct{}
	confirm  sync.Mutex

	prompter Prompter
	restorer InputRestorer
	out      Reporter
	logger   zerolog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithInputRestorer sets the terminal restorer called before prompting.
func WithInputRestorer(r InputRestorer) Option {
	return func(c *Coordinator) {
		c.restorer = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// NewCoordinator creates a Coordinator with the guard cleared.
func NewCoordinator(prompter Prompter, out Reporter, opts ...Option) *Coordinator {
	c := &Coordinator{
		requests: make(chan struct{}, 1),
		prompter: prompter,
		out:      out,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "interrupt").Logger()
	return c
}

// Notify records a cancellation signal. It is safe to call from any goroutine
// and never blocks. If a request is already pending it does nothing.
func (c *Coordinator) Notify() {
	if !c.pending.CompareAndSwap(false, true) {
		return
	}
	select {
	case c.requests <- struct{}{}:
	default:
	}
}

// IsPending reports whether a cancellation request is awaiting or undergoing
// confirmation.
func (c *Coordinator) IsPending() bool {
	return c.pending.Load()
}

// Requests delivers one wake-up per pending request. Wake-ups are hints: a
// receiver that misses one still sees IsPending() == true.
func (c *Coordinator) Requests() <-chan struct{} {
	return c.requests
}

// Confirm asks the user whether to terminate and blocks until answered.
//
// On DecisionResume the guard is cleared before returning. On DecisionAbort the
// guard stays set so signals arriving during cleanup are absorbed.
// Ctrl+C inside the prompt picks the default answer (resume). Without a terminal
// nobody can answer, so the result is DecisionAbort. Any other prompt error
// clears the guard and is returned with DecisionResume.
func (c *Coordinator) Confirm(ctx context.Context) (Decision, error) {
	c.confirm.Lock()
	defer c.confirm.Unlock()

	c.pending.Store(true)
	c.drain()

	c.logger.Warn().Msg("interruption detected, asking for confirmation")
	c.out.Warning(DetectedNotice)

	if c.restorer != nil {
		if err := c.restorer.Restore(); err != nil {
			c.logger.Debug().Err(err).Msg("failed to restore terminal input")
		}
	}

	terminate, err := c.prompter.Confirm(ctx, ConfirmQuestion, false)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrMenuCanceled):
		c.logger.Debug().Msg("confirmation canceled, using default answer")
		terminate = false
	case errors.Is(err, apperrors.ErrNonInteractive):
		c.logger.Warn().Msg("no terminal to confirm interruption, terminating")
		terminate = true
	default:
		c.release()
		return DecisionResume, err
	}

	if terminate {
		c.logger.Info().Msg("user confirmed termination")
		c.out.Info(TerminatedNotice)
		return DecisionAbort, nil
	}

	c.logger.Info().Msg("user declined termination")
	c.out.Info(ContinuingNotice)
	c.release()
	return DecisionResume, nil
}

// release clears the guard and discards wake-ups left from the resolved request.
func (c *Coordinator) release() {
	c.drain()
	c.pending.Store(false)
}

func (c *Coordinator) drain() {
	for {
		select {
		case <-c.requests:
		default:
			return
		}
	}
}
