// Package signal forwards process signals to the rest of the CLI.
//
// The listener goroutine never prompts or touches the terminal. SIGINT is handed
// to a callback that only records the request; SIGTERM cancels the root context.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler listens for SIGINT and SIGTERM.
//
// Every SIGINT is passed to the interrupt callback, which must not block.
// The first SIGTERM cancels the handler's context and closes Terminated().
type Handler struct {
	ctx         context.Context //nolint:containedctx // intentional: handler manages context lifecycle
	cancel      context.CancelFunc
	onInterrupt func()
	terminated  chan struct{}
	done        chan struct{} // signals listen() to exit cleanly
	termOnce    sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal
}

// NewHandler creates a signal handler. onInterrupt may be nil, in which case
// SIGINT is received and ignored.
//
// Usage:
//
//	h := signal.NewHandler(ctx, coordinator.Notify)
//	defer h.Stop()
//	ctx = h.Context()
func NewHandler(parent context.Context, onInterrupt func()) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		onInterrupt: onInterrupt,
		terminated:  make(chan struct{}),
		done:        make(chan struct{}),
		// Buffer of 1 ensures signal.Notify doesn't drop signals if handler is busy.
		// See: https://pkg.go.dev/os/signal#Notify
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context canceled on SIGTERM or Stop.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Terminated returns a channel that closes when SIGTERM is received.
func (h *Handler) Terminated() <-chan struct{} {
	return h.terminated
}

// Stop cleans up the signal handler and stops listening for signals.
// Always call this when done to prevent resource leaks.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done) // Signal listen() to exit before closing sigChan
		h.cancel()
	})
}

// handleSignal dispatches one received signal.
func (h *Handler) handleSignal(sig os.Signal) {
	if sig == syscall.SIGTERM {
		h.termOnce.Do(func() {
			h.cancel()
			close(h.terminated)
		})
		return
	}
	if h.onInterrupt != nil {
		h.onInterrupt()
	}
}

// listen waits for signals and handles them until Stop() is called
// or the context is canceled.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
