package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/ctxutil"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/logging"
)

// Executor runs one external command to completion.
type Executor interface {
	// Run executes name with args in dir. It returns an error wrapping
	// ErrInterrupted when the command was stopped by a cancellation signal.
	Run(ctx context.Context, dir, name string, args ...string) error
}

// CommandExecutor implements Executor using os/exec with the command's
// input and output connected to the user's terminal.
type CommandExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// GracePeriod is how long a command may run after receiving an interrupt
	// before it is killed.
	GracePeriod time.Duration
}

// NewCommandExecutor creates a CommandExecutor attached to the process's
// standard streams.
func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		GracePeriod: constants.InterruptGracePeriod,
	}
}

// Run executes the command, streaming its output as it is produced.
func (e *CommandExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	commandLine := logging.FilterSensitiveValue(CommandLine(name, args...))
	log := zerolog.Ctx(ctx)
	log.Debug().Str("command", commandLine).Str("dir", dir).Msg("running command")

	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- command names come from configuration, not remote input
	cmd.Dir = dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	// Ask the child to stop the way a terminal Ctrl+C would; WaitDelay kills it
	// if it does not exit in time.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = e.GracePeriod

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if cause := ctxutil.Canceled(ctx); cause != nil {
		if errors.Is(cause, apperrors.ErrInterrupted) {
			return fmt.Errorf("%s: %w", commandLine, apperrors.ErrInterrupted)
		}
		return fmt.Errorf("%s: %w", commandLine, cause)
	}

	if IsInterruptExit(err) {
		return fmt.Errorf("%s: %w", commandLine, apperrors.ErrInterrupted)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with status %d: %w", commandLine, exitErr.ExitCode(), apperrors.ErrCommandFailed)
	}
	return fmt.Errorf("%s: %w", commandLine, err)
}

// IsInterruptExit reports whether err shows a process that ended because of
// SIGINT: killed by the signal, or exiting with the shell convention status 130.
func IsInterruptExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() && status.Signal() == syscall.SIGINT {
		return true
	}
	return exitErr.ExitCode() == constants.InterruptExitCode
}

// CommandLine renders a command for logs and messages.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// Ensure CommandExecutor implements Executor.
var _ Executor = (*CommandExecutor)(nil)
