package tui

import (
	"os"

	"golang.org/x/term"
)

// TerminalState remembers the terminal mode of stdin at startup so it can be
// put back after a child process (a package manager, git's credential prompt)
// leaves it raw or without echo.
type TerminalState struct {
	fd    int
	state *term.State
}

// CaptureTerminal records the current stdin terminal mode. When stdin is not a
// terminal the returned state restores nothing.
func CaptureTerminal() *TerminalState {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return &TerminalState{fd: fd}
	}
	state, err := term.GetState(fd)
	if err != nil {
		return &TerminalState{fd: fd}
	}
	return &TerminalState{fd: fd, state: state}
}

// Restore puts the terminal back into the captured mode. It implements interrupt.InputRestorer.
func (t *TerminalState) Restore() error {
	if t == nil || t.state == nil {
		return nil
	}
	return term.Restore(t.fd, t.state)
}
