package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mrz1836/create-filecoin-app/internal/config"
	"github.com/mrz1836/create-filecoin-app/internal/interrupt"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
	"github.com/mrz1836/create-filecoin-app/internal/tui"
)

type promptResult struct {
	value string
	err   error
}

type confirmResult struct {
	yes bool
	err error
}

// fakePrompts answers questions from queues. An exhausted queue answers with
// the zero value.
type fakePrompts struct {
	mu       sync.Mutex
	inputs   []promptResult
	selects  []promptResult
	confirms []confirmResult
	asked    []string
	options  []tui.Option
}

func (p *fakePrompts) Input(_ context.Context, prompt, _ string, validate func(string) error) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, prompt)
	if len(p.inputs) == 0 {
		return "", nil
	}
	r := p.inputs[0]
	p.inputs = p.inputs[1:]
	if r.err == nil && validate != nil {
		if err := validate(r.value); err != nil {
			return "", err
		}
	}
	return r.value, r.err
}

func (p *fakePrompts) Select(_ context.Context, title string, options []tui.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, title)
	p.options = options
	if len(p.selects) == 0 {
		return options[0].Value, nil
	}
	r := p.selects[0]
	p.selects = p.selects[1:]
	return r.value, r.err
}

func (p *fakePrompts) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asked = append(p.asked, message)
	if len(p.confirms) == 0 {
		return false, nil
	}
	r := p.confirms[0]
	p.confirms = p.confirms[1:]
	return r.yes, r.err
}

// scriptedExecutor records every command and lets a test decide its result.
type scriptedExecutor struct {
	mu     sync.Mutex
	calls  []string
	handle func(ctx context.Context, dir, name string, args []string) error
}

func (e *scriptedExecutor) Run(ctx context.Context, dir, name string, args ...string) error {
	e.mu.Lock()
	e.calls = append(e.calls, runner.CommandLine(name, args...))
	e.mu.Unlock()
	if e.handle != nil {
		return e.handle(ctx, dir, name, args)
	}
	return nil
}

func (e *scriptedExecutor) commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *scriptedExecutor) count(prefix string) int {
	n := 0
	for _, c := range e.commands() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

type fakeDetector struct {
	result *config.ToolDetectionResult
	err    error
}

func (d fakeDetector) Detect(context.Context) (*config.ToolDetectionResult, error) {
	return d.result, d.err
}

type nopRestorer struct{}

func (nopRestorer) Restore() error { return nil }

// testHarness is an isolated run environment rooted in a temp directory.
type testHarness struct {
	env      *environment
	prompts  *fakePrompts
	exec     *scriptedExecutor
	workDir  string
	detector fakeDetector
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	workDir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{
		"FILAPP_OUTPUT", "FILAPP_VERBOSE", "FILAPP_QUIET",
		"FILAPP_INSTALL_PACKAGE_MANAGER", "FILAPP_INTERRUPT_RESUME",
	} {
		unsetEnv(t, key)
	}
	t.Chdir(workDir)

	h := &testHarness{
		prompts:  &fakePrompts{},
		exec:     &scriptedExecutor{},
		workDir:  workDir,
		detector: fakeDetector{result: &config.ToolDetectionResult{}},
	}
	h.env = &environment{
		prompts:         h.prompts,
		captureTerminal: func() interrupt.InputRestorer { return nopRestorer{} },
		executor:        func(string) runner.Executor { return h.exec },
		detector:        func(string) config.ToolDetector { return h.detector },
		loadConfig:      config.LoadWithOverrides,
		workDir:         func() (string, error) { return workDir, nil },
		initLogger: func(verbose, quiet bool) zerolog.Logger {
			return InitLoggerWithWriter(verbose, quiet, io.Discard)
		},
		banner: func() string { return "Welcome to Create Filecoin App" },
	}
	return h
}

// run executes the CLI with args and returns stdout, stderr and the error.
func (h *testHarness) run(args ...string) (string, string, error) {
	flags := &GlobalFlags{Output: OutputText}
	cmd := newRootCmdWithEnv(flags, BuildInfo{Version: "test"}, h.env)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := execute(context.Background(), cmd, flags)
	return stdout.String(), stderr.String(), err
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}
