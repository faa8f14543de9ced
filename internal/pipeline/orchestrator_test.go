package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/create-filecoin-app/internal/domain"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/interrupt"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
)

var (
	errCloneFailed  = errors.New("Failed to clone repository: exit status 128")
	errPromptBroken = errors.New("prompt broken")
)

// stubOp is a named operation that does nothing by itself.
type stubOp struct{ name string }

func (s stubOp) Name() string                                        { return s.name }
func (s stubOp) FailurePrefix() string                               { return "Failed to " + s.name }
func (s stubOp) FailureKind() error                                  { return nil }
func (s stubOp) Commands() []string                                  { return nil }
func (s stubOp) Execute(context.Context, runner.Executor) error { return nil }

// fakeRunner returns scripted outcomes per operation name; unscripted calls succeed.
type fakeRunner struct {
	outcomes map[string][]domain.StepOutcome
	calls    []string
	onRun    func(name string)
}

func (r *fakeRunner) Run(_ context.Context, op runner.Operation) domain.StepOutcome {
	r.calls = append(r.calls, op.Name())
	if r.onRun != nil {
		r.onRun(op.Name())
	}
	queue := r.outcomes[op.Name()]
	if len(queue) == 0 {
		return domain.Success()
	}
	r.outcomes[op.Name()] = queue[1:]
	return queue[0]
}

// fakeConfirmer answers with scripted decisions.
type fakeConfirmer struct {
	pending   bool
	decisions []interrupt.Decision
	err       error
	calls     int
}

func (c *fakeConfirmer) IsPending() bool { return c.pending }

func (c *fakeConfirmer) Confirm(context.Context) (interrupt.Decision, error) {
	c.calls++
	decision := interrupt.DecisionResume
	if len(c.decisions) > 0 {
		decision = c.decisions[0]
		c.decisions = c.decisions[1:]
	}
	if decision == interrupt.DecisionResume {
		c.pending = false
	}
	return decision, c.err
}

type recordingReporter struct{ lines []string }

func (r *recordingReporter) Info(msg string) { r.lines = append(r.lines, msg) }

func testSteps() []Step {
	return []Step{
		{State: StatePopulatingTemplate, Op: stubOp{name: "clone"}},
		{State: StateReinitializing, Op: stubOp{name: "reinit"}},
		{State: StateInstallingDependencies, Op: stubOp{name: "install"}},
	}
}

func testContext(t *testing.T, name string) domain.PipelineContext {
	t.Helper()
	pc, err := domain.NewPipelineContext(t.TempDir(), name, domain.VariantDefault, "main", "https://example.com/t.git", "yarn")
	require.NoError(t, err)
	return pc
}

func newTestOrchestrator(r *fakeRunner, c *fakeConfirmer, states *[]State, opts ...Option) *Orchestrator {
	opts = append(opts, WithObserver(func(_, to State) { *states = append(*states, to) }))
	return NewOrchestrator(r, c, opts...)
}

func TestOrchestrator_Success(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{}}
	c := &fakeConfirmer{}
	out := &recordingReporter{}
	var states []State
	o := newTestOrchestrator(r, c, &states, WithReporter(out))

	err := o.Run(context.Background(), pc, testSteps())

	require.NoError(t, err)
	assert.Equal(t, StateDone, o.State())
	assert.Equal(t, []State{
		StateCreatingDirectory, StatePopulatingTemplate, StateReinitializing,
		StateInstallingDependencies, StateDone,
	}, states)
	assert.Equal(t, []string{"clone", "reinit", "install"}, r.calls)
	assert.DirExists(t, pc.ProjectPath)
	assert.Equal(t, []string{"Creating project directory: my-app"}, out.lines)
	assert.Zero(t, c.calls)
}

func TestOrchestrator_DomainFailureKeepsDirectory(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{
		"clone": {domain.DomainFailure(errCloneFailed)},
	}}
	c := &fakeConfirmer{}
	var states []State
	o := newTestOrchestrator(r, c, &states)

	err := o.Run(context.Background(), pc, testSteps())

	require.ErrorIs(t, err, errCloneFailed)
	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, []string{"clone"}, r.calls)
	assert.DirExists(t, pc.ProjectPath)
	assert.Zero(t, c.calls, "failures never prompt")
}

func TestOrchestrator_InterruptDuringInstallAbort(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{
		"install": {domain.Interrupted()},
	}}
	c := &fakeConfirmer{decisions: []interrupt.Decision{interrupt.DecisionAbort}}
	var states []State
	o := newTestOrchestrator(r, c, &states)

	err := o.Run(context.Background(), pc, testSteps())

	require.ErrorIs(t, err, apperrors.ErrAborted)
	assert.True(t, apperrors.IsUserStop(err))
	assert.Equal(t, StateAborting, o.State())
	assert.NoDirExists(t, pc.ProjectPath)
	assert.Equal(t, 1, c.calls)
}

func TestOrchestrator_InterruptDuringCloneResumeRetries(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{
		"clone": {domain.Interrupted()},
	}}
	c := &fakeConfirmer{decisions: []interrupt.Decision{interrupt.DecisionResume}}
	var states []State
	o := newTestOrchestrator(r, c, &states)

	err := o.Run(context.Background(), pc, testSteps())

	require.NoError(t, err)
	assert.Equal(t, []string{"clone", "clone", "reinit", "install"}, r.calls, "only the interrupted step re-runs")
	assert.Equal(t, StateDone, o.State())
	assert.DirExists(t, pc.ProjectPath)
}

func TestOrchestrator_InterruptDuringCloneResumeStops(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{
		"clone": {domain.Interrupted()},
	}}
	c := &fakeConfirmer{decisions: []interrupt.Decision{interrupt.DecisionResume}}
	var states []State
	o := newTestOrchestrator(r, c, &states, WithResumePolicy("stop"))

	err := o.Run(context.Background(), pc, testSteps())

	require.ErrorIs(t, err, apperrors.ErrStepInterrupted)
	assert.True(t, apperrors.IsUserStop(err))
	assert.Equal(t, StateStopped, o.State())
	assert.Equal(t, []string{"clone"}, r.calls, "reinit must not run")
	assert.DirExists(t, pc.ProjectPath)
}

func TestOrchestrator_PromptErrorResumes(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{
		"reinit": {domain.Interrupted()},
	}}
	c := &fakeConfirmer{err: errPromptBroken}
	var states []State
	o := newTestOrchestrator(r, c, &states)

	require.NoError(t, o.Run(context.Background(), pc, testSteps()))
	assert.Equal(t, []string{"clone", "reinit", "reinit", "install"}, r.calls)
}

func TestOrchestrator_PendingRequestAtCheckpoint(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	c := &fakeConfirmer{decisions: []interrupt.Decision{interrupt.DecisionResume}}
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{}}
	// A signal arrives while clone finishes; the step itself still succeeds.
	r.onRun = func(name string) {
		if name == "clone" {
			c.pending = true
		}
	}
	var states []State
	o := newTestOrchestrator(r, c, &states)

	require.NoError(t, o.Run(context.Background(), pc, testSteps()))
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, []string{"clone", "reinit", "install"}, r.calls, "resume at a checkpoint re-runs nothing")
}

func TestOrchestrator_PendingAbortBeforeDone(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	c := &fakeConfirmer{decisions: []interrupt.Decision{interrupt.DecisionAbort}}
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{}}
	r.onRun = func(name string) {
		if name == "install" {
			c.pending = true
		}
	}
	var states []State
	o := newTestOrchestrator(r, c, &states)

	err := o.Run(context.Background(), pc, testSteps())

	require.ErrorIs(t, err, apperrors.ErrAborted)
	assert.NotContains(t, states, StateDone)
	assert.NoDirExists(t, pc.ProjectPath)
}

func TestOrchestrator_AbortBeforeCreationTouchesNothing(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	require.NoError(t, os.Mkdir(pc.ProjectPath, 0o750))
	keep := filepath.Join(pc.ProjectPath, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("mine"), 0o600))

	c := &fakeConfirmer{pending: true, decisions: []interrupt.Decision{interrupt.DecisionAbort}}
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{}}
	var states []State
	o := newTestOrchestrator(r, c, &states)

	err := o.Run(context.Background(), pc, testSteps())

	require.ErrorIs(t, err, apperrors.ErrAborted)
	assert.FileExists(t, keep, "a directory this run did not create is never removed")
	assert.Empty(t, r.calls)
}

func TestOrchestrator_ExistingDirectoryFails(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	require.NoError(t, os.Mkdir(pc.ProjectPath, 0o750))
	keep := filepath.Join(pc.ProjectPath, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("mine"), 0o600))

	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{}}
	var states []State
	o := newTestOrchestrator(r, &fakeConfirmer{}, &states)

	err := o.Run(context.Background(), pc, testSteps())

	require.ErrorIs(t, err, apperrors.ErrProjectExists)
	assert.Contains(t, err.Error(), "Failed to create project directory: ")
	assert.Equal(t, StateFailed, o.State())
	assert.Empty(t, r.calls)
	assert.FileExists(t, keep)
}

func TestOrchestrator_MissingParentFails(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	pc.ProjectPath = filepath.Join(pc.ProjectPath, "nested", "deeper")

	var states []State
	o := newTestOrchestrator(&fakeRunner{}, &fakeConfirmer{}, &states)

	err := o.Run(context.Background(), pc, testSteps())

	require.ErrorIs(t, err, apperrors.ErrProjectDirectory)
	assert.NoDirExists(t, pc.ProjectPath)
}

func TestOrchestrator_CanceledContextFails(t *testing.T) {
	t.Parallel()

	pc := testContext(t, "my-app")
	ctx, cancel := context.WithCancel(context.Background())
	r := &fakeRunner{outcomes: map[string][]domain.StepOutcome{}}
	r.onRun = func(name string) {
		if name == "clone" {
			cancel()
		}
	}
	var states []State
	o := newTestOrchestrator(r, &fakeConfirmer{}, &states)

	err := o.Run(ctx, pc, testSteps())

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, []string{"clone"}, r.calls)
	assert.DirExists(t, pc.ProjectPath)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "installing_dependencies", StateInstallingDependencies.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.True(t, StateStopped.IsTerminal())
	assert.False(t, StateAborting.IsTerminal())
}
