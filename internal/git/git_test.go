package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
)

// isolateGit points git at an empty global config and a fixed identity.
func isolateGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(Binary); err != nil {
		t.Skip("git not installed")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), Binary, args...) // #nosec G204
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// createTemplateRepo builds a repository with a "main" branch and a
// "storacha-nfts" branch, returning a file:// URL for it.
func createTemplateRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	gitRun(t, dir, "init", "--quiet")
	gitRun(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	writeFile(t, filepath.Join(dir, "README.md"), "# fil-frame\n")
	writeFile(t, filepath.Join(dir, ".github", "workflows", "ci.yml"), "name: ci\n")
	gitRun(t, dir, "add", "--all")
	gitRun(t, dir, "commit", "--quiet", "-m", "template")
	gitRun(t, dir, "commit", "--quiet", "--allow-empty", "-m", "second")

	gitRun(t, dir, "checkout", "--quiet", "-b", "storacha-nfts")
	writeFile(t, filepath.Join(dir, "storacha.txt"), "storacha\n")
	gitRun(t, dir, "add", "--all")
	gitRun(t, dir, "commit", "--quiet", "-m", "storacha")
	gitRun(t, dir, "checkout", "--quiet", "main")

	return "file://" + filepath.ToSlash(dir)
}

func newExecutor() *runner.CommandExecutor {
	e := runner.NewCommandExecutor()
	e.Stdin = bytes.NewReader(nil)
	e.Stdout = &bytes.Buffer{}
	e.Stderr = &bytes.Buffer{}
	return e
}

func TestRunCommand_Success(t *testing.T) {
	isolateGit(t)
	dir := t.TempDir()
	gitRun(t, dir, "init", "--quiet")

	output, err := RunCommand(context.Background(), dir, "rev-parse", "--git-dir")

	require.NoError(t, err)
	assert.Equal(t, ".git", output)
}

func TestRunCommand_FailureIncludesStderr(t *testing.T) {
	isolateGit(t)

	_, err := RunCommand(context.Background(), t.TempDir(), "rev-parse", "--git-dir")

	require.ErrorIs(t, err, apperrors.ErrCommandFailed)
	assert.Contains(t, err.Error(), "git rev-parse failed")
}

func TestCloneOperation_ClonesBranch(t *testing.T) {
	isolateGit(t)
	repo := createTemplateRepo(t)
	dir := t.TempDir()

	op := CloneOperation{Repository: repo, Branch: "storacha-nfts", Depth: 1, Dir: dir}
	require.NoError(t, op.Execute(context.Background(), newExecutor()))

	assert.FileExists(t, filepath.Join(dir, "storacha.txt"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
	assert.DirExists(t, filepath.Join(dir, ".github"))
	assert.NoDirExists(t, filepath.Join(dir, ".git"), "template history must not be kept")
}

func TestCloneOperation_RetryStartsClean(t *testing.T) {
	isolateGit(t)
	repo := createTemplateRepo(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "partial"), "left over from an interrupted clone")
	writeFile(t, filepath.Join(dir, "stray.txt"), "stray")

	op := CloneOperation{Repository: repo, Branch: "main", Dir: dir}
	require.NoError(t, op.Execute(context.Background(), newExecutor()))

	assert.NoFileExists(t, filepath.Join(dir, "stray.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "storacha.txt"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
}

func TestCloneOperation_UnknownBranchFails(t *testing.T) {
	isolateGit(t)
	repo := createTemplateRepo(t)

	op := CloneOperation{Repository: repo, Branch: "no-such-branch", Dir: t.TempDir()}
	err := op.Execute(context.Background(), newExecutor())

	require.ErrorIs(t, err, apperrors.ErrCommandFailed)
}

func TestCloneOperation_Describe(t *testing.T) {
	t.Parallel()

	op := CloneOperation{Repository: "https://example.com/t.git", Branch: "main", Depth: 1, Dir: "/tmp/app"}

	assert.Equal(t, "clone", op.Name())
	assert.Equal(t, "Failed to clone repository", op.FailurePrefix())
	require.ErrorIs(t, op.FailureKind(), apperrors.ErrTemplateClone)
	assert.Equal(t, []string{"git clone --branch main --depth 1 https://example.com/t.git ."}, op.Commands())

	op.Depth = 0
	assert.Equal(t, []string{"git clone --branch main https://example.com/t.git ."}, op.Commands())
}

func TestReinitOperation_FreshHistory(t *testing.T) {
	isolateGit(t)
	repo := createTemplateRepo(t)
	dir := t.TempDir()
	e := newExecutor()
	ctx := context.Background()

	require.NoError(t, CloneOperation{Repository: repo, Branch: "main", Dir: dir}.Execute(ctx, e))

	op := ReinitOperation{Dir: dir, Markers: []string{".git", ".github"}, CommitMessage: "init"}
	require.NoError(t, op.Execute(ctx, e))

	assert.NoDirExists(t, filepath.Join(dir, ".github"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))

	count, err := RunCommand(ctx, dir, "rev-list", "--count", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "1", count)

	subject, err := RunCommand(ctx, dir, "log", "-1", "--format=%s")
	require.NoError(t, err)
	assert.Equal(t, "init", subject)

	remotes, err := RunCommand(ctx, dir, "remote")
	require.NoError(t, err)
	assert.Empty(t, remotes, "template origin must not survive")

	// Running again produces the same single-commit repository.
	require.NoError(t, op.Execute(ctx, e))
	count, err = RunCommand(ctx, dir, "rev-list", "--count", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}

func TestReinitOperation_Describe(t *testing.T) {
	t.Parallel()

	op := ReinitOperation{Dir: "/tmp/app", CommitMessage: "init"}

	assert.Equal(t, "Failed to initialize repository", op.FailurePrefix())
	require.ErrorIs(t, op.FailureKind(), apperrors.ErrRepoInit)
	assert.Equal(t, []string{
		"git init --quiet",
		"git add --all",
		"git commit --quiet -m init",
	}, op.Commands())
}

func TestRemoveMarkers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(dir, ".github", "workflows", "ci.yml"), "ci")
	writeFile(t, filepath.Join(dir, "packages", "app", ".github", "CODEOWNERS"), "x")
	writeFile(t, filepath.Join(dir, "src", "main.ts"), "code")

	removed, err := RemoveMarkers(dir, []string{".git", "**/.github"})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".git", ".github", "packages/app/.github"}, removed)
	assert.NoDirExists(t, filepath.Join(dir, ".git"))
	assert.NoDirExists(t, filepath.Join(dir, "packages", "app", ".github"))
	assert.FileExists(t, filepath.Join(dir, "src", "main.ts"))
}

func TestRemoveMarkers_MissingIsNotAnError(t *testing.T) {
	t.Parallel()

	removed, err := RemoveMarkers(t.TempDir(), []string{".git", ".github"})

	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestRemoveMarkers_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := RemoveMarkers(t.TempDir(), []string{"[unclosed"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid marker pattern")
}
