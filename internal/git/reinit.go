package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/mrz1836/create-filecoin-app/internal/ctxutil"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
)

// ReinitOperation replaces the template's history with a fresh repository
// holding a single initial commit.
type ReinitOperation struct {
	Dir string
	// Markers are glob patterns, relative to Dir, removed before init
	// (".git" and ".github" by default).
	Markers       []string
	CommitMessage string
}

// Name implements runner.Operation.
func (o ReinitOperation) Name() string { return "reinit" }

// FailurePrefix implements runner.Operation.
func (o ReinitOperation) FailurePrefix() string { return "Failed to initialize repository" }

// FailureKind implements runner.Operation.
func (o ReinitOperation) FailureKind() error { return apperrors.ErrRepoInit }

// Commands implements runner.Operation.
func (o ReinitOperation) Commands() []string {
	cmds := make([]string, 0, 3)
	for _, args := range o.steps() {
		cmds = append(cmds, runner.CommandLine(Binary, args...))
	}
	return cmds
}

// Execute removes the markers and creates the new repository. Markers are
// removed first on every attempt, so a retry never builds on a half-initialized repository.
func (o ReinitOperation) Execute(ctx context.Context, exec runner.Executor) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	removed, err := RemoveMarkers(o.Dir, o.Markers)
	if err != nil {
		return err
	}
	log := zerolog.Ctx(ctx)
	log.Debug().Strs("removed", removed).Msg("removed template markers")

	for _, args := range o.steps() {
		if err := exec.Run(ctx, o.Dir, Binary, args...); err != nil {
			return err
		}
	}

	if head, err := HeadCommit(ctx, o.Dir); err == nil {
		log.Info().Str("commit", head).Msg("created initial commit")
	}
	return nil
}

func (o ReinitOperation) steps() [][]string {
	return [][]string{
		{"init", "--quiet"},
		{"add", "--all"},
		{"commit", "--quiet", "-m", o.CommitMessage},
	}
}

// RemoveMarkers deletes every path in dir matching one of the patterns and
// returns the removed paths relative to dir. Patterns use doublestar syntax.
func RemoveMarkers(dir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(dir)
	var removed []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return removed, fmt.Errorf("invalid marker pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if err := os.RemoveAll(filepath.Join(dir, filepath.FromSlash(match))); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", match, err)
			}
			removed = append(removed, match)
		}
	}
	return removed, nil
}

var _ runner.Operation = ReinitOperation{}
