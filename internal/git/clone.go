package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/ctxutil"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
)

// CloneOperation fetches one branch of the template repository into Dir.
type CloneOperation struct {
	Repository string
	Branch     string
	// Depth limits history when positive; zero clones the full history.
	Depth int
	Dir   string
}

// Name implements runner.Operation.
func (o CloneOperation) Name() string { return "clone" }

// FailurePrefix implements runner.Operation.
func (o CloneOperation) FailurePrefix() string { return "Failed to clone repository" }

// FailureKind implements runner.Operation.
func (o CloneOperation) FailureKind() error { return apperrors.ErrTemplateClone }

// Commands implements runner.Operation.
func (o CloneOperation) Commands() []string {
	return []string{runner.CommandLine(Binary, o.args()...)}
}

// Execute empties Dir, clones into it and drops the template's history.
// Emptying first makes a retry after an interrupted clone start from a clean directory.
func (o CloneOperation) Execute(ctx context.Context, exec runner.Executor) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if err := emptyDir(o.Dir); err != nil {
		return err
	}
	if err := exec.Run(ctx, o.Dir, Binary, o.args()...); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(o.Dir, constants.GitDir)); err != nil {
		return fmt.Errorf("failed to remove template history: %w", err)
	}
	return nil
}

func (o CloneOperation) args() []string {
	args := []string{"clone", "--branch", o.Branch}
	if o.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(o.Depth))
	}
	return append(args, o.Repository, ".")
}

// emptyDir removes everything inside dir but keeps dir itself.
func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear %s: %w", entry.Name(), err)
		}
	}
	return nil
}

var _ runner.Operation = CloneOperation{}
