// Package git provides the Git operations used to populate and reinitialize a project.
// This file provides shared git command execution utilities.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
)

// Binary is the git executable name.
const Binary = "git"

// RunCommand executes a git command in the specified directory and returns its output.
// Errors are wrapped with ErrCommandFailed and include stderr for debugging.
// Use it for short queries; long-running steps go through a runner.Executor so
// their output reaches the user.
func RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, Binary, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if stderr.Len() > 0 {
			return "", fmt.Errorf("git %s failed: %s: %w", args[0], strings.TrimSpace(stderr.String()), apperrors.ErrCommandFailed)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], apperrors.ErrCommandFailed)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// HeadCommit returns the abbreviated hash of HEAD in dir.
func HeadCommit(ctx context.Context, dir string) (string, error) {
	return RunCommand(ctx, dir, "rev-parse", "--short", "HEAD")
}
