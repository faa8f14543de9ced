// Package install runs the project's package manager to fetch dependencies.
package install

import (
	"context"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
)

// Operation installs the project's dependencies.
type Operation struct {
	Dir            string
	PackageManager string
	// Args are passed to the package manager; defaults to ["install"].
	Args []string
}

// Name implements runner.Operation.
func (o Operation) Name() string { return "install" }

// FailurePrefix implements runner.Operation.
func (o Operation) FailurePrefix() string { return "Failed to install packages" }

// FailureKind implements runner.Operation.
func (o Operation) FailureKind() error { return apperrors.ErrInstall }

// Commands implements runner.Operation.
func (o Operation) Commands() []string {
	return []string{runner.CommandLine(o.packageManager(), o.args()...)}
}

// Execute runs the package manager in Dir with its output passed through.
func (o Operation) Execute(ctx context.Context, exec runner.Executor) error {
	return exec.Run(ctx, o.Dir, o.packageManager(), o.args()...)
}

func (o Operation) packageManager() string {
	if o.PackageManager == "" {
		return constants.DefaultPackageManager
	}
	return o.PackageManager
}

func (o Operation) args() []string {
	if len(o.Args) == 0 {
		return []string{constants.InstallSubcommand}
	}
	return o.Args
}

var _ runner.Operation = Operation{}
