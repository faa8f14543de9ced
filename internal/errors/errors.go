// Package errors provides centralized error handling for create-filecoin-app.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrTemplateClone indicates that populating the project from the template
	// repository failed (network, unknown branch, permission).
	ErrTemplateClone = errors.New("template clone failed")

	// ErrRepoInit indicates that stripping history or creating the initial
	// commit of the new project failed.
	ErrRepoInit = errors.New("repository initialization failed")

	// ErrInstall indicates that the package manager returned a non-zero exit code.
	ErrInstall = errors.New("dependency installation failed")

	// ErrProjectDirectory indicates that the project directory could not be created.
	ErrProjectDirectory = errors.New("project directory creation failed")

	// ErrProjectExists indicates that the target project directory already exists.
	ErrProjectExists = errors.New("project directory already exists")

	// ErrCommandFailed indicates that an external command exited unsuccessfully.
	ErrCommandFailed = errors.New("command failed")

	// ErrInterrupted indicates that a running step was stopped by a user
	// cancellation signal. It is resolved by asking the user, never shown as-is.
	ErrInterrupted = errors.New("interrupted by user")

	// ErrAborted indicates that the user confirmed termination. The run stops
	// with exit code 0 after cleanup.
	ErrAborted = errors.New("aborted by user")

	// ErrStepInterrupted indicates that the user declined termination after a
	// step was interrupted and the resume policy ends the run.
	ErrStepInterrupted = errors.New("step interrupted and not resumed")

	// ErrInteractiveCanceled indicates that the interactive questions were
	// interrupted and the user chose not to terminate. No project is created.
	ErrInteractiveCanceled = errors.New("interactive setup canceled")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrEmptyProjectName indicates that the project name is empty, or empty
	// once unsafe filesystem characters are removed.
	ErrEmptyProjectName = errors.New("project name is empty after sanitization")

	// ErrUnknownVariant indicates an unrecognized template variant.
	ErrUnknownVariant = errors.New("unknown template variant")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidTemplate indicates an invalid template configuration value.
	ErrConfigInvalidTemplate = errors.New("invalid template configuration")

	// ErrConfigInvalidInstall indicates an invalid install configuration value.
	ErrConfigInvalidInstall = errors.New("invalid install configuration")

	// ErrConfigInvalidInterrupt indicates an invalid interrupt configuration value.
	ErrConfigInvalidInterrupt = errors.New("invalid interrupt configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrMissingRequiredTools indicates that required tools are missing or outdated.
	ErrMissingRequiredTools = errors.New("required tools are missing or outdated")

	// ErrNoMenuOptions indicates that no options were provided to a menu.
	ErrNoMenuOptions = errors.New("no menu options provided")

	// ErrMenuCanceled indicates that the user canceled a menu operation.
	ErrMenuCanceled = errors.New("menu canceled by user")

	// ErrNonInteractive indicates that a prompt was required but stdin is not a terminal.
	ErrNonInteractive = errors.New("interactive prompt requires a terminal")

	// ErrEnvFile indicates that the dotenv file passed with --env-file could not be loaded.
	ErrEnvFile = errors.New("env file could not be loaded")
)

// IsUserStop reports whether err represents a run the user deliberately
// stopped. These runs exit with code 0.
func IsUserStop(err error) bool {
	return errors.Is(err, ErrAborted) ||
		errors.Is(err, ErrStepInterrupted) ||
		errors.Is(err, ErrInteractiveCanceled)
}
