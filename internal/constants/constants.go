// Package constants provides centralized constant values used throughout create-filecoin-app.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// AppName is the binary and command name.
const AppName = "create-filecoin-app"

// EnvPrefix is the prefix for environment variable configuration (e.g., FILAPP_INSTALL_PACKAGE_MANAGER).
const EnvPrefix = "FILAPP"

// Template repository defaults.
const (
	// DefaultRepositoryURL is the template repository cloned into new projects.
	DefaultRepositoryURL = "https://github.com/FIL-Builders/fil-frame.git"

	// DefaultBranch is the template branch used when no storage variant is selected.
	DefaultBranch = "main"

	// BranchStoracha is the template branch for the Storacha storage variant.
	BranchStoracha = "storacha-nfts"

	// BranchLighthouse is the template branch for the Lighthouse storage variant.
	BranchLighthouse = "lighthouse-nfts"

	// BranchAkave is the template branch for the Akave storage variant.
	BranchAkave = "akave-integration"
)

// Repository reinitialization defaults.
const (
	// InitialCommitMessage is the message of the single commit created in a fresh project.
	InitialCommitMessage = "init"

	// GitDir is the version-control directory stripped from the cloned template.
	GitDir = ".git"

	// GitHubDir holds template CI workflows that do not belong to the new project.
	GitHubDir = ".github"
)

// Dependency installation defaults.
const (
	// DefaultPackageManager is the package manager used to install project dependencies.
	DefaultPackageManager = "yarn"

	// InstallSubcommand is the argument passed to the package manager.
	InstallSubcommand = "install"
)

// Interruption handling.
const (
	// ResumePolicyRetry re-runs the interrupted step after the user declines to terminate.
	ResumePolicyRetry = "retry"

	// ResumePolicyStop ends the run after the user declines to terminate, keeping the directory.
	ResumePolicyStop = "stop"

	// InterruptGracePeriod is how long an interrupted child process may take to exit
	// after receiving an interrupt before it is killed.
	InterruptGracePeriod = 5 * time.Second

	// InterruptExitCode is the conventional exit status of a process terminated by SIGINT.
	InterruptExitCode = 130
)

// Directory names and paths used for logs and configuration.
const (
	// AppHome is the hidden directory name where global config and logs are stored.
	// This directory is created in the user's home directory.
	AppHome = ".filapp"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain rotated log files.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Tool names checked before the pipeline starts.
const (
	// ToolGit is the git CLI used to clone and reinitialize the project.
	ToolGit = "git"

	// MinVersionGit is the minimum git version supporting `clone --branch` with `--depth`.
	MinVersionGit = "2.20.0"

	// VersionFlagStandard is the flag most tools accept to print their version.
	VersionFlagStandard = "--version"
)

// ToolDetectionTimeout bounds the whole preflight tool check.
const ToolDetectionTimeout = 10 * time.Second
