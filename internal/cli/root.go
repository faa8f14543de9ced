// Package cli provides the command-line interface for create-filecoin-app.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the logger initialized in PersistentPreRunE.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger. Before the root command's
// PersistentPreRunE runs it returns a zero-value logger that discards output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates the root command with the production environment.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	return newRootCmdWithEnv(flags, info, defaultEnvironment())
}

// newRootCmdWithEnv creates the root command. The create pipeline is the root
// command itself; there are no subcommands.
func newRootCmdWithEnv(flags *GlobalFlags, info BuildInfo, env *environment) *cobra.Command {
	v := viper.New()
	createFlags := &CreateFlags{}

	cmd := &cobra.Command{
		Use:   constants.AppName + " [project-name]",
		Short: "Scaffold a Filecoin dApp from the fil-frame template",
		Long: `create-filecoin-app creates a new project directory from the fil-frame template,
gives it a fresh git history and installs its dependencies.

Without a project name it asks for one and lets you pick the storage integration.

Storage integrations:
  (none)         Deal Client, branch main
  --storacha     Storacha, branch storacha-nfts
  --lighthouse   Lighthouse, branch lighthouse-nfts
  --akave        Akave, branch akave-integration

Press Ctrl+C at any time to be asked whether to terminate.`,
		Example: `  create-filecoin-app my-dapp
  create-filecoin-app my-dapp --storacha
  create-filecoin-app my-dapp --package-manager pnpm --dry-run
  create-filecoin-app`,
		Args:    cobra.MaximumNArgs(1),
		Version: formatVersion(info),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			applyBoundFlags(v, flags)

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			globalLoggerMu.Lock()
			globalLogger = env.initLogger(flags.Verbose, flags.Quiet)
			globalLoggerMu.Unlock()

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd.Context(), cmd, args, flags, createFlags, env)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)
	AddCreateFlags(cmd, createFlags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command and prints a failure once, in the selected
// output format. Runs the user stopped on purpose are not printed as errors.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{Output: OutputText}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return execute(ctx, cmd, flags)
}

func execute(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil || errors.IsUserStop(err) {
		return err
	}

	format := flags.Output
	if !IsValidOutputFormat(format) {
		format = OutputText
	}
	tui.NewOutput(cmd.ErrOrStderr(), format).Error(err)
	return err
}
