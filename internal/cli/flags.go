package cli

import (
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/domain"
	"github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/tui"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution, including runs the user stopped.
	ExitSuccess = 0
	// ExitError indicates any failure.
	ExitError = 1
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = tui.FormatText
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = tui.FormatJSON
)

// GlobalFlags holds flags that shape output and logging.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// CreateFlags holds the flags of the create command.
type CreateFlags struct {
	Storacha       bool
	Lighthouse     bool
	Akave          bool
	PackageManager string
	DryRun         bool
	SkipPreflight  bool
	EnvFile        string
}

// AddGlobalFlags adds the output and verbosity flags to a command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// AddCreateFlags adds the variant and pipeline flags to a command.
func AddCreateFlags(cmd *cobra.Command, flags *CreateFlags) {
	cmd.Flags().BoolVar(&flags.Storacha, "storacha", false, "use the Storacha storage template")
	cmd.Flags().BoolVar(&flags.Lighthouse, "lighthouse", false, "use the Lighthouse storage template")
	cmd.Flags().BoolVar(&flags.Akave, "akave", false, "use the Akave storage template")
	cmd.Flags().StringVar(&flags.PackageManager, "package-manager", "", "package manager used to install dependencies (default from config, yarn)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "print the plan without creating anything")
	cmd.Flags().BoolVar(&flags.SkipPreflight, "skip-preflight", false, "skip the git and package manager check")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "load environment variables from a dotenv file")
}

// BindGlobalFlags binds global flags to Viper so FILAPP_OUTPUT, FILAPP_VERBOSE
// and FILAPP_QUIET are honored when the flag is not given.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	return nil
}

// applyBoundFlags copies environment-provided values into flags that were not set explicitly.
func applyBoundFlags(v *viper.Viper, flags *GlobalFlags) {
	flags.Output = v.GetString("output")
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")
	if flags.Verbose && flags.Quiet {
		flags.Quiet = false
	}
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// selectVariant returns the variant chosen by flags. Flags are checked in
// FlagVariants order and the first one set wins.
func selectVariant(flags *CreateFlags) domain.Variant {
	set := map[domain.Variant]bool{
		domain.VariantStoracha:   flags.Storacha,
		domain.VariantLighthouse: flags.Lighthouse,
		domain.VariantAkave:      flags.Akave,
	}
	for _, v := range domain.FlagVariants() {
		if set[v] {
			return v
		}
	}
	return domain.VariantDefault
}

// ExitCodeForError returns the process exit code for err. Runs the user
// stopped on purpose exit with ExitSuccess.
func ExitCodeForError(err error) int {
	if err == nil || errors.IsUserStop(err) {
		return ExitSuccess
	}
	return ExitError
}
