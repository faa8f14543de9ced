package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Pipeline steps
	// ===================
	{
		err: ErrTemplateClone,
		info: ErrorInfo{
			Message: "The project template could not be cloned.",
			Action:  "Check your network connection and that the template branch exists.",
		},
	},
	{
		err: ErrRepoInit,
		info: ErrorInfo{
			Message: "The new git repository could not be initialized.",
			Action:  "Make sure git user.name and user.email are configured, then retry.",
		},
	},
	{
		err: ErrInstall,
		info: ErrorInfo{
			Message: "Dependencies could not be installed.",
			Action:  "Run the package manager install manually inside the project directory.",
		},
	},
	{
		err: ErrProjectExists,
		info: ErrorInfo{
			Message: "A directory with the project name already exists.",
			Action:  "Choose a different project name or remove the existing directory.",
		},
	},
	{
		err: ErrProjectDirectory,
		info: ErrorInfo{
			Message: "The project directory could not be created.",
			Action:  "Check write permissions in the current directory.",
		},
	},

	// ===================
	// Input & setup
	// ===================
	{
		err: ErrEmptyProjectName,
		info: ErrorInfo{
			Message: "The project name has no characters that are valid in a directory name.",
			Action:  "Use letters, digits, dashes or underscores in the project name.",
		},
	},
	{
		err: ErrUnknownVariant,
		info: ErrorInfo{
			Message: "The selected template variant is not known.",
			Action:  "Use one of --storacha, --lighthouse or --akave, or none for the default.",
		},
	},
	{
		err: ErrMissingRequiredTools,
		info: ErrorInfo{
			Message: "Required tools are missing or outdated.",
			Action:  "Install git and the configured package manager, then retry.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "The output format is not supported.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrNonInteractive,
		info: ErrorInfo{
			Message: "Interactive mode needs a terminal.",
			Action:  "Pass the project name as an argument to run without prompts.",
		},
	},
	{
		err: ErrEnvFile,
		info: ErrorInfo{
			Message: "The env file could not be read.",
			Action:  "Check the path given to --env-file.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
