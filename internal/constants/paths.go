package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.filapp/logs/filapp.log
	CLILogFileName = "filapp.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file.
	// This file is located in the app home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigDir is the directory holding a working-directory config file.
	ProjectConfigDir = ".filapp"
)
