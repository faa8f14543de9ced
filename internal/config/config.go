// Package config provides configuration management for create-filecoin-app.
//
// Configuration is layered: built-in defaults, the global file
// (~/.filapp/config.yaml), the project file (.filapp/config.yaml in the working
// directory), FILAPP_* environment variables, and finally CLI flag overrides.
package config

import (
	"github.com/mrz1836/create-filecoin-app/internal/domain"
)

// Config is the root configuration structure.
type Config struct {
	// Template controls where the project template comes from.
	Template TemplateConfig `yaml:"template" mapstructure:"template"`

	// Repo controls how the fresh repository is created.
	Repo RepoConfig `yaml:"repo" mapstructure:"repo"`

	// Install controls dependency installation.
	Install InstallConfig `yaml:"install" mapstructure:"install"`

	// Interrupt controls what happens after the user declines to terminate.
	Interrupt InterruptConfig `yaml:"interrupt" mapstructure:"interrupt"`

	// Preflight controls the tool check run before the pipeline.
	Preflight PreflightConfig `yaml:"preflight" mapstructure:"preflight"`
}

// TemplateConfig holds template repository settings.
type TemplateConfig struct {
	// Repository is the git URL of the template.
	// Default: https://github.com/FIL-Builders/fil-frame.git
	Repository string `yaml:"repository" mapstructure:"repository"`

	// Branches maps a variant name (default, storacha, lighthouse, akave) to its branch.
	Branches map[string]string `yaml:"branches" mapstructure:"branches"`

	// Depth limits cloned history; 0 clones everything.
	// Default: 1
	Depth int `yaml:"depth" mapstructure:"depth"`
}

// RepoConfig holds settings for reinitializing the project repository.
type RepoConfig struct {
	// Markers are glob patterns removed from the project before git init.
	// Default: [".git", ".github"]
	Markers []string `yaml:"markers" mapstructure:"markers"`

	// CommitMessage is the message of the initial commit.
	// Default: "init"
	CommitMessage string `yaml:"commit_message" mapstructure:"commit_message"`
}

// InstallConfig holds dependency installation settings.
type InstallConfig struct {
	// PackageManager is the executable used to install dependencies.
	// Default: "yarn"
	PackageManager string `yaml:"package_manager" mapstructure:"package_manager"`

	// Args are passed to the package manager.
	// Default: ["install"]
	Args []string `yaml:"args" mapstructure:"args"`
}

// InterruptConfig holds interruption handling settings.
type InterruptConfig struct {
	// Resume is the policy applied when the user answers No after a step was
	// interrupted: "retry" re-runs the step, "stop" ends the run and keeps the directory.
	// Default: "retry"
	Resume string `yaml:"resume" mapstructure:"resume"`
}

// PreflightConfig holds settings for the tool check.
type PreflightConfig struct {
	// Enabled runs tool detection before creating anything.
	// Default: true
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// BranchFor returns the template branch of variant, falling back to the
// built-in mapping when the configuration has no entry.
func (c *Config) BranchFor(variant domain.Variant) string {
	if branch := c.Template.Branches[variant.String()]; branch != "" {
		return branch
	}
	return variant.DefaultBranch()
}
