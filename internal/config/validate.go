package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/domain"
	"github.com/mrz1836/create-filecoin-app/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - template.repository must not be empty
//   - template.branches keys must be known variants with non-empty branches
//   - template.depth must not be negative
//   - repo.markers must be valid glob patterns that stay inside the project
//   - repo.commit_message must not be empty
//   - install.package_manager must be a single executable name
//   - interrupt.resume must be "retry" or "stop"
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateTemplateConfig(&cfg.Template); err != nil {
		return err
	}
	if err := validateRepoConfig(&cfg.Repo); err != nil {
		return err
	}
	if err := validateInstallConfig(&cfg.Install); err != nil {
		return err
	}
	return validateInterruptConfig(&cfg.Interrupt)
}

func validateTemplateConfig(cfg *TemplateConfig) error {
	if strings.TrimSpace(cfg.Repository) == "" {
		return errors.Wrap(errors.ErrConfigInvalidTemplate, "template.repository must not be empty")
	}
	for name, branch := range cfg.Branches {
		if !domain.Variant(name).IsValid() {
			return errors.Wrapf(errors.ErrConfigInvalidTemplate,
				"template.branches has unknown variant %q", name)
		}
		if strings.TrimSpace(branch) == "" {
			return errors.Wrapf(errors.ErrConfigInvalidTemplate,
				"template.branches.%s must not be empty", name)
		}
	}
	if cfg.Depth < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidTemplate,
			"template.depth cannot be negative, got %d", cfg.Depth)
	}
	return nil
}

func validateRepoConfig(cfg *RepoConfig) error {
	for _, pattern := range cfg.Markers {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Wrapf(errors.ErrConfigInvalidTemplate,
				"repo.markers has invalid pattern %q", pattern)
		}
		if strings.HasPrefix(pattern, "/") || strings.HasPrefix(pattern, "..") {
			return errors.Wrapf(errors.ErrConfigInvalidTemplate,
				"repo.markers pattern %q must be relative to the project", pattern)
		}
	}
	if strings.TrimSpace(cfg.CommitMessage) == "" {
		return errors.Wrap(errors.ErrConfigInvalidTemplate, "repo.commit_message must not be empty")
	}
	return nil
}

func validateInstallConfig(cfg *InstallConfig) error {
	pm := strings.TrimSpace(cfg.PackageManager)
	if pm == "" {
		return errors.Wrap(errors.ErrConfigInvalidInstall, "install.package_manager must not be empty")
	}
	if strings.ContainsAny(pm, " \t") {
		return errors.Wrapf(errors.ErrConfigInvalidInstall,
			"install.package_manager must be a single executable name, got %q", pm)
	}
	return nil
}

func validateInterruptConfig(cfg *InterruptConfig) error {
	switch cfg.Resume {
	case constants.ResumePolicyRetry, constants.ResumePolicyStop:
		return nil
	default:
		return errors.Wrapf(errors.ErrConfigInvalidInterrupt,
			"interrupt.resume must be %q or %q, got %q",
			constants.ResumePolicyRetry, constants.ResumePolicyStop, cfg.Resume)
	}
}
