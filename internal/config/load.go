package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/errors"
)

// newViperInstance creates a new Viper instance with the FILAPP_ environment
// prefix, key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Configuration is loaded in the following order (highest precedence first):
//  1. Environment variables (FILAPP_* prefix)
//  2. Project config (.filapp/config.yaml)
//  3. Global config (~/.filapp/config.yaml)
//  4. Built-in defaults
//
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("template.repository", cfg.Template.Repository).
		Int("template.depth", cfg.Template.Depth).
		Str("install.package_manager", cfg.Install.PackageManager).
		Str("interrupt.resume", cfg.Interrupt.Resume).
		Msg("configuration loaded")

	return cfg, nil
}

// loadGlobalConfig attempts to load the global config file (~/.filapp/config.yaml).
// Returns nil if the file doesn't exist or home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	globalConfigPath, err := GlobalConfigPath()
	if err != nil || !fileExists(globalConfigPath) {
		return nil //nolint:nilerr // no home directory means no global config
	}

	v.SetConfigFile(globalConfigPath)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig attempts to load the project config file (.filapp/config.yaml).
// Returns nil if the file doesn't exist.
func loadProjectConfig(v *viper.Viper) error {
	projectConfigPath := ProjectConfigPath()
	if !fileExists(projectConfigPath) {
		return nil
	}

	v.SetConfigFile(projectConfigPath)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
// Either path can be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("template.repository", defaults.Template.Repository)
	v.SetDefault("template.branches", defaults.Template.Branches)
	v.SetDefault("template.depth", defaults.Template.Depth)

	v.SetDefault("repo.markers", defaults.Repo.Markers)
	v.SetDefault("repo.commit_message", defaults.Repo.CommitMessage)

	v.SetDefault("install.package_manager", defaults.Install.PackageManager)
	v.SetDefault("install.args", defaults.Install.Args)

	v.SetDefault("interrupt.resume", defaults.Interrupt.Resume)

	v.SetDefault("preflight.enabled", defaults.Preflight.Enabled)
}

// applyOverrides merges non-zero override values into the config.
// Preflight.Enabled is a bool and cannot be overridden to false here; the CLI
// handles that flag explicitly.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Template.Repository != "" {
		cfg.Template.Repository = overrides.Template.Repository
	}
	cfg.Template.Branches = mergeStringMaps(cfg.Template.Branches, overrides.Template.Branches)
	if overrides.Template.Depth != 0 {
		cfg.Template.Depth = overrides.Template.Depth
	}

	if len(overrides.Repo.Markers) > 0 {
		cfg.Repo.Markers = overrides.Repo.Markers
	}
	if overrides.Repo.CommitMessage != "" {
		cfg.Repo.CommitMessage = overrides.Repo.CommitMessage
	}

	if overrides.Install.PackageManager != "" {
		cfg.Install.PackageManager = overrides.Install.PackageManager
	}
	if len(overrides.Install.Args) > 0 {
		cfg.Install.Args = overrides.Install.Args
	}

	if overrides.Interrupt.Resume != "" {
		cfg.Interrupt.Resume = overrides.Interrupt.Resume
	}
}

// mergeStringMaps merges src map into dst map, creating dst if nil.
func mergeStringMaps(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// Comma-separated strings (as set through environment variables) decode into slices.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
