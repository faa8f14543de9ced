package config

import (
	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/domain"
)

// defaultCloneDepth keeps template clones shallow.
const defaultCloneDepth = 1

// DefaultConfig returns a Config with the built-in default values.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{
			Repository: constants.DefaultRepositoryURL,
			Branches:   defaultBranches(),
			Depth:      defaultCloneDepth,
		},
		Repo: RepoConfig{
			Markers:       []string{constants.GitDir, constants.GitHubDir},
			CommitMessage: constants.InitialCommitMessage,
		},
		Install: InstallConfig{
			PackageManager: constants.DefaultPackageManager,
			Args:           []string{constants.InstallSubcommand},
		},
		Interrupt: InterruptConfig{
			Resume: constants.ResumePolicyRetry,
		},
		Preflight: PreflightConfig{
			Enabled: true,
		},
	}
}

// defaultBranches maps every variant to its built-in branch.
func defaultBranches() map[string]string {
	branches := make(map[string]string, len(domain.Variants()))
	for _, v := range domain.Variants() {
		branches[v.String()] = v.DefaultBranch()
	}
	return branches
}
