package domain

import (
	"fmt"
	"path/filepath"

	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
)

// PipelineContext is everything one scaffolding run needs. It is built once,
// before any step runs, and is never modified afterwards.
type PipelineContext struct {
	// ProjectName is the sanitized project name. It is the directory name and
	// the name shown in every message.
	ProjectName string `json:"project_name" yaml:"project_name"`

	// ProjectPath is the absolute path of the project directory.
	ProjectPath string `json:"project_path" yaml:"project_path"`

	// Variant is the selected storage-integration flavor.
	Variant Variant `json:"variant" yaml:"variant"`

	// Branch is the template branch resolved for Variant.
	Branch string `json:"branch" yaml:"branch"`

	// Repository is the template repository location.
	Repository string `json:"repository" yaml:"repository"`

	// PackageManager is the command used to install dependencies.
	PackageManager string `json:"package_manager" yaml:"package_manager"`
}

// NewPipelineContext builds a PipelineContext for an already sanitized
// project name created under baseDir.
func NewPipelineContext(baseDir, projectName string, variant Variant, branch, repository, packageManager string) (PipelineContext, error) {
	if projectName == "" {
		return PipelineContext{}, apperrors.ErrEmptyProjectName
	}
	if !variant.IsValid() {
		return PipelineContext{}, fmt.Errorf("%q: %w", variant, apperrors.ErrUnknownVariant)
	}
	if packageManager == "" {
		return PipelineContext{}, fmt.Errorf("package manager: %w", apperrors.ErrEmptyValue)
	}

	path, err := filepath.Abs(filepath.Join(baseDir, projectName))
	if err != nil {
		return PipelineContext{}, fmt.Errorf("failed to resolve project path: %w", err)
	}

	return PipelineContext{
		ProjectName:    projectName,
		ProjectPath:    path,
		Variant:        variant,
		Branch:         branch,
		Repository:     repository,
		PackageManager: packageManager,
	}, nil
}
