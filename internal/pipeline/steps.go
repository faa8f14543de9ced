package pipeline

import (
	"github.com/mrz1836/create-filecoin-app/internal/config"
	"github.com/mrz1836/create-filecoin-app/internal/domain"
	"github.com/mrz1836/create-filecoin-app/internal/git"
	"github.com/mrz1836/create-filecoin-app/internal/install"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
)

// Step pairs an external operation with the state it runs in.
type Step struct {
	State       State
	Description string
	Op          runner.Operation
}

// Steps builds the external steps of a run, in execution order. Every step
// works on pc.ProjectPath.
func Steps(pc domain.PipelineContext, cfg *config.Config) []Step {
	return []Step{
		{
			State:       StatePopulatingTemplate,
			Description: "Clone the " + pc.Variant.Label() + " template",
			Op: git.CloneOperation{
				Repository: pc.Repository,
				Branch:     pc.Branch,
				Depth:      cfg.Template.Depth,
				Dir:        pc.ProjectPath,
			},
		},
		{
			State:       StateReinitializing,
			Description: "Create a fresh git repository",
			Op: git.ReinitOperation{
				Dir:           pc.ProjectPath,
				Markers:       cfg.Repo.Markers,
				CommitMessage: cfg.Repo.CommitMessage,
			},
		},
		{
			State:       StateInstallingDependencies,
			Description: "Install dependencies",
			Op: install.Operation{
				Dir:            pc.ProjectPath,
				PackageManager: pc.PackageManager,
				Args:           cfg.Install.Args,
			},
		},
	}
}

// Plan describes what a run would do without doing it.
type Plan struct {
	Project domain.PipelineContext `json:"project" yaml:"project"`
	Resume  string                 `json:"resume_policy" yaml:"resume_policy"`
	Steps   []PlannedStep          `json:"steps" yaml:"steps"`
}

// PlannedStep is one entry of a Plan.
type PlannedStep struct {
	State       string   `json:"state" yaml:"state"`
	Description string   `json:"description" yaml:"description"`
	Dir         string   `json:"dir" yaml:"dir"`
	Commands    []string `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// NewPlan returns the plan for pc, including the directory creation.
func NewPlan(pc domain.PipelineContext, cfg *config.Config) Plan {
	planned := []PlannedStep{{
		State:       StateCreatingDirectory.String(),
		Description: "Create project directory " + pc.ProjectName,
		Dir:         pc.ProjectPath,
	}}
	for _, step := range Steps(pc, cfg) {
		planned = append(planned, PlannedStep{
			State:       step.State.String(),
			Description: step.Description,
			Dir:         pc.ProjectPath,
			Commands:    step.Op.Commands(),
		})
	}
	return Plan{Project: pc, Resume: cfg.Interrupt.Resume, Steps: planned}
}
