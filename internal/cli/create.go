package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/create-filecoin-app/internal/config"
	"github.com/mrz1836/create-filecoin-app/internal/domain"
	"github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/interrupt"
	"github.com/mrz1836/create-filecoin-app/internal/pipeline"
	"github.com/mrz1836/create-filecoin-app/internal/runner"
	"github.com/mrz1836/create-filecoin-app/internal/sanitize"
	"github.com/mrz1836/create-filecoin-app/internal/signal"
	"github.com/mrz1836/create-filecoin-app/internal/tui"
)

// noProjectNotice is printed when interactive setup ends without a project.
const noProjectNotice = "No project created."

// Prompts asks the interactive questions. tui.Prompter satisfies it.
type Prompts interface {
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
	Select(ctx context.Context, title string, options []tui.Option) (string, error)
	Input(ctx context.Context, prompt, placeholder string, validate func(string) error) (string, error)
}

// environment holds the collaborators of a run that touch the outside world.
type environment struct {
	prompts         Prompts
	captureTerminal func() interrupt.InputRestorer
	executor        func(outputFormat string) runner.Executor
	detector        func(packageManager string) config.ToolDetector
	loadConfig      func(ctx context.Context, overrides *config.Config) (*config.Config, error)
	workDir         func() (string, error)
	initLogger      func(verbose, quiet bool) zerolog.Logger
	banner          func() string
}

// defaultEnvironment wires the real terminal, processes and configuration.
func defaultEnvironment() *environment {
	return &environment{
		prompts: tui.Prompter{},
		captureTerminal: func() interrupt.InputRestorer {
			return tui.CaptureTerminal()
		},
		executor: func(outputFormat string) runner.Executor {
			e := runner.NewCommandExecutor()
			if outputFormat == OutputJSON {
				// keep stdout parseable
				e.Stdout = os.Stderr
			}
			return e
		},
		detector: func(packageManager string) config.ToolDetector {
			return config.NewToolDetector(packageManager)
		},
		loadConfig: config.LoadWithOverrides,
		workDir:    os.Getwd,
		initLogger: InitLogger,
		banner:     tui.RenderHeaderAuto,
	}
}

// runCreate resolves the project, then runs the pipeline.
func runCreate(ctx context.Context, cmd *cobra.Command, args []string, flags *GlobalFlags, createFlags *CreateFlags, env *environment) error {
	logger := GetLogger().With().Str("run_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)
	out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)

	if createFlags.EnvFile != "" {
		if err := godotenv.Load(createFlags.EnvFile); err != nil {
			return fmt.Errorf("%w: %s: %w", errors.ErrEnvFile, createFlags.EnvFile, err)
		}
		logger.Debug().Str("path", createFlags.EnvFile).Msg("loaded env file")
	}

	cfg, err := env.loadConfig(ctx, &config.Config{
		Install: config.InstallConfig{PackageManager: createFlags.PackageManager},
	})
	if err != nil {
		return err
	}
	if createFlags.SkipPreflight {
		cfg.Preflight.Enabled = false
	}

	coord := interrupt.NewCoordinator(env.prompts, out,
		interrupt.WithInputRestorer(env.captureTerminal()),
		interrupt.WithLogger(logger),
	)
	handler := signal.NewHandler(ctx, coord.Notify)
	defer handler.Stop()
	ctx = handler.Context()

	name, variant, err := resolveProject(ctx, cmd.OutOrStdout(), args, flags, createFlags, coord, env)
	if err != nil {
		if stderrors.Is(err, errors.ErrInteractiveCanceled) {
			out.Info(noProjectNotice)
		}
		return err
	}

	workDir, err := env.workDir()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	pc, err := domain.NewPipelineContext(workDir, name, variant,
		cfg.BranchFor(variant), cfg.Template.Repository, cfg.Install.PackageManager)
	if err != nil {
		return err
	}
	logger = logger.With().
		Str("project", pc.ProjectName).
		Str("variant", pc.Variant.String()).
		Str("branch", pc.Branch).
		Logger()

	if createFlags.DryRun {
		return printPlan(cmd.OutOrStdout(), flags.Output, pipeline.NewPlan(pc, cfg))
	}

	if cfg.Preflight.Enabled {
		if err := preflight(ctx, env.detector(pc.PackageManager)); err != nil {
			return err
		}
	}

	stepRunner := runner.New(env.executor(flags.Output), coord, logger)
	orch := pipeline.NewOrchestrator(stepRunner, coord,
		pipeline.WithResumePolicy(cfg.Interrupt.Resume),
		pipeline.WithReporter(out),
		pipeline.WithLogger(logger),
	)
	if err := orch.Run(ctx, pc, pipeline.Steps(pc, cfg)); err != nil {
		return err
	}

	out.Success(fmt.Sprintf("Successfully created %s!", pc.ProjectName))
	if flags.Output == OutputText {
		tui.RenderMarkdown(cmd.OutOrStdout(), tui.NextStepsMarkdown(pc.ProjectName, pc.PackageManager))
	}
	return nil
}

// resolveProject returns the sanitized project name and variant, from the
// arguments when a name was given and from interactive questions otherwise.
func resolveProject(ctx context.Context, w io.Writer, args []string, flags *GlobalFlags, createFlags *CreateFlags, coord *interrupt.Coordinator, env *environment) (string, domain.Variant, error) {
	if len(args) == 0 {
		return askProject(ctx, w, flags.Output == OutputText, coord, env)
	}

	name := sanitize.Filename(args[0])
	if name == "" {
		return "", "", fmt.Errorf("%q: %w", args[0], errors.ErrEmptyProjectName)
	}
	return name, selectVariant(createFlags), nil
}

// preflight fails when git or the package manager is missing or outdated.
func preflight(ctx context.Context, detector config.ToolDetector) error {
	result, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("failed to detect tools: %w", err)
	}
	if missing := result.MissingRequiredTools(); len(missing) > 0 {
		return fmt.Errorf("%w\n%s", errors.ErrMissingRequiredTools,
			strings.TrimRight(config.FormatMissingToolsError(missing), "\n"))
	}
	return nil
}

// printPlan writes the plan as JSON, or as YAML in text mode.
func printPlan(w io.Writer, outputFormat string, plan pipeline.Plan) error {
	if outputFormat == OutputJSON {
		return tui.NewJSONOutput(w).JSON(plan)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return encoder.Close()
}
