// This file implements the preflight check for the external tools the pipeline runs.
package config

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	"github.com/mrz1836/create-filecoin-app/internal/ctxutil"
)

// Pre-compiled regexes for version parsing.
//
//nolint:gochecknoglobals // Package-level compiled regexes
var (
	gitVersionRe     = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)?)`)
	genericVersionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)
)

// ToolStatus represents the installation status of an external tool.
type ToolStatus int

const (
	// ToolStatusMissing indicates the tool is not installed.
	ToolStatusMissing ToolStatus = iota

	// ToolStatusInstalled indicates the tool is installed and meets version requirements.
	ToolStatusInstalled

	// ToolStatusOutdated indicates the tool is installed but below the minimum version.
	ToolStatusOutdated
)

// maxVersionSegments is the number of segments in a semantic version (major.minor.patch).
const maxVersionSegments = 3

// unknownVersion is reported when a tool runs but its version cannot be parsed.
const unknownVersion = "unknown"

// String returns a human-readable representation of the tool status.
func (s ToolStatus) String() string {
	switch s {
	case ToolStatusInstalled:
		return "installed"
	case ToolStatusMissing:
		return "missing"
	case ToolStatusOutdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (s ToolStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Tool represents an external tool the pipeline depends on.
type Tool struct {
	// Name is the tool identifier (e.g., "git", "yarn").
	Name string `json:"name"`

	// Required indicates if the tool is mandatory.
	Required bool `json:"required"`

	// MinVersion is the minimum required version (semver format).
	MinVersion string `json:"min_version,omitempty"`

	// CurrentVersion is the detected installed version.
	CurrentVersion string `json:"current_version,omitempty"`

	// Status is the current installation status.
	Status ToolStatus `json:"status"`

	// InstallHint provides installation instructions for missing tools.
	InstallHint string `json:"install_hint"`
}

// ToolDetectionResult holds the results of detecting all tools.
type ToolDetectionResult struct {
	// Tools contains the detection result for each tool, in check order.
	Tools []Tool `json:"tools"`

	// HasMissingRequired indicates if any required tools are missing or outdated.
	HasMissingRequired bool `json:"has_missing_required"`
}

// MissingRequiredTools returns a list of required tools that are missing or outdated.
func (r *ToolDetectionResult) MissingRequiredTools() []Tool {
	var missing []Tool
	for _, tool := range r.Tools {
		if tool.Required && (tool.Status == ToolStatusMissing || tool.Status == ToolStatusOutdated) {
			missing = append(missing, tool)
		}
	}
	return missing
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the PATH.
	LookPath(file string) (string, error)

	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor using os/exec.
type DefaultCommandExecutor struct{}

// LookPath searches for an executable in the PATH.
func (e *DefaultCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *DefaultCommandExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- tool names come from configuration
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// ToolDetector detects the installation status of external tools.
type ToolDetector interface {
	// Detect checks all configured tools and returns their status.
	Detect(ctx context.Context) (*ToolDetectionResult, error)
}

// DefaultToolDetector implements ToolDetector for git and the configured package manager.
type DefaultToolDetector struct {
	executor       CommandExecutor
	packageManager string
}

// NewToolDetector creates a DefaultToolDetector with the default executor.
func NewToolDetector(packageManager string) *DefaultToolDetector {
	return NewToolDetectorWithExecutor(packageManager, &DefaultCommandExecutor{})
}

// NewToolDetectorWithExecutor creates a DefaultToolDetector with a custom executor.
func NewToolDetectorWithExecutor(packageManager string, executor CommandExecutor) *DefaultToolDetector {
	if packageManager == "" {
		packageManager = constants.DefaultPackageManager
	}
	return &DefaultToolDetector{
		executor:       executor,
		packageManager: packageManager,
	}
}

// toolConfig holds the configuration for detecting a specific tool.
type toolConfig struct {
	name        string
	versionFlag string
	minVersion  string
	installHint string
	parseFunc   func(output string) string
}

// toolConfigs returns the tools to detect.
func (d *DefaultToolDetector) toolConfigs() []toolConfig {
	return []toolConfig{
		{
			name:        constants.ToolGit,
			versionFlag: constants.VersionFlagStandard,
			minVersion:  constants.MinVersionGit,
			installHint: "Install Git from https://git-scm.com/downloads (version 2.20+)",
			parseFunc:   parseGitVersion,
		},
		{
			name:        d.packageManager,
			versionFlag: constants.VersionFlagStandard,
			installHint: packageManagerHint(d.packageManager),
			parseFunc:   parseGenericVersion,
		},
	}
}

// packageManagerHint returns install instructions for well-known package managers.
func packageManagerHint(name string) string {
	switch name {
	case "yarn":
		return "Install Yarn: npm install -g yarn (or enable it with corepack enable)"
	case "pnpm":
		return "Install pnpm: npm install -g pnpm (or enable it with corepack enable)"
	case "npm":
		return "Install Node.js, which ships npm: https://nodejs.org/"
	case "bun":
		return "Install Bun: https://bun.sh/"
	default:
		return fmt.Sprintf("Install %s and make sure it is on your PATH", name)
	}
}

// Detect checks git and the package manager concurrently, bounded by
// ToolDetectionTimeout. Tools keep check order in the result.
func (d *DefaultToolDetector) Detect(ctx context.Context) (*ToolDetectionResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ToolDetectionTimeout)
	defer cancel()

	configs := d.toolConfigs()
	tools := make([]Tool, len(configs))

	// each goroutine owns one slot of tools
	g, gCtx := errgroup.WithContext(ctx)
	for i, cfg := range configs {
		g.Go(func() error {
			tools[i] = d.detectTool(gCtx, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to detect tools: %w", err)
	}

	result := &ToolDetectionResult{Tools: tools}
	result.HasMissingRequired = len(result.MissingRequiredTools()) > 0
	return result, nil
}

// detectTool detects a single tool's status.
func (d *DefaultToolDetector) detectTool(ctx context.Context, cfg toolConfig) Tool {
	tool := Tool{
		Name:        cfg.name,
		Required:    true,
		MinVersion:  cfg.minVersion,
		InstallHint: cfg.installHint,
		Status:      ToolStatusMissing,
	}

	if _, err := d.executor.LookPath(cfg.name); err != nil {
		return tool
	}

	output, err := d.executor.Run(ctx, cfg.name, cfg.versionFlag)
	if err != nil {
		// Present but the version command failed: treat as installed without version info.
		tool.Status = ToolStatusInstalled
		tool.CurrentVersion = unknownVersion
		return tool
	}

	tool.CurrentVersion = cfg.parseFunc(output)
	if tool.CurrentVersion == "" {
		tool.CurrentVersion = unknownVersion
		tool.Status = ToolStatusInstalled
		return tool
	}

	if cfg.minVersion != "" && CompareVersions(tool.CurrentVersion, cfg.minVersion) < 0 {
		tool.Status = ToolStatusOutdated
	} else {
		tool.Status = ToolStatusInstalled
	}

	return tool
}

// parseGitVersion parses "git version 2.39.0" → "2.39.0"
func parseGitVersion(output string) string {
	if matches := gitVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parseGenericVersion parses "1.22.19" or "v10.2.4" → "1.22.19", "10.2.4"
func parseGenericVersion(output string) string {
	if matches := genericVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CompareVersions compares two semantic versions.
// Returns:
//
//	-1 if current < required
//	 0 if current == required
//	 1 if current > required
func CompareVersions(current, required string) int {
	a := parseVersionParts(strings.TrimPrefix(current, "v"))
	b := parseVersionParts(strings.TrimPrefix(required, "v"))
	return slices.Compare(a[:], b[:])
}

// parseVersionParts parses a version string into [major, minor, patch].
func parseVersionParts(version string) [maxVersionSegments]int {
	var parts [maxVersionSegments]int
	segments := strings.Split(version, ".")

	for i := 0; i < len(segments) && i < maxVersionSegments; i++ {
		// Keep only the numeric prefix (handles "0.5.x" or "3-rc1")
		numStr := segments[i]
		for j, c := range numStr {
			if c < '0' || c > '9' {
				numStr = numStr[:j]
				break
			}
		}
		if numStr != "" {
			parts[i], _ = strconv.Atoi(numStr)
		}
	}

	return parts
}

// FormatMissingToolsError creates a formatted error message for missing tools.
func FormatMissingToolsError(missing []Tool) string {
	if len(missing) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing required tools:\n\n")
	for _, tool := range missing {
		status := tool.Status.String()
		if tool.Status == ToolStatusOutdated {
			status = fmt.Sprintf("outdated (have %s, need %s)", tool.CurrentVersion, tool.MinVersion)
		}
		fmt.Fprintf(&sb, "  • %s: %s\n    Install: %s\n\n", tool.Name, status, tool.InstallHint)
	}
	return sb.String()
}
