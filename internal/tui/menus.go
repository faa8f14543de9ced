// This file provides the interactive prompts built on Charm Huh.
//
// Every prompt needs a terminal on stdin; without one it returns
// ErrNonInteractive instead of blocking. Ctrl+C or Esc inside a prompt returns
// ErrMenuCanceled. Prompts run on the caller's goroutine and stop when ctx is done.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
)

// Terminal layout constants.
const (
	// TerminalEdgeMargin is the number of characters to leave between
	// menu content and the terminal edge.
	TerminalEdgeMargin = 4

	// MinMenuWidth is the minimum usable width for menu content.
	MinMenuWidth = 40
)

// Option represents a selectable menu option.
type Option struct {
	// Label is the display text shown to the user.
	Label string
	// Description is optional help text shown after the label.
	Description string
	// Value is the value returned when this option is selected.
	Value string
}

// MenuConfig holds configuration for menu components.
type MenuConfig struct {
	// Width is the maximum width for the menu. If 0, adapts to terminal width.
	Width int
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// ShowKeyHints controls whether key hints are displayed.
	ShowKeyHints bool
}

// NewMenuConfig creates a MenuConfig with defaults. Accessible mode follows
// the ACCESSIBLE environment variable.
func NewMenuConfig() *MenuConfig {
	_, accessible := os.LookupEnv("ACCESSIBLE")
	return &MenuConfig{
		Width:        DefaultBoxWidth,
		Accessible:   accessible,
		ShowKeyHints: true,
	}
}

// stdinIsTerminal reports whether prompts can be shown. Replaced in tests.
var stdinIsTerminal = func() bool { //nolint:gochecknoglobals // test seam
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// adaptWidth returns an appropriate menu width based on terminal size.
func adaptWidth(maxWidth int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		if maxWidth <= 0 {
			return DefaultBoxWidth
		}
		return maxWidth
	}

	availableWidth := width - TerminalEdgeMargin
	if maxWidth > 0 && maxWidth < availableWidth {
		return maxWidth
	}
	if availableWidth < MinMenuWidth {
		return MinMenuWidth
	}
	return availableWidth
}

// runForm creates and runs a single-field form.
// The errorContext parameter is used to wrap unexpected errors.
func runForm(ctx context.Context, field huh.Field, cfg *MenuConfig, errorContext string) error {
	if !stdinIsTerminal() {
		return apperrors.ErrNonInteractive
	}

	CheckNoColor()

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(FilecoinTheme()).
		WithWidth(adaptWidth(cfg.Width)).
		WithAccessible(cfg.Accessible).
		WithShowHelp(cfg.ShowKeyHints)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return apperrors.ErrMenuCanceled
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%s: %w", errorContext, err)
	}
	return nil
}

// FilecoinTheme returns the Huh theme built from the package colors.
func FilecoinTheme() *huh.Theme {
	CheckNoColor()

	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)

	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Help.Ellipsis = t.Help.Ellipsis.Foreground(ColorMuted)

	return t
}

// Select presents a single-selection menu and returns the selected value.
// The first option is preselected.
func Select(ctx context.Context, title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", apperrors.ErrNoMenuOptions
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		label := opt.Label
		if opt.Description != "" {
			label = opt.Label + " - " + opt.Description
		}
		huhOptions[i] = huh.NewOption(label, opt.Value)
	}

	selected := options[0].Value
	field := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected)

	if err := runForm(ctx, field, NewMenuConfig(), "select menu failed"); err != nil {
		return "", err
	}
	return selected, nil
}

// Confirm presents a yes/no confirmation prompt.
func Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	confirmed := defaultYes
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := runForm(ctx, field, NewMenuConfig(), "confirm prompt failed"); err != nil {
		return false, err
	}
	return confirmed, nil
}

// InputWithValidation presents an input prompt that re-asks until validate accepts the value.
func InputWithValidation(ctx context.Context, prompt, placeholder string, validate func(string) error) (string, error) {
	var value string
	field := huh.NewInput().
		Title(prompt).
		Placeholder(placeholder).
		Value(&value).
		Validate(validate)

	if err := runForm(ctx, field, NewMenuConfig(), "input prompt failed"); err != nil {
		return "", err
	}
	return value, nil
}

// Prompter adapts the package prompts to the interfaces consumers declare.
type Prompter struct{}

// Confirm implements interrupt.Prompter.
func (Prompter) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	return Confirm(ctx, message, defaultYes)
}

// Select presents a single-selection menu.
func (Prompter) Select(ctx context.Context, title string, options []Option) (string, error) {
	return Select(ctx, title, options)
}

// Input presents a validated input prompt.
func (Prompter) Input(ctx context.Context, prompt, placeholder string, validate func(string) error) (string, error) {
	return InputWithValidation(ctx, prompt, placeholder, validate)
}
