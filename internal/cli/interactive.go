package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/create-filecoin-app/internal/domain"
	"github.com/mrz1836/create-filecoin-app/internal/errors"
	"github.com/mrz1836/create-filecoin-app/internal/interrupt"
	"github.com/mrz1836/create-filecoin-app/internal/sanitize"
	"github.com/mrz1836/create-filecoin-app/internal/tui"
)

// Interactive questions.
const (
	projectNamePrompt      = "What is your project named?"
	projectNamePlaceholder = "my-filecoin-app"
	variantPrompt          = "Which storage integration do you want to use?"
)

// askProject runs the interactive questions. A cancellation during the
// questions asks whether to terminate; either answer ends the run without a project.
func askProject(ctx context.Context, w io.Writer, showBanner bool, coord *interrupt.Coordinator, env *environment) (string, domain.Variant, error) {
	if showBanner {
		_, _ = fmt.Fprintln(w, env.banner())
	}

	raw, err := env.prompts.Input(ctx, projectNamePrompt, projectNamePlaceholder, validateProjectName)
	if err = settlePrompt(ctx, coord, err); err != nil {
		return "", "", err
	}

	choice, err := env.prompts.Select(ctx, variantPrompt, variantOptions())
	if err = settlePrompt(ctx, coord, err); err != nil {
		return "", "", err
	}

	variant, err := domain.ParseVariant(choice)
	if err != nil {
		return "", "", err
	}

	name := sanitize.Filename(raw)
	if name == "" {
		return "", "", fmt.Errorf("%q: %w", raw, errors.ErrEmptyProjectName)
	}
	return name, variant, nil
}

// settlePrompt turns a canceled prompt, or a signal received while a prompt
// was open, into the terminate question.
func settlePrompt(ctx context.Context, coord *interrupt.Coordinator, err error) error {
	switch {
	case err == nil && !coord.IsPending():
		return nil
	case err == nil, stderrors.Is(err, errors.ErrMenuCanceled):
		return confirmCancel(ctx, coord)
	default:
		return err
	}
}

// confirmCancel asks whether to terminate. Abort yields ErrAborted, Resume
// yields ErrInteractiveCanceled: no pipeline has started, so there is nothing to resume.
func confirmCancel(ctx context.Context, coord *interrupt.Coordinator) error {
	decision, err := coord.Confirm(ctx)
	if err != nil {
		return err
	}
	if decision == interrupt.DecisionAbort {
		return errors.ErrAborted
	}
	return errors.ErrInteractiveCanceled
}

// validateProjectName rejects names that are empty once sanitized.
func validateProjectName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.ErrEmptyValue
	}
	if sanitize.Filename(s) == "" {
		return errors.ErrEmptyProjectName
	}
	return nil
}

// variantOptions returns the storage integrations in menu order.
func variantOptions() []tui.Option {
	variants := domain.Variants()
	options := make([]tui.Option, 0, len(variants))
	for _, v := range variants {
		options = append(options, tui.Option{
			Label:       v.Label(),
			Description: variantDescription(v),
			Value:       v.String(),
		})
	}
	return options
}

func variantDescription(v domain.Variant) string {
	switch v {
	case domain.VariantStoracha:
		return "NFT storage on Storacha"
	case domain.VariantLighthouse:
		return "NFT storage on Lighthouse"
	case domain.VariantAkave:
		return "Akave decentralized storage"
	default:
		return "storage deals from a smart contract"
	}
}
