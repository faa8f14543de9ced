// Package domain provides shared domain types for create-filecoin-app.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"fmt"
	"strings"

	"github.com/mrz1836/create-filecoin-app/internal/constants"
	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
)

// Variant selects the storage-integration flavor of the scaffolded project.
// Each variant maps to one branch of the template repository.
type Variant string

const (
	// VariantDefault is the deal-client template on the default branch.
	VariantDefault Variant = "default"

	// VariantStoracha integrates Storacha storage.
	VariantStoracha Variant = "storacha"

	// VariantLighthouse integrates Lighthouse storage.
	VariantLighthouse Variant = "lighthouse"

	// VariantAkave integrates Akave storage.
	VariantAkave Variant = "akave"
)

// Variants returns all variants in menu order. The default variant is last,
// matching the interactive question of the original tool.
func Variants() []Variant {
	return []Variant{VariantStoracha, VariantLighthouse, VariantAkave, VariantDefault}
}

// FlagVariants returns the variants that have a dedicated CLI flag, in the
// order flags are checked. The first set flag wins.
func FlagVariants() []Variant {
	return []Variant{VariantStoracha, VariantLighthouse, VariantAkave}
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return string(v)
}

// Label returns the human-readable menu label for the variant.
func (v Variant) Label() string {
	switch v {
	case VariantStoracha:
		return "Storacha"
	case VariantLighthouse:
		return "Lighthouse"
	case VariantAkave:
		return "Akave"
	case VariantDefault:
		return "Deal Client"
	default:
		return string(v)
	}
}

// DefaultBranch returns the built-in template branch for the variant.
// Configuration may override the mapping.
func (v Variant) DefaultBranch() string {
	switch v {
	case VariantStoracha:
		return constants.BranchStoracha
	case VariantLighthouse:
		return constants.BranchLighthouse
	case VariantAkave:
		return constants.BranchAkave
	default:
		return constants.DefaultBranch
	}
}

// IsValid reports whether v is one of the known variants.
func (v Variant) IsValid() bool {
	for _, known := range Variants() {
		if v == known {
			return true
		}
	}
	return false
}

// ParseVariant converts a user or config supplied name into a Variant.
// An empty string and "main" both select the default variant.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == constants.DefaultBranch {
		return VariantDefault, nil
	}
	v := Variant(name)
	if !v.IsValid() {
		return "", fmt.Errorf("%q: %w", s, apperrors.ErrUnknownVariant)
	}
	return v, nil
}
