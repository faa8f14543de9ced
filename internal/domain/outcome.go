package domain

import "fmt"

// OutcomeKind classifies how a pipeline step ended.
type OutcomeKind int

const (
	// OutcomeSuccess means the step completed.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeDomainFailure means the step failed for a reason specific to the
	// step (network, missing branch, install error). It ends the run with exit 1.
	OutcomeDomainFailure

	// OutcomeInterrupted means a user cancellation signal stopped the step.
	OutcomeInterrupted
)

// String returns a human-readable representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeDomainFailure:
		return "domain_failure"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// StepOutcome is the normalized result of one pipeline step.
type StepOutcome struct {
	Kind OutcomeKind
	// Err carries the prefixed failure for OutcomeDomainFailure.
	Err error
}

// Success returns a successful outcome.
func Success() StepOutcome {
	return StepOutcome{Kind: OutcomeSuccess}
}

// DomainFailure returns a failed outcome wrapping err.
func DomainFailure(err error) StepOutcome {
	return StepOutcome{Kind: OutcomeDomainFailure, Err: err}
}

// Interrupted returns an interrupted outcome.
func Interrupted() StepOutcome {
	return StepOutcome{Kind: OutcomeInterrupted}
}
