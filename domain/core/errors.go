package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrUnsupportedTest is returned when a post hoc strategy name is not registered.
	ErrUnsupportedTest = errors.New("unsupported post hoc test")

	// ErrInsufficientData is returned when a group or subset lacks enough
	// observations or distinct levels for a requested test.
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// ErrMalformedComparison is returned when a pairwise comparison carries a
	// non-numeric or missing p-value. Indicates a contract violation upstream.
	ErrMalformedComparison = errors.New("malformed pairwise comparison")

	// ErrInteractionTermNotFound is returned when a requested interaction term
	// does not appear in a fitted ANOVA table.
	ErrInteractionTermNotFound = errors.New("interaction term not found in anova table")

	// ErrColumnNotFound is returned when a dataset column lookup fails.
	ErrColumnNotFound = errors.New("column not found")
)

// Error constructors with context

func NewUnsupportedTestError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedTest, name)
}

func NewInsufficientDataError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, reason)
}

func NewMalformedComparisonError(groupA, groupB string) error {
	return fmt.Errorf("%w: p-value for (%s, %s) is not numeric", ErrMalformedComparison, groupA, groupB)
}

func NewInteractionTermNotFoundError(term string) error {
	return fmt.Errorf("%w: %q", ErrInteractionTermNotFound, term)
}

func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

// Error checking helpers

func IsUnsupportedTest(err error) bool {
	return errors.Is(err, ErrUnsupportedTest)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsMalformedComparison(err error) bool {
	return errors.Is(err, ErrMalformedComparison)
}
