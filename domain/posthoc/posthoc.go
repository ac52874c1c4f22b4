// Package posthoc provides the pairwise multiple-comparison strategies run
// after a significant omnibus F-test, behind one uniform contract.
package posthoc

import (
	"strings"

	"expdes/domain/core"
	"expdes/domain/dataset"
)

// Comparison is one pairwise comparison between two treatment levels.
// Comparisons are symmetric: (A,B) and (B,A) describe the same pair and
// only one direction is stored.
type Comparison struct {
	GroupA   string  `json:"group1"`
	GroupB   string  `json:"group2"`
	MeanDiff float64 `json:"meandiff"`
	PValue   float64 `json:"p_value"`
	Reject   bool    `json:"reject"`
}

// Set is an unordered collection of pairwise comparisons.
type Set []Comparison

// Lookup finds the comparison for a pair regardless of argument order.
func (s Set) Lookup(a, b string) (Comparison, bool) {
	for _, c := range s {
		if (c.GroupA == a && c.GroupB == b) || (c.GroupA == b && c.GroupB == a) {
			return c, true
		}
	}
	return Comparison{}, false
}

// Groups returns the distinct group labels in first-seen order.
func (s Set) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range s {
		if !seen[c.GroupA] {
			seen[c.GroupA] = true
			out = append(out, c.GroupA)
		}
		if !seen[c.GroupB] {
			seen[c.GroupB] = true
			out = append(out, c.GroupB)
		}
	}
	return out
}

// Strategy is a pluggable pairwise comparison algorithm.
type Strategy interface {
	// Run compares every pair of levels of groupCol on valueCol.
	Run(ds *dataset.Dataset, valueCol, groupCol string, alpha float64) (Set, error)
	// PValueField names the field of the result holding the p-value that
	// is compared against alpha ("p-adj" for single-step adjusted tests,
	// "p-value" for raw ones).
	PValueField() string
}

// New resolves a strategy by name, case-insensitively.
func New(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "tukey":
		return &TukeyHSD{}, nil
	case "ttest":
		return &PairwiseTTest{EqualVar: true}, nil
	default:
		return nil, core.NewUnsupportedTestError(name)
	}
}
