// Package anova holds the ANOVA table produced by a model fit and the
// significance classifier applied to its p-values.
package anova

import (
	"math"
	"strings"
)

// Markers emitted by Classify.
const (
	MarkerStrong   = "***"
	MarkerModerate = "**"
	MarkerWeak     = "*"
	MarkerNone     = "ns"
	MarkerBlank    = " "
)

// Classify maps a p-value to its significance marker. NaN (an undefined
// p-value, e.g. the residual row) classifies to the blank marker.
func Classify(p float64) string {
	switch {
	case math.IsNaN(p):
		return MarkerBlank
	case p < 0.001:
		return MarkerStrong
	case p < 0.01:
		return MarkerModerate
	case p < 0.05:
		return MarkerWeak
	default:
		return MarkerNone
	}
}

// Row is one model term of an ANOVA decomposition. The residual row has
// NaN F and p-value.
type Row struct {
	Term   string  `json:"term"`
	SumSq  float64 `json:"sum_sq"`
	DF     int     `json:"df"`
	F      float64 `json:"f"`
	PValue float64 `json:"p_value"`
	Signif string  `json:"signif"`
}

// ResidualTerm is the term name of the residual row.
const ResidualTerm = "Residual"

// Table is an ordered ANOVA decomposition, residual row last.
// Produced fresh per fit and read-only afterwards.
type Table struct {
	Rows []Row `json:"rows"`
}

// Row returns the row for a term, if present.
func (t *Table) Row(term string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Term == term {
			return r, true
		}
	}
	return Row{}, false
}

// HasTerm reports whether the table contains the given term.
func (t *Table) HasTerm(term string) bool {
	_, ok := t.Row(term)
	return ok
}

// InteractionTerms returns all colon-joined terms in table order.
func (t *Table) InteractionTerms() []string {
	var out []string
	for _, r := range t.Rows {
		if strings.Contains(r.Term, ":") {
			out = append(out, r.Term)
		}
	}
	return out
}

// HighestOrderInteraction returns the interaction term with the most
// factors, ties resolved by table order. ok is false when the table has
// no interaction term.
func (t *Table) HighestOrderInteraction() (string, bool) {
	best := ""
	order := 0
	for _, term := range t.InteractionTerms() {
		if n := strings.Count(term, ":") + 1; n > order {
			order = n
			best = term
		}
	}
	return best, best != ""
}

// TermFactors splits a colon-joined term into its factor names.
func TermFactors(term string) []string {
	return strings.Split(term, ":")
}
