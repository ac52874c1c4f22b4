// Package engine implements the regression and statistical-test machinery
// the designs delegate to: formula parsing, least-squares fitting, Type II
// ANOVA decomposition and the classical assumption / comparison tests.
// Distribution p-values come from gonum's distuv, the way the rest of the
// statistical plumbing in this codebase is built.
package engine

import (
	"fmt"
	"strings"
)

// Term is one model term: a set of factor names, joined with ':' in the
// ANOVA table ("f1", "f1:f2", ...).
type Term struct {
	Factors []string
}

// Key returns the canonical colon-joined term name.
func (t Term) Key() string {
	return strings.Join(t.Factors, ":")
}

// Order returns the number of factors in the term.
func (t Term) Order() int { return len(t.Factors) }

// Contains reports whether the term's factor set is a superset of other's.
func (t Term) Contains(other Term) bool {
	set := make(map[string]bool, len(t.Factors))
	for _, f := range t.Factors {
		set[f] = true
	}
	for _, f := range other.Factors {
		if !set[f] {
			return false
		}
	}
	return true
}

// Formula is a parsed model specification.
type Formula struct {
	Response string
	Terms    []Term
}

// ParseFormula parses a statsmodels-style formula such as
// "y ~ C(f1)*C(f2) + C(block)". '*' expands to all sub-terms, ':' joins an
// interaction, and C(...) marks a categorical factor (every factor here is
// treated as categorical regardless).
func ParseFormula(s string) (*Formula, error) {
	sides := strings.SplitN(s, "~", 2)
	if len(sides) != 2 {
		return nil, fmt.Errorf("formula %q has no '~'", s)
	}
	response := stripCategorical(strings.TrimSpace(sides[0]))
	if response == "" {
		return nil, fmt.Errorf("formula %q has no response", s)
	}

	var terms []Term
	seen := make(map[string]bool)
	add := func(t Term) {
		if len(t.Factors) == 0 {
			return
		}
		if k := t.Key(); !seen[k] {
			seen[k] = true
			terms = append(terms, t)
		}
	}

	for _, chunk := range strings.Split(sides[1], "+") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		var crossed [][]string
		for _, part := range strings.Split(chunk, "*") {
			factors, err := splitInteraction(part)
			if err != nil {
				return nil, err
			}
			crossed = append(crossed, factors)
		}
		for _, t := range expandCross(crossed) {
			add(t)
		}
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("formula %q has no terms", s)
	}
	sortTermsStable(terms)
	return &Formula{Response: response, Terms: terms}, nil
}

// expandCross turns a*b*c into all non-empty factor combinations, lower
// orders first, preserving the order the factors appear in the formula.
func expandCross(parts [][]string) []Term {
	var out []Term
	n := len(parts)
	for mask := 1; mask < 1<<n; mask++ {
		var factors []string
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				factors = append(factors, parts[i]...)
			}
		}
		out = append(out, Term{Factors: factors})
	}
	return out
}

// sortTermsStable orders terms by ascending interaction order, keeping the
// first-seen order within the same order.
func sortTermsStable(terms []Term) {
	// insertion sort keeps it stable without pulling in sort.SliceStable
	// ceremony for tiny slices
	for i := 1; i < len(terms); i++ {
		for j := i; j > 0 && terms[j-1].Order() > terms[j].Order(); j-- {
			terms[j-1], terms[j] = terms[j], terms[j-1]
		}
	}
}

func splitInteraction(part string) ([]string, error) {
	var out []string
	for _, p := range strings.Split(part, ":") {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty factor in interaction %q", part)
		}
		out = append(out, stripCategorical(p))
	}
	return out, nil
}

// stripCategorical unwraps C(name) to name.
func stripCategorical(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "C(") && strings.HasSuffix(s, ")") {
		return strings.TrimSpace(s[2 : len(s)-1])
	}
	return s
}
