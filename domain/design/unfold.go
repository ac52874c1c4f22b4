package design

import (
	"fmt"
	"math"
	"strings"

	"expdes/domain/anova"
	"expdes/domain/cld"
	"expdes/domain/core"
	"expdes/domain/dataset"
	"expdes/domain/posthoc"
	"expdes/internal"
	"expdes/internal/engine"
)

// BranchError records a sub-analysis that failed during interaction
// unfolding. Failures in one branch never abort the siblings.
type BranchError struct {
	Factor string
	Level  string
	Err    error
}

func (e BranchError) Error() string {
	if e.Level == "" {
		return fmt.Sprintf("main effect %s: %v", e.Factor, e.Err)
	}
	return fmt.Sprintf("%s within %s: %v", e.Factor, e.Level, e.Err)
}

func (e BranchError) Unwrap() error { return e.Err }

// Branch is one conditional sub-analysis: the single-factor ANOVA and the
// post hoc comparison of one factor inside one level of another.
type Branch struct {
	Anova       *anova.Table   `json:"anova"`
	Comparisons posthoc.Set    `json:"comparisons"`
	Letters     []cld.TableRow `json:"letters"`
}

// UnfoldResult is the outcome of interaction unfolding. Anova is always
// set; exactly one of MainEffects and Interactions is populated, driven
// by the significance of the highest-order interaction. Interactions may
// be empty when every conditional subset lacked enough levels to compare.
type UnfoldResult struct {
	Anova        *anova.Table              `json:"anova"`
	MainEffects  map[string][]cld.TableRow `json:"main_effects,omitempty"`
	Interactions map[string]*Branch        `json:"interactions,omitempty"`
	Errors       []BranchError             `json:"-"`
}

// UnfoldInteractions fits the design's full model and then localizes
// group differences. When the highest-order interaction is significant at
// alpha, each factor of that term is compared inside every level of each
// other factor ("inner within outer=level" keys); otherwise each design
// factor gets one marginal post hoc comparison. An undefined interaction
// p-value (saturated slices) falls back to main effects. maxInteraction
// caps the fitted interaction order for factorial designs, 0 meaning
// unlimited.
func (d *Design) UnfoldInteractions(alpha float64, posthocName string, maxInteraction int) (*UnfoldResult, error) {
	strategy, err := posthoc.New(posthocName)
	if err != nil {
		return nil, err
	}

	tbl, _, err := engine.AnovaTypeII(d.formulaWithMax(maxInteraction), d.data)
	if err != nil {
		return nil, err
	}
	result := &UnfoldResult{Anova: tbl}

	// When the model was built with its full cross, the top interaction
	// term must have survived the fit.
	if fs := d.unfoldFactors(); len(fs) > 1 && (maxInteraction <= 0 || maxInteraction >= len(fs)) {
		if want := strings.Join(fs, ":"); !tbl.HasTerm(want) {
			return nil, core.NewInteractionTermNotFoundError(want)
		}
	}

	term, hasInteraction := tbl.HighestOrderInteraction()
	significant := false
	if hasInteraction {
		row, _ := tbl.Row(term)
		significant = !math.IsNaN(row.PValue) && row.PValue <= alpha
	}

	if !significant {
		result.MainEffects = make(map[string][]cld.TableRow)
		for _, factor := range d.unfoldFactors() {
			rows, _, perr := posthocCLD(strategy, alpha, d.data, d.response, factor)
			if perr != nil {
				internal.DefaultLogger.Warn("unfold: main effect %s failed: %v", factor, perr)
				result.Errors = append(result.Errors, BranchError{Factor: factor, Err: perr})
				continue
			}
			result.MainEffects[factor] = rows
		}
		return result, nil
	}

	result.Interactions = make(map[string]*Branch)
	factors := anova.TermFactors(term)
	for _, inner := range factors {
		for _, outer := range factors {
			if inner == outer {
				continue
			}
			levels, lerr := d.data.Levels(outer)
			if lerr != nil {
				return nil, lerr
			}
			for _, level := range levels {
				subset, ferr := d.data.Filter(outer, level)
				if ferr != nil {
					return nil, ferr
				}
				innerLevels, ierr := subset.Levels(inner)
				if ierr != nil {
					return nil, ierr
				}
				if len(innerLevels) < 2 {
					internal.DefaultLogger.Debug("unfold: skipping %s within %s=%s, only %d level(s)",
						inner, outer, level, len(innerLevels))
					continue
				}
				branch, berr := d.unfoldBranch(strategy, alpha, subset, inner)
				if berr != nil {
					internal.DefaultLogger.Warn("unfold: %s within %s=%s failed: %v", inner, outer, level, berr)
					result.Errors = append(result.Errors, BranchError{
						Factor: inner,
						Level:  fmt.Sprintf("%s=%s", outer, level),
						Err:    berr,
					})
					continue
				}
				key := fmt.Sprintf("%s within %s=%s", inner, outer, level)
				result.Interactions[key] = branch
			}
		}
	}
	return result, nil
}

// unfoldBranch refits one conditional subset as a single-factor model and
// runs the post hoc comparison on it.
func (d *Design) unfoldBranch(strategy posthoc.Strategy, alpha float64, subset *dataset.Dataset, factor string) (*Branch, error) {
	formula := fmt.Sprintf("%s ~ C(%s)", d.response, factor)
	tbl, _, err := engine.AnovaTypeII(formula, subset)
	if err != nil {
		return nil, err
	}
	rows, set, err := posthocCLD(strategy, alpha, subset, d.response, factor)
	if err != nil {
		return nil, err
	}
	return &Branch{Anova: tbl, Comparisons: set, Letters: rows}, nil
}
