package posthoc

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"expdes/domain/core"
	"expdes/domain/dataset"
	"expdes/internal/engine"
)

// PairwiseTTest runs an independent two-sample t-test for every unordered
// pair of group levels. P-values are NOT corrected for multiple
// comparisons; the caller owns the inflated family-wise error rate.
type PairwiseTTest struct {
	// EqualVar selects the pooled-variance test (the ANOVA assumption).
	// When false, Welch's test is used.
	EqualVar bool
}

// Run compares every pair of group levels with unadjusted p-values.
func (t *PairwiseTTest) Run(ds *dataset.Dataset, valueCol, groupCol string, alpha float64) (Set, error) {
	groups, err := ds.GroupBy(valueCol, groupCol)
	if err != nil {
		return nil, err
	}
	levels := make([]string, 0, len(groups))
	for lv := range groups {
		levels = append(levels, lv)
	}
	sort.Strings(levels)
	if len(levels) < 2 {
		return nil, core.NewInsufficientDataError(
			fmt.Sprintf("pairwise t-test needs at least 2 groups with data, got %d", len(levels)))
	}

	var set Set
	for i := 0; i < len(levels); i++ {
		for j := i + 1; j < len(levels); j++ {
			a, b := levels[i], levels[j]
			_, p, err := engine.TwoSampleTTest(groups[a], groups[b], t.EqualVar)
			if err != nil {
				return nil, fmt.Errorf("t-test %q vs %q: %w", a, b, err)
			}
			ma, _ := stats.Mean(groups[a])
			mb, _ := stats.Mean(groups[b])
			set = append(set, Comparison{
				GroupA:   a,
				GroupB:   b,
				MeanDiff: ma - mb,
				PValue:   p,
				Reject:   p < alpha,
			})
		}
	}
	return set, nil
}

// PValueField names the raw p-value field.
func (t *PairwiseTTest) PValueField() string { return "p-value" }
