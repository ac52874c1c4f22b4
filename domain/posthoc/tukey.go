package posthoc

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"expdes/domain/core"
	"expdes/domain/dataset"
	"expdes/internal/engine"
)

// TukeyHSD performs the Tukey-Kramer honestly-significant-difference test:
// all pairs in one shot against the studentized range distribution, so the
// reported p-values are already adjusted for the whole family.
type TukeyHSD struct{}

// Run compares every pair of group levels.
func (t *TukeyHSD) Run(ds *dataset.Dataset, valueCol, groupCol string, alpha float64) (Set, error) {
	groups, err := ds.GroupBy(valueCol, groupCol)
	if err != nil {
		return nil, err
	}
	levels := make([]string, 0, len(groups))
	for lv := range groups {
		levels = append(levels, lv)
	}
	sort.Strings(levels)

	k := len(levels)
	if k < 2 {
		return nil, core.NewInsufficientDataError(
			fmt.Sprintf("tukey needs at least 2 groups with data, got %d", k))
	}

	// Pooled within-group variance; every group must allow a variance
	// estimate.
	n := 0
	sse := 0.0
	means := make(map[string]float64, k)
	for _, lv := range levels {
		obs := groups[lv]
		if len(obs) < 2 {
			return nil, core.NewInsufficientDataError(
				fmt.Sprintf("group %q has %d observation(s), need 2 for variance estimation", lv, len(obs)))
		}
		m, _ := stats.Mean(obs)
		means[lv] = m
		for _, v := range obs {
			sse += (v - m) * (v - m)
		}
		n += len(obs)
	}
	dfResid := n - k
	mse := sse / float64(dfResid)
	if mse == 0 {
		return nil, core.NewInsufficientDataError("tukey groups have zero within-group variance")
	}

	var set Set
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			a, b := levels[i], levels[j]
			na, nb := float64(len(groups[a])), float64(len(groups[b]))
			diff := means[b] - means[a]
			se := math.Sqrt(mse / 2 * (1/na + 1/nb))
			q := math.Abs(diff) / se
			p := engine.StudentizedRangePValue(q, k, float64(dfResid))
			set = append(set, Comparison{
				GroupA:   a,
				GroupB:   b,
				MeanDiff: diff,
				PValue:   p,
				Reject:   p < alpha,
			})
		}
	}
	return set, nil
}

// PValueField names the adjusted p-value field.
func (t *TukeyHSD) PValueField() string { return "p-adj" }
