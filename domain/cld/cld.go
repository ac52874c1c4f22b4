// Package cld computes compact letter displays: groups that are not
// statistically distinguishable share at least one letter.
package cld

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"expdes/domain/core"
	"expdes/domain/dataset"
	"expdes/domain/posthoc"
)

// OrderKind selects how groups are ordered before letter assignment.
type OrderKind int

const (
	// OrderDefault sorts group labels ascending lexically.
	OrderDefault OrderKind = iota
	// OrderAscending sorts by ascending group mean (or median).
	OrderAscending
	// OrderDescending sorts by descending group mean (or median).
	OrderDescending
	// OrderExplicit uses the caller-provided group list as-is.
	OrderExplicit
)

// Order describes the group ordering for letter assignment. Ascending and
// descending orders need the raw data to compute the per-group statistic.
type Order struct {
	Kind      OrderKind
	Groups    []string // OrderExplicit only
	UseMedian bool     // order by median instead of mean

	Data        *dataset.Dataset // OrderAscending / OrderDescending only
	ValueColumn string
	GroupColumn string
}

// Display maps each group to its letter string, preserving the assignment
// order of the groups.
type Display struct {
	Groups  []string          `json:"groups"`
	Letters map[string]string `json:"letters"`
}

// TableRow is one row of a CLD summary table.
type TableRow struct {
	Group   string  `json:"group"`
	Mean    float64 `json:"mean"`
	Letters string  `json:"letters"`
}

// Assign computes the compact letter display for a pairwise comparison set.
//
// The algorithm reproduces the classical greedy heuristic: walking the
// ordered groups, each group seeds a compatibility set that is extended
// with every group not significantly different from it and from every
// member already accepted. Identical sets are deduplicated keeping
// first-seen order, and each surviving set contributes one letter to all
// its members. The greedy extension approximates, not equals, the full
// transitive-closure display.
func Assign(set posthoc.Set, alpha float64, order Order) (Display, error) {
	for _, c := range set {
		if math.IsNaN(c.PValue) {
			return Display{}, core.NewMalformedComparisonError(c.GroupA, c.GroupB)
		}
	}

	groups, err := orderedGroups(set, order)
	if err != nil {
		return Display{}, err
	}
	if len(groups) == 0 {
		return Display{}, core.NewInsufficientDataError("no groups to letter")
	}

	significant := func(a, b string) bool {
		c, ok := set.Lookup(a, b)
		return ok && c.PValue < alpha
	}

	// Build one candidate compatibility set per starting group.
	var sets []map[string]bool
	for _, g := range groups {
		member := map[string]bool{g: true}
		for _, h := range groups {
			if h == g || significant(g, h) {
				continue
			}
			compatible := true
			for m := range member {
				if significant(m, h) {
					compatible = false
					break
				}
			}
			if compatible {
				member[h] = true
			}
		}
		if !containsSet(sets, member) {
			sets = append(sets, member)
		}
	}

	letters := make(map[string]string, len(groups))
	for _, g := range groups {
		code := ""
		for j, s := range sets {
			if s[g] {
				code += letterFor(j)
			}
		}
		letters[g] = code
	}
	return Display{Groups: groups, Letters: letters}, nil
}

// orderedGroups resolves the requested group ordering.
func orderedGroups(set posthoc.Set, order Order) ([]string, error) {
	switch order.Kind {
	case OrderExplicit:
		if len(order.Groups) == 0 {
			return nil, fmt.Errorf("explicit order requires a group list")
		}
		return append([]string(nil), order.Groups...), nil

	case OrderAscending, OrderDescending:
		if order.Data == nil || order.ValueColumn == "" || order.GroupColumn == "" {
			return nil, fmt.Errorf("mean/median ordering requires data, value column and group column")
		}
		byGroup, err := order.Data.GroupBy(order.ValueColumn, order.GroupColumn)
		if err != nil {
			return nil, err
		}
		groups := make([]string, 0, len(byGroup))
		for g := range byGroup {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		stat := make(map[string]float64, len(groups))
		for g, obs := range byGroup {
			var v float64
			var serr error
			if order.UseMedian {
				v, serr = stats.Median(obs)
			} else {
				v, serr = stats.Mean(obs)
			}
			if serr != nil {
				return nil, serr
			}
			stat[g] = v
		}
		asc := order.Kind == OrderAscending
		sort.SliceStable(groups, func(i, j int) bool {
			if asc {
				return stat[groups[i]] < stat[groups[j]]
			}
			return stat[groups[i]] > stat[groups[j]]
		})
		return groups, nil

	default:
		groups := set.Groups()
		sort.Strings(groups)
		return groups, nil
	}
}

func containsSet(sets []map[string]bool, s map[string]bool) bool {
	for _, o := range sets {
		if equalSet(o, s) {
			return true
		}
	}
	return false
}

func equalSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// letterFor returns the letter code for the i-th distinct compatibility
// set: a..z, then two-letter codes aa, ab, ... for displays that need more
// than 26 sets.
func letterFor(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	if i < len(alphabet) {
		return string(alphabet[i])
	}
	i -= len(alphabet)
	return string(alphabet[i/len(alphabet)]) + string(alphabet[i%len(alphabet)])
}

// Table pairs each lettered group with its mean from the raw data, in the
// display's group order.
func (d Display) Table(ds *dataset.Dataset, valueCol, groupCol string) ([]TableRow, error) {
	byGroup, err := ds.GroupBy(valueCol, groupCol)
	if err != nil {
		return nil, err
	}
	rows := make([]TableRow, 0, len(d.Groups))
	for _, g := range d.Groups {
		mean := math.NaN()
		if obs, ok := byGroup[g]; ok {
			mean, _ = stats.Mean(obs)
		}
		rows = append(rows, TableRow{Group: g, Mean: mean, Letters: d.Letters[g]})
	}
	return rows, nil
}
