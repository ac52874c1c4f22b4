package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"expdes/domain/core"
)

// Levene tests the null hypothesis of equal group variances. Uses the
// median-centered variant (Brown-Forsythe), which is robust to
// non-normality and matches the behavior this toolkit has always reported.
func Levene(groups [][]float64) (stat, p float64, err error) {
	k := len(groups)
	if k < 2 {
		return 0, 0, core.NewInsufficientDataError("levene needs at least 2 groups")
	}
	n := 0
	z := make([][]float64, k)
	for i, g := range groups {
		if len(g) < 2 {
			return 0, 0, core.NewInsufficientDataError("levene needs at least 2 observations per group")
		}
		med, merr := stats.Median(g)
		if merr != nil {
			return 0, 0, merr
		}
		zi := make([]float64, len(g))
		for j, v := range g {
			zi[j] = math.Abs(v - med)
		}
		z[i] = zi
		n += len(g)
	}
	if n-k <= 0 {
		return 0, 0, core.NewInsufficientDataError("levene has no residual degrees of freedom")
	}

	grand := 0.0
	means := make([]float64, k)
	for i, zi := range z {
		s := 0.0
		for _, v := range zi {
			s += v
		}
		means[i] = s / float64(len(zi))
		grand += s
	}
	grand /= float64(n)

	between, within := 0.0, 0.0
	for i, zi := range z {
		d := means[i] - grand
		between += float64(len(zi)) * d * d
		for _, v := range zi {
			within += (v - means[i]) * (v - means[i])
		}
	}
	if within == 0 {
		return math.Inf(1), 0, nil
	}
	stat = (float64(n-k) / float64(k-1)) * between / within
	return stat, FPValue(stat, k-1, n-k), nil
}
