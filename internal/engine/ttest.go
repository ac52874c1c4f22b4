package engine

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"expdes/domain/core"
)

// TwoSampleTTest compares two independent sample means. With equalVar the
// classical pooled-variance test is used, otherwise Welch's test with
// Satterthwaite degrees of freedom. The returned p-value is two-tailed.
func TwoSampleTTest(a, b []float64, equalVar bool) (t, p float64, err error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if len(a) < 2 || len(b) < 2 {
		return 0, 0, core.NewInsufficientDataError("t-test needs at least 2 observations per group")
	}
	m1, _ := stats.Mean(a)
	m2, _ := stats.Mean(b)
	v1, err := stats.SampleVariance(a)
	if err != nil {
		return 0, 0, err
	}
	v2, err := stats.SampleVariance(b)
	if err != nil {
		return 0, 0, err
	}

	var se, df float64
	if equalVar {
		sp2 := ((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2)
		se = math.Sqrt(sp2 * (1/n1 + 1/n2))
		df = n1 + n2 - 2
	} else {
		se = math.Sqrt(v1/n1 + v2/n2)
		df = math.Pow(v1/n1+v2/n2, 2) /
			(math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))
	}
	if se == 0 {
		return 0, 0, core.NewInsufficientDataError("t-test groups have zero variance")
	}
	t = (m1 - m2) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * (1 - dist.CDF(math.Abs(t)))
	return t, p, nil
}
