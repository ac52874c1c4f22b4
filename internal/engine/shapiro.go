package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"expdes/domain/core"
)

// ShapiroWilk tests the null hypothesis that the sample comes from a
// normal distribution. Implements the Royston AS R94 approximation, valid
// for 3 <= n <= 5000.
func ShapiroWilk(values []float64) (w, p float64, err error) {
	n := len(values)
	if n < 3 {
		return 0, 0, core.NewInsufficientDataError("shapiro-wilk needs at least 3 observations")
	}
	if n > 5000 {
		return 0, 0, core.NewInsufficientDataError("shapiro-wilk supports at most 5000 observations")
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)
	if x[n-1] == x[0] {
		return 0, 0, core.NewInsufficientDataError("shapiro-wilk needs non-constant data")
	}

	// Expected normal order statistics (Blom scores).
	m := make([]float64, n)
	ssq := 0.0
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssq += m[i] * m[i]
	}
	rsn := 1 / math.Sqrt(float64(n))

	// Polynomial-corrected weights for the extreme order statistics.
	a := make([]float64, n)
	cn := m[n-1] / math.Sqrt(ssq)
	an := cn + rsn*(0.221157+rsn*(-0.147981+rsn*(-2.071190+rsn*(4.434685+rsn*(-2.706056)))))
	var phi float64
	if n > 5 {
		cn1 := m[n-2] / math.Sqrt(ssq)
		an1 := cn1 + rsn*(0.042981+rsn*(-0.293762+rsn*(-1.752461+rsn*(5.682633+rsn*(-3.582633)))))
		phi = (ssq - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1], a[0] = an, -an
		a[n-2], a[1] = an1, -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	} else {
		phi = (ssq - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1], a[0] = an, -an
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	num, den := 0.0, 0.0
	for i, v := range x {
		num += a[i] * v
		den += (v - mean) * (v - mean)
	}
	w = num * num / den

	p = shapiroPValue(w, n)
	return w, p, nil
}

// shapiroPValue transforms W to an approximately standard normal deviate
// and returns the upper-tail probability (Royston 1995).
func shapiroPValue(w float64, n int) float64 {
	if n == 3 {
		// exact for n = 3
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return math.Max(0, math.Min(1, p))
	}
	nf := float64(n)
	var z float64
	if n <= 11 {
		gamma := -2.273 + 0.459*nf
		wPrime := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 + nf*(-0.39978+nf*(0.025054+nf*(-0.0006714)))
		sigma := math.Exp(1.3822 + nf*(-0.77857+nf*(0.062767+nf*(-0.0020322))))
		z = (wPrime - mu) / sigma
	} else {
		ln := math.Log(nf)
		wPrime := math.Log(1 - w)
		mu := -1.5861 + ln*(-0.31082+ln*(-0.083751+ln*0.0038915))
		sigma := math.Exp(-0.4803 + ln*(-0.082676+ln*0.0030302))
		z = (wPrime - mu) / sigma
	}
	return 1 - distuv.UnitNormal.CDF(z)
}
