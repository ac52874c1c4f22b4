package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"expdes/domain/anova"
	"expdes/domain/core"
	"expdes/domain/dataset"
)

// AnovaTypeII fits the formula and decomposes it into a Type II ANOVA
// table. The sum of squares of each term is obtained by model comparison
// against the submodel holding every other term that does not contain it
// (marginality is respected: interactions involving a factor are excluded
// when testing that factor's main effect). F statistics are formed against
// the full-model residual mean square.
func AnovaTypeII(formula string, ds *dataset.Dataset) (*anova.Table, *Model, error) {
	f, err := ParseFormula(formula)
	if err != nil {
		return nil, nil, err
	}
	full, err := fitParsed(f, f.Terms, ds)
	if err != nil {
		return nil, nil, err
	}
	if full.DFResid <= 0 {
		return nil, nil, core.NewInsufficientDataError("model is saturated, no residual degrees of freedom")
	}
	mse := full.RSS / float64(full.DFResid)

	tbl := &anova.Table{}
	for _, term := range f.Terms {
		others := excludeContaining(f.Terms, term)
		reduced, err := fitParsed(f, others, ds)
		if err != nil {
			return nil, nil, err
		}
		augmented, err := fitParsed(f, append(append([]Term(nil), others...), term), ds)
		if err != nil {
			return nil, nil, err
		}
		ss := reduced.RSS - augmented.RSS
		if ss < 0 {
			ss = 0 // guard against floating point jitter on orthogonal terms
		}
		// Term df from the fitted parameter counts, so empty factorial
		// cells shrink the df instead of breaking the decomposition.
		df := augmented.NumParams - reduced.NumParams
		fStat := math.NaN()
		p := math.NaN()
		if df > 0 {
			fStat = (ss / float64(df)) / mse
			p = FPValue(fStat, df, full.DFResid)
		}
		tbl.Rows = append(tbl.Rows, anova.Row{
			Term:   term.Key(),
			SumSq:  ss,
			DF:     df,
			F:      fStat,
			PValue: p,
			Signif: anova.Classify(p),
		})
	}
	tbl.Rows = append(tbl.Rows, anova.Row{
		Term:   anova.ResidualTerm,
		SumSq:  full.RSS,
		DF:     full.DFResid,
		F:      math.NaN(),
		PValue: math.NaN(),
		Signif: anova.Classify(math.NaN()),
	})
	return tbl, full, nil
}

// excludeContaining drops t and every term whose factor set contains t's.
func excludeContaining(terms []Term, t Term) []Term {
	var out []Term
	for _, o := range terms {
		if o.Key() == t.Key() || o.Contains(t) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// FPValue is the upper-tail probability of an F statistic.
func FPValue(f float64, df1, df2 int) float64 {
	if df1 <= 0 || df2 <= 0 || math.IsNaN(f) {
		return math.NaN()
	}
	if f <= 0 {
		return 1
	}
	dist := distuv.F{D1: float64(df1), D2: float64(df2)}
	return 1 - dist.CDF(f)
}
