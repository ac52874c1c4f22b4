package engine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"expdes/domain/core"
	"expdes/domain/dataset"
)

// Model is a fitted least-squares model.
type Model struct {
	Formula   *Formula
	N         int
	NumParams int // columns of the design matrix, intercept included
	Coef      []float64
	Residuals []float64
	Fitted    []float64
	RSS       float64
	DFResid   int
}

// Fit builds the treatment-coded design matrix for the formula and solves
// the least-squares problem by QR.
func Fit(formula string, ds *dataset.Dataset) (*Model, error) {
	f, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	return fitParsed(f, f.Terms, ds)
}

func fitParsed(f *Formula, terms []Term, ds *dataset.Dataset) (*Model, error) {
	y, err := ds.NumericColumn(f.Response)
	if err != nil {
		return nil, err
	}
	n := len(y)
	if n == 0 {
		return nil, core.NewInsufficientDataError("dataset has no rows")
	}

	cols, err := designColumns(terms, ds)
	if err != nil {
		return nil, err
	}
	cols = dropEmptyColumns(cols)
	p := len(cols) + 1
	if n < p {
		return nil, core.NewInsufficientDataError(
			fmt.Sprintf("%d observations for %d parameters", n, p))
	}

	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
	}
	for j, col := range cols {
		for i := 0; i < n; i++ {
			x.Set(i, j+1, col[i])
		}
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, mat.NewVecDense(n, append([]float64(nil), y...))); err != nil {
		return nil, fmt.Errorf("least squares solve failed: %w", err)
	}

	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = beta.AtVec(j)
	}
	fitted := make([]float64, n)
	resid := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		v := 0.0
		for j := 0; j < p; j++ {
			v += x.At(i, j) * coef[j]
		}
		fitted[i] = v
		resid[i] = y[i] - v
		rss += resid[i] * resid[i]
	}

	return &Model{
		Formula:   f,
		N:         n,
		NumParams: p,
		Coef:      coef,
		Residuals: resid,
		Fitted:    fitted,
		RSS:       rss,
		DFResid:   n - p,
	}, nil
}

// designColumns builds the dummy columns for every term, in term order.
// Factors use treatment coding against their first (sorted) level;
// interaction columns are elementwise products of the parent dummies.
func designColumns(terms []Term, ds *dataset.Dataset) ([][]float64, error) {
	var out [][]float64
	for _, t := range terms {
		cols, err := termColumns(t, ds)
		if err != nil {
			return nil, err
		}
		out = append(out, cols...)
	}
	return out, nil
}

func termColumns(t Term, ds *dataset.Dataset) ([][]float64, error) {
	// dummies per factor for its non-reference levels
	perFactor := make([][][]float64, 0, len(t.Factors))
	for _, f := range t.Factors {
		labels, err := ds.FactorColumn(f)
		if err != nil {
			return nil, err
		}
		levels, err := ds.Levels(f)
		if err != nil {
			return nil, err
		}
		if len(levels) < 2 {
			return nil, core.NewInsufficientDataError(
				fmt.Sprintf("factor %q has %d distinct level(s)", f, len(levels)))
		}
		var dummies [][]float64
		for _, lv := range levels[1:] {
			col := make([]float64, len(labels))
			for i, lab := range labels {
				if lab == lv {
					col[i] = 1
				}
			}
			dummies = append(dummies, col)
		}
		perFactor = append(perFactor, dummies)
	}

	// cartesian product of the per-factor dummies
	cols := [][]float64{nil} // nil means the neutral (all-ones) column
	for _, dummies := range perFactor {
		var next [][]float64
		for _, base := range cols {
			for _, d := range dummies {
				next = append(next, multiply(base, d))
			}
		}
		cols = next
	}
	return cols, nil
}

// dropEmptyColumns removes all-zero dummy columns. These arise from
// factor-level combinations absent from the data; keeping them would make
// the design matrix rank deficient.
func dropEmptyColumns(cols [][]float64) [][]float64 {
	out := cols[:0]
	for _, col := range cols {
		zero := true
		for _, v := range col {
			if v != 0 {
				zero = false
				break
			}
		}
		if !zero {
			out = append(out, col)
		}
	}
	return out
}

func multiply(a, b []float64) []float64 {
	if a == nil {
		return append([]float64(nil), b...)
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}
