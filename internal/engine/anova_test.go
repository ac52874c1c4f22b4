package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expdes/domain/anova"
	"expdes/domain/core"
	"expdes/domain/dataset"
)

func cornYield() *dataset.Dataset {
	var variety []string
	for _, v := range []string{"A", "B", "C", "D"} {
		for i := 0; i < 5; i++ {
			variety = append(variety, v)
		}
	}
	return dataset.NewBuilder().
		Factor("variety", variety).
		Numeric("yield", []float64{
			25, 26, 20, 23, 21,
			31, 25, 28, 27, 24,
			22, 26, 28, 25, 29,
			33, 29, 31, 34, 28,
		}).MustBuild()
}

func goatMicronutrients() *dataset.Dataset {
	return dataset.NewBuilder().
		Factor("block", []string{"1", "1", "1", "1", "1", "2", "2", "2", "2", "2", "3", "3", "3", "3", "3"}).
		Factor("product", []string{"1", "2", "3", "4", "5", "1", "2", "3", "4", "5", "1", "2", "3", "4", "5"}).
		Numeric("ppm", []float64{
			83, 86, 103, 116, 132,
			63, 69, 79, 81, 98,
			55, 61, 79, 79, 91,
		}).MustBuild()
}

func nitrogenPhosphorus() *dataset.Dataset {
	var n, p []string
	for i := 0; i < 10; i++ {
		n = append(n, "0")
	}
	for i := 0; i < 10; i++ {
		n = append(n, "1")
	}
	for rep := 0; rep < 2; rep++ {
		for i := 0; i < 5; i++ {
			p = append(p, "0")
		}
		for i := 0; i < 5; i++ {
			p = append(p, "1")
		}
	}
	return dataset.NewBuilder().
		Factor("n", n).
		Factor("p", p).
		Numeric("yield", []float64{
			10.5, 11.0, 9.8, 11.2, 9.9,
			11.2, 11.0, 10.4, 13.1, 10.6,
			11.5, 12.4, 10.2, 12.7, 10.4,
			14.0, 14.1, 13.8, 13.5, 14.2,
		}).MustBuild()
}

func TestAnovaOneWayCornYield(t *testing.T) {
	tbl, model, err := AnovaTypeII("yield ~ C(variety)", cornYield())
	require.NoError(t, err)

	row, ok := tbl.Row("variety")
	require.True(t, ok)
	assert.Equal(t, 3, row.DF)
	assert.InDelta(t, 7.79, row.F, 0.01)
	assert.Less(t, row.PValue, 0.05)
	assert.Equal(t, anova.MarkerModerate, row.Signif)

	resid, ok := tbl.Row(anova.ResidualTerm)
	require.True(t, ok)
	assert.Equal(t, 16, resid.DF)
	assert.True(t, math.IsNaN(resid.F))
	assert.Equal(t, anova.MarkerBlank, resid.Signif)

	assert.Equal(t, 20, model.N)
	assert.Equal(t, 16, model.DFResid)
}

func TestAnovaRCBDGoats(t *testing.T) {
	tbl, _, err := AnovaTypeII("ppm ~ C(product) + C(block)", goatMicronutrients())
	require.NoError(t, err)

	row, ok := tbl.Row("product")
	require.True(t, ok)
	assert.Equal(t, 4, row.DF)
	assert.InDelta(t, 33.58, row.F, 0.1)
	assert.Equal(t, anova.MarkerStrong, row.Signif)

	block, ok := tbl.Row("block")
	require.True(t, ok)
	assert.Equal(t, 2, block.DF)
}

func TestAnovaFactorialInteraction(t *testing.T) {
	tbl, _, err := AnovaTypeII("yield ~ C(n)*C(p)", nitrogenPhosphorus())
	require.NoError(t, err)

	row, ok := tbl.Row("n:p")
	require.True(t, ok)
	assert.Equal(t, 1, row.DF)
	assert.InDelta(t, 4.95, row.F, 0.1)
	assert.Less(t, row.PValue, 0.05)
}

func TestAnovaMissingCellShrinksInteractionDF(t *testing.T) {
	// 3x2 factorial with the (o3, y) cell absent: the interaction keeps
	// only the estimable column and the fit still goes through.
	ds := dataset.NewBuilder().
		Factor("g", []string{
			"o1", "o1", "o1", "o1", "o1", "o1",
			"o2", "o2", "o2", "o2", "o2", "o2",
			"o3", "o3", "o3",
		}).
		Factor("t", []string{
			"x", "x", "x", "y", "y", "y",
			"x", "x", "x", "y", "y", "y",
			"x", "x", "x",
		}).
		Numeric("yield", []float64{
			10.0, 10.5, 9.5, 10.2, 9.8, 10.1,
			10.1, 9.9, 10.3, 20.0, 20.4, 19.6,
			10.0, 10.2, 9.8,
		}).MustBuild()

	tbl, model, err := AnovaTypeII("yield ~ C(g)*C(t)", ds)
	require.NoError(t, err)
	assert.Equal(t, 5, model.NumParams)
	assert.Equal(t, 10, model.DFResid)

	row, ok := tbl.Row("g:t")
	require.True(t, ok)
	assert.Equal(t, 1, row.DF)
	assert.Less(t, row.PValue, 0.001)
}

func TestAnovaIdempotent(t *testing.T) {
	ds := cornYield()
	t1, _, err := AnovaTypeII("yield ~ C(variety)", ds)
	require.NoError(t, err)
	t2, _, err := AnovaTypeII("yield ~ C(variety)", ds)
	require.NoError(t, err)
	r1, _ := t1.Row("variety")
	r2, _ := t2.Row("variety")
	assert.Equal(t, r1.F, r2.F)
	assert.Equal(t, r1.SumSq, r2.SumSq)
	assert.Equal(t, r1.PValue, r2.PValue)
}

func TestAnovaSaturatedModel(t *testing.T) {
	ds := dataset.NewBuilder().
		Factor("a", []string{"x", "y"}).
		Numeric("v", []float64{1, 2}).
		MustBuild()
	_, _, err := AnovaTypeII("v ~ C(a)", ds)
	require.Error(t, err)
	assert.True(t, core.IsInsufficientData(err))
}

func TestAnovaMissingColumn(t *testing.T) {
	_, _, err := AnovaTypeII("yield ~ C(nope)", cornYield())
	assert.Error(t, err)
}
