package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Dataset {
	return NewBuilder().
		Factor("trat", []string{"A", "A", "B", "B", "C", "C"}).
		Factor("block", []string{"1", "2", "1", "2", "1", "2"}).
		Numeric("y", []float64{10, 11, 14, 15, 20, 21}).
		MustBuild()
}

func TestBuilderRejectsLengthMismatch(t *testing.T) {
	_, err := NewBuilder().
		Factor("trat", []string{"A", "B"}).
		Numeric("y", []float64{1, 2, 3}).
		Build()
	require.Error(t, err)
}

func TestBuilderRejectsDuplicateColumn(t *testing.T) {
	_, err := NewBuilder().
		Factor("trat", []string{"A"}).
		Numeric("trat", []float64{1}).
		Build()
	require.Error(t, err)
}

func TestLevelsSortedDistinct(t *testing.T) {
	ds := sample()
	levels, err := ds.Levels("trat")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, levels)
}

func TestFilterKeepsMatchingRows(t *testing.T) {
	ds := sample()
	sub, err := ds.Filter("trat", "B")
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NumRows())
	y, err := sub.NumericColumn("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{14, 15}, y)
}

func TestCopyIsIndependent(t *testing.T) {
	ds := sample()
	cp := ds.Copy()
	require.NoError(t, cp.Rename("trat", "trat_"))
	assert.True(t, ds.HasColumn("trat"))
	assert.False(t, ds.HasColumn("trat_"))
	assert.True(t, cp.HasColumn("trat_"))
}

func TestRenamePreservesOrderAndData(t *testing.T) {
	ds := sample()
	require.NoError(t, ds.Rename("block", "block_"))
	assert.Equal(t, []string{"trat", "block_", "y"}, ds.Columns())
	col, err := ds.FactorColumn("block_")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "1", "2", "1", "2"}, col)
}

func TestCombinedFactorJoinsLabels(t *testing.T) {
	ds := sample()
	labels, err := ds.CombinedFactor("trat", "block")
	require.NoError(t, err)
	assert.Equal(t, []string{"A/1", "A/2", "B/1", "B/2", "C/1", "C/2"}, labels)
}

func TestGroupBySplitsValues(t *testing.T) {
	ds := sample()
	groups, err := ds.GroupBy("y", "trat")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 21}, groups["C"])
	assert.Len(t, groups, 3)
}

func TestFactorizeConvertsNumericColumn(t *testing.T) {
	ds := NewBuilder().
		Numeric("dose", []float64{0, 1, 2, 0, 1, 2}).
		Numeric("y", []float64{10, 12, 15, 11, 13, 14}).
		MustBuild()

	require.NoError(t, ds.Factorize("dose"))
	assert.True(t, ds.IsFactor("dose"))
	assert.Equal(t, []string{"dose", "y"}, ds.Columns())

	levels, err := ds.Levels("dose")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, levels)

	// Already a factor: no-op. Missing: error.
	require.NoError(t, ds.Factorize("dose"))
	assert.Error(t, ds.Factorize("nope"))
}

func TestMissingColumnErrors(t *testing.T) {
	ds := sample()
	_, err := ds.Levels("nope")
	assert.Error(t, err)
	_, err = ds.NumericColumn("trat")
	assert.Error(t, err)
	_, err = ds.Filter("y", "10")
	assert.Error(t, err)
}
