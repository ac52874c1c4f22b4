package posthoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestFactoryResolvesCaseInsensitive(t *testing.T) {
	for _, name := range []string{"tukey", "Tukey", "TUKEY"} {
		s, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, "p-adj", s.PValueField())
	}
	s, err := New("ttest")
	require.NoError(t, err)
	assert.Equal(t, "p-value", s.PValueField())
}

func TestFactoryRejectsUnknown(t *testing.T) {
	_, err := New("duncan")
	require.Error(t, err)
	assert.True(t, core.IsUnsupportedTest(err))
}

func TestTukeyCornYield(t *testing.T) {
	s := &TukeyHSD{}
	set, err := s.Run(cornYield(), "yield", "variety", 0.05)
	require.NoError(t, err)
	assert.Len(t, set, 6)

	// A (mean 23) vs D (mean 31) is clearly separated.
	ad, ok := set.Lookup("A", "D")
	require.True(t, ok)
	assert.True(t, ad.Reject)
	assert.InDelta(t, 8.0, ad.MeanDiff, 1e-9)

	// B (27) vs C (26) is not.
	bc, ok := set.Lookup("B", "C")
	require.True(t, ok)
	assert.False(t, bc.Reject)
	assert.Greater(t, bc.PValue, 0.05)
}

func TestLookupIsSymmetric(t *testing.T) {
	s := &TukeyHSD{}
	set, err := s.Run(cornYield(), "yield", "variety", 0.05)
	require.NoError(t, err)
	for _, c := range set {
		fwd, ok1 := set.Lookup(c.GroupA, c.GroupB)
		rev, ok2 := set.Lookup(c.GroupB, c.GroupA)
		assert.True(t, ok1)
		assert.True(t, ok2)
		assert.Equal(t, fwd, rev)
	}
	_, ok := set.Lookup("A", "Z")
	assert.False(t, ok)
}

func TestTukeyInsufficientGroups(t *testing.T) {
	ds := dataset.NewBuilder().
		Factor("g", []string{"A", "A", "A"}).
		Numeric("y", []float64{1, 2, 3}).
		MustBuild()
	_, err := (&TukeyHSD{}).Run(ds, "y", "g", 0.05)
	require.Error(t, err)
	assert.True(t, core.IsInsufficientData(err))
}

func TestTukeySingletonGroup(t *testing.T) {
	ds := dataset.NewBuilder().
		Factor("g", []string{"A", "A", "B"}).
		Numeric("y", []float64{1, 2, 3}).
		MustBuild()
	_, err := (&TukeyHSD{}).Run(ds, "y", "g", 0.05)
	require.Error(t, err)
	assert.True(t, core.IsInsufficientData(err))
}

func TestPairwiseTTestCornYield(t *testing.T) {
	s := &PairwiseTTest{EqualVar: true}
	set, err := s.Run(cornYield(), "yield", "variety", 0.05)
	require.NoError(t, err)
	assert.Len(t, set, 6)

	ad, ok := set.Lookup("A", "D")
	require.True(t, ok)
	assert.True(t, ad.Reject)
	assert.InDelta(t, -8.0, ad.MeanDiff, 1e-9)
	// Unadjusted pairwise p is at most the single-step adjusted one.
	tukeySet, err := (&TukeyHSD{}).Run(cornYield(), "yield", "variety", 0.05)
	require.NoError(t, err)
	tkAD, _ := tukeySet.Lookup("A", "D")
	assert.LessOrEqual(t, ad.PValue, tkAD.PValue)
}

func TestGroupsFirstSeenOrder(t *testing.T) {
	set := Set{
		{GroupA: "B", GroupB: "A"},
		{GroupA: "B", GroupB: "C"},
	}
	assert.Equal(t, []string{"B", "A", "C"}, set.Groups())
}
