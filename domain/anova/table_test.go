package anova

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want string
	}{
		{"undefined", math.NaN(), MarkerBlank},
		{"zero", 0, MarkerStrong},
		{"just under 0.001", 0.0009999, MarkerStrong},
		{"exactly 0.001", 0.001, MarkerModerate},
		{"just under 0.01", 0.0099, MarkerModerate},
		{"exactly 0.01", 0.01, MarkerWeak},
		{"just under 0.05", 0.0499999, MarkerWeak},
		{"exactly 0.05", 0.05, MarkerNone},
		{"one", 1.0, MarkerNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.p))
		})
	}
}

func TestClassifyTotal(t *testing.T) {
	known := map[string]bool{
		MarkerStrong: true, MarkerModerate: true, MarkerWeak: true,
		MarkerNone: true, MarkerBlank: true,
	}
	for p := 0.0; p <= 1.0; p += 0.001 {
		assert.True(t, known[Classify(p)], "p=%v", p)
	}
	assert.True(t, known[Classify(math.NaN())])
}

func TestHighestOrderInteraction(t *testing.T) {
	tbl := &Table{Rows: []Row{
		{Term: "a"}, {Term: "b"}, {Term: "c"},
		{Term: "a:b"}, {Term: "a:c"}, {Term: "a:b:c"},
		{Term: ResidualTerm},
	}}
	term, ok := tbl.HighestOrderInteraction()
	assert.True(t, ok)
	assert.Equal(t, "a:b:c", term)
	assert.Equal(t, []string{"a", "b", "c"}, TermFactors(term))
}

func TestHighestOrderInteractionAbsent(t *testing.T) {
	tbl := &Table{Rows: []Row{{Term: "trat"}, {Term: ResidualTerm}}}
	_, ok := tbl.HighestOrderInteraction()
	assert.False(t, ok)
	assert.Empty(t, tbl.InteractionTerms())
}
