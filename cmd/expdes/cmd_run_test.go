package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expdes/domain/design"
)

func TestParseKind(t *testing.T) {
	k, err := parseKind("split-plot-rcbd")
	require.NoError(t, err)
	assert.Equal(t, design.SplitPlotRCBD, k)

	_, err = parseKind("nested")
	assert.Error(t, err)
}

func TestDemoCommandPrintsReport(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"demo", "corn"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "# Analysis of corn")
	assert.Contains(t, out.String(), "## ANOVA")
}

func TestDemoCommandUnknownDataset(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"demo", "wheat"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available:")
}
