package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expdes/datasets"
	"expdes/domain/design"
	"expdes/internal"
	"expdes/internal/config"
)

func newService() *AnalysisService {
	cfg := &config.Config{Alpha: 0.05, PostHoc: "tukey"}
	return NewAnalysisService(cfg, internal.NewLogger(internal.LogLevelError))
}

func requestFor(ex datasets.Example) AnalysisRequest {
	return AnalysisRequest{
		Name:      ex.Name,
		Kind:      ex.Kind,
		Data:      ex.Data,
		Response:  ex.Response,
		Treatment: ex.Treatment,
		Block:     ex.Block,
		Row:       ex.Row,
		Col:       ex.Col,
		Factors:   ex.Factors,
		MainPlot:  ex.MainPlot,
		SubPlot:   ex.SubPlot,
	}
}

func TestAnalyzeCornEndToEnd(t *testing.T) {
	svc := newService()

	res, err := svc.Analyze(requestFor(datasets.CornYield()))
	require.NoError(t, err)

	assert.NotEmpty(t, string(res.RunID))
	require.NotNil(t, res.Anova)
	assert.True(t, res.Anova.HasTerm("variety"))
	require.NotNil(t, res.Assumptions)
	require.NotNil(t, res.Unfold)
	assert.Contains(t, res.Unfold.MainEffects, "variety")

	assert.Contains(t, res.Markdown, "# Analysis of corn")
	assert.Contains(t, res.Markdown, "## Assumptions")
	assert.Contains(t, res.Markdown, "## ANOVA")
	assert.Nil(t, res.HTML)
}

func TestAnalyzeFactorialWithHTML(t *testing.T) {
	svc := newService()
	req := requestFor(datasets.NitrogenPhosphorusCRD())
	req.HTMLReport = true

	res, err := svc.Analyze(req)
	require.NoError(t, err)

	assert.NotEmpty(t, res.Unfold.Interactions)
	assert.Contains(t, string(res.HTML), "<table>")
}

func TestAnalyzeEveryBuiltinDataset(t *testing.T) {
	svc := newService()
	for name, ex := range datasets.All() {
		t.Run(name, func(t *testing.T) {
			res, err := svc.Analyze(requestFor(ex))
			require.NoError(t, err)
			assert.NotEmpty(t, res.Markdown)
		})
	}
}

func TestAnalyzeRejectsUnknownKind(t *testing.T) {
	svc := newService()
	req := requestFor(datasets.CornYield())
	req.Kind = design.Kind(99)

	_, err := svc.Analyze(req)
	assert.Error(t, err)
}

func TestAnalyzeUsesRequestAlpha(t *testing.T) {
	svc := newService()
	req := requestFor(datasets.NitrogenPhosphorusCRD())

	// At a stricter alpha the interaction (p ~= 0.04) is not significant,
	// so unfolding reports main effects instead.
	req.Alpha = 0.01
	res, err := svc.Analyze(req)
	require.NoError(t, err)
	assert.Nil(t, res.Unfold.Interactions)
	assert.NotEmpty(t, res.Unfold.MainEffects)
}
