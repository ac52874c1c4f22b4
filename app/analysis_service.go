// Package app orchestrates full analyses: design construction, assumption
// checks, interaction unfolding and report rendering.
package app

import (
	"fmt"
	"time"

	"expdes/domain/anova"
	"expdes/domain/core"
	"expdes/domain/dataset"
	"expdes/domain/design"
	"expdes/internal"
	"expdes/internal/config"
	"expdes/internal/errors"
	"expdes/report"
)

// AnalysisService runs experiments end to end.
type AnalysisService struct {
	cfg    *config.Config
	logger *internal.Logger
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(cfg *config.Config, logger *internal.Logger) *AnalysisService {
	return &AnalysisService{cfg: cfg, logger: logger}
}

// AnalysisRequest defines one experiment to analyze. Zero-valued Alpha
// and empty PostHoc fall back to the configured defaults.
type AnalysisRequest struct {
	Name string
	Kind design.Kind
	Data *dataset.Dataset

	Response  string
	Treatment string
	Block     string
	Row, Col  string
	Factors   []string
	MainPlot  string
	SubPlot   string

	Alpha          float64
	PostHoc        string
	MaxInteraction int
	HTMLReport     bool
}

// AnalysisResult carries everything one run produced.
type AnalysisResult struct {
	RunID       core.AnalysisID
	Design      *design.Design
	Anova       *anova.Table
	Assumptions *design.Assumptions
	Unfold      *design.UnfoldResult
	Markdown    string
	HTML        []byte
	RuntimeMs   int64
}

// Analyze builds the requested design, checks its assumptions, unfolds
// its treatment structure and renders the report.
func (s *AnalysisService) Analyze(req AnalysisRequest) (*AnalysisResult, error) {
	startTime := time.Now()
	runID := core.AnalysisID(core.NewID())

	alpha := req.Alpha
	if alpha == 0 {
		alpha = s.cfg.Alpha
	}
	posthocName := req.PostHoc
	if posthocName == "" {
		posthocName = s.cfg.PostHoc
	}

	d, err := s.buildDesign(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build design")
	}
	s.logger.Info("run %s: %s design, model %s, alpha=%.3f", runID, d.Kind(), d.Formula(), alpha)

	// Assumption checks inform the report but never block the analysis.
	assumptions, err := d.CheckAssumptions(alpha)
	if err != nil {
		s.logger.Warn("run %s: assumption checks unavailable: %v", runID, err)
		assumptions = nil
	}

	unfold, err := d.UnfoldInteractions(alpha, posthocName, req.MaxInteraction)
	if err != nil {
		return nil, errors.Wrap(err, "analysis failed")
	}

	result := &AnalysisResult{
		RunID:       runID,
		Design:      d,
		Anova:       unfold.Anova,
		Assumptions: assumptions,
		Unfold:      unfold,
	}
	result.Markdown = s.renderMarkdown(req, d, result)
	if req.HTMLReport {
		result.HTML = report.HTML(result.Markdown)
	}
	result.RuntimeMs = time.Since(startTime).Milliseconds()
	return result, nil
}

func (s *AnalysisService) buildDesign(req AnalysisRequest) (*design.Design, error) {
	switch req.Kind {
	case design.CRD:
		return design.NewCRD(req.Data, req.Response, req.Treatment)
	case design.RCBD:
		return design.NewRCBD(req.Data, req.Response, req.Treatment, req.Block)
	case design.LatinSquare:
		return design.NewLatinSquare(req.Data, req.Response, req.Treatment, req.Row, req.Col)
	case design.FactorialCRD:
		return design.NewFactorialCRD(req.Data, req.Response, req.Factors)
	case design.FactorialRCBD:
		return design.NewFactorialRCBD(req.Data, req.Response, req.Factors, req.Block)
	case design.SplitPlotCRD:
		return design.NewSplitPlotCRD(req.Data, req.Response, req.MainPlot, req.SubPlot)
	case design.SplitPlotRCBD:
		return design.NewSplitPlotRCBD(req.Data, req.Response, req.MainPlot, req.SubPlot, req.Block)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown design kind %d", req.Kind))
	}
}

func (s *AnalysisService) renderMarkdown(req AnalysisRequest, d *design.Design, result *AnalysisResult) string {
	title := req.Name
	if title == "" {
		title = d.Kind().String()
	}
	md := fmt.Sprintf("# Analysis of %s\n\nRun %s, %s design, model `%s`.\n\n",
		title, result.RunID, d.Kind(), d.Formula())
	if result.Assumptions != nil {
		md += "## Assumptions\n\n" + report.Assumptions(result.Assumptions) + "\n"
	}
	return md + report.Unfold(result.Unfold)
}
