// expdes analyzes classical experimental designs: one-way and blocked
// layouts, Latin squares, factorials and split plots, with ANOVA,
// assumption checks, post hoc comparisons and interaction unfolding.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"expdes/app"
	"expdes/internal"
	"expdes/internal/config"
)

var (
	flagFile           string
	flagDesign         string
	flagResponse       string
	flagTreatment      string
	flagBlock          string
	flagRow            string
	flagCol            string
	flagFactors        []string
	flagMainPlot       string
	flagSubPlot        string
	flagFactorize      []string
	flagAlpha          float64
	flagPostHoc        string
	flagMaxInteraction int
	flagHTML           bool

	rootCmd = &cobra.Command{
		Use:   "expdes",
		Short: "Analysis of classical experimental designs",
		Long: `expdes fits ANOVA models for completely randomized, blocked,
Latin square, factorial and split-plot experiments, checks the model
assumptions and localizes treatment differences with post hoc tests
and compact letter displays.`,
	}

	demoCmd = &cobra.Command{
		Use:   "demo [dataset]",
		Short: "Analyze a built-in example dataset end to end",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDemo,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an experiment from a .csv or .xlsx file",
		RunE:  runAnalyze,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagAlpha, "alpha", 0, "significance level (default from EXPDES_ALPHA or 0.05)")
	rootCmd.PersistentFlags().StringVar(&flagPostHoc, "posthoc", "", "post hoc test: tukey or ttest (default from EXPDES_POSTHOC)")
	rootCmd.PersistentFlags().BoolVar(&flagHTML, "html", false, "render the report as HTML instead of markdown")

	analyzeCmd.Flags().StringVar(&flagFile, "file", "", "input table, .csv or .xlsx (required)")
	analyzeCmd.Flags().StringVar(&flagDesign, "design", "crd", "design: crd, rcbd, latin-square, factorial-crd, factorial-rcbd, split-plot-crd, split-plot-rcbd")
	analyzeCmd.Flags().StringVar(&flagResponse, "response", "", "response column (required)")
	analyzeCmd.Flags().StringVar(&flagTreatment, "treatment", "", "treatment column (crd, rcbd, latin-square)")
	analyzeCmd.Flags().StringVar(&flagBlock, "block", "", "block column")
	analyzeCmd.Flags().StringVar(&flagRow, "row", "", "row blocking column (latin-square)")
	analyzeCmd.Flags().StringVar(&flagCol, "col", "", "column blocking column (latin-square)")
	analyzeCmd.Flags().StringSliceVar(&flagFactors, "factors", nil, "factor columns (factorial designs)")
	analyzeCmd.Flags().StringVar(&flagMainPlot, "main-plot", "", "main plot column (split-plot designs)")
	analyzeCmd.Flags().StringVar(&flagSubPlot, "sub-plot", "", "subplot column (split-plot designs)")
	analyzeCmd.Flags().StringSliceVar(&flagFactorize, "factorize", nil, "numeric columns to treat as factors")
	analyzeCmd.Flags().IntVar(&flagMaxInteraction, "max-interaction", 0, "cap factorial interaction order (0 = full)")
	_ = analyzeCmd.MarkFlagRequired("file")
	_ = analyzeCmd.MarkFlagRequired("response")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// newService wires the shared config and logger into an analysis service.
func newService() (*app.AnalysisService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := internal.NewLogger(internal.ParseLevel(cfg.LogLevel))
	return app.NewAnalysisService(cfg, logger), nil
}
