package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"expdes/adapters/tablefile"
	"expdes/app"
	"expdes/datasets"
	"expdes/domain/design"
	"expdes/internal/errors"
)

func runDemo(cmd *cobra.Command, args []string) error {
	name := "corn"
	if len(args) == 1 {
		name = args[0]
	}

	all := datasets.All()
	ex, ok := all[name]
	if !ok {
		names := make([]string, 0, len(all))
		for n := range all {
			names = append(names, n)
		}
		sort.Strings(names)
		return errors.NotFound(fmt.Sprintf("dataset %q (available: %s)", name, strings.Join(names, ", ")))
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	result, err := svc.Analyze(app.AnalysisRequest{
		Name:       ex.Name,
		Kind:       ex.Kind,
		Data:       ex.Data,
		Response:   ex.Response,
		Treatment:  ex.Treatment,
		Block:      ex.Block,
		Row:        ex.Row,
		Col:        ex.Col,
		Factors:    ex.Factors,
		MainPlot:   ex.MainPlot,
		SubPlot:    ex.SubPlot,
		Alpha:      flagAlpha,
		PostHoc:    flagPostHoc,
		HTMLReport: flagHTML,
	})
	if err != nil {
		return err
	}
	printReport(cmd, result)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := tablefile.NewReader(flagFile).Read()
	if err != nil {
		return err
	}
	for _, col := range append(designColumns(), flagFactorize...) {
		if col == "" || col == flagResponse {
			continue
		}
		if err := data.Factorize(col); err != nil {
			return errors.Wrapf(err, "cannot treat %q as a factor", col)
		}
	}

	kind, err := parseKind(flagDesign)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	result, err := svc.Analyze(app.AnalysisRequest{
		Name:           flagFile,
		Kind:           kind,
		Data:           data,
		Response:       flagResponse,
		Treatment:      flagTreatment,
		Block:          flagBlock,
		Row:            flagRow,
		Col:            flagCol,
		Factors:        flagFactors,
		MainPlot:       flagMainPlot,
		SubPlot:        flagSubPlot,
		Alpha:          flagAlpha,
		PostHoc:        flagPostHoc,
		MaxInteraction: flagMaxInteraction,
		HTMLReport:     flagHTML,
	})
	if err != nil {
		return err
	}
	printReport(cmd, result)
	return nil
}

// designColumns lists every column the flags declare as categorical.
func designColumns() []string {
	cols := []string{flagTreatment, flagBlock, flagRow, flagCol, flagMainPlot, flagSubPlot}
	return append(cols, flagFactors...)
}

func parseKind(name string) (design.Kind, error) {
	kinds := []design.Kind{
		design.CRD, design.RCBD, design.LatinSquare,
		design.FactorialCRD, design.FactorialRCBD,
		design.SplitPlotCRD, design.SplitPlotRCBD,
	}
	for _, k := range kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, errors.InvalidInput(fmt.Sprintf("unknown design %q", name))
}

func printReport(cmd *cobra.Command, result *app.AnalysisResult) {
	if result.HTML != nil {
		cmd.Print(string(result.HTML))
		return
	}
	cmd.Print(result.Markdown)
}
