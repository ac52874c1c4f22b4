// Package datasets ships small classical experiments used by the test
// suite and the CLI demo. Every example carries enough metadata to
// construct its design without further input.
package datasets

import (
	"expdes/domain/dataset"
	"expdes/domain/design"
)

// Example is one built-in experiment: the data plus the column roles
// needed to analyze it.
type Example struct {
	Name        string
	Description string
	Kind        design.Kind

	Response  string
	Treatment string
	Block     string
	Row, Col  string
	Factors   []string
	MainPlot  string
	SubPlot   string

	Data *dataset.Dataset
}

// Design constructs the experiment's design from its metadata.
func (e Example) Design() (*design.Design, error) {
	switch e.Kind {
	case design.CRD:
		return design.NewCRD(e.Data, e.Response, e.Treatment)
	case design.RCBD:
		return design.NewRCBD(e.Data, e.Response, e.Treatment, e.Block)
	case design.LatinSquare:
		return design.NewLatinSquare(e.Data, e.Response, e.Treatment, e.Row, e.Col)
	case design.FactorialCRD:
		return design.NewFactorialCRD(e.Data, e.Response, e.Factors)
	case design.FactorialRCBD:
		return design.NewFactorialRCBD(e.Data, e.Response, e.Factors, e.Block)
	case design.SplitPlotCRD:
		return design.NewSplitPlotCRD(e.Data, e.Response, e.MainPlot, e.SubPlot)
	default:
		return design.NewSplitPlotRCBD(e.Data, e.Response, e.MainPlot, e.SubPlot, e.Block)
	}
}

// All returns every built-in example keyed by name.
func All() map[string]Example {
	examples := []Example{
		CornYield(),
		GoatMicronutrients(),
		SugarcaneLatinSquare(),
		NitrogenPhosphorusCRD(),
		NitrogenPhosphorusRCBD(),
		IrrigationLiming(),
		CultivarFertilizerCRD(),
		CultivarFertilizerRCBD(),
	}
	out := make(map[string]Example, len(examples))
	for _, e := range examples {
		out[e.Name] = e
	}
	return out
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// CornYield is a completely randomized experiment with 4 corn varieties
// and 5 replicates, response in sacks per hectare.
func CornYield() Example {
	var variety []string
	for _, v := range []string{"A", "B", "C", "D"} {
		variety = append(variety, repeat(v, 5)...)
	}
	data := dataset.NewBuilder().
		Factor("variety", variety).
		Numeric("yield", []float64{
			25, 26, 20, 23, 21,
			31, 25, 28, 27, 24,
			22, 26, 28, 25, 29,
			33, 29, 31, 34, 28,
		}).MustBuild()
	return Example{
		Name:        "corn",
		Description: "4 corn varieties in 20 completely randomized plots, 5 replicates each; yield in sacks/ha",
		Kind:        design.CRD,
		Response:    "yield",
		Treatment:   "variety",
		Data:        data,
	}
}

// GoatMicronutrients is a randomized complete block experiment: 5
// commercial supplements fed to goats grouped in 3 age blocks, response
// is blood micronutrient concentration in ppm.
func GoatMicronutrients() Example {
	data := dataset.NewBuilder().
		Factor("block", []string{"1", "1", "1", "1", "1", "2", "2", "2", "2", "2", "3", "3", "3", "3", "3"}).
		Factor("product", []string{"1", "2", "3", "4", "5", "1", "2", "3", "4", "5", "1", "2", "3", "4", "5"}).
		Numeric("ppm", []float64{
			83, 86, 103, 116, 132,
			63, 69, 79, 81, 98,
			55, 61, 79, 79, 91,
		}).MustBuild()
	return Example{
		Name:        "goats",
		Description: "5 supplements fed to goats in 3 age blocks; blood micronutrient concentration in ppm",
		Kind:        design.RCBD,
		Response:    "ppm",
		Treatment:   "product",
		Block:       "block",
		Data:        data,
	}
}

// SugarcaneLatinSquare is a 5x5 Latin square with 5 forage sugarcane
// varieties blocked by row and column position.
func SugarcaneLatinSquare() Example {
	cells := []struct {
		row, col, variety string
		yield             float64
	}{
		{"1", "1", "D", 432}, {"1", "2", "A", 518}, {"1", "3", "B", 458}, {"1", "4", "C", 583}, {"1", "5", "E", 331},
		{"2", "1", "C", 724}, {"2", "2", "E", 478}, {"2", "3", "A", 524}, {"2", "4", "B", 550}, {"2", "5", "D", 400},
		{"3", "1", "E", 489}, {"3", "2", "B", 384}, {"3", "3", "C", 556}, {"3", "4", "D", 297}, {"3", "5", "A", 420},
		{"4", "1", "B", 494}, {"4", "2", "D", 500}, {"4", "3", "E", 313}, {"4", "4", "A", 486}, {"4", "5", "C", 501},
		{"5", "1", "A", 515}, {"5", "2", "C", 660}, {"5", "3", "D", 438}, {"5", "4", "E", 394}, {"5", "5", "B", 318},
	}
	var rows, cols, varieties []string
	var yields []float64
	for _, c := range cells {
		rows = append(rows, c.row)
		cols = append(cols, c.col)
		varieties = append(varieties, c.variety)
		yields = append(yields, c.yield)
	}
	data := dataset.NewBuilder().
		Factor("row", rows).
		Factor("col", cols).
		Factor("variety", varieties).
		Numeric("yield", yields).MustBuild()
	return Example{
		Name:        "sugarcane",
		Description: "5 forage sugarcane varieties in a 5x5 Latin square",
		Kind:        design.LatinSquare,
		Response:    "yield",
		Treatment:   "variety",
		Row:         "row",
		Col:         "col",
		Data:        data,
	}
}

var npYield = []float64{
	10.5, 11.0, 9.8, 11.2, 9.9,
	11.2, 11.0, 10.4, 13.1, 10.6,
	11.5, 12.4, 10.2, 12.7, 10.4,
	14.0, 14.1, 13.8, 13.5, 14.2,
}

func npFactors() (n, p []string) {
	for _, nl := range []string{"0", "1"} {
		for _, pl := range []string{"0", "1"} {
			n = append(n, repeat(nl, 5)...)
			p = append(p, repeat(pl, 5)...)
		}
	}
	return n, p
}

// NitrogenPhosphorusCRD is a 2x2 factorial on a completely randomized
// layout: nitrogen and phosphorus each at a low (0) and high (1) dose,
// 5 replicates per combination.
func NitrogenPhosphorusCRD() Example {
	n, p := npFactors()
	data := dataset.NewBuilder().
		Factor("n", n).
		Factor("p", p).
		Numeric("yield", npYield).MustBuild()
	return Example{
		Name:        "np-crd",
		Description: "2x2 nitrogen x phosphorus factorial, completely randomized, 5 replicates per cell",
		Kind:        design.FactorialCRD,
		Response:    "yield",
		Factors:     []string{"n", "p"},
		Data:        data,
	}
}

// NitrogenPhosphorusRCBD is the same 2x2 factorial with the replicates
// arranged as 5 complete blocks.
func NitrogenPhosphorusRCBD() Example {
	n, p := npFactors()
	var block []string
	for i := 0; i < 4; i++ {
		for rep := 1; rep <= 5; rep++ {
			block = append(block, string(rune('0'+rep)))
		}
	}
	data := dataset.NewBuilder().
		Factor("block", block).
		Factor("n", n).
		Factor("p", p).
		Numeric("yield", npYield).MustBuild()
	return Example{
		Name:        "np-rcbd",
		Description: "2x2 nitrogen x phosphorus factorial in 5 complete blocks",
		Kind:        design.FactorialRCBD,
		Response:    "yield",
		Factors:     []string{"n", "p"},
		Block:       "block",
		Data:        data,
	}
}

// IrrigationLiming is a 2x2 factorial on a completely randomized layout:
// irrigation and liming each absent (0) or present (1), 3 replicates.
func IrrigationLiming() Example {
	data := dataset.NewBuilder().
		Factor("irrigation", []string{"0", "0", "0", "0", "0", "0", "1", "1", "1", "1", "1", "1"}).
		Factor("liming", []string{"0", "0", "0", "1", "1", "1", "0", "0", "0", "1", "1", "1"}).
		Numeric("yield", []float64{
			25, 32, 27, 35, 28, 33,
			41, 35, 38, 60, 67, 59,
		}).MustBuild()
	return Example{
		Name:        "irrigation",
		Description: "2x2 irrigation x liming factorial, completely randomized, 3 replicates per cell",
		Kind:        design.FactorialCRD,
		Response:    "yield",
		Factors:     []string{"irrigation", "liming"},
		Data:        data,
	}
}

// splitPlotCells are the cell means of the cultivar x fertilizer
// split-plot examples: cultivar is the main plot, fertilizer dose the
// subplot.
var splitPlotCells = map[[2]string][]float64{
	{"A", "0"}: {20.1, 20.3, 19.8},
	{"A", "1"}: {22.5, 23.0, 22.1},
	{"A", "2"}: {24.8, 25.0, 24.5},
	{"B", "0"}: {19.5, 18.9, 19.8},
	{"B", "1"}: {21.0, 20.7, 21.3},
	{"B", "2"}: {22.0, 21.9, 22.4},
}

// CultivarFertilizerCRD is a split-plot experiment on a completely
// randomized layout: 2 cultivars as main plots, 3 fertilizer doses as
// subplots, 3 replicates.
func CultivarFertilizerCRD() Example {
	var cultivar, fertilizer []string
	var yield []float64
	for _, c := range []string{"A", "B"} {
		for _, f := range []string{"0", "1", "2"} {
			obs := splitPlotCells[[2]string{c, f}]
			cultivar = append(cultivar, repeat(c, len(obs))...)
			fertilizer = append(fertilizer, repeat(f, len(obs))...)
			yield = append(yield, obs...)
		}
	}
	data := dataset.NewBuilder().
		Factor("cultivar", cultivar).
		Factor("fertilizer", fertilizer).
		Numeric("yield", yield).MustBuild()
	return Example{
		Name:        "splitplot-crd",
		Description: "2 cultivars (main plot) x 3 fertilizer doses (subplot), completely randomized, 3 replicates",
		Kind:        design.SplitPlotCRD,
		Response:    "yield",
		MainPlot:    "cultivar",
		SubPlot:     "fertilizer",
		Data:        data,
	}
}

// CultivarFertilizerRCBD is the blocked variant: each replicate forms
// one complete block.
func CultivarFertilizerRCBD() Example {
	var block, cultivar, fertilizer []string
	var yield []float64
	for rep := 0; rep < 3; rep++ {
		for _, c := range []string{"A", "B"} {
			for _, f := range []string{"0", "1", "2"} {
				block = append(block, string(rune('1'+rep)))
				cultivar = append(cultivar, c)
				fertilizer = append(fertilizer, f)
				yield = append(yield, splitPlotCells[[2]string{c, f}][rep])
			}
		}
	}
	data := dataset.NewBuilder().
		Factor("block", block).
		Factor("cultivar", cultivar).
		Factor("fertilizer", fertilizer).
		Numeric("yield", yield).MustBuild()
	return Example{
		Name:        "splitplot-rcbd",
		Description: "2 cultivars (main plot) x 3 fertilizer doses (subplot) in 3 complete blocks",
		Kind:        design.SplitPlotRCBD,
		Response:    "yield",
		MainPlot:    "cultivar",
		SubPlot:     "fertilizer",
		Block:       "block",
		Data:        data,
	}
}
