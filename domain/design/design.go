// Package design models the classical experimental designs (CRD, RCBD,
// Latin square, factorial, split-plot) as formula-generating values and
// orchestrates fitting, assumption checking, post hoc comparison and
// interaction unfolding on top of the regression engine.
package design

import (
	"fmt"
	"strings"

	"expdes/domain/anova"
	"expdes/domain/core"
	"expdes/domain/dataset"
	"expdes/internal/engine"
)

// Kind tags the closed set of supported designs.
type Kind int

const (
	CRD Kind = iota
	RCBD
	LatinSquare
	FactorialCRD
	FactorialRCBD
	SplitPlotCRD
	SplitPlotRCBD
)

func (k Kind) String() string {
	switch k {
	case CRD:
		return "crd"
	case RCBD:
		return "rcbd"
	case LatinSquare:
		return "latin-square"
	case FactorialCRD:
		return "factorial-crd"
	case FactorialRCBD:
		return "factorial-rcbd"
	case SplitPlotCRD:
		return "split-plot-crd"
	case SplitPlotRCBD:
		return "split-plot-rcbd"
	default:
		return "unknown"
	}
}

// reservedTokens are column names that clash with formula syntax and are
// renamed (underscore suffix) at construction.
var reservedTokens = map[string]bool{
	"C": true, "I": true, "Q": true, "T": true,
	"center": true, "scale": true, "standardize": true,
}

// Design is one experimental design bound to a private copy of its
// dataset. Immutable after construction.
type Design struct {
	kind     Kind
	data     *dataset.Dataset
	response string

	treatment string // CRD, RCBD, LatinSquare
	block     string // RCBD, FactorialRCBD, SplitPlotRCBD
	row, col  string // LatinSquare
	factors   []string
	mainPlot  string
	subPlot   string
}

// NewCRD builds a completely randomized design.
func NewCRD(ds *dataset.Dataset, response, treatment string) (*Design, error) {
	d := &Design{kind: CRD, response: response, treatment: treatment}
	return d.init(ds)
}

// NewRCBD builds a randomized complete block design.
func NewRCBD(ds *dataset.Dataset, response, treatment, block string) (*Design, error) {
	d := &Design{kind: RCBD, response: response, treatment: treatment, block: block}
	return d.init(ds)
}

// NewLatinSquare builds a Latin square design with row and column blocking.
func NewLatinSquare(ds *dataset.Dataset, response, treatment, row, col string) (*Design, error) {
	d := &Design{kind: LatinSquare, response: response, treatment: treatment, row: row, col: col}
	return d.init(ds)
}

// NewFactorialCRD builds a factorial experiment on a completely randomized
// layout.
func NewFactorialCRD(ds *dataset.Dataset, response string, factors []string) (*Design, error) {
	if len(factors) < 2 {
		return nil, fmt.Errorf("factorial design needs at least 2 factors, got %d", len(factors))
	}
	d := &Design{kind: FactorialCRD, response: response, factors: append([]string(nil), factors...)}
	return d.init(ds)
}

// NewFactorialRCBD builds a factorial experiment on randomized complete
// blocks.
func NewFactorialRCBD(ds *dataset.Dataset, response string, factors []string, block string) (*Design, error) {
	if len(factors) < 2 {
		return nil, fmt.Errorf("factorial design needs at least 2 factors, got %d", len(factors))
	}
	d := &Design{kind: FactorialRCBD, response: response, factors: append([]string(nil), factors...), block: block}
	return d.init(ds)
}

// NewSplitPlotCRD builds a split-plot experiment on a completely
// randomized layout.
func NewSplitPlotCRD(ds *dataset.Dataset, response, mainPlot, subPlot string) (*Design, error) {
	d := &Design{kind: SplitPlotCRD, response: response, mainPlot: mainPlot, subPlot: subPlot}
	return d.init(ds)
}

// NewSplitPlotRCBD builds a split-plot experiment with blocks.
func NewSplitPlotRCBD(ds *dataset.Dataset, response, mainPlot, subPlot, block string) (*Design, error) {
	d := &Design{kind: SplitPlotRCBD, response: response, mainPlot: mainPlot, subPlot: subPlot, block: block}
	return d.init(ds)
}

// init copies the caller's dataset and sanitizes every referenced column
// name before any formula can be built.
func (d *Design) init(ds *dataset.Dataset) (*Design, error) {
	if ds == nil || ds.NumRows() == 0 {
		return nil, core.NewInsufficientDataError("design needs a non-empty dataset")
	}
	d.data = ds.Copy()

	refs := d.columnRefs()
	for _, ref := range refs {
		if *ref == "" {
			continue
		}
		if !d.data.HasColumn(*ref) {
			return nil, core.NewColumnNotFoundError(*ref)
		}
	}

	// Rename each distinct reserved column once, then remap every field
	// that referenced it.
	renamed := make(map[string]string)
	for _, ref := range refs {
		name := *ref
		if name == "" || !reservedTokens[name] {
			continue
		}
		if _, done := renamed[name]; done {
			continue
		}
		safe := name
		for reservedTokens[safe] || (safe != name && d.data.HasColumn(safe)) {
			safe += "_"
		}
		if err := d.data.Rename(name, safe); err != nil {
			return nil, err
		}
		renamed[name] = safe
	}
	for _, ref := range refs {
		if safe, ok := renamed[*ref]; ok {
			*ref = safe
		}
	}
	return d, nil
}

// columnRefs returns pointers to every field naming a dataset column.
func (d *Design) columnRefs() []*string {
	refs := []*string{&d.response, &d.treatment, &d.block, &d.row, &d.col, &d.mainPlot, &d.subPlot}
	for i := range d.factors {
		refs = append(refs, &d.factors[i])
	}
	return refs
}

// Kind returns the design variant tag.
func (d *Design) Kind() Kind { return d.kind }

// Data returns the design's private dataset.
func (d *Design) Data() *dataset.Dataset { return d.data }

// Response returns the (sanitized) response column name.
func (d *Design) Response() string { return d.response }

// Formula returns the full statistical model formula for the design.
func (d *Design) Formula() string {
	return d.formulaWithMax(0)
}

// formulaWithMax builds the formula, limiting factorial interaction terms
// to the given order (0 means unlimited).
func (d *Design) formulaWithMax(maxInteraction int) string {
	switch d.kind {
	case CRD:
		return fmt.Sprintf("%s ~ C(%s)", d.response, d.treatment)
	case RCBD:
		return fmt.Sprintf("%s ~ C(%s) + C(%s)", d.response, d.treatment, d.block)
	case LatinSquare:
		return fmt.Sprintf("%s ~ C(%s) + C(%s) + C(%s)", d.response, d.treatment, d.row, d.col)
	case FactorialCRD:
		return fmt.Sprintf("%s ~ %s", d.response, factorialTerms(d.factors, maxInteraction))
	case FactorialRCBD:
		return fmt.Sprintf("%s ~ C(%s) + %s", d.response, d.block, factorialTerms(d.factors, maxInteraction))
	case SplitPlotCRD:
		return fmt.Sprintf("%s ~ C(%s)*C(%s)", d.response, d.mainPlot, d.subPlot)
	case SplitPlotRCBD:
		return fmt.Sprintf("%s ~ C(%s) + C(%s)*C(%s)", d.response, d.block, d.mainPlot, d.subPlot)
	default:
		return ""
	}
}

// factorialTerms renders the crossed factor structure. Unlimited order
// uses the compact '*' form; a capped order enumerates every combination
// explicitly.
func factorialTerms(factors []string, maxInteraction int) string {
	wrapped := make([]string, len(factors))
	for i, f := range factors {
		wrapped[i] = fmt.Sprintf("C(%s)", f)
	}
	if maxInteraction <= 0 || maxInteraction >= len(factors) {
		return strings.Join(wrapped, "*")
	}
	var terms []string
	n := len(wrapped)
	for order := 1; order <= maxInteraction; order++ {
		for mask := 1; mask < 1<<n; mask++ {
			var combo []string
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					combo = append(combo, wrapped[i])
				}
			}
			if len(combo) == order {
				terms = append(terms, strings.Join(combo, ":"))
			}
		}
	}
	return strings.Join(terms, " + ")
}

// unfoldFactors lists the elementary factors in the design's scope, the
// ones interaction unfolding iterates over.
func (d *Design) unfoldFactors() []string {
	switch d.kind {
	case FactorialCRD, FactorialRCBD:
		return append([]string(nil), d.factors...)
	case SplitPlotCRD, SplitPlotRCBD:
		return []string{d.mainPlot, d.subPlot}
	default:
		return []string{d.treatment}
	}
}

// FitANOVA fits the design's model and returns its Type II ANOVA table
// with significance markers. Calling it repeatedly on the same design
// yields identical tables.
func (d *Design) FitANOVA() (*anova.Table, error) {
	tbl, _, err := engine.AnovaTypeII(d.Formula(), d.data)
	return tbl, err
}
