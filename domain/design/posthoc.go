package design

import (
	"fmt"

	"expdes/domain/cld"
	"expdes/domain/dataset"
	"expdes/domain/posthoc"
)

// RunPostHoc runs the named pairwise comparison strategy on the design's
// treatment and returns the compact-letter-display table, groups ordered
// by descending mean. Factorial and split-plot designs localize group
// differences through UnfoldInteractions instead.
func (d *Design) RunPostHoc(name string, alpha float64) ([]cld.TableRow, posthoc.Set, error) {
	switch d.kind {
	case CRD, RCBD, LatinSquare:
	default:
		return nil, nil, fmt.Errorf("post hoc on a %s design: use UnfoldInteractions", d.kind)
	}
	strategy, err := posthoc.New(name)
	if err != nil {
		return nil, nil, err
	}
	return posthocCLD(strategy, alpha, d.data, d.response, d.treatment)
}

// posthocCLD runs a strategy plus letter assignment on one grouping
// column, ordering groups by descending mean the way reports are read.
func posthocCLD(strategy posthoc.Strategy, alpha float64, ds *dataset.Dataset, valueCol, groupCol string) ([]cld.TableRow, posthoc.Set, error) {
	set, err := strategy.Run(ds, valueCol, groupCol, alpha)
	if err != nil {
		return nil, nil, err
	}
	display, err := cld.Assign(set, alpha, cld.Order{
		Kind:        cld.OrderDescending,
		Data:        ds,
		ValueColumn: valueCol,
		GroupColumn: groupCol,
	})
	if err != nil {
		return nil, nil, err
	}
	rows, err := display.Table(ds, valueCol, groupCol)
	if err != nil {
		return nil, nil, err
	}
	return rows, set, nil
}
