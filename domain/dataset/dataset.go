package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"expdes/domain/core"
)

// Dataset is an in-memory column table holding one experiment.
// Rows are experimental units. Factor columns hold categorical labels,
// numeric columns hold measurements. A Dataset is never mutated after
// construction except through Rename and Factorize, which callers use
// only on their own private copy before analysis.
type Dataset struct {
	order   []string
	factors map[string][]string
	numeric map[string][]float64
	rows    int
}

// Builder accumulates columns before sealing them into a Dataset.
type Builder struct {
	ds  *Dataset
	err error
}

// NewBuilder creates an empty dataset builder.
func NewBuilder() *Builder {
	return &Builder{ds: &Dataset{
		factors: make(map[string][]string),
		numeric: make(map[string][]float64),
		rows:    -1,
	}}
}

// Factor adds a categorical column.
func (b *Builder) Factor(name string, values []string) *Builder {
	b.addColumn(name, len(values))
	if b.err == nil {
		b.ds.factors[name] = append([]string(nil), values...)
	}
	return b
}

// Numeric adds a measurement column.
func (b *Builder) Numeric(name string, values []float64) *Builder {
	b.addColumn(name, len(values))
	if b.err == nil {
		b.ds.numeric[name] = append([]float64(nil), values...)
	}
	return b
}

func (b *Builder) addColumn(name string, n int) {
	if b.err != nil {
		return
	}
	if b.ds.HasColumn(name) {
		b.err = fmt.Errorf("duplicate column %q", name)
		return
	}
	if b.ds.rows >= 0 && b.ds.rows != n {
		b.err = fmt.Errorf("column %q has %d rows, want %d", name, n, b.ds.rows)
		return
	}
	b.ds.rows = n
	b.ds.order = append(b.ds.order, name)
}

// Build seals the builder into an immutable Dataset.
func (b *Builder) Build() (*Dataset, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.ds.rows < 0 {
		b.ds.rows = 0
	}
	return b.ds, nil
}

// MustBuild is Build for fixtures that are known to be well formed.
func (b *Builder) MustBuild() *Dataset {
	ds, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ds
}

// NumRows returns the number of experimental units.
func (d *Dataset) NumRows() int { return d.rows }

// Columns returns column names in insertion order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.order...)
}

// HasColumn reports whether any column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	_, f := d.factors[name]
	_, n := d.numeric[name]
	return f || n
}

// IsFactor reports whether the named column is categorical.
func (d *Dataset) IsFactor(name string) bool {
	_, ok := d.factors[name]
	return ok
}

// FactorColumn returns the labels of a categorical column.
func (d *Dataset) FactorColumn(name string) ([]string, error) {
	col, ok := d.factors[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	return append([]string(nil), col...), nil
}

// NumericColumn returns the values of a measurement column.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	col, ok := d.numeric[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	return append([]float64(nil), col...), nil
}

// Levels returns the sorted distinct labels of a factor column.
func (d *Dataset) Levels(name string) ([]string, error) {
	col, ok := d.factors[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	seen := make(map[string]bool, len(col))
	var levels []string
	for _, v := range col {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	sort.Strings(levels)
	return levels, nil
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	out := &Dataset{
		order:   append([]string(nil), d.order...),
		factors: make(map[string][]string, len(d.factors)),
		numeric: make(map[string][]float64, len(d.numeric)),
		rows:    d.rows,
	}
	for k, v := range d.factors {
		out.factors[k] = append([]string(nil), v...)
	}
	for k, v := range d.numeric {
		out.numeric[k] = append([]float64(nil), v...)
	}
	return out
}

// Rename changes a column name in place. Used for reserved-name
// sanitization on a design's private copy, before any formula is built.
func (d *Dataset) Rename(old, new string) error {
	if !d.HasColumn(old) {
		return core.NewColumnNotFoundError(old)
	}
	if old == new {
		return nil
	}
	if d.HasColumn(new) {
		return fmt.Errorf("cannot rename %q: column %q already exists", old, new)
	}
	if col, ok := d.factors[old]; ok {
		d.factors[new] = col
		delete(d.factors, old)
	}
	if col, ok := d.numeric[old]; ok {
		d.numeric[new] = col
		delete(d.numeric, old)
	}
	for i, n := range d.order {
		if n == old {
			d.order[i] = new
		}
	}
	return nil
}

// Factorize converts a numeric column to a factor in place, formatting
// each value with strconv. Integral doses imported from table files often
// arrive numeric but act as treatment labels. A column that already is a
// factor is left alone.
func (d *Dataset) Factorize(name string) error {
	if _, ok := d.factors[name]; ok {
		return nil
	}
	col, ok := d.numeric[name]
	if !ok {
		return core.NewColumnNotFoundError(name)
	}
	labels := make([]string, len(col))
	for i, v := range col {
		labels[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	d.factors[name] = labels
	delete(d.numeric, name)
	return nil
}

// Filter returns the subset of rows where the factor column equals level.
func (d *Dataset) Filter(factor, level string) (*Dataset, error) {
	col, ok := d.factors[factor]
	if !ok {
		return nil, core.NewColumnNotFoundError(factor)
	}
	var keep []int
	for i, v := range col {
		if v == level {
			keep = append(keep, i)
		}
	}
	out := &Dataset{
		order:   append([]string(nil), d.order...),
		factors: make(map[string][]string, len(d.factors)),
		numeric: make(map[string][]float64, len(d.numeric)),
		rows:    len(keep),
	}
	for name, src := range d.factors {
		sub := make([]string, 0, len(keep))
		for _, i := range keep {
			sub = append(sub, src[i])
		}
		out.factors[name] = sub
	}
	for name, src := range d.numeric {
		sub := make([]float64, 0, len(keep))
		for _, i := range keep {
			sub = append(sub, src[i])
		}
		out.numeric[name] = sub
	}
	return out, nil
}

// CombinedFactor returns per-row labels joining several factor columns,
// e.g. "A/low". Used to group observations by a full factor combination.
func (d *Dataset) CombinedFactor(names ...string) ([]string, error) {
	cols := make([][]string, 0, len(names))
	for _, n := range names {
		col, ok := d.factors[n]
		if !ok {
			return nil, core.NewColumnNotFoundError(n)
		}
		cols = append(cols, col)
	}
	out := make([]string, d.rows)
	parts := make([]string, len(cols))
	for i := 0; i < d.rows; i++ {
		for j, col := range cols {
			parts[j] = col[i]
		}
		out[i] = strings.Join(parts, "/")
	}
	return out, nil
}

// GroupValues splits a numeric column into per-level slices keyed by the
// labels of a grouping column (pre-combined labels may be passed directly).
func (d *Dataset) GroupValues(valueCol string, labels []string) (map[string][]float64, error) {
	vals, ok := d.numeric[valueCol]
	if !ok {
		return nil, core.NewColumnNotFoundError(valueCol)
	}
	if len(labels) != d.rows {
		return nil, fmt.Errorf("grouping labels length %d does not match %d rows", len(labels), d.rows)
	}
	groups := make(map[string][]float64)
	for i, lab := range labels {
		groups[lab] = append(groups[lab], vals[i])
	}
	return groups, nil
}

// SortedGroupSlices flattens a grouping map into slices ordered by group
// label, for tests that take variadic-style group lists.
func SortedGroupSlices(groups map[string][]float64) [][]float64 {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]float64, 0, len(keys))
	for _, k := range keys {
		out = append(out, groups[k])
	}
	return out
}

// GroupBy splits a numeric column by the levels of one factor column.
func (d *Dataset) GroupBy(valueCol, factor string) (map[string][]float64, error) {
	labels, err := d.FactorColumn(factor)
	if err != nil {
		return nil, err
	}
	return d.GroupValues(valueCol, labels)
}
