// Package report renders analysis results as markdown. Rendering is pure
// string building; HTML conversion is a thin pass over the markdown.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"expdes/domain/anova"
	"expdes/domain/cld"
	"expdes/domain/design"
	"expdes/domain/posthoc"
)

// Anova renders an ANOVA table. The residual row shows blank F and
// p-value cells.
func Anova(tbl *anova.Table) string {
	var b strings.Builder
	b.WriteString("| Term | Sum Sq | DF | F | p-value | |\n")
	b.WriteString("|------|-------:|---:|--:|--------:|--|\n")
	for _, r := range tbl.Rows {
		fmt.Fprintf(&b, "| %s | %.4f | %d | %s | %s | %s |\n",
			r.Term, r.SumSq, r.DF, num(r.F), num(r.PValue), r.Signif)
	}
	return b.String()
}

// Letters renders a compact letter display table, groups in display
// order. Groups sharing a letter are not significantly different.
func Letters(rows []cld.TableRow) string {
	var b strings.Builder
	b.WriteString("| Group | Mean | |\n")
	b.WriteString("|-------|-----:|--|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %.4f | %s |\n", r.Group, r.Mean, r.Letters)
	}
	return b.String()
}

// Comparisons renders the pairwise comparison set with the strategy's
// p-value column label.
func Comparisons(set posthoc.Set, pLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "| group1 | group2 | meandiff | %s | reject |\n", pLabel)
	b.WriteString("|--------|--------|---------:|------:|--------|\n")
	for _, c := range set {
		fmt.Fprintf(&b, "| %s | %s | %.4f | %s | %v |\n",
			c.GroupA, c.GroupB, c.MeanDiff, num(c.PValue), c.Reject)
	}
	return b.String()
}

// Assumptions renders the assumption check verdicts.
func Assumptions(a *design.Assumptions) string {
	var b strings.Builder
	b.WriteString("| Test | Statistic | p-value | Conclusion |\n")
	b.WriteString("|------|----------:|--------:|------------|\n")
	for _, r := range []design.TestResult{a.Normality, a.Homoscedasticity} {
		fmt.Fprintf(&b, "| %s | %.4f | %s | %s |\n", r.Test, r.Statistic, num(r.PValue), r.Conclusion)
	}
	return b.String()
}

// Unfold renders the full unfolding result: the ANOVA table followed by
// one section per marginal comparison or per conditional branch, keys in
// sorted order. Branch failures are listed at the end.
func Unfold(res *design.UnfoldResult) string {
	var b strings.Builder
	b.WriteString("## ANOVA\n\n")
	b.WriteString(Anova(res.Anova))

	if res.MainEffects != nil {
		keys := sortedKeys(res.MainEffects)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n## Main effect: %s\n\n", k)
			b.WriteString(Letters(res.MainEffects[k]))
		}
	}
	if res.Interactions != nil {
		keys := sortedKeys(res.Interactions)
		for _, k := range keys {
			branch := res.Interactions[k]
			fmt.Fprintf(&b, "\n## %s\n\n", k)
			b.WriteString(Anova(branch.Anova))
			b.WriteString("\n")
			b.WriteString(Letters(branch.Letters))
		}
	}
	if len(res.Errors) > 0 {
		b.WriteString("\n## Skipped branches\n\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "- %s\n", e.Error())
		}
	}
	return b.String()
}

// HTML converts a markdown report to a standalone HTML document.
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}

// num formats a statistic, rendering undefined values as an empty cell.
func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.4f", v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
