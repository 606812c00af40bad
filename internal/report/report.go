package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"riskstat/domain/sample"
)

// SeriesReport bundles everything the markdown report renders for one series.
type SeriesReport struct {
	Series  *sample.Series
	Summary sample.SummaryStatistics
	Profile *sample.DistributionProfile
	Risk    *sample.RiskComparison
}

// Builder renders series analysis reports as markdown or HTML.
type Builder struct{}

// NewBuilder creates a report builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Markdown renders the report as a markdown document.
func (b *Builder) Markdown(r SeriesReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Series Report: %s\n\n", r.Series.Name)
	fmt.Fprintf(&sb, "Source: `%s` | Column: `%s` | Observations: %d",
		r.Series.Source, r.Series.Column, len(r.Series.Values))
	if r.Series.Skipped > 0 {
		fmt.Fprintf(&sb, " | Skipped cells: %d", r.Series.Skipped)
	}
	sb.WriteString("\n\n## Summary\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Mean | %.4f |\n", r.Summary.Mean)
	fmt.Fprintf(&sb, "| Std Dev | %.4f |\n", r.Summary.StdDev)
	fmt.Fprintf(&sb, "| Min | %.4f |\n", r.Summary.Min)
	fmt.Fprintf(&sb, "| Max | %.4f |\n", r.Summary.Max)
	fmt.Fprintf(&sb, "| Median | %.4f |\n", r.Summary.Median)
	fmt.Fprintf(&sb, "| Count | %d |\n", r.Summary.Count)

	if r.Profile != nil {
		sb.WriteString("\n## Distribution\n\n")
		fmt.Fprintf(&sb, "- Skewness: %.4f\n", r.Profile.Skewness)
		fmt.Fprintf(&sb, "- Kurtosis: %.4f\n", r.Profile.Kurtosis)
		normal := "no"
		if r.Profile.IsNormal {
			normal = "yes"
		}
		fmt.Fprintf(&sb, "- Looks normal: %s (p=%.4f)\n", normal, r.Profile.NormalP)
	}

	if r.Risk != nil {
		sb.WriteString("\n## Period Volatility\n\n")
		fmt.Fprintf(&sb, "- First half: %.4f\n", r.Risk.FirstPeriodVolatility)
		fmt.Fprintf(&sb, "- Second half: %.4f\n", r.Risk.SecondPeriodVolatility)
		fmt.Fprintf(&sb, "- Change: %+.4f (%+.2f%%)\n", r.Risk.VolatilityChange, r.Risk.VolatilityChangePct)
	}

	return sb.String()
}

// HTML renders the report as an HTML fragment.
func (b *Builder) HTML(r SeriesReport) []byte {
	md := []byte(b.Markdown(r))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	return markdown.ToHTML(md, p, renderer)
}
