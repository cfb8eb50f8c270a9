// Package render produces human-readable reports from a validation result.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/dshills/deckcritic/internal/review"
)

// Markdown renders a result as a Markdown report.
func Markdown(r *review.Result) string {
	var b strings.Builder

	status := "FAIL"
	if r.PassFail() {
		status = "PASS"
	}

	b.WriteString("# Deck Validation Report\n\n")
	fmt.Fprintf(&b, "**Deck**: %s\n", r.DeckName)
	fmt.Fprintf(&b, "**Target VC**: %s\n", r.TargetVC)
	fmt.Fprintf(&b, "**Validated**: %s\n", r.ValidatedAt.Format(time.RFC3339))
	if r.Mode == review.ModeRulesOnly {
		b.WriteString("**Mode**: rule-based only\n")
	}
	fmt.Fprintf(&b, "**Overall Score**: %d/100 (**%s**, threshold: %d)\n\n", r.OverallScore, status, r.PassThreshold)
	b.WriteString("---\n\n")

	// Score breakdown
	b.WriteString("## Score Breakdown\n\n")
	b.WriteString("| Dimension | Score | Weight | Weighted |\n")
	b.WriteString("|-----------|-------|--------|----------|\n")
	var total float64
	for _, d := range r.Dimensions {
		total += d.Weighted()
		fmt.Fprintf(&b, "| %s | %d/100 | %d%% | %.1f |\n",
			d.Dimension.Title(), d.Score, int(math.Round(d.Weight*100)), d.Weighted())
	}
	fmt.Fprintf(&b, "| **TOTAL** | | | **%.1f** |\n\n", total)

	for _, d := range r.Dimensions {
		fmt.Fprintf(&b, "### %s\n\n", d.Dimension.Title())
		fmt.Fprintf(&b, "**Score**: %d/100\n", d.Score)
		fmt.Fprintf(&b, "**Rationale**: %s\n\n", d.Rationale)
		writeList(&b, "**Evidence Found:**", d.EvidenceFound)
		writeList(&b, "**Evidence Missing:**", d.EvidenceMissing)
	}

	if len(r.CustomChecks) > 0 {
		b.WriteString("---\n\n## VC-Specific Checks\n\n")
		b.WriteString("| Check | Status | Evidence |\n")
		b.WriteString("|-------|--------|----------|\n")
		for _, cc := range r.CustomChecks {
			result := "FAIL"
			if cc.Passed {
				result = "PASS"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(cc.Check), result, cell(cc.Evidence))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n## Per-Slide Scores\n\n")
	for _, s := range r.Slides {
		fmt.Fprintf(&b, "### Slide %d: %s (%d/100)\n\n", s.SlideNumber, s.SlideType, s.Score)
		writeList(&b, "**Issues:**", s.Issues)
		writeList(&b, "**Suggestions:**", s.Suggestions)
		if len(s.Issues) == 0 && len(s.Suggestions) == 0 {
			b.WriteString("No issues detected.\n\n")
		}
	}

	if len(r.TopStrengths) > 0 {
		b.WriteString("---\n\n")
		writeNumbered(&b, "## Top Strengths", r.TopStrengths)
	}
	writeNumbered(&b, "## Critical Gaps", r.CriticalGaps)
	writeNumbered(&b, "## Improvement Priorities (ordered by impact)", r.ImprovementPriorities)

	if r.Recommendation != "" {
		b.WriteString("---\n\n## Recommendation\n\n")
		b.WriteString(r.Recommendation)
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the Markdown report as a standalone HTML page.
func HTML(r *review.Result) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(Markdown(r)))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Deck Validation Report: " + r.DeckName,
	})
	return markdown.Render(doc, renderer)
}

// Terminal renders the Markdown report for a terminal. style is a glamour
// standard style name ("dark", "light", "notty"); empty picks one from
// the terminal.
func Terminal(r *review.Result, style string, width int) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	if width <= 0 {
		width = 100
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("render.Terminal: %w", err)
	}
	out, err := tr.Render(Markdown(r))
	if err != nil {
		return "", fmt.Errorf("render.Terminal: %w", err)
	}
	return out, nil
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func writeNumbered(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + "\n\n")
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n")
}

// cell makes text safe inside a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
