package render

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/deckcritic/internal/review"
)

func sampleResult() *review.Result {
	return &review.Result{
		DeckName:      "Acme AI",
		TargetVC:      "Earlybird",
		ValidatedAt:   time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Mode:          review.ModeFull,
		OverallScore:  74,
		PassThreshold: 60,
		Dimensions: []review.DimensionScore{
			review.NewDimensionScore(review.DimensionCompleteness, 100, 0.25, "Deck has 15 slides", []string{"15/15 slides present"}, nil),
			review.NewDimensionScore(review.DimensionMetricsDensity, 52, 0.20, "15 metrics found", nil, []string{"Missing: NDR"}),
			review.NewDimensionScore(review.DimensionNarrativeCoherence, 80, 0.20, "Flows well", nil, nil),
			review.NewDimensionScore(review.DimensionThesisAlignment, 70, 0.20, "Fits the thesis", nil, nil),
			review.NewDimensionScore(review.DimensionCommonMistakes, 60, 0.15, "Some mistakes", nil, nil),
		},
		Slides: []review.SlideScore{
			review.NewSlideScore(1, "cover", 100, nil, nil),
			review.NewSlideScore(2, "problem", 75, []string{"Missing slide title"}, []string{"Cite a source"}),
		},
		CustomChecks: []review.CustomCheckResult{
			{Check: "Must show capital efficiency", Passed: true, Evidence: "Keywords found: burn multiple"},
			{Check: "Show EU | US split", Passed: false, Evidence: "No keyword match found. Checked words: show, split"},
		},
		TopStrengths:          []string{"Team"},
		CriticalGaps:          []string{"No NDR"},
		ImprovementPriorities: []string{"Address VC requirement: Show EU | US split", "No NDR"},
		Recommendation:        "Add retention data.",
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleResult())

	checks := []string{
		"# Deck Validation Report",
		"**Deck**: Acme AI",
		"**Target VC**: Earlybird",
		"**Validated**: 2026-03-01T09:30:00Z",
		"**Overall Score**: 74/100 (**PASS**, threshold: 60)",
		"| Completeness | 100/100 | 25% | 25.0 |",
		"| Common Mistakes | 60/100 | 15% | 9.0 |",
		"| **TOTAL** | | | **74.4** |",
		"### Metrics Density",
		"**Evidence Missing:**\n- Missing: NDR",
		"## VC-Specific Checks",
		"| Must show capital efficiency | PASS | Keywords found: burn multiple |",
		`| Show EU \| US split | FAIL |`,
		"### Slide 1: cover (100/100)\n\nNo issues detected.",
		"### Slide 2: problem (75/100)",
		"**Issues:**\n- Missing slide title",
		"**Suggestions:**\n- Cite a source",
		"## Top Strengths\n\n1. Team",
		"## Critical Gaps\n\n1. No NDR",
		"## Improvement Priorities (ordered by impact)\n\n1. Address VC requirement: Show EU | US split\n2. No NDR",
		"## Recommendation\n\nAdd retention data.",
	}
	for _, want := range checks {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(md, "**Mode**") {
		t.Error("full-mode report should not carry a mode line")
	}
}

func TestMarkdownFail(t *testing.T) {
	r := sampleResult()
	r.PassThreshold = 95
	md := Markdown(r)
	if !strings.Contains(md, "(**FAIL**, threshold: 95)") {
		t.Error("expected FAIL status")
	}
}

func TestMarkdownRulesOnly(t *testing.T) {
	r := sampleResult()
	r.Mode = review.ModeRulesOnly
	r.TopStrengths = nil
	r.CriticalGaps = nil
	r.CustomChecks = nil
	md := Markdown(r)

	if !strings.Contains(md, "**Mode**: rule-based only") {
		t.Error("rules-only report missing mode line")
	}
	for _, absent := range []string{"## Top Strengths", "## Critical Gaps", "## VC-Specific Checks"} {
		if strings.Contains(md, absent) {
			t.Errorf("empty section %q should be omitted", absent)
		}
	}
}

func TestHTML(t *testing.T) {
	out := string(HTML(sampleResult()))
	for _, want := range []string{"<html", "<title>", "Acme AI", "<table>", "Deck Validation Report"} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(out, "**Deck**") {
		t.Error("markdown emphasis was not rendered")
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(sampleResult(), "notty", 120)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Deck Validation Report", "Acme AI", "Add retention data."} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
}
