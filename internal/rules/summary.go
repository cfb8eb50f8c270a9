package rules

import (
	"fmt"
	"strings"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/review"
	"github.com/dshills/deckcritic/internal/slides"
)

// Findings bundles everything the rule checks produce for one deck.
type Findings struct {
	Slides         []review.SlideScore
	Completeness   review.DimensionScore
	MetricsDensity review.DimensionScore
	CustomChecks   []review.CustomCheckResult
}

// Evaluate runs every rule check against the deck.
func Evaluate(d *deck.Deck, p *profile.Profile, reg *slides.Registry) Findings {
	return Findings{
		Slides:         ScoreSlides(d, reg),
		Completeness:   ScoreCompleteness(d, p),
		MetricsDensity: ScoreMetricsDensity(d, p, reg),
		CustomChecks:   CheckCustom(d, p),
	}
}

// Summarize renders the findings as plain text for the qualitative scorer.
func Summarize(f Findings) string {
	var lines []string
	for _, dim := range []review.DimensionScore{f.Completeness, f.MetricsDensity} {
		lines = append(lines,
			fmt.Sprintf("%s score: %d/100", sentenceCase(dim.Dimension.Title()), dim.Score),
			"  Found: "+strings.Join(dim.EvidenceFound, ", "),
			"  Missing: "+strings.Join(dim.EvidenceMissing, ", "),
			"",
		)
	}

	lines = append(lines, "Per-slide issues:")
	for _, s := range f.Slides {
		if len(s.Issues) > 0 {
			lines = append(lines, fmt.Sprintf("  Slide %d (%s): %s", s.SlideNumber, s.SlideType, strings.Join(s.Issues, "; ")))
		}
	}

	lines = append(lines, "", "VC custom check results:")
	for _, cc := range f.CustomChecks {
		status := "FAIL"
		if cc.Passed {
			status = "PASS"
		}
		lines = append(lines, fmt.Sprintf("  [%s] %s", status, cc.Check))
	}
	return strings.Join(lines, "\n")
}

// sentenceCase lowercases every word after the first: "Metrics Density"
// becomes "Metrics density".
func sentenceCase(s string) string {
	first, rest, ok := strings.Cut(s, " ")
	if !ok {
		return s
	}
	return first + " " + strings.ToLower(rest)
}
