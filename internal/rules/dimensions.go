package rules

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/review"
	"github.com/dshills/deckcritic/internal/slides"
)

const maxGapsInEvidence = 5

// percent returns round(100 × num / max(1, den)).
func percent(num, den int) int {
	if den < 1 {
		den = 1
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}

// ScoreCompleteness averages three axes: slide count against the
// preferred count, coverage of must-include slide types, and speaker
// notes coverage. Identified gaps are reported but never scored.
func ScoreCompleteness(d *deck.Deck, p *profile.Profile) review.DimensionScore {
	var found, missing []string
	prefs := p.DeckPreferences

	expected := prefs.PreferredSlideCount
	actual := len(d.Slides)
	countAxis := min(100, percent(actual, expected))
	if actual >= expected {
		found = append(found, fmt.Sprintf("%d/%d slides present", actual, expected))
	} else {
		missing = append(missing, fmt.Sprintf("Only %d/%d slides present", actual, expected))
	}

	typeAxis := 100
	if required := uniqueSorted(prefs.MustIncludeSlides); len(required) > 0 {
		have := d.SlideTypes()
		var present, absent []string
		for _, t := range required {
			if have[t] {
				present = append(present, t)
			} else {
				absent = append(absent, t)
			}
		}
		typeAxis = percent(len(present), len(required))
		if len(present) > 0 {
			found = append(found, "Required slide types present: "+strings.Join(present, ", "))
		}
		if len(absent) > 0 {
			missing = append(missing, "Missing required slide types: "+strings.Join(absent, ", "))
		}
	}

	notes := 0
	for _, s := range d.Slides {
		if strings.TrimSpace(s.SpeakerNotes) != "" {
			notes++
		}
	}
	notesAxis := percent(notes, actual)
	found = append(found, fmt.Sprintf("Speaker notes on %d/%d slides", notes, actual))

	if gaps := d.GapsIdentified; len(gaps) > 0 {
		missing = append(missing, fmt.Sprintf("%d data gaps identified: %s",
			len(gaps), strings.Join(gaps[:min(len(gaps), maxGapsInEvidence)], ", ")))
	}

	score := int(math.Round(float64(countAxis+typeAxis+notesAxis) / 3))
	rationale := fmt.Sprintf("Deck has %d slides (%d with speaker notes). %d gaps found.", actual, notes, len(missing))

	dim := review.DimensionCompleteness
	return review.NewDimensionScore(dim, score, dim.NominalWeight(), rationale, found, missing)
}

// ScoreMetricsDensity compares the deck's metric count with what its
// templates expect. When the profile emphasizes particular metrics the
// score is an even blend of template coverage and emphasis coverage;
// otherwise it is template coverage alone.
func ScoreMetricsDensity(d *deck.Deck, p *profile.Profile, reg *slides.Registry) review.DimensionScore {
	var found, missing []string

	total := 0
	expected := 0
	for _, s := range d.Slides {
		total += len(s.Metrics)
		if tmpl, ok := reg.Lookup(s.SlideType); ok {
			expected += len(tmpl.MetricsNeeded)
		}
	}
	found = append(found, fmt.Sprintf("%d metrics across deck", total))

	coverage := float64(total) / float64(max(1, expected))

	var (
		score     int
		rationale string
	)
	emphasis := p.DeckPreferences.MetricsEmphasis
	if len(emphasis) > 0 {
		text := d.MetricsText()
		hits := 0
		for _, phrase := range emphasis {
			if mentions(text, phrase) {
				hits++
				found = append(found, "Found: "+phrase)
			} else {
				missing = append(missing, "Missing: "+phrase)
			}
		}
		emphasisCoverage := float64(hits) / float64(len(emphasis))
		score = int(math.Round(100 * (0.5*coverage + 0.5*emphasisCoverage)))
		rationale = fmt.Sprintf("%d metrics found (~%d expected from templates). %d/%d VC emphasis metrics addressed.",
			total, expected, hits, len(emphasis))
	} else {
		score = int(math.Round(100 * coverage))
		rationale = fmt.Sprintf("%d metrics found (~%d expected from templates).", total, expected)
	}

	dim := review.DimensionMetricsDensity
	return review.NewDimensionScore(dim, score, dim.NominalWeight(), rationale, found, missing)
}

// mentions reports whether any word of phrase longer than three
// characters occurs in text. text must already be lowercase.
func mentions(text, phrase string) bool {
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		if utf8.RuneCountInString(w) > 3 && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
