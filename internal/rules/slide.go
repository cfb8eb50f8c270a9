// Package rules implements the deterministic scoring checks: per-slide
// penalties, deck completeness, metrics density, and custom-check matching.
// Nothing here performs I/O or returns an error.
package rules

import (
	"fmt"
	"strings"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/review"
	"github.com/dshills/deckcritic/internal/slides"
)

// Slide penalties, subtracted from a starting score of 100.
const (
	PenaltyMissingTitle     = 15
	PenaltyMissingHeadline  = 10
	PenaltyTooManyBullets   = 10
	PenaltyWordLimit        = 10
	PenaltyNoMetrics        = 15
	PenaltyPerMissingMetric = 3
	PenaltyNoBullets        = 10
	PenaltyNoSpeakerNotes   = 5
	PenaltyNoAlignment      = 5
)

// ScoreSlide scores a single slide against its template. Slides whose
// type has no template only get the title, headline, notes, and
// alignment checks.
func ScoreSlide(s deck.Slide, reg *slides.Registry) review.SlideScore {
	var issues, suggestions []string
	score := 100

	if strings.TrimSpace(s.Title) == "" {
		issues = append(issues, "Missing slide title")
		score -= PenaltyMissingTitle
	}
	if strings.TrimSpace(s.Headline) == "" {
		issues = append(issues, "Missing slide headline")
		score -= PenaltyMissingHeadline
	}

	if tmpl, ok := reg.Lookup(s.SlideType); ok {
		if tmpl.MaxBullets > 0 && len(s.Bullets) > tmpl.MaxBullets {
			issues = append(issues, fmt.Sprintf("Too many bullets: %d (max %d)", len(s.Bullets), tmpl.MaxBullets))
			score -= PenaltyTooManyBullets
		}

		if words := s.WordCount(); words > tmpl.WordLimit {
			issues = append(issues, fmt.Sprintf("Exceeds word limit: %d words (max %d)", words, tmpl.WordLimit))
			score -= PenaltyWordLimit
		}

		if need := len(tmpl.MetricsNeeded); need > 0 {
			expected := strings.Join(tmpl.MetricsNeeded, ", ")
			switch have := len(s.Metrics); {
			case have == 0:
				issues = append(issues, fmt.Sprintf("Missing metrics (expected: %s)", expected))
				suggestions = append(suggestions, "Add metrics: "+expected)
				score -= PenaltyNoMetrics
			case have < need:
				suggestions = append(suggestions, fmt.Sprintf("Consider adding more metrics (%d/%d present)", have, need))
				score -= (need - have) * PenaltyPerMissingMetric
			}
		}

		if tmpl.MaxBullets > 0 && len(s.Bullets) == 0 {
			issues = append(issues, "No bullet points on a slide that expects them")
			score -= PenaltyNoBullets
		}
	}

	if strings.TrimSpace(s.SpeakerNotes) == "" {
		issues = append(issues, "Missing speaker notes")
		suggestions = append(suggestions, "Add speaker notes explaining what to SAY")
		score -= PenaltyNoSpeakerNotes
	}

	if len(s.VCAlignmentNotes) == 0 {
		suggestions = append(suggestions, "Add VC alignment notes for this slide")
		score -= PenaltyNoAlignment
	}

	return review.NewSlideScore(s.SlideNumber, s.SlideType, score, issues, suggestions)
}

// ScoreSlides scores every slide in deck order.
func ScoreSlides(d *deck.Deck, reg *slides.Registry) []review.SlideScore {
	out := make([]review.SlideScore, len(d.Slides))
	for i, s := range d.Slides {
		out[i] = ScoreSlide(s, reg)
	}
	return out
}
