// Package qualitative defines the contract with the external judge that
// scores narrative coherence, thesis alignment, and common mistakes.
package qualitative

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/review"
)

// Request is everything the judge sees.
type Request struct {
	Deck           *deck.Deck
	Profile        *profile.Profile
	ProfileContext string
	RuleFindings   string
}

// Scorer produces a qualitative assessment of a deck.
type Scorer interface {
	Score(ctx context.Context, req Request) (*Assessment, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, req Request) (*Assessment, error)

func (f ScorerFunc) Score(ctx context.Context, req Request) (*Assessment, error) {
	return f(ctx, req)
}

// Judgment is the judge's verdict on one dimension.
type Judgment struct {
	Score           int
	Rationale       string
	EvidenceFound   []string
	EvidenceMissing []string
}

// SlideNote is a per-slide observation.
type SlideNote struct {
	SlideNumber int
	QualityNote string
}

// Assessment is a parsed, contract-checked judge response.
type Assessment struct {
	NarrativeCoherence Judgment
	ThesisAlignment    Judgment
	CommonMistakes     Judgment
	SlideQuality       []SlideNote
	TopStrengths       []string
	CriticalGaps       []string
	Recommendation     string
}

// Judgment returns the verdict for a qualitative dimension.
func (a *Assessment) Judgment(d review.Dimension) (Judgment, bool) {
	switch d {
	case review.DimensionNarrativeCoherence:
		return a.NarrativeCoherence, true
	case review.DimensionThesisAlignment:
		return a.ThesisAlignment, true
	case review.DimensionCommonMistakes:
		return a.CommonMistakes, true
	}
	return Judgment{}, false
}

// DimensionScores converts the three judgments to dimension scores at
// their nominal weights, clamping each score to [0,100].
func (a *Assessment) DimensionScores() []review.DimensionScore {
	dims := review.QualitativeDimensions()
	out := make([]review.DimensionScore, 0, len(dims))
	for _, d := range dims {
		j, _ := a.Judgment(d)
		out = append(out, review.NewDimensionScore(d, j.Score, d.NominalWeight(), j.Rationale, j.EvidenceFound, j.EvidenceMissing))
	}
	return out
}

// ErrContract is wrapped by every ContractError.
var ErrContract = errors.New("qualitative response violates contract")

// ContractError describes a judge response that does not match the
// expected shape.
type ContractError struct {
	Dimension string
	Field     string
	Expected  string
	Got       string
}

func (e *ContractError) Error() string {
	path := e.Dimension
	if e.Field != "" {
		if path != "" {
			path += "."
		}
		path += e.Field
	}
	if path == "" {
		path = "$"
	}
	return fmt.Sprintf("%s: %s: expected %s, got %s", ErrContract, path, e.Expected, e.Got)
}

func (e *ContractError) Unwrap() error { return ErrContract }

// Static returns a fixed assessment or error. It replays saved responses
// and stands in for the judge in tests.
type Static struct {
	Assessment *Assessment
	Err        error
}

func (s *Static) Score(_ context.Context, _ Request) (*Assessment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Assessment, nil
}
