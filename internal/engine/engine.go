// Package engine combines rule-based findings with the qualitative
// judgment into a single validation result.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/qualitative"
	"github.com/dshills/deckcritic/internal/review"
	"github.com/dshills/deckcritic/internal/rules"
	"github.com/dshills/deckcritic/internal/schema"
	"github.com/dshills/deckcritic/internal/slides"
)

// DefaultPassThreshold is the overall score a deck needs to pass.
const DefaultPassThreshold = 60

const (
	skippedRationale      = "LLM scoring skipped"
	skippedRecommendation = "LLM scoring skipped; run without --skip-llm for full assessment"
	prioritySlides        = 3
)

var (
	// ErrInvariant marks an internal consistency failure. It means a bug
	// in the engine, not a problem with the deck.
	ErrInvariant = errors.New("internal invariant violated")

	// ErrWeightInvariant is returned when the dimension weights do not sum to 1.0.
	ErrWeightInvariant = fmt.Errorf("%w: dimension weights must sum to 1.0", ErrInvariant)

	// ErrNoScorer is returned when qualitative scoring is requested but
	// the engine has no scorer.
	ErrNoScorer = errors.New("qualitative scoring requested but no scorer configured")

	// ErrInvalidThreshold is returned for a pass threshold outside [0,100].
	ErrInvalidThreshold = errors.New("pass threshold must be within [0,100]")
)

// Options control a single validation.
type Options struct {
	PassThreshold  int
	UseQualitative bool
}

// DefaultOptions returns threshold 60 with qualitative scoring enabled.
func DefaultOptions() Options {
	return Options{PassThreshold: DefaultPassThreshold, UseQualitative: true}
}

// Engine validates decks. It holds no per-call state and is safe for
// concurrent use when its Scorer is.
type Engine struct {
	Templates *slides.Registry
	Scorer    qualitative.Scorer
	Logger    *zap.Logger
	Now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

func WithScorer(s qualitative.Scorer) Option { return func(e *Engine) { e.Scorer = s } }

func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.Logger = l } }

func WithTemplates(r *slides.Registry) Option { return func(e *Engine) { e.Templates = r } }

func WithClock(now func() time.Time) Option { return func(e *Engine) { e.Now = now } }

// New returns an engine using the default template catalog, a no-op
// logger, and the wall clock unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		Templates: slides.Default(),
		Logger:    zap.NewNop(),
		Now:       time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Validate scores d against p.
func (e *Engine) Validate(ctx context.Context, d *deck.Deck, p *profile.Profile, opts Options) (*review.Result, error) {
	if opts.PassThreshold < 0 || opts.PassThreshold > 100 {
		return nil, fmt.Errorf("engine.Validate: %w, got %d", ErrInvalidThreshold, opts.PassThreshold)
	}
	if d == nil || p == nil {
		return nil, errors.New("engine.Validate: deck and profile are required")
	}
	if opts.UseQualitative && e.Scorer == nil {
		return nil, fmt.Errorf("engine.Validate: %w", ErrNoScorer)
	}

	logger := e.Logger.With(zap.String("deck", d.CompanyName), zap.String("profile", p.Name))

	findings := rules.Evaluate(d, p, e.Templates)
	slideScores := append([]review.SlideScore(nil), findings.Slides...)

	var (
		judged         []review.DimensionScore
		strengths      = []string{}
		gaps           = []string{}
		recommendation string
		mode           review.Mode
	)

	completeness := findings.Completeness
	density := findings.MetricsDensity

	if opts.UseQualitative {
		mode = review.ModeFull
		logger.Debug("Rule findings computed, requesting qualitative assessment",
			zap.Int("completeness", completeness.Score), zap.Int("metrics_density", density.Score))

		a, err := e.Scorer.Score(ctx, qualitative.Request{
			Deck:           d,
			Profile:        p,
			ProfileContext: profile.FormatForPrompt(p),
			RuleFindings:   rules.Summarize(findings),
		})
		if err != nil {
			return nil, fmt.Errorf("engine.Validate: %w", err)
		}
		if a == nil {
			return nil, fmt.Errorf("engine.Validate: %w", &qualitative.ContractError{Expected: "assessment", Got: "nil"})
		}

		judged = a.DimensionScores()
		slideScores = mergeSlideNotes(slideScores, a.SlideQuality)
		strengths = append(strengths, a.TopStrengths...)
		gaps = append(gaps, a.CriticalGaps...)
		recommendation = a.Recommendation
	} else {
		mode = review.ModeRulesOnly
		ruleWeight := completeness.Weight + density.Weight
		completeness = completeness.WithWeight(completeness.Weight / ruleWeight)
		density = density.WithWeight(density.Weight / ruleWeight)
		for _, dim := range review.QualitativeDimensions() {
			judged = append(judged, review.NewDimensionScore(dim, 0, 0, skippedRationale, nil, nil))
		}
		recommendation = skippedRecommendation
	}

	dims := append([]review.DimensionScore{completeness, density}, judged...)
	if err := checkWeights(dims); err != nil {
		return nil, fmt.Errorf("engine.Validate: %w", err)
	}

	result := &review.Result{
		DeckName:              d.CompanyName,
		TargetVC:              d.TargetVC,
		ValidatedAt:           e.Now(),
		Mode:                  mode,
		OverallScore:          review.ComputeOverall(dims),
		PassThreshold:         opts.PassThreshold,
		Dimensions:            dims,
		Slides:                slideScores,
		CustomChecks:          findings.CustomChecks,
		TopStrengths:          strengths,
		CriticalGaps:          gaps,
		ImprovementPriorities: priorities(slideScores, findings.CustomChecks, gaps),
		Recommendation:        recommendation,
	}

	if errs := schema.ValidateResult(result); len(errs) > 0 {
		return nil, fmt.Errorf("engine.Validate: %w:\n%s", ErrInvariant, schema.Join(errs))
	}

	logger.Info("Deck validated",
		zap.String("mode", string(mode)),
		zap.Int("score", result.OverallScore),
		zap.Bool("passed", result.PassFail()))
	return result, nil
}

func checkWeights(dims []review.DimensionScore) error {
	if !review.WeightsBalanced(dims) {
		return fmt.Errorf("%w, got %.3f", ErrWeightInvariant, review.WeightSum(dims))
	}
	return nil
}

// mergeSlideNotes appends each note to the suggestions of the slide with
// the same number. Notes for unknown slides are dropped.
func mergeSlideNotes(scores []review.SlideScore, notes []qualitative.SlideNote) []review.SlideScore {
	out := append([]review.SlideScore(nil), scores...)
	for _, n := range notes {
		for i, s := range out {
			if s.SlideNumber == n.SlideNumber {
				out[i] = s.WithSuggestion(n.QualityNote)
			}
		}
	}
	return out
}

// priorities orders improvements: failed custom checks, then the judge's
// critical gaps, then the first issue of each of the lowest-scoring slides.
func priorities(scores []review.SlideScore, checks []review.CustomCheckResult, gaps []string) []string {
	out := []string{}
	for _, cc := range checks {
		if !cc.Passed {
			out = append(out, "Address VC requirement: "+cc.Check)
		}
	}
	out = append(out, gaps...)
	for _, s := range review.LowestScoring(scores, prioritySlides) {
		if len(s.Issues) > 0 {
			out = append(out, fmt.Sprintf("Fix slide %d (%s): %s", s.SlideNumber, s.SlideType, s.Issues[0]))
		}
	}
	return out
}
