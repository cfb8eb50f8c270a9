package qualitative

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dshills/deckcritic/internal/llm"
	"github.com/dshills/deckcritic/internal/prompt"
	"github.com/dshills/deckcritic/internal/redact"
)

// LLMScorer asks a language model to judge the deck. A failed call or a
// malformed response is returned as is; there are no retries.
type LLMScorer struct {
	Provider llm.Provider
	Settings llm.Settings
	Logger   *zap.Logger
	// Redact masks secrets in deck text before it leaves the process.
	Redact bool
}

func (s *LLMScorer) Score(ctx context.Context, req Request) (*Assessment, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := req.Deck
	if s.Redact {
		var n int
		d, n = redact.Deck(d)
		if n > 0 {
			logger.Info("Redacted secrets from deck", zap.Int("fields", n))
		}
	}

	name := req.Deck.CompanyName
	if req.Profile != nil {
		name = req.Profile.Name
	}
	p, err := prompt.Build(prompt.BuildOpts{
		Deck:           d,
		VCName:         name,
		ProfileContext: req.ProfileContext,
		RuleFindings:   req.RuleFindings,
	})
	if err != nil {
		return nil, fmt.Errorf("qualitative.Score: %w", err)
	}

	logger.Debug("Requesting qualitative assessment",
		zap.String("provider", s.Provider.Name()),
		zap.String("model", s.Settings.Model),
		zap.Int("prompt_bytes", len(p.System)+len(p.User)))

	out, err := s.Provider.Generate(ctx, p, s.Settings)
	if err != nil {
		return nil, fmt.Errorf("qualitative.Score: %w", err)
	}

	a, err := parseOutput(out)
	if err != nil {
		logger.Warn("Qualitative response rejected", zap.Error(err), zap.Int("length", len(out)))
		return nil, fmt.Errorf("qualitative.Score: %w", err)
	}
	return a, nil
}

// FromFile loads a saved model response and returns a scorer that
// replays it. The response passes the same contract checks as a live one.
func FromFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("qualitative.FromFile: %w", err)
	}
	a, err := parseOutput(string(data))
	if err != nil {
		return nil, fmt.Errorf("qualitative.FromFile: %s: %w", path, err)
	}
	return &Static{Assessment: a}, nil
}

func parseOutput(out string) (*Assessment, error) {
	raw, err := llm.ExtractJSON(out)
	if errors.Is(err, llm.ErrNoJSON) {
		return nil, &ContractError{Expected: "JSON object", Got: "no JSON in model output"}
	}
	if err != nil {
		return nil, err
	}
	return Parse([]byte(raw))
}
