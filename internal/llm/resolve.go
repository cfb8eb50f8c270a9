package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNoProvider is returned when no provider can be selected.
var ErrNoProvider = errors.New("no LLM provider configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY or GEMINI_API_KEY")

// Keys holds the provider API keys.
type Keys struct {
	Anthropic string
	OpenAI    string
	Gemini    string
}

// Any reports whether at least one key is set.
func (k Keys) Any() bool {
	return k.Anthropic != "" || k.OpenAI != "" || k.Gemini != ""
}

// ResolveProvider selects an LLM provider based on the model flag and available API keys.
func ResolveProvider(ctx context.Context, modelFlag string, keys Keys, logger *zap.Logger) (Provider, error) {
	// Explicit provider from model flag
	if modelFlag != "" {
		lower := strings.ToLower(modelFlag)
		for _, name := range []string{anthropicName, openaiName, geminiName} {
			if strings.HasPrefix(lower, name+":") {
				return override(ctx, name, modelFlag[len(name)+1:], keys, logger)
			}
		}
		switch {
		case strings.HasPrefix(lower, "claude"):
			return override(ctx, anthropicName, modelFlag, keys, logger)
		case strings.HasPrefix(lower, "gpt"):
			return override(ctx, openaiName, modelFlag, keys, logger)
		case strings.HasPrefix(lower, "gemini"):
			return override(ctx, geminiName, modelFlag, keys, logger)
		}
	}

	// Auto-detect from keys
	switch {
	case keys.Anthropic != "":
		return newProvider(ctx, anthropicName, keys, logger)
	case keys.OpenAI != "":
		return newProvider(ctx, openaiName, keys, logger)
	case keys.Gemini != "":
		return newProvider(ctx, geminiName, keys, logger)
	}

	return nil, ErrNoProvider
}

func newProvider(ctx context.Context, name string, keys Keys, logger *zap.Logger) (Provider, error) {
	switch name {
	case anthropicName:
		p, err := NewAnthropic(keys.Anthropic, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case openaiName:
		p, err := NewOpenAI(keys.OpenAI, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case geminiName:
		p, err := NewGemini(ctx, keys.Gemini, "", logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown provider %q", name)
}

func override(ctx context.Context, name, model string, keys Keys, logger *zap.Logger) (Provider, error) {
	p, err := newProvider(ctx, name, keys, logger)
	if err != nil {
		return nil, err
	}
	return &modelOverride{Provider: p, model: model}, nil
}

// modelOverride wraps a provider to override the model in settings.
type modelOverride struct {
	Provider
	model string
}

func (m *modelOverride) Generate(ctx context.Context, prompt Prompt, s Settings) (string, error) {
	s.Model = m.model
	return m.Provider.Generate(ctx, prompt, s)
}
