package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/deckcritic/internal/config"
	"github.com/dshills/deckcritic/internal/engine"
	"github.com/dshills/deckcritic/internal/llm"
	"github.com/dshills/deckcritic/internal/qualitative"
)

// scoringFlags select and configure the qualitative scorer.
type scoringFlags struct {
	profileName     string
	profilesDir     string
	threshold       int
	skipLLM         bool
	model           string
	qualitativeFile string
	redact          bool
	maxTokens       int
	temperature     float64
	seed            int
	hasSeed         bool
	timeout         time.Duration

	keys llm.Keys
	// provider replaces provider resolution when set.
	provider llm.Provider
}

func (s *scoringFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&s.profileName, "profile", "general", "Investor profile name")
	flags.StringVar(&s.profilesDir, "profiles-dir", "", "Directory of profile YAML files (default: built-in profiles)")
	flags.IntVar(&s.threshold, "threshold", engine.DefaultPassThreshold, "Pass threshold (0-100)")
	flags.BoolVar(&s.skipLLM, "skip-llm", false, "Rule-based scoring only; no model call")
	flags.StringVar(&s.model, "model", "", "Model ID (e.g., claude-sonnet-4-6, gpt-4o, gemini:gemini-2.5-flash)")
	flags.StringVar(&s.qualitativeFile, "qualitative-file", "", "Use a saved model response instead of calling a provider")
	flags.BoolVar(&s.redact, "redact", true, "Redact secrets before sending the deck to a model")
	flags.IntVar(&s.maxTokens, "max-tokens", 0, "Max response tokens (0 uses the provider default)")
	flags.Float64Var(&s.temperature, "temperature", 0.2, "Model temperature")
	flags.IntVar(&s.seed, "seed", 0, "Random seed (if supported)")
	flags.DurationVar(&s.timeout, "timeout", 180*time.Second, "Deadline for the qualitative scoring call")
}

// applyConfig fills every flag the user did not set from cfg.
func (s *scoringFlags) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("threshold") {
		s.threshold = cfg.Threshold
	}
	if !flags.Changed("model") {
		s.model = cfg.Model
	}
	if !flags.Changed("profiles-dir") {
		s.profilesDir = cfg.ProfilesDir
	}
	if !flags.Changed("redact") {
		s.redact = cfg.Redact
	}
	if !flags.Changed("timeout") {
		s.timeout = cfg.Timeout
	}
	s.hasSeed = flags.Changed("seed")
	s.keys = cfg.Keys
}

// newScorer returns the scorer for the selected mode and a label naming
// its source. Rule-only mode returns a nil scorer.
func (s *scoringFlags) newScorer(ctx context.Context, logger *zap.Logger) (qualitative.Scorer, string, error) {
	if s.skipLLM {
		return nil, "rules", nil
	}
	if s.qualitativeFile != "" {
		st, err := qualitative.FromFile(s.qualitativeFile)
		if err != nil {
			if errors.Is(err, qualitative.ErrContract) {
				return nil, "", exitError(5, "%v", err)
			}
			return nil, "", exitError(3, "failed to load qualitative file: %v", err)
		}
		logger.Info("Using saved qualitative response", zap.String("file", s.qualitativeFile))
		return st, "file", nil
	}

	provider := s.provider
	if provider == nil {
		if !s.keys.Any() {
			return nil, "", exitError(4, "%v\nUse --skip-llm for rule-based scoring only.", llm.ErrNoProvider)
		}
		p, err := llm.ResolveProvider(ctx, s.model, s.keys, logger)
		if err != nil {
			return nil, "", exitError(4, "model provider error: %v", err)
		}
		provider = p
	}
	logger.Info("Using provider", zap.String("provider", provider.Name()), zap.String("model", s.model))

	settings := llm.Settings{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}
	if s.hasSeed {
		settings.Seed = &s.seed
	}
	return &qualitative.LLMScorer{
		Provider: provider,
		Settings: settings,
		Logger:   logger,
		Redact:   s.redact,
	}, provider.Name(), nil
}

// scoringExit maps an engine failure to its exit code.
func scoringExit(err error) error {
	var apiErr *llm.APIError
	switch {
	case errors.As(err, &apiErr):
		return exitError(4, "LLM call failed: %v\n%s", err, apiErr.Remedy())
	case errors.Is(err, llm.ErrTruncated):
		return exitError(4, "LLM call failed: %v\nraise --max-tokens and try again", err)
	case errors.Is(err, context.DeadlineExceeded):
		return exitError(4, "LLM call timed out: %v\nraise --timeout or use --skip-llm for rule-based scoring only", err)
	case errors.Is(err, qualitative.ErrContract):
		return exitError(5, "%v", err)
	case errors.Is(err, engine.ErrInvariant):
		return exitError(6, "%v", err)
	case errors.Is(err, engine.ErrInvalidThreshold):
		return exitError(3, "%v", err)
	}
	return exitError(4, "qualitative scoring failed: %v", err)
}
