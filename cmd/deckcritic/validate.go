package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/deckcritic/internal/engine"
)

type validateFlags struct {
	scoringFlags

	format    string
	out       string
	style     string
	width     int
	failUnder bool

	logger *zap.Logger
	stdout io.Writer
}

func newValidateCmd(g *globalFlags) *cobra.Command {
	f := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <deck.json>",
		Short: "Score a pitch deck against an investor profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			f.applyConfig(cmd, cfg)
			f.logger = logger
			f.stdout = cmd.OutOrStdout()
			return runValidate(cmd.Context(), args[0], f)
		},
	}

	f.register(cmd)
	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json, md, html or term")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.style, "style", "", "Terminal style for --format term: dark, light or notty (default: detect)")
	flags.IntVar(&f.width, "width", 100, "Word wrap width for --format term")
	flags.BoolVar(&f.failUnder, "fail-under", false, "Exit 2 when the overall score is below the threshold")

	return cmd
}

func runValidate(ctx context.Context, deckPath string, f *validateFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := f.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	stdout := f.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	if !validFormat(f.format) {
		return exitError(3, "unknown format: %s (want json, md, html or term)", f.format)
	}
	if err := checkThreshold(f.threshold); err != nil {
		return err
	}

	// 1. Inputs
	logger.Debug("Loading deck", zap.String("deck", deckPath))
	d, err := loadDeck(deckPath)
	if err != nil {
		return err
	}
	logger.Debug("Loading profile", zap.String("profile", f.profileName))
	p, err := loadProfile(f.profileName, f.profilesDir)
	if err != nil {
		return err
	}

	// 2. Scorer
	scorer, source, err := f.newScorer(ctx, logger)
	if err != nil {
		return err
	}

	// 3. Score
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	e := engine.New(engine.WithScorer(scorer), engine.WithLogger(logger))
	res, err := e.Validate(ctx, d, p, engine.Options{
		PassThreshold:  f.threshold,
		UseQualitative: !f.skipLLM,
	})
	if err != nil {
		return scoringExit(err)
	}
	logger.Info("Deck validated",
		zap.String("deck", res.DeckName),
		zap.String("profile", p.Name),
		zap.Int("score", res.OverallScore),
		zap.Bool("pass", res.PassFail()))

	// 4. Output
	rep := newReport(res, reportInput{
		DeckFile: filepath.Base(deckPath),
		DeckHash: d.Hash,
		Profile:  f.profileName,
		Scorer:   source,
		Model:    f.model,
	})
	data, err := formatReport(rep, f.format, f.style, f.width)
	if err != nil {
		return err
	}
	if err := writeOutput(f.out, stdout, data); err != nil {
		return err
	}
	if f.out != "" {
		logger.Info("Report written", zap.String("path", f.out))
	}

	// 5. Exit code
	if f.failUnder && !res.PassFail() {
		return exitError(2, "overall score %d is below threshold %d", res.OverallScore, res.PassThreshold)
	}
	return nil
}

func validFormat(format string) bool {
	switch format {
	case "json", "md", "html", "term":
		return true
	}
	return false
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
