package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/deckcritic/internal/batch"
	"github.com/dshills/deckcritic/internal/engine"
	"github.com/dshills/deckcritic/internal/review"
)

type batchFlags struct {
	scoringFlags

	format      string
	out         string
	xlsx        string
	concurrency int
	failUnder   bool

	logger *zap.Logger
	stdout io.Writer
}

func newBatchCmd(g *globalFlags) *cobra.Command {
	f := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch <deck.json>...",
		Short: "Score several decks against one profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			f.applyConfig(cmd, cfg)
			if !cmd.Flags().Changed("concurrency") {
				f.concurrency = cfg.Concurrency
			}
			f.logger = logger
			f.stdout = cmd.OutOrStdout()
			return runBatch(cmd.Context(), args, f)
		},
	}

	f.register(cmd)
	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "md", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.xlsx, "xlsx", "", "Also write the results to this Excel workbook")
	flags.IntVar(&f.concurrency, "concurrency", 4, "Decks validated in parallel")
	flags.BoolVar(&f.failUnder, "fail-under", false, "Exit 2 when any deck fails or errors")

	return cmd
}

// batchReport is the JSON envelope written by batch.
type batchReport struct {
	RunID   string        `json:"run_id"`
	Tool    string        `json:"tool"`
	Version string        `json:"version"`
	Profile string        `json:"profile"`
	Summary batch.Summary `json:"summary"`
	Items   []batchEntry  `json:"items"`
}

type batchEntry struct {
	DeckFile string         `json:"deck_file"`
	Result   *review.Result `json:"result,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func runBatch(ctx context.Context, paths []string, f *batchFlags) error {
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

	if f.format != "json" && f.format != "md" {
		return exitError(3, "unknown format: %s (want json or md)", f.format)
	}
	if err := checkThreshold(f.threshold); err != nil {
		return err
	}

	p, err := loadProfile(f.profileName, f.profilesDir)
	if err != nil {
		return err
	}
	scorer, _, err := f.newScorer(ctx, logger)
	if err != nil {
		return err
	}

	// Decks that fail to load are reported in place; the rest are scored.
	results := make([]engine.ItemResult, len(paths))
	var items []engine.Item
	var slots []int
	for i, path := range paths {
		name := filepath.Base(path)
		d, err := loadDeck(path)
		if err != nil {
			results[i] = engine.ItemResult{Name: name, Err: err}
			continue
		}
		items = append(items, engine.Item{Name: name, Deck: d, Profile: p})
		slots = append(slots, i)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	e := engine.New(engine.WithScorer(scorer), engine.WithLogger(logger))
	logger.Info("Validating batch",
		zap.Int("decks", len(items)),
		zap.String("profile", p.Name),
		zap.Int("concurrency", f.concurrency))
	scored := e.ValidateBatch(ctx, items, engine.Options{
		PassThreshold:  f.threshold,
		UseQualitative: !f.skipLLM,
	}, f.concurrency)
	for j, r := range scored {
		results[slots[j]] = r
	}

	summary, err := batch.Summarize(results)
	if err != nil {
		return exitError(6, "%v", err)
	}

	var data []byte
	switch f.format {
	case "json":
		rep := batchReport{
			RunID:   uuid.NewString(),
			Tool:    "deckcritic",
			Version: version,
			Profile: f.profileName,
			Summary: summary,
		}
		for _, r := range results {
			entry := batchEntry{DeckFile: r.Name, Result: r.Result}
			if r.Err != nil {
				entry.Error = r.Err.Error()
			}
			rep.Items = append(rep.Items, entry)
		}
		data, err = json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		data = append(data, '\n')
	case "md":
		data = []byte(batch.Markdown(results, summary))
	}
	if err := writeOutput(f.out, stdout, data); err != nil {
		return err
	}

	if f.xlsx != "" {
		if err := batch.WriteXLSX(f.xlsx, results, summary); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		logger.Info("Workbook written", zap.String("path", f.xlsx))
	}

	if f.failUnder && summary.Failed+summary.Errored > 0 {
		return exitError(2, "%d of %d decks failed or errored", summary.Failed+summary.Errored, summary.Count)
	}
	return nil
}
