// Package batch summarizes and exports the results of validating many decks.
package batch

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/dshills/deckcritic/internal/engine"
	"github.com/dshills/deckcritic/internal/review"
)

// Summary aggregates a batch. Score statistics cover successful items only.
type Summary struct {
	Count   int     `json:"count"`
	Passed  int     `json:"passed"`
	Failed  int     `json:"failed"`
	Errored int     `json:"errored"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"stddev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Summarize computes pass counts and overall-score statistics.
func Summarize(results []engine.ItemResult) (Summary, error) {
	s := Summary{Count: len(results)}
	var scores []float64
	for _, r := range results {
		if r.Err != nil {
			s.Errored++
			continue
		}
		if r.Result.PassFail() {
			s.Passed++
		} else {
			s.Failed++
		}
		scores = append(scores, float64(r.Result.OverallScore))
	}
	if len(scores) == 0 {
		return s, nil
	}

	var err error
	if s.Mean, err = stats.Mean(scores); err != nil {
		return s, fmt.Errorf("batch.Summarize: mean: %w", err)
	}
	if s.Median, err = stats.Median(scores); err != nil {
		return s, fmt.Errorf("batch.Summarize: median: %w", err)
	}
	if s.StdDev, err = stats.StandardDeviation(scores); err != nil {
		return s, fmt.Errorf("batch.Summarize: stddev: %w", err)
	}
	if s.Min, err = stats.Min(scores); err != nil {
		return s, fmt.Errorf("batch.Summarize: min: %w", err)
	}
	if s.Max, err = stats.Max(scores); err != nil {
		return s, fmt.Errorf("batch.Summarize: max: %w", err)
	}
	return s, nil
}

// Markdown renders one table row per item followed by the summary.
func Markdown(results []engine.ItemResult, s Summary) string {
	var b strings.Builder
	b.WriteString("# Batch Validation Summary\n\n")
	b.WriteString("| Deck | Company | Score | Status | Failed Checks |\n")
	b.WriteString("|------|---------|-------|--------|---------------|\n")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "| %s | | | ERROR | %s |\n", r.Name, strings.ReplaceAll(r.Err.Error(), "\n", " "))
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %d/100 | %s | %d |\n",
			r.Name, r.Result.DeckName, r.Result.OverallScore, status(r.Result), failedChecks(r.Result))
	}

	fmt.Fprintf(&b, "\n**Decks**: %d (%d passed, %d failed, %d errored)\n", s.Count, s.Passed, s.Failed, s.Errored)
	if s.Passed+s.Failed > 0 {
		fmt.Fprintf(&b, "**Scores**: mean %.1f, median %.1f, stddev %.1f, range %.0f-%.0f\n",
			s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	}
	return b.String()
}

func status(r *review.Result) string {
	if r.PassFail() {
		return "PASS"
	}
	return "FAIL"
}

func failedChecks(r *review.Result) int {
	return len(r.CustomChecks) - r.PassedChecks()
}
