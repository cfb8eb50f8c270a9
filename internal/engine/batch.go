package engine

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/review"
)

// Item is one deck to validate in a batch.
type Item struct {
	Name    string
	Deck    *deck.Deck
	Profile *profile.Profile
}

// ItemResult is the outcome for one Item. Exactly one of Result and Err is set.
type ItemResult struct {
	Name     string
	Result   *review.Result
	Err      error
	Duration time.Duration
}

// ValidateBatch validates items with at most concurrency validations in
// flight. Results are returned in item order. A failed item does not
// stop the others.
func (e *Engine) ValidateBatch(ctx context.Context, items []Item, opts Options, concurrency int) []ItemResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]ItemResult, len(items))
	p := pool.New().WithMaxGoroutines(concurrency)

	for idx, item := range items {
		p.Go(func() {
			start := time.Now()
			r, err := e.Validate(ctx, item.Deck, item.Profile, opts)
			if err != nil {
				e.Logger.Warn("Batch item failed", zap.String("item", item.Name), zap.Error(err))
			}
			// each goroutine owns its own index
			results[idx] = ItemResult{Name: item.Name, Result: r, Err: err, Duration: time.Since(start)}
		})
	}

	p.Wait()
	return results
}
