package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/deckcritic/internal/render"
	"github.com/dshills/deckcritic/internal/review"
)

// report is the JSON envelope written by validate.
type report struct {
	RunID   string         `json:"run_id"`
	Tool    string         `json:"tool"`
	Version string         `json:"version"`
	Input   reportInput    `json:"input"`
	Result  *review.Result `json:"result"`
}

type reportInput struct {
	DeckFile string `json:"deck_file"`
	DeckHash string `json:"deck_hash"`
	Profile  string `json:"profile"`
	// Scorer is the provider name, "file" or "rules".
	Scorer string `json:"scorer"`
	Model  string `json:"model,omitempty"`
}

func newReport(res *review.Result, in reportInput) report {
	return report{
		RunID:   uuid.NewString(),
		Tool:    "deckcritic",
		Version: version,
		Input:   in,
		Result:  res,
	}
}

func formatReport(rep report, format, style string, width int) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal output: %w", err)
		}
		return append(data, '\n'), nil
	case "md":
		return []byte(render.Markdown(rep.Result)), nil
	case "html":
		return render.HTML(rep.Result), nil
	case "term":
		out, err := render.Terminal(rep.Result, style, width)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	}
	return nil, exitError(3, "unknown format: %s", format)
}
