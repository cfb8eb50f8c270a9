package qualitative

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/deckcritic/internal/review"
)

// Parse converts a raw judge payload into an Assessment.
//
// The three dimension keys are required objects with a score and a
// rationale. Scores may be integral JSON numbers or numeric strings.
// Optional fields default to empty when absent or null. Slide notes
// without a slide number or note are skipped.
func Parse(raw []byte) (*Assessment, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return nil, &ContractError{Expected: "JSON object", Got: kindOf(raw)}
	}

	var a Assessment
	for _, d := range review.QualitativeDimensions() {
		j, err := parseJudgment(string(d), top[string(d)])
		if err != nil {
			return nil, err
		}
		switch d {
		case review.DimensionNarrativeCoherence:
			a.NarrativeCoherence = j
		case review.DimensionThesisAlignment:
			a.ThesisAlignment = j
		case review.DimensionCommonMistakes:
			a.CommonMistakes = j
		}
	}

	var err error
	if a.SlideQuality, err = parseSlideNotes(top["slide_quality"]); err != nil {
		return nil, err
	}
	if a.TopStrengths, err = stringList("", "top_strengths", top["top_strengths"]); err != nil {
		return nil, err
	}
	if a.CriticalGaps, err = stringList("", "critical_gaps", top["critical_gaps"]); err != nil {
		return nil, err
	}
	if v, ok := top["recommendation"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &a.Recommendation); err != nil {
			return nil, &ContractError{Field: "recommendation", Expected: "string", Got: kindOf(v)}
		}
	}
	return &a, nil
}

func parseJudgment(dim string, raw json.RawMessage) (Judgment, error) {
	if raw == nil {
		return Judgment{}, &ContractError{Dimension: dim, Expected: "object", Got: "missing"}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Judgment{}, &ContractError{Dimension: dim, Expected: "object", Got: kindOf(raw)}
	}

	var j Judgment
	scoreRaw, ok := obj["score"]
	if !ok {
		return Judgment{}, &ContractError{Dimension: dim, Field: "score", Expected: "integer", Got: "missing"}
	}
	score, err := parseScore(scoreRaw)
	if err != nil {
		return Judgment{}, &ContractError{Dimension: dim, Field: "score", Expected: "integer", Got: string(bytes.TrimSpace(scoreRaw))}
	}
	j.Score = score

	rationale, ok := obj["rationale"]
	if !ok {
		return Judgment{}, &ContractError{Dimension: dim, Field: "rationale", Expected: "string", Got: "missing"}
	}
	if err := json.Unmarshal(rationale, &j.Rationale); err != nil || isNull(rationale) {
		return Judgment{}, &ContractError{Dimension: dim, Field: "rationale", Expected: "string", Got: kindOf(rationale)}
	}

	if j.EvidenceFound, err = stringList(dim, "evidence_found", obj["evidence_found"]); err != nil {
		return Judgment{}, err
	}
	if j.EvidenceMissing, err = stringList(dim, "evidence_missing", obj["evidence_missing"]); err != nil {
		return Judgment{}, err
	}
	return j, nil
}

// parseScore accepts 72, 72.0 and "72".
func parseScore(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return 0, strconv.ErrSyntax
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, strconv.ErrRange
	}
	return int(f), nil
}

func parseSlideNotes(raw json.RawMessage) ([]SlideNote, error) {
	notes := []SlideNote{}
	if raw == nil || isNull(raw) {
		return notes, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ContractError{Field: "slide_quality", Expected: "array", Got: kindOf(raw)}
	}
	for _, item := range items {
		var n struct {
			SlideNumber json.RawMessage `json:"slide_number"`
			QualityNote string          `json:"quality_note"`
		}
		if err := json.Unmarshal(item, &n); err != nil {
			continue
		}
		num, err := parseScore(n.SlideNumber)
		if err != nil || num < 1 || strings.TrimSpace(n.QualityNote) == "" {
			continue
		}
		notes = append(notes, SlideNote{SlideNumber: num, QualityNote: n.QualityNote})
	}
	return notes, nil
}

func stringList(dim, field string, raw json.RawMessage) ([]string, error) {
	out := []string{}
	if raw == nil || isNull(raw) {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ContractError{Dimension: dim, Field: field, Expected: "array of strings", Got: kindOf(raw)}
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// kindOf names the JSON type of raw for error messages.
func kindOf(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "empty input"
	}
	if !json.Valid(trimmed) {
		return "invalid JSON"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	}
	return "number"
}
