// Package review defines the values produced by a deck validation run.
// Values are never mutated after construction; the With* helpers return
// modified copies.
package review

import (
	"encoding/json"
	"time"
)

// DimensionScore is the score for one dimension.
type DimensionScore struct {
	Dimension       Dimension `json:"dimension"`
	Score           int       `json:"score"`
	Weight          float64   `json:"weight"`
	Rationale       string    `json:"rationale"`
	EvidenceFound   []string  `json:"evidence_found"`
	EvidenceMissing []string  `json:"evidence_missing"`
}

// NewDimensionScore clamps score to [0,100] and weight to [0,1].
func NewDimensionScore(d Dimension, score int, weight float64, rationale string, found, missing []string) DimensionScore {
	return DimensionScore{
		Dimension:       d,
		Score:           Clamp(score, 0, 100),
		Weight:          clampWeight(weight),
		Rationale:       rationale,
		EvidenceFound:   cloneStrings(found),
		EvidenceMissing: cloneStrings(missing),
	}
}

// WithWeight returns a copy carrying weight w.
func (d DimensionScore) WithWeight(w float64) DimensionScore {
	return NewDimensionScore(d.Dimension, d.Score, w, d.Rationale, d.EvidenceFound, d.EvidenceMissing)
}

// Weighted returns score×weight.
func (d DimensionScore) Weighted() float64 {
	return float64(d.Score) * d.Weight
}

// SlideScore is the rule-based score for a single slide.
type SlideScore struct {
	SlideNumber int      `json:"slide_number"`
	SlideType   string   `json:"slide_type"`
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// NewSlideScore clamps score to [0,100].
func NewSlideScore(number int, slideType string, score int, issues, suggestions []string) SlideScore {
	return SlideScore{
		SlideNumber: number,
		SlideType:   slideType,
		Score:       Clamp(score, 0, 100),
		Issues:      cloneStrings(issues),
		Suggestions: cloneStrings(suggestions),
	}
}

// WithSuggestion returns a copy with s appended to the suggestions.
func (s SlideScore) WithSuggestion(note string) SlideScore {
	return NewSlideScore(s.SlideNumber, s.SlideType, s.Score, s.Issues, append(cloneStrings(s.Suggestions), note))
}

// CustomCheckResult is the outcome of one profile-defined check.
type CustomCheckResult struct {
	Check    string `json:"check"`
	Passed   bool   `json:"passed"`
	Evidence string `json:"evidence"`
}

// Result is the complete output of a validation run.
type Result struct {
	DeckName              string              `json:"deck_name"`
	TargetVC              string              `json:"target_vc"`
	ValidatedAt           time.Time           `json:"validated_at"`
	Mode                  Mode                `json:"mode"`
	OverallScore          int                 `json:"overall_score"`
	PassThreshold         int                 `json:"pass_threshold"`
	Dimensions            []DimensionScore    `json:"dimension_scores"`
	Slides                []SlideScore        `json:"slide_scores"`
	CustomChecks          []CustomCheckResult `json:"custom_check_results"`
	TopStrengths          []string            `json:"top_strengths"`
	CriticalGaps          []string            `json:"critical_gaps"`
	ImprovementPriorities []string            `json:"improvement_priorities"`
	Recommendation        string              `json:"recommendation"`
}

// PassFail reports whether the overall score meets the threshold.
func (r *Result) PassFail() bool {
	return r.OverallScore >= r.PassThreshold
}

// Dimension returns the score for d, if present.
func (r *Result) Dimension(d Dimension) (DimensionScore, bool) {
	for _, ds := range r.Dimensions {
		if ds.Dimension == d {
			return ds, true
		}
	}
	return DimensionScore{}, false
}

// PassedChecks counts custom checks that passed.
func (r *Result) PassedChecks() int {
	n := 0
	for _, cc := range r.CustomChecks {
		if cc.Passed {
			n++
		}
	}
	return n
}

type resultJSON Result

// MarshalJSON adds the derived pass_fail field.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		resultJSON
		PassFail bool `json:"pass_fail"`
	}{resultJSON(r), r.PassFail()})
}

// UnmarshalJSON ignores any serialized pass_fail; it is always derived.
func (r *Result) UnmarshalJSON(data []byte) error {
	var aux resultJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Result(aux)
	return nil
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
