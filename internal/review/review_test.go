package review

import (
	"encoding/json"
	"math"
	"testing"
)

// --- Enum tests ---

func TestDimensionValid(t *testing.T) {
	for _, d := range Dimensions() {
		if !d.Valid() {
			t.Errorf("expected %q to be valid", d)
		}
	}
	if Dimension("charisma").Valid() {
		t.Error("expected charisma to be invalid")
	}
}

func TestNominalWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, d := range Dimensions() {
		sum += d.NominalWeight()
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("nominal weights sum to %f, want 1.0", sum)
	}
}

func TestQualitativeDimensions(t *testing.T) {
	q := QualitativeDimensions()
	if len(q) != 3 {
		t.Fatalf("expected 3 qualitative dimensions, got %d", len(q))
	}
	for _, d := range q {
		if !d.Qualitative() {
			t.Errorf("%s should be qualitative", d)
		}
	}
	if DimensionCompleteness.Qualitative() || DimensionMetricsDensity.Qualitative() {
		t.Error("rule dimensions must not be qualitative")
	}
}

func TestModeValid(t *testing.T) {
	if !ModeFull.Valid() || !ModeRulesOnly.Valid() {
		t.Error("expected built-in modes to be valid")
	}
	if Mode("hybrid").Valid() {
		t.Error("expected hybrid to be invalid")
	}
}

// --- Clamping tests ---

func TestNewDimensionScoreClamps(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		weight     float64
		wantScore  int
		wantWeight float64
	}{
		{"in range", 72, 0.2, 72, 0.2},
		{"negative score", -40, 0.2, 0, 0.2},
		{"score over 100", 140, 0.2, 100, 0.2},
		{"negative weight", 50, -0.5, 50, 0},
		{"weight over 1", 50, 1.7, 50, 1},
		{"nan weight", 50, math.NaN(), 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDimensionScore(DimensionCompleteness, tt.score, tt.weight, "r", nil, nil)
			if d.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", d.Score, tt.wantScore)
			}
			if d.Weight != tt.wantWeight {
				t.Errorf("weight = %f, want %f", d.Weight, tt.wantWeight)
			}
			if d.EvidenceFound == nil || d.EvidenceMissing == nil {
				t.Error("evidence lists must be non-nil")
			}
		})
	}
}

func TestWithWeightCopies(t *testing.T) {
	orig := NewDimensionScore(DimensionCompleteness, 80, 0.25, "r", []string{"a"}, nil)
	next := orig.WithWeight(0.5)
	if orig.Weight != 0.25 {
		t.Errorf("original weight changed to %f", orig.Weight)
	}
	if next.Weight != 0.5 {
		t.Errorf("new weight = %f, want 0.5", next.Weight)
	}
	next.EvidenceFound[0] = "b"
	if orig.EvidenceFound[0] != "a" {
		t.Error("WithWeight shares evidence slice with original")
	}
}

func TestWithSuggestionCopies(t *testing.T) {
	orig := NewSlideScore(3, "problem", 85, []string{"issue"}, []string{"first"})
	next := orig.WithSuggestion("second")
	if len(orig.Suggestions) != 1 {
		t.Errorf("original suggestions changed: %v", orig.Suggestions)
	}
	if len(next.Suggestions) != 2 || next.Suggestions[1] != "second" {
		t.Errorf("unexpected suggestions: %v", next.Suggestions)
	}
	if next.Score != 85 || next.SlideNumber != 3 {
		t.Error("WithSuggestion changed other fields")
	}
}

func TestNewSlideScoreClamps(t *testing.T) {
	if got := NewSlideScore(1, "cover", -25, nil, nil).Score; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
	if got := NewSlideScore(1, "cover", 120, nil, nil).Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

// --- Score tests ---

func TestComputeOverall(t *testing.T) {
	tests := []struct {
		name string
		dims []DimensionScore
		want int
	}{
		{"empty", nil, 0},
		{"rules only", []DimensionScore{
			NewDimensionScore(DimensionCompleteness, 90, 0.25/0.45, "", nil, nil),
			NewDimensionScore(DimensionMetricsDensity, 60, 0.20/0.45, "", nil, nil),
		}, 77},
		{"full", []DimensionScore{
			NewDimensionScore(DimensionCompleteness, 80, 0.25, "", nil, nil),
			NewDimensionScore(DimensionMetricsDensity, 50, 0.20, "", nil, nil),
			NewDimensionScore(DimensionNarrativeCoherence, 70, 0.20, "", nil, nil),
			NewDimensionScore(DimensionThesisAlignment, 60, 0.20, "", nil, nil),
			NewDimensionScore(DimensionCommonMistakes, 40, 0.15, "", nil, nil),
		}, 62},
		{"all perfect", []DimensionScore{
			NewDimensionScore(DimensionCompleteness, 100, 0.5, "", nil, nil),
			NewDimensionScore(DimensionMetricsDensity, 100, 0.5, "", nil, nil),
		}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeOverall(tt.dims); got != tt.want {
				t.Errorf("ComputeOverall() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeightsBalanced(t *testing.T) {
	balanced := []DimensionScore{
		{Weight: 0.25}, {Weight: 0.20}, {Weight: 0.20}, {Weight: 0.20}, {Weight: 0.15},
	}
	if !WeightsBalanced(balanced) {
		t.Errorf("expected balanced, sum = %f", WeightSum(balanced))
	}
	off := []DimensionScore{{Weight: 0.25}, {Weight: 0.20}}
	if WeightsBalanced(off) {
		t.Error("expected 0.45 to be unbalanced")
	}
}

// --- Sort tests ---

func TestLowestScoring(t *testing.T) {
	slides := []SlideScore{
		{SlideNumber: 1, Score: 90},
		{SlideNumber: 2, Score: 40},
		{SlideNumber: 3, Score: 70},
		{SlideNumber: 4, Score: 40},
	}
	got := LowestScoring(slides, 3)
	want := []int{2, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d slides, want %d", len(got), len(want))
	}
	for i, n := range want {
		if got[i].SlideNumber != n {
			t.Errorf("position %d: got slide %d, want %d", i, got[i].SlideNumber, n)
		}
	}
	if slides[0].SlideNumber != 1 {
		t.Error("input slice was reordered")
	}
	if len(LowestScoring(slides[:1], 3)) != 1 {
		t.Error("expected n larger than input to return all slides")
	}
}

// --- Result tests ---

func TestPassFailDerived(t *testing.T) {
	r := &Result{OverallScore: 60, PassThreshold: 60}
	if !r.PassFail() {
		t.Error("score equal to threshold should pass")
	}
	r.PassThreshold = 61
	if r.PassFail() {
		t.Error("score below threshold should fail")
	}
}

func TestResultJSONIncludesPassFail(t *testing.T) {
	r := Result{DeckName: "Acme", OverallScore: 75, PassThreshold: 60}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["pass_fail"] != true {
		t.Errorf("pass_fail = %v, want true", raw["pass_fail"])
	}
	if raw["deck_name"] != "Acme" {
		t.Errorf("deck_name = %v", raw["deck_name"])
	}
}

func TestResultUnmarshalIgnoresPassFail(t *testing.T) {
	var r Result
	if err := json.Unmarshal([]byte(`{"overall_score": 10, "pass_threshold": 60, "pass_fail": true}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.PassFail() {
		t.Error("pass_fail must be derived, not read from input")
	}
}

func TestPassedChecks(t *testing.T) {
	r := &Result{CustomChecks: []CustomCheckResult{{Passed: true}, {Passed: false}, {Passed: true}}}
	if got := r.PassedChecks(); got != 2 {
		t.Errorf("PassedChecks() = %d, want 2", got)
	}
}
