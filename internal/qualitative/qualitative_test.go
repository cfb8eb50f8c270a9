package qualitative

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/llm"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/review"
)

const validResponse = `{
  "narrative_coherence": {"score": 72, "rationale": "Clear arc", "evidence_found": ["strong hook"], "evidence_missing": []},
  "thesis_alignment": {"score": "65", "rationale": "Partial fit"},
  "common_mistakes": {"score": 58.0, "rationale": "Some issues", "evidence_missing": ["no NDR"]},
  "slide_quality": [
    {"slide_number": 2, "quality_note": "Sharpen the headline"},
    {"slide_number": 0, "quality_note": "ignored"},
    {"slide_number": 3, "quality_note": ""},
    "not an object"
  ],
  "top_strengths": ["Team", "Traction"],
  "critical_gaps": ["No retention data"],
  "recommendation": "Tighten the financials."
}`

func TestParse(t *testing.T) {
	a, err := Parse([]byte(validResponse))
	require.NoError(t, err)

	assert.Equal(t, 72, a.NarrativeCoherence.Score)
	assert.Equal(t, "Clear arc", a.NarrativeCoherence.Rationale)
	assert.Equal(t, []string{"strong hook"}, a.NarrativeCoherence.EvidenceFound)
	assert.Equal(t, 65, a.ThesisAlignment.Score)
	assert.Empty(t, a.ThesisAlignment.EvidenceFound)
	assert.NotNil(t, a.ThesisAlignment.EvidenceFound)
	assert.Equal(t, 58, a.CommonMistakes.Score)
	assert.Equal(t, []string{"no NDR"}, a.CommonMistakes.EvidenceMissing)
	assert.Equal(t, []SlideNote{{SlideNumber: 2, QualityNote: "Sharpen the headline"}}, a.SlideQuality)
	assert.Equal(t, []string{"Team", "Traction"}, a.TopStrengths)
	assert.Equal(t, []string{"No retention data"}, a.CriticalGaps)
	assert.Equal(t, "Tighten the financials.", a.Recommendation)
}

func TestParseOptionalFieldsDefaultEmpty(t *testing.T) {
	a, err := Parse([]byte(`{
		"narrative_coherence": {"score": 1, "rationale": "a"},
		"thesis_alignment": {"score": 2, "rationale": "b"},
		"common_mistakes": {"score": 3, "rationale": "c"},
		"critical_gaps": null
	}`))
	require.NoError(t, err)
	assert.Empty(t, a.SlideQuality)
	assert.NotNil(t, a.SlideQuality)
	assert.NotNil(t, a.TopStrengths)
	assert.NotNil(t, a.CriticalGaps)
	assert.Equal(t, "", a.Recommendation)
}

func TestParseContractViolations(t *testing.T) {
	ok := `{"score": 50, "rationale": "fine"}`
	build := func(nc, ta, cm string) string {
		parts := []string{}
		if nc != "" {
			parts = append(parts, `"narrative_coherence": `+nc)
		}
		if ta != "" {
			parts = append(parts, `"thesis_alignment": `+ta)
		}
		if cm != "" {
			parts = append(parts, `"common_mistakes": `+cm)
		}
		return "{" + strings.Join(parts, ",") + "}"
	}

	tests := []struct {
		name      string
		input     string
		dimension string
		field     string
	}{
		{"not an object", `[1,2]`, "", ""},
		{"invalid JSON", `{"narrative_coherence": `, "", ""},
		{"missing dimension", build(ok, "", ok), "thesis_alignment", ""},
		{"dimension is a string", build(`"great"`, ok, ok), "narrative_coherence", ""},
		{"dimension is null", build(ok, ok, "null"), "common_mistakes", ""},
		{"missing score", build(`{"rationale": "x"}`, ok, ok), "narrative_coherence", "score"},
		{"missing rationale", build(ok, `{"score": 10}`, ok), "thesis_alignment", "rationale"},
		{"fractional score", build(ok, ok, `{"score": 72.5, "rationale": "x"}`), "common_mistakes", "score"},
		{"word score", build(`{"score": "high", "rationale": "x"}`, ok, ok), "narrative_coherence", "score"},
		{"boolean score", build(`{"score": true, "rationale": "x"}`, ok, ok), "narrative_coherence", "score"},
		{"null score", build(`{"score": null, "rationale": "x"}`, ok, ok), "narrative_coherence", "score"},
		{"numeric rationale", build(`{"score": 1, "rationale": 5}`, ok, ok), "narrative_coherence", "rationale"},
		{"evidence not strings", build(`{"score": 1, "rationale": "x", "evidence_found": [1]}`, ok, ok), "narrative_coherence", "evidence_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrContract)

			var ce *ContractError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.dimension, ce.Dimension)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestContractErrorMessage(t *testing.T) {
	err := &ContractError{Dimension: "thesis_alignment", Field: "score", Expected: "integer", Got: `"high"`}
	assert.Equal(t, `qualitative response violates contract: thesis_alignment.score: expected integer, got "high"`, err.Error())

	err = &ContractError{Expected: "JSON object", Got: "array"}
	assert.Contains(t, err.Error(), "$: expected JSON object, got array")
}

func TestDimensionScoresClampAndWeight(t *testing.T) {
	a := &Assessment{
		NarrativeCoherence: Judgment{Score: 140, Rationale: "r"},
		ThesisAlignment:    Judgment{Score: -5, Rationale: "r"},
		CommonMistakes:     Judgment{Score: 50, Rationale: "r"},
	}
	dims := a.DimensionScores()
	require.Len(t, dims, 3)
	assert.Equal(t, review.DimensionNarrativeCoherence, dims[0].Dimension)
	assert.Equal(t, 100, dims[0].Score)
	assert.Equal(t, 0, dims[1].Score)
	assert.InDelta(t, 0.15, dims[2].Weight, 1e-9)
}

func testRequest(t *testing.T) Request {
	t.Helper()
	prof, err := profile.LoadBuiltin("general")
	require.NoError(t, err)
	return Request{
		Deck: &deck.Deck{
			CompanyName: "Acme",
			Slides: []deck.Slide{{
				SlideNumber:  1,
				SlideType:    "cover",
				Title:        "Acme",
				SpeakerNotes: "demo login password=hunter2",
			}},
		},
		Profile:        prof,
		ProfileContext: profile.FormatForPrompt(prof),
		RuleFindings:   "Completeness score: 10/100",
	}
}

func TestLLMScorer(t *testing.T) {
	mock := &llm.MockProvider{Response: "Here you go:\n```json\n" + validResponse + "\n```"}
	s := &LLMScorer{Provider: mock, Redact: true}
	req := testRequest(t)

	a, err := s.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 72, a.NarrativeCoherence.Score)

	prompts := mock.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0].System, "Completeness score: 10/100")
	assert.Contains(t, prompts[0].System, "VC: General")
	assert.Contains(t, prompts[0].User, "Evaluate this pitch deck for General.")
	assert.NotContains(t, prompts[0].User, "hunter2")
	assert.Equal(t, "demo login password=hunter2", req.Deck.Slides[0].SpeakerNotes, "request deck must not change")
}

func TestLLMScorerWithoutRedaction(t *testing.T) {
	mock := &llm.MockProvider{Response: validResponse}
	s := &LLMScorer{Provider: mock}

	_, err := s.Score(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Contains(t, mock.Prompts()[0].User, "hunter2")
}

func TestLLMScorerProviderError(t *testing.T) {
	apiErr := &llm.APIError{Provider: "anthropic", Kind: llm.KindRateLimit, StatusCode: 429, Message: "slow down"}
	s := &LLMScorer{Provider: &llm.MockProvider{Err: apiErr}}

	_, err := s.Score(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrRateLimit)
	assert.False(t, errors.Is(err, ErrContract))
}

func TestLLMScorerNoJSON(t *testing.T) {
	s := &LLMScorer{Provider: &llm.MockProvider{Response: "I cannot score this deck."}}

	_, err := s.Score(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, ErrContract)
}

func TestStatic(t *testing.T) {
	want := &Assessment{Recommendation: "ok"}
	a, err := (&Static{Assessment: want}).Score(context.Background(), Request{})
	require.NoError(t, err)
	assert.Same(t, want, a)

	boom := errors.New("boom")
	_, err = (&Static{Err: boom}).Score(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(validResponse), 0o644))

	s, err := FromFile(good)
	require.NoError(t, err)
	a, err := s.Score(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Tighten the financials.", a.Recommendation)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"narrative_coherence": {"score": 1}}`), 0o644))
	_, err = FromFile(bad)
	assert.ErrorIs(t, err, ErrContract)

	_, err = FromFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
