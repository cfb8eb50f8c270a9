// Package prompt builds the LLM prompt for qualitative deck scoring.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/llm"
)

// CommonMistakes are the pitch deck failure patterns the model checks for.
var CommonMistakes = []string{
	"Over-indexing on architecture/technical detail vs business proof",
	"Missing simplified operating plan or use-of-funds breakdown",
	"No proactive response to AI commoditization risk",
	"Using top-down TAM only without bottom-up SOM calculation",
	"Generic competitive positioning without differentiated axes",
	"No quantified customer ROI or case study evidence",
	"Missing NDR or retention metrics on traction slide",
	"Title or headline is vague/generic rather than specific and data-driven",
}

// BuildOpts configures prompt construction.
type BuildOpts struct {
	Deck *deck.Deck
	// VCName is the profile display name, e.g. "Earlybird Venture Capital".
	VCName string
	// ProfileContext is the rendered profile (profile.FormatForPrompt).
	ProfileContext string
	// RuleFindings is the rule-based summary (rules.Summarize).
	RuleFindings string
}

// Build assembles the system and user prompts.
func Build(opts BuildOpts) (llm.Prompt, error) {
	deckJSON, err := json.MarshalIndent(opts.Deck, "", "  ")
	if err != nil {
		return llm.Prompt{}, fmt.Errorf("prompt.Build: marshal deck: %w", err)
	}

	var sys strings.Builder
	sys.WriteString(calibration)
	sys.WriteString("\n\n")
	fmt.Fprintf(&sys, "<vc_profile>\n%s\n</vc_profile>\n\n", strings.TrimRight(opts.ProfileContext, "\n"))
	fmt.Fprintf(&sys, "<rule_based_findings>\n%s\n</rule_based_findings>", strings.TrimRight(opts.RuleFindings, "\n"))

	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate this pitch deck for %s.\n\n", opts.VCName)
	fmt.Fprintf(&b, "<deck>\n%s\n</deck>\n\n", deckJSON)

	b.WriteString("Score these dimensions (0-100 each) with detailed rationale:\n\n")
	b.WriteString("1. NARRATIVE_COHERENCE: Do slides flow logically? Are transitions smooth?\n")
	b.WriteString("   Is the investor psychology arc (Hook > Tension > Resolution > Proof > Trust > Ask) maintained?\n\n")
	fmt.Fprintf(&b, "2. THESIS_ALIGNMENT: How well does the deck address each of %s's\n", opts.VCName)
	b.WriteString("   thesis points? Evaluate against each thesis point individually.\n\n")
	b.WriteString("3. COMMON_MISTAKES: Check for these specific issues:\n")
	for _, m := range CommonMistakes {
		fmt.Fprintf(&b, "   - %s\n", m)
	}
	b.WriteString(`
Also provide:
- Per-slide quality observations (list of objects with slide_number, quality_note)
- Top 3 strengths of the deck
- Top 3 critical gaps
- One-paragraph recommendation

`)
	b.WriteString(outputFormat)

	return llm.Prompt{System: sys.String(), User: b.String()}, nil
}

const calibration = `You are a senior VC partner evaluating pitch decks. Score with strict calibration:
- 0-20: Reject immediately, fundamental problems
- 21-40: Significant concerns, major rework needed
- 41-60: Borderline, needs substantial improvement
- 61-80: Strong candidate, minor improvements needed
- 81-100: Exceptional, rare, reserved for truly outstanding decks

DO NOT inflate scores. Most decks score 40-65. A score above 80 requires
exceptional evidence across all dimensions.

Evaluate step by step: analyze evidence FIRST, then assign scores.
Return ONLY valid JSON matching the requested format.`

const outputFormat = `OUTPUT FORMAT (return ONLY this JSON):
{
    "narrative_coherence": {
        "score": <0-100>,
        "rationale": "<explanation>",
        "evidence_found": ["<strength1>", ...],
        "evidence_missing": ["<weakness1>", ...]
    },
    "thesis_alignment": {
        "score": <0-100>,
        "rationale": "<explanation>",
        "evidence_found": ["<thesis point addressed>", ...],
        "evidence_missing": ["<thesis point not addressed>", ...]
    },
    "common_mistakes": {
        "score": <0-100>,
        "rationale": "<explanation>",
        "evidence_found": ["<good practice found>", ...],
        "evidence_missing": ["<mistake detected>", ...]
    },
    "slide_quality": [
        {"slide_number": 1, "quality_note": "<observation>"},
        ...
    ],
    "top_strengths": ["<strength1>", "<strength2>", "<strength3>"],
    "critical_gaps": ["<gap1>", "<gap2>", "<gap3>"],
    "recommendation": "<one paragraph>"
}`
