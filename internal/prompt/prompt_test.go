package prompt

import (
	"strings"
	"testing"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
)

func testDeck() *deck.Deck {
	return &deck.Deck{
		CompanyName:  "Acme AI",
		TargetVC:     "earlybird",
		NarrativeArc: "hook to ask",
		Slides: []deck.Slide{{
			SlideNumber: 1,
			SlideType:   "cover",
			Title:       "Acme AI",
			Headline:    "Compliance automation for EU banks",
			Bullets:     []string{"€1.2M ARR"},
		}},
	}
}

func TestBuild(t *testing.T) {
	prof, err := profile.LoadBuiltin("earlybird")
	if err != nil {
		t.Fatal(err)
	}

	p, err := Build(BuildOpts{
		Deck:           testDeck(),
		VCName:         prof.Name,
		ProfileContext: profile.FormatForPrompt(prof),
		RuleFindings:   "Completeness score: 80/100",
	})
	if err != nil {
		t.Fatal(err)
	}

	systemChecks := []string{
		"senior VC partner",
		"DO NOT inflate scores",
		"<vc_profile>\nVC: " + prof.Name,
		"</vc_profile>",
		"<rule_based_findings>\nCompleteness score: 80/100\n</rule_based_findings>",
	}
	for _, want := range systemChecks {
		if !strings.Contains(p.System, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}

	userChecks := []string{
		"Evaluate this pitch deck for " + prof.Name + ".",
		"<deck>\n{",
		`"company_name": "Acme AI"`,
		"Hook > Tension > Resolution > Proof > Trust > Ask",
		"NARRATIVE_COHERENCE",
		"THESIS_ALIGNMENT",
		"COMMON_MISTAKES",
		`"slide_quality"`,
		`"recommendation": "<one paragraph>"`,
	}
	for _, want := range userChecks {
		if !strings.Contains(p.User, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestBuildListsEveryCommonMistake(t *testing.T) {
	p, err := Build(BuildOpts{Deck: testDeck(), VCName: "Test VC"})
	if err != nil {
		t.Fatal(err)
	}
	if len(CommonMistakes) != 8 {
		t.Fatalf("CommonMistakes = %d entries, want 8", len(CommonMistakes))
	}
	for _, m := range CommonMistakes {
		if !strings.Contains(p.User, "   - "+m+"\n") {
			t.Errorf("user prompt missing mistake %q", m)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	opts := BuildOpts{Deck: testDeck(), VCName: "Test VC", ProfileContext: "ctx", RuleFindings: "rules"}
	a, err := Build(opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(opts)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("prompt differs between identical builds")
	}
}
