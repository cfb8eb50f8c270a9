package profile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltinAll(t *testing.T) {
	names := []string{"earlybird", "pointnine", "general"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := LoadBuiltin(name)
			if err != nil {
				t.Fatalf("LoadBuiltin(%q): %v", name, err)
			}
			if p.Name == "" {
				t.Error("profile name is empty")
			}
			if len(p.ThesisPoints) == 0 {
				t.Error("profile has no thesis points")
			}
			if p.DeckPreferences.PreferredSlideCount < 1 {
				t.Errorf("preferred slide count = %d", p.DeckPreferences.PreferredSlideCount)
			}
		})
	}
}

func TestLoadBuiltinNotFound(t *testing.T) {
	_, err := LoadBuiltin("earlybrd")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "expected *NotFoundError, got %v", err)
	assert.Equal(t, "earlybrd", nf.Name)
	assert.Contains(t, nf.Available, "earlybird")
	assert.Contains(t, nf.Suggestions, "earlybird")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestList(t *testing.T) {
	names, err := List("")
	require.NoError(t, err)
	assert.Equal(t, []string{"earlybird", "general", "pointnine"}, names)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	doc := `name: Seedcamp
fund_name: Seedcamp Fund VI
thesis_points:
  - Global founders from day one
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seedcamp.yaml"), []byte(doc), 0644))

	p, err := Load("seedcamp", dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSlideCount, p.DeckPreferences.PreferredSlideCount)
	assert.Equal(t, DefaultNarrative, p.DeckPreferences.NarrativeStyle)
	assert.Equal(t, DefaultMarketSizing, p.DeckPreferences.MarketSizingApproach)
	assert.NotNil(t, p.CustomChecks)
	assert.NotNil(t, p.DeckPreferences.MustIncludeSlides)

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"seedcamp"}, names)

	_, err = Load("earlybird", dir)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, []string{"seedcamp"}, nf.Available)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
	}{
		{"missing name", "fund_name: F\nthesis_points: [a]\n", "name"},
		{"missing thesis", "name: N\nfund_name: F\n", "thesis_points"},
		{"zero slide count", "name: N\nfund_name: F\nthesis_points: [a]\ndeck_preferences:\n  preferred_slide_count: 0\n", "deck_preferences.preferred_slide_count"},
		{"blank custom check", "name: N\nfund_name: F\nthesis_points: [a]\ncustom_checks: ['  ']\n", "custom_checks[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name, []byte(tt.doc))
			var inv *InvalidError
			require.True(t, errors.As(err, &inv), "expected *InvalidError, got %v", err)
			found := false
			for _, e := range inv.Errors {
				if e.Path == tt.wantPath {
					found = true
				}
			}
			assert.True(t, found, "expected error at %s, got %v", tt.wantPath, inv.Errors)
		})
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse("x", []byte("name: N\nfund_name: F\nthesis_points: [a]\nvibe: good\n"))
	require.Error(t, err)
	var inv *InvalidError
	assert.False(t, errors.As(err, &inv))
}

func TestFormatForPrompt(t *testing.T) {
	p, err := LoadBuiltin("earlybird")
	require.NoError(t, err)

	text := FormatForPrompt(p)

	checks := []string{
		"VC: Earlybird (Earlybird Digital West Fund VII)",
		"Investment Thesis:",
		"  1. European champions",
		"Key Partners:",
		"Deck Preferences:",
		"Narrative style:",
		"VC-Specific Requirements:",
		"Must show capital efficiency",
	}
	for _, want := range checks {
		if !strings.Contains(text, want) {
			t.Errorf("prompt text missing %q", want)
		}
	}
}
