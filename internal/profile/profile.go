// Package profile handles loading and formatting investor rubric profiles.
package profile

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/dshills/deckcritic/internal/schema"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

const (
	DefaultSlideCount    = 15
	DefaultNarrative     = "data-driven"
	DefaultMarketSizing  = "bottom-up"
	maxSuggestions       = 3
	profileFileExtension = ".yaml"
)

// Profile is the rubric configuration for one investor.
type Profile struct {
	Name               string          `yaml:"name" json:"name"`
	FundName           string          `yaml:"fund_name" json:"fund_name"`
	AUMEUR             float64         `yaml:"aum_eur" json:"aum_eur,omitempty"`
	StageFocus         []string        `yaml:"stage_focus" json:"stage_focus"`
	SectorFocus        []string        `yaml:"sector_focus" json:"sector_focus"`
	GeoFocus           []string        `yaml:"geo_focus" json:"geo_focus"`
	ThesisPoints       []string        `yaml:"thesis_points" json:"thesis_points"`
	PortfolioCompanies []string        `yaml:"portfolio_companies" json:"portfolio_companies,omitempty"`
	KeyPartners        []Partner       `yaml:"key_partners" json:"key_partners,omitempty"`
	DeckPreferences    DeckPreferences `yaml:"deck_preferences" json:"deck_preferences"`
	CustomChecks       []string        `yaml:"custom_checks" json:"custom_checks"`
}

// Partner is a named partner at the fund.
type Partner struct {
	Name       string `yaml:"name" json:"name"`
	Focus      string `yaml:"focus" json:"focus"`
	Background string `yaml:"background" json:"background,omitempty"`
}

// DeckPreferences are the investor's structural expectations for a deck.
type DeckPreferences struct {
	PreferredSlideCount  int      `yaml:"preferred_slide_count" json:"preferred_slide_count"`
	MustIncludeSlides    []string `yaml:"must_include_slides" json:"must_include_slides"`
	MetricsEmphasis      []string `yaml:"metrics_emphasis" json:"metrics_emphasis"`
	NarrativeStyle       string   `yaml:"narrative_style" json:"narrative_style"`
	MarketSizingApproach string   `yaml:"market_sizing_approach" json:"market_sizing_approach"`
}

// NotFoundError is returned when no profile has the requested name.
type NotFoundError struct {
	Name        string
	Available   []string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("profile %q not found. Available: %s", e.Name, strings.Join(e.Available, ", "))
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, " or "))
	}
	return msg
}

// InvalidError reports a profile document that fails validation.
type InvalidError struct {
	Name   string
	Errors []schema.ValidationError
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("profile %q is invalid:\n%s", e.Name, schema.Join(e.Errors))
}

// Load loads a profile by name. A non-empty dir is searched instead of
// the built-in set.
func Load(name, dir string) (*Profile, error) {
	if dir == "" {
		return LoadBuiltin(name)
	}
	data, err := os.ReadFile(filepath.Join(dir, name+profileFileExtension))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(name, dir)
		}
		return nil, fmt.Errorf("profile.Load: %w", err)
	}
	return Parse(name, data)
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + profileFileExtension)
	if err != nil {
		return nil, notFound(name, "")
	}
	return Parse(name, data)
}

// Parse decodes and validates a profile YAML document, filling defaults.
func Parse(name string, data []byte) (*Profile, error) {
	var raw rawProfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("profile.Parse: parse %q: %w", name, err)
	}
	p, errs := raw.build()
	if len(errs) > 0 {
		return nil, &InvalidError{Name: name, Errors: errs}
	}
	return p, nil
}

// List returns the names of available profiles, sorted.
func List(dir string) ([]string, error) {
	var (
		entries []fs.DirEntry
		err     error
	)
	if dir == "" {
		entries, err = builtinFS.ReadDir("builtin")
	} else {
		entries, err = os.ReadDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("profile.List: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, profileFileExtension) {
			names = append(names, strings.TrimSuffix(n, profileFileExtension))
		}
	}
	sort.Strings(names)
	return names, nil
}

func notFound(name, dir string) error {
	available, _ := List(dir)
	var suggestions []string
	for _, m := range fuzzy.Find(name, available) {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return &NotFoundError{Name: name, Available: available, Suggestions: suggestions}
}

// rawProfile distinguishes absent preferences from explicit zero values.
type rawProfile struct {
	Name               string         `yaml:"name"`
	FundName           string         `yaml:"fund_name"`
	AUMEUR             float64        `yaml:"aum_eur"`
	StageFocus         []string       `yaml:"stage_focus"`
	SectorFocus        []string       `yaml:"sector_focus"`
	GeoFocus           []string       `yaml:"geo_focus"`
	ThesisPoints       []string       `yaml:"thesis_points"`
	PortfolioCompanies []string       `yaml:"portfolio_companies"`
	KeyPartners        []Partner      `yaml:"key_partners"`
	DeckPreferences    rawPreferences `yaml:"deck_preferences"`
	CustomChecks       []string       `yaml:"custom_checks"`
}

type rawPreferences struct {
	PreferredSlideCount  *int     `yaml:"preferred_slide_count"`
	MustIncludeSlides    []string `yaml:"must_include_slides"`
	MetricsEmphasis      []string `yaml:"metrics_emphasis"`
	NarrativeStyle       string   `yaml:"narrative_style"`
	MarketSizingApproach string   `yaml:"market_sizing_approach"`
}

func (r rawProfile) build() (*Profile, []schema.ValidationError) {
	var errs []schema.ValidationError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, schema.ValidationError{Path: "name", Message: "required"})
	}
	if strings.TrimSpace(r.FundName) == "" {
		errs = append(errs, schema.ValidationError{Path: "fund_name", Message: "required"})
	}
	if len(r.ThesisPoints) == 0 {
		errs = append(errs, schema.ValidationError{Path: "thesis_points", Message: "at least one thesis point required"})
	}

	prefs := DeckPreferences{
		PreferredSlideCount:  DefaultSlideCount,
		MustIncludeSlides:    nonNil(r.DeckPreferences.MustIncludeSlides),
		MetricsEmphasis:      nonNil(r.DeckPreferences.MetricsEmphasis),
		NarrativeStyle:       r.DeckPreferences.NarrativeStyle,
		MarketSizingApproach: r.DeckPreferences.MarketSizingApproach,
	}
	if c := r.DeckPreferences.PreferredSlideCount; c != nil {
		if *c < 1 {
			errs = append(errs, schema.ValidationError{Path: "deck_preferences.preferred_slide_count", Message: fmt.Sprintf("must be >= 1, got %d", *c)})
		}
		prefs.PreferredSlideCount = *c
	}
	if prefs.NarrativeStyle == "" {
		prefs.NarrativeStyle = DefaultNarrative
	}
	if prefs.MarketSizingApproach == "" {
		prefs.MarketSizingApproach = DefaultMarketSizing
	}
	for i, c := range r.CustomChecks {
		if strings.TrimSpace(c) == "" {
			errs = append(errs, schema.ValidationError{Path: fmt.Sprintf("custom_checks[%d]", i), Message: "must not be empty"})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &Profile{
		Name:               r.Name,
		FundName:           r.FundName,
		AUMEUR:             r.AUMEUR,
		StageFocus:         nonNil(r.StageFocus),
		SectorFocus:        nonNil(r.SectorFocus),
		GeoFocus:           nonNil(r.GeoFocus),
		ThesisPoints:       r.ThesisPoints,
		PortfolioCompanies: nonNil(r.PortfolioCompanies),
		KeyPartners:        r.KeyPartners,
		DeckPreferences:    prefs,
		CustomChecks:       nonNil(r.CustomChecks),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// FormatForPrompt renders the thesis, preferences, and custom checks as
// context text for the qualitative scorer.
func FormatForPrompt(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "VC: %s (%s)\n", p.Name, p.FundName)
	fmt.Fprintf(&b, "Stage Focus: %s\n", strings.Join(p.StageFocus, ", "))
	fmt.Fprintf(&b, "Sector Focus: %s\n", strings.Join(p.SectorFocus, ", "))
	fmt.Fprintf(&b, "Geographic Focus: %s\n\n", strings.Join(p.GeoFocus, ", "))

	b.WriteString("Investment Thesis:\n")
	for i, point := range p.ThesisPoints {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, point)
	}

	if len(p.PortfolioCompanies) > 0 {
		fmt.Fprintf(&b, "\nPortfolio: %s\n", strings.Join(p.PortfolioCompanies, ", "))
	}
	if len(p.KeyPartners) > 0 {
		b.WriteString("\nKey Partners:\n")
		for _, partner := range p.KeyPartners {
			fmt.Fprintf(&b, "  - %s (%s)\n", partner.Name, partner.Focus)
		}
	}

	prefs := p.DeckPreferences
	b.WriteString("\nDeck Preferences:\n")
	fmt.Fprintf(&b, "  Narrative style: %s\n", prefs.NarrativeStyle)
	fmt.Fprintf(&b, "  Market sizing: %s\n", prefs.MarketSizingApproach)
	if len(prefs.MetricsEmphasis) > 0 {
		fmt.Fprintf(&b, "  Key metrics: %s\n", strings.Join(prefs.MetricsEmphasis, ", "))
	}

	if len(p.CustomChecks) > 0 {
		b.WriteString("\nVC-Specific Requirements:\n")
		for _, check := range p.CustomChecks {
			fmt.Fprintf(&b, "  - %s\n", check)
		}
	}

	return b.String()
}
