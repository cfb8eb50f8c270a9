// Package deck handles reading, schema-checking, and hashing pitch deck
// JSON documents.
package deck

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/deckcritic/internal/schema"
)

// Deck is the scored subject: an ordered list of slides plus narrative metadata.
type Deck struct {
	CompanyName    string            `json:"company_name"`
	TargetVC       string            `json:"target_vc"`
	GeneratedAt    string            `json:"generated_at"`
	Slides         []Slide           `json:"slides"`
	NarrativeArc   string            `json:"narrative_arc"`
	GapsIdentified []string          `json:"gaps_identified"`
	GapsFilled     map[string]string `json:"gaps_filled"`

	// Hash is the sha256 of the source document; not part of the JSON form.
	Hash string `json:"-"`
}

// Slide is the content of a single slide.
type Slide struct {
	SlideNumber      int      `json:"slide_number"`
	SlideType        string   `json:"slide_type"`
	Title            string   `json:"title"`
	Headline         string   `json:"headline"`
	Bullets          []string `json:"bullets"`
	Metrics          []string `json:"metrics"`
	SpeakerNotes     string   `json:"speaker_notes"`
	TransitionToNext string   `json:"transition_to_next"`
	VCAlignmentNotes []string `json:"vc_alignment_notes"`
}

// ParseError reports a document that is not valid JSON.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("deck %s is not valid JSON: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a JSON document that does not match the deck schema.
type SchemaError struct {
	Source string
	Errors []schema.ValidationError
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("deck %s does not match schema:\n%s", e.Source, schema.Join(e.Errors))
}

var (
	deckKeys  = []string{"company_name", "target_vc", "slides", "narrative_arc"}
	slideKeys = []string{"slide_number", "slide_type", "title", "headline", "bullets", "speaker_notes"}
)

// Load reads a deck JSON file.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deck.Load: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a deck document. source names the document in errors.
func Parse(source string, data []byte) (*Deck, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaError{Source: source, Errors: []schema.ValidationError{{Path: "$", Message: "must be a JSON object"}}}
		}
		return nil, &ParseError{Source: source, Err: err}
	}

	errs := schema.RequireKeys(top, "", deckKeys...)
	if raw, ok := top["slides"]; ok && string(raw) != "null" {
		var slides []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &slides); err != nil {
			errs = append(errs, schema.ValidationError{Path: "slides", Message: "must be an array of objects"})
		}
		for i, s := range slides {
			errs = append(errs, schema.RequireKeys(s, fmt.Sprintf("slides[%d]", i), slideKeys...)...)
		}
	}
	if len(errs) > 0 {
		return nil, &SchemaError{Source: source, Errors: errs}
	}

	var d Deck
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, &SchemaError{Source: source, Errors: []schema.ValidationError{decodeError(err)}}
	}

	for i, s := range d.Slides {
		if s.SlideNumber < 1 {
			errs = append(errs, schema.ValidationError{Path: fmt.Sprintf("slides[%d].slide_number", i), Message: "must be >= 1"})
		}
	}
	if len(errs) > 0 {
		return nil, &SchemaError{Source: source, Errors: errs}
	}

	d.normalize()
	h := sha256.Sum256(data)
	d.Hash = fmt.Sprintf("sha256:%x", h)
	return &d, nil
}

func decodeError(err error) schema.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if path == "" {
			path = "$"
		}
		return schema.ValidationError{Path: path, Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "json: unknown field ") {
		return schema.ValidationError{Path: strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`), Message: "unknown field"}
	}
	return schema.ValidationError{Path: "$", Message: msg}
}

// normalize replaces absent lists and maps with empty values.
func (d *Deck) normalize() {
	if d.Slides == nil {
		d.Slides = []Slide{}
	}
	if d.GapsIdentified == nil {
		d.GapsIdentified = []string{}
	}
	if d.GapsFilled == nil {
		d.GapsFilled = map[string]string{}
	}
	for i := range d.Slides {
		s := &d.Slides[i]
		if s.Bullets == nil {
			s.Bullets = []string{}
		}
		if s.Metrics == nil {
			s.Metrics = []string{}
		}
		if s.VCAlignmentNotes == nil {
			s.VCAlignmentNotes = []string{}
		}
	}
}

// Clone returns a deep copy of the deck.
func (d *Deck) Clone() *Deck {
	out := *d
	out.Slides = make([]Slide, len(d.Slides))
	for i, s := range d.Slides {
		s.Bullets = append([]string{}, s.Bullets...)
		s.Metrics = append([]string{}, s.Metrics...)
		s.VCAlignmentNotes = append([]string{}, s.VCAlignmentNotes...)
		out.Slides[i] = s
	}
	out.GapsIdentified = append([]string{}, d.GapsIdentified...)
	out.GapsFilled = make(map[string]string, len(d.GapsFilled))
	for k, v := range d.GapsFilled {
		out.GapsFilled[k] = v
	}
	return &out
}

// SlideTypes returns the set of slide types present.
func (d *Deck) SlideTypes() map[string]bool {
	types := make(map[string]bool, len(d.Slides))
	for _, s := range d.Slides {
		types[s.SlideType] = true
	}
	return types
}

// ContentText is the lowercased concatenation of every slide's title,
// headline, bullets, metrics, speaker notes, and alignment notes.
func (d *Deck) ContentText() string {
	parts := make([]string, 0, len(d.Slides))
	for _, s := range d.Slides {
		fields := []string{s.Title, s.Headline}
		fields = append(fields, s.Bullets...)
		fields = append(fields, s.Metrics...)
		fields = append(fields, s.SpeakerNotes)
		fields = append(fields, s.VCAlignmentNotes...)
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// MetricsText is the lowercased concatenation of every slide's bullets,
// metrics, and headline.
func (d *Deck) MetricsText() string {
	parts := make([]string, 0, len(d.Slides))
	for _, s := range d.Slides {
		fields := append([]string{}, s.Bullets...)
		fields = append(fields, s.Metrics...)
		fields = append(fields, s.Headline)
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// WordCount counts whitespace-separated words in the slide's title,
// headline, and bullets.
func (s Slide) WordCount() int {
	fields := append([]string{s.Title, s.Headline}, s.Bullets...)
	return len(strings.Fields(strings.Join(fields, " ")))
}
