// Package slides holds the fixed catalog of slide templates that defines
// canonical deck order and per-slide expectations.
package slides

import "strings"

// Template describes what a slide of a given type is expected to contain.
type Template struct {
	Type             string   `json:"slide_type" yaml:"slide_type"`
	Purpose          string   `json:"purpose" yaml:"purpose"`
	RequiredElements []string `json:"required_elements" yaml:"required_elements"`
	OptionalElements []string `json:"optional_elements,omitempty" yaml:"optional_elements"`
	MetricsNeeded    []string `json:"metrics_needed,omitempty" yaml:"metrics_needed"`
	// MaxBullets of 0 means the slide is not expected to carry bullets.
	MaxBullets int `json:"max_bullets" yaml:"max_bullets"`
	WordLimit  int `json:"word_limit" yaml:"word_limit"`
}

// Registry is an immutable, ordered set of templates.
type Registry struct {
	templates []Template
	byType    map[string]int
}

// NewRegistry builds a registry from templates. Later duplicates of a
// slide type are ignored.
func NewRegistry(templates []Template) *Registry {
	r := &Registry{byType: make(map[string]int, len(templates))}
	for _, t := range templates {
		if _, dup := r.byType[t.Type]; dup {
			continue
		}
		r.byType[t.Type] = len(r.templates)
		r.templates = append(r.templates, cloneTemplate(t))
	}
	return r
}

var defaultRegistry = NewRegistry(catalog)

// Default returns the built-in 15-slide registry.
func Default() *Registry { return defaultRegistry }

// Lookup returns the template for slideType.
func (r *Registry) Lookup(slideType string) (Template, bool) {
	i, ok := r.byType[slideType]
	if !ok {
		return Template{}, false
	}
	return cloneTemplate(r.templates[i]), true
}

// Templates returns a copy of all templates in canonical order.
func (r *Registry) Templates() []Template {
	out := make([]Template, len(r.templates))
	for i, t := range r.templates {
		out[i] = cloneTemplate(t)
	}
	return out
}

// Types returns the slide types in canonical order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.templates))
	for i, t := range r.templates {
		out[i] = t.Type
	}
	return out
}

// Len returns the number of templates.
func (r *Registry) Len() int { return len(r.templates) }

// ForProfile returns the templates whose types appear in mustInclude,
// in canonical order. An empty mustInclude returns every template.
func (r *Registry) ForProfile(mustInclude []string) []Template {
	if len(mustInclude) == 0 {
		return r.Templates()
	}
	want := make(map[string]bool, len(mustInclude))
	for _, t := range mustInclude {
		want[t] = true
	}
	var out []Template
	for _, t := range r.templates {
		if want[t.Type] {
			out = append(out, cloneTemplate(t))
		}
	}
	return out
}

// NarrativeArc describes the six-stage investor psychology arc the
// canonical order follows.
func NarrativeArc() string {
	return strings.Join([]string{
		"Follow the 6-stage investor psychology arc:",
		"1. HOOK (Cover + Exec Summary): Instant credibility — name, traction proof, one-liner",
		"2. TENSION (Problem + Why Now): Create urgency — the pain is real, the timing is now",
		"3. RESOLUTION (Solution + Product): Release tension — here's how we solve it",
		"4. PROOF (Market + Traction + Business Model): Validate the resolution — the market is big, we're winning",
		"5. TRUST (Team + Competitive + Go-to-Market): Build confidence — we can execute",
		"6. CALL TO ACTION (Financials + The Ask + AI Architecture): Close — here's what we need and why it's worth it",
	}, "\n")
}

func cloneTemplate(t Template) Template {
	t.RequiredElements = append([]string(nil), t.RequiredElements...)
	t.OptionalElements = append([]string(nil), t.OptionalElements...)
	t.MetricsNeeded = append([]string(nil), t.MetricsNeeded...)
	return t
}
