// Package redact replaces secrets in deck text with [REDACTED] before the
// deck is sent to a model provider.
package redact

import (
	"regexp"

	"github.com/dshills/deckcritic/internal/deck"
)

// Placeholder replaces every matched secret.
const Placeholder = "[REDACTED]"

type rule struct {
	name string
	re   *regexp.Regexp
}

var rules = []rule{
	{"aws-access-key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"aws-secret", regexp.MustCompile(`(?i)(aws_secret_access_key|aws_secret)\s*[:=]\s*[A-Za-z0-9/+=]{40}`)},
	{"private-key", regexp.MustCompile(`-----BEGIN [A-Z ]+PRIVATE KEY-----[\s\S]*?-----END [A-Z ]+PRIVATE KEY-----`)},
	{"bearer", regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-._~+/]+=*`)},
	{"anthropic-key", regexp.MustCompile(`sk-ant-[A-Za-z0-9\-_]{20,}`)},
	{"openai-key", regexp.MustCompile(`sk-(proj-)?[A-Za-z0-9]{20,}`)},
	{"google-key", regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`)},
	{"assignment", regexp.MustCompile(`(?i)(api[_-]?key|api[_-]?secret|secret[_-]?key|token|password|passwd|credentials)\s*[:=]\s*\S+`)},
}

// Redact replaces secret patterns in text with [REDACTED].
func Redact(text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, Placeholder)
	}
	return text
}

// Deck returns a copy of d with every free-text field redacted, plus the
// number of fields that changed. d is not modified.
func Deck(d *deck.Deck) (*deck.Deck, int) {
	out := d.Clone()
	changed := 0
	str := func(s *string) {
		if r := Redact(*s); r != *s {
			*s = r
			changed++
		}
	}
	list := func(l []string) {
		for i := range l {
			str(&l[i])
		}
	}

	str(&out.CompanyName)
	str(&out.NarrativeArc)
	list(out.GapsIdentified)
	for k, v := range out.GapsFilled {
		if r := Redact(v); r != v {
			out.GapsFilled[k] = r
			changed++
		}
	}
	for i := range out.Slides {
		s := &out.Slides[i]
		str(&s.Title)
		str(&s.Headline)
		list(s.Bullets)
		list(s.Metrics)
		str(&s.SpeakerNotes)
		str(&s.TransitionToNext)
		list(s.VCAlignmentNotes)
	}
	return out, changed
}
