package rules

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/deckcritic/internal/deck"
	"github.com/dshills/deckcritic/internal/profile"
	"github.com/dshills/deckcritic/internal/review"
)

// Topic maps a recognizable phrase in a custom check to the keywords
// that satisfy it.
type Topic struct {
	Phrase   string
	Keywords []string
}

// Topics are tried in order; the first phrase contained in a check wins.
var Topics = []Topic{
	{"european sovereignty", []string{"sovereign", "european", "europe", "data sovereignty", "digital sovereignty"}},
	{"bottom-up market sizing", []string{"bottom-up", "bottom up", "som", "icp count", "arpu"}},
	{"capital efficiency", []string{"capital efficien", "burn multiple", "revenue-to-raised", "capital-efficient"}},
	{"customer evidence", []string{"customer", "pilot", "case study", "roi", "evidence"}},
	{"ai commoditization", []string{"commodit", "moat", "defensib", "proprietary"}},
	{"gross margin", []string{"gross margin", "margin trajectory"}},
	{"category creation", []string{"category", "defining", "new market", "category creation"}},
}

const (
	minOverlap       = 2
	maxEvidenceWords = 5
)

// CheckCustom evaluates each of the profile's custom checks against the
// deck's full text.
func CheckCustom(d *deck.Deck, p *profile.Profile) []review.CustomCheckResult {
	content := d.ContentText()
	var contentWords map[string]bool

	results := make([]review.CustomCheckResult, 0, len(p.CustomChecks))
	for _, check := range p.CustomChecks {
		lower := strings.ToLower(check)
		if t, ok := matchTopic(lower); ok {
			results = append(results, checkTopic(check, t, content))
			continue
		}
		if contentWords == nil {
			contentWords = wordSet(content)
		}
		results = append(results, checkOverlap(check, lower, contentWords))
	}
	return results
}

func matchTopic(check string) (Topic, bool) {
	for _, t := range Topics {
		if strings.Contains(check, t.Phrase) {
			return t, true
		}
	}
	return Topic{}, false
}

func checkTopic(check string, t Topic, content string) review.CustomCheckResult {
	var hits []string
	for _, kw := range t.Keywords {
		if strings.Contains(content, kw) {
			hits = append(hits, kw)
		}
	}
	if len(hits) == 0 {
		return review.CustomCheckResult{
			Check:    check,
			Evidence: "Keywords checked but not found: " + strings.Join(t.Keywords, ", "),
		}
	}
	return review.CustomCheckResult{
		Check:    check,
		Passed:   true,
		Evidence: "Keywords found: " + strings.Join(hits, ", "),
	}
}

func checkOverlap(check, lower string, contentWords map[string]bool) review.CustomCheckResult {
	checkWords := make(map[string]bool)
	for _, w := range strings.Fields(lower) {
		if utf8.RuneCountInString(w) > 3 {
			checkWords[w] = true
		}
	}

	var overlap []string
	for w := range checkWords {
		if contentWords[w] {
			overlap = append(overlap, w)
		}
	}
	sort.Strings(overlap)

	if len(overlap) >= minOverlap {
		return review.CustomCheckResult{
			Check:    check,
			Passed:   true,
			Evidence: "Weak match (word overlap): " + strings.Join(firstN(overlap, maxEvidenceWords), ", "),
		}
	}

	checked := make([]string, 0, len(checkWords))
	for w := range checkWords {
		checked = append(checked, w)
	}
	sort.Strings(checked)
	return review.CustomCheckResult{
		Check:    check,
		Evidence: "No keyword match found. Checked words: " + strings.Join(firstN(checked, maxEvidenceWords), ", "),
	}
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		set[w] = true
	}
	return set
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
