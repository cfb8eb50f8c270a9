package review

import "sort"

// LowestScoring returns up to n slide scores ordered by score ascending.
// Ties keep deck order. The input is not modified.
func LowestScoring(slides []SlideScore, n int) []SlideScore {
	sorted := make([]SlideScore, len(slides))
	copy(sorted, slides)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
