package reconcile

import (
	"regexp"
	"sort"
	"strings"
)

var (
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	numbersRe = regexp.MustCompile(`\d{3,}`)
)

// extractKeywords tokenizes free text for fuzzy matching: uppercase, strip
// punctuation, drop tokens of two characters or fewer and profile stop words.
// Standalone numeric runs of three or more digits are always kept, stop words
// or not, since document numbers are the strongest matching signal.
// The returned slice is deduplicated and sorted.
func extractKeywords(text string, stopWords map[string]struct{}) []string {
	clean := nonWordRe.ReplaceAllString(strings.ToUpper(text), " ")

	seen := make(map[string]struct{})
	for _, word := range strings.Fields(clean) {
		if len(word) <= 2 {
			continue
		}
		if _, skip := stopWords[strings.ToLower(word)]; skip {
			continue
		}
		seen[word] = struct{}{}
	}

	for _, num := range numbersRe.FindAllString(text, -1) {
		seen[num] = struct{}{}
	}

	keywords := make([]string, 0, len(seen))
	for w := range seen {
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}

// jaccard computes the Jaccard similarity of two token sets and returns the
// intersection. Similarity is 0 when either set is empty.
func jaccard(a, b []string) (float64, []string) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}

	setB := make(map[string]struct{}, len(b))
	for _, w := range b {
		setB[w] = struct{}{}
	}

	var matched []string
	for _, w := range a {
		if _, ok := setB[w]; ok {
			matched = append(matched, w)
		}
	}

	union := len(a) + len(b) - len(matched)
	if union == 0 {
		return 0, nil
	}
	sort.Strings(matched)
	return float64(len(matched)) / float64(union), matched
}
