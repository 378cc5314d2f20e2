package repository

import (
	"regexp"
	"strings"
)

var searchTermPattern = regexp.MustCompile(`[^\p{L}\p{N}@.\-]+`)

// buildAnyTermQuery turns a free-text search string into a tsquery matching
// any of its terms, mirroring the match-any semantics of the dashboard
// search boxes. Returns "" when no usable term remains.
func buildAnyTermQuery(search string) string {
	var terms []string
	for _, raw := range strings.Fields(search) {
		term := searchTermPattern.ReplaceAllString(raw, " ")
		term = strings.Join(strings.Fields(term), " ")
		if term == "" {
			continue
		}
		// Multi-token terms (split on stripped punctuation) must all match.
		terms = append(terms, strings.Join(strings.Fields(term), " & "))
	}
	if len(terms) == 0 {
		return ""
	}
	return strings.Join(terms, " | ")
}
