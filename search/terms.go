package search

import (
	"regexp"
	"strings"
)

// termsPattern compiles a single case-insensitive alternation over all terms.
// Every term is escaped first so user input such as "c++" cannot break the
// pattern or silently stop matching. Returns nil for an empty term set.
func termsPattern(terms []string) *regexp.Regexp {
	if len(terms) == 0 {
		return nil
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))
}
