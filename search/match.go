package search

import "strings"

// Match decides whether a document satisfies the term set. An empty set
// matches unconditionally. Otherwise the document matches when ANY term
// appears as a case-insensitive substring of its text, its email, or any of
// its skills. Plain containment, not word-boundary matching: "net" matches
// "network".
func Match(doc Document, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, term := range terms {
		// doc.Text is lowercased at creation; terms are lowercased by
		// Filters.Terms. The optional fields are folded here.
		if strings.Contains(doc.Text, term) {
			return true
		}
		if doc.Email != "" && strings.Contains(strings.ToLower(doc.Email), term) {
			return true
		}
		for _, skill := range doc.Skills {
			if strings.Contains(strings.ToLower(skill), term) {
				return true
			}
		}
	}
	return false
}
