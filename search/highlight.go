package search

import "strings"

// Segment is one run of text in a highlighted string. Matched segments equal
// one of the query terms (compared case-insensitively); unmatched segments
// are the text in between. Concatenating all segments in order reproduces
// the input exactly.
type Segment struct {
	Matched bool
	Text    string
}

// Highlight splits text around every occurrence of every term, tagging the
// occurrences. A segment is tagged matched only when its content equals some
// term case-insensitively, not when it merely contains one. With an empty
// term set the whole input comes back as a single unmatched segment.
func Highlight(text string, terms []string) []Segment {
	re := termsPattern(terms)
	if re == nil {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Text: text[last:loc[0]]})
		}
		part := text[loc[0]:loc[1]]
		segs = append(segs, Segment{Matched: isTerm(part, terms), Text: part})
		last = loc[1]
	}
	if last < len(text) || len(segs) == 0 {
		segs = append(segs, Segment{Text: text[last:]})
	}
	return segs
}

// isTerm reports whether part equals one of the terms, ignoring case.
func isTerm(part string, terms []string) bool {
	for _, t := range terms {
		if strings.EqualFold(part, t) {
			return true
		}
	}
	return false
}
