package search

import (
	"regexp"
	"strings"
)

var (
	// Markup left behind by the DOCX/DOC extraction paths
	xmlTagRegex = regexp.MustCompile(`<[^>]*>`)

	// Control characters and excessive whitespace
	controlCharRegex = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x9f]`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
)

// CleanText removes control characters and normalizes whitespace so extracted
// resume text reads as a single flowing string. Case folding happens later,
// once, when the Document is created.
func CleanText(text string) string {
	text = controlCharRegex.ReplaceAllString(text, "")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripTags replaces XML/HTML tags with spaces and cleans the result.
func stripTags(markup string) string {
	return CleanText(xmlTagRegex.ReplaceAllString(markup, " "))
}
