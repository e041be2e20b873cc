package search

// DefaultExcerptWindow is the excerpt length shown in result lists.
const DefaultExcerptWindow = 200

// BestExcerpt selects the window of text with the densest concentration of
// term occurrences. Windows are window bytes long and tiled at half-window
// steps; each window's score is the total number of occurrences of any term
// inside it, counting repeats. The earliest window with the maximum score
// wins: a later window only replaces the incumbent when its score is strictly
// greater.
//
// With no terms, no occurrences anywhere, or text shorter than one window
// (the scan bound goes negative, so the loop never runs), the fallback is the
// first window bytes of the text, or all of it when shorter.
func BestExcerpt(text string, terms []string, window int) string {
	if window <= 0 {
		window = DefaultExcerptWindow
	}
	head := text
	if len(head) > window {
		head = head[:window]
	}

	re := termsPattern(terms)
	if re == nil {
		return head
	}

	step := window / 2
	best := ""
	maxHits := 0
	for start := 0; start < len(text)-window; start += step {
		section := text[start : start+window]
		if hits := len(re.FindAllStringIndex(section, -1)); hits > maxHits {
			maxHits = hits
			best = section
		}
	}
	if best == "" {
		return head
	}
	return best
}
