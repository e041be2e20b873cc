//go:build pdfcpu

package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Default caps for the content-stream extraction path.
const (
	DefaultPageCap    = 200        // maximum number of pages to process
	DefaultPerPageCap = 128 * 1024 // 128 KiB per-page text cap
)

// asciiNormalize collapses non-printable or non-ASCII runes to space and
// then normalizes whitespace to single spaces.
func asciiNormalize(s string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > 127 || !unicode.IsPrint(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(ascii), " ")
}

// ExtractAllTextCapped extracts text from PDF bytes using pdfcpu's content
// stream dump, parsing the string literals out of each page. It is a slower,
// more forgiving path used when the primary PDF reader cannot make sense of
// a file. Guarded by the 'pdfcpu' build tag.
func ExtractAllTextCapped(data []byte, pageCap, perPageCap int) (string, error) {
	if pageCap <= 0 {
		pageCap = DefaultPageCap
	}
	if perPageCap <= 0 {
		perPageCap = DefaultPerPageCap
	}

	// Panic protection around library calls.
	defer func() { _ = recover() }()

	tmpDir, err := os.MkdirTemp("", "xeedo_pdfcpu_*")
	if err != nil {
		return "", fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	src := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return "", fmt.Errorf("stage pdf: %w", err)
	}

	if err := api.ExtractContentFile(src, tmpDir, nil, nil); err != nil {
		return "", fmt.Errorf("pdfcpu ExtractContentFile: %w", err)
	}

	ents, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", fmt.Errorf("read dir: %w", err)
	}
	sort.Slice(ents, func(i, j int) bool { return ents[i].Name() < ents[j].Name() })

	var b strings.Builder
	pagesProcessed := 0
	for _, de := range ents {
		if de.IsDir() || de.Name() == "in.pdf" {
			continue
		}
		if pagesProcessed >= pageCap {
			break
		}
		content, _ := os.ReadFile(filepath.Join(tmpDir, de.Name()))
		if len(content) == 0 {
			continue
		}

		raw := parsePDFStringLiterals(string(content), perPageCap)
		txt := asciiNormalize(raw)
		if len(txt) > perPageCap {
			txt = txt[:perPageCap]
		}
		if txt == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(txt)
		pagesProcessed++
	}

	return b.String(), nil
}

// parsePDFStringLiterals collects text within balanced parentheses from a PDF
// content stream, honoring backslash escapes, and caps output size.
func parsePDFStringLiterals(s string, maxOut int) string {
	var out strings.Builder
	depth := 0
	escape := false
	in := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !in {
			if c == '(' {
				in = true
				depth = 1
			}
			continue
		}
		if escape {
			out.WriteByte(c)
			escape = false
			if out.Len() >= maxOut {
				return out.String()
			}
			continue
		}
		switch c {
		case '\\':
			escape = true
		case '(':
			depth++
			out.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				in = false
				out.WriteByte(' ')
			} else {
				out.WriteByte(c)
			}
		default:
			out.WriteByte(c)
		}
		if out.Len() >= maxOut {
			return out.String()
		}
	}
	return out.String()
}
