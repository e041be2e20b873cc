package search

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/richardlehane/mscfb"
	"golang.org/x/text/encoding/unicode"

	pdffallback "github.com/prasanthlucy/Resume-project-xeedo/search/pdf"
)

// Extractor converts raw file bytes of one format into plain text.
type Extractor interface {
	// ExtractText takes raw file bytes and returns extracted plain text.
	ExtractText(data []byte) (string, error)
}

// ExtractorRegistry holds one extractor per supported kind.
type ExtractorRegistry struct {
	extractors map[Kind]Extractor
}

// NewExtractorRegistry creates a registry with the built-in extractors.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		extractors: map[Kind]Extractor{
			KindPDF:  &PDFExtractor{},
			KindDOC:  &DOCExtractor{},
			KindDOCX: &DOCXExtractor{},
		},
	}
}

// Extract runs the extractor registered for kind. The result is cleaned but
// not case-folded. Extraction failures come back as errors; they never abort
// sibling files in a batch (the loader isolates them).
func (r *ExtractorRegistry) Extract(data []byte, kind Kind) (string, error) {
	ex, ok := r.extractors[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
	text, err := ex.ExtractText(data)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// PDFExtractor extracts text from PDF bytes, page by page.
type PDFExtractor struct{}

// ExtractText implements Extractor for PDFs. The primary reader handles the
// vast majority of resumes; files it rejects get one more chance through the
// pdfcpu content-stream fallback when that is compiled in.
func (e *PDFExtractor) ExtractText(data []byte) (string, error) {
	text, err := e.extractNative(data)
	if err == nil {
		return text, nil
	}
	if fb, fbErr := pdffallback.ExtractAllTextCapped(data, pdffallback.DefaultPageCap, pdffallback.DefaultPerPageCap); fbErr == nil && strings.TrimSpace(fb) != "" {
		return fb, nil
	}
	return "", err
}

// extractNative walks the document with the primary PDF reader. The library
// panics on some malformed files, so every call into it runs behind a
// recover guard; a panic surfaces as an ordinary extraction error.
func (e *PDFExtractor) extractNative(data []byte) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := 0
	func() {
		defer func() { _ = recover() }()
		pages = reader.NumPage()
	}()
	if pages <= 0 {
		return "", fmt.Errorf("pdf has no readable pages")
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		// Per-page guard: one corrupt page must not lose the rest.
		func() {
			defer func() { _ = recover() }()
			page := reader.Page(i)
			if page.V.IsNull() {
				return
			}
			for _, item := range page.Content().Text {
				b.WriteString(item.S)
				b.WriteString(" ")
			}
			b.WriteString("\n")
		}()
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("pdf yielded no text")
	}
	return text, nil
}

// DOCXExtractor extracts text from .docx bytes (Office Open XML).
type DOCXExtractor struct{}

// ExtractText implements Extractor for DOCX files.
func (e *DOCXExtractor) ExtractText(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	for _, file := range zipReader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open word/document.xml: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read word/document.xml: %w", err)
		}
		return stripTags(string(content)), nil
	}

	return "", fmt.Errorf("docx has no word/document.xml")
}

// docStreamCap bounds how much of each OLE stream a .doc extraction reads.
const docStreamCap = 10 * 1024 * 1024

// DOCExtractor extracts text from legacy .doc bytes by walking the OLE
// compound file and salvaging text from the streams that carry body content.
type DOCExtractor struct{}

// ExtractText implements Extractor for .doc files. Word's binary format is
// not fully parsed; text is recovered best-effort from the WordDocument and
// table streams, preferring UTF-16 decoding and falling back to an ASCII
// sweep, which matches what the streams contain in practice.
func (e *DOCExtractor) ExtractText(data []byte) (string, error) {
	cf, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open doc container: %w", err)
	}

	targetStreams := map[string]bool{
		"WordDocument": true,
		"1Table":       true,
		"0Table":       true,
	}

	var b strings.Builder
	for ent, err := cf.Next(); err == nil; ent, err = cf.Next() {
		if !targetStreams[ent.Name] {
			continue
		}
		raw, _ := io.ReadAll(io.LimitReader(ent, docStreamCap))
		if len(raw) == 0 {
			continue
		}
		text, ok := decodeUTF16BestEffort(raw)
		if !ok {
			text = salvageASCII(raw)
		}
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("doc yielded no text")
	}
	return text, nil
}

// decodeUTF16BestEffort decodes data as UTF-16LE when the byte pattern looks
// like two-byte text (NUL high bytes in at least half the sampled pairs).
func decodeUTF16BestEffort(data []byte) (string, bool) {
	if len(data) < 4 {
		return "", false
	}
	sample := len(data)
	if sample > 4096 {
		sample = 4096
	}
	zeros := 0
	for i := 1; i < sample; i += 2 {
		if data[i] == 0 {
			zeros++
		}
	}
	if zeros*4 < sample {
		return "", false
	}

	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	decoded, err := dec.Bytes(data[:len(data)&^1])
	if err != nil {
		return "", false
	}
	return salvageASCII(decoded), true
}

// salvageASCII keeps printable bytes and normalizes everything else to space.
func salvageASCII(data []byte) string {
	out := make([]rune, 0, len(data))
	for _, r := range string(data) {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			out = append(out, r)
		case r >= 0x20 && r != 0x7f:
			out = append(out, r)
		default:
			out = append(out, ' ')
		}
	}
	return CleanText(string(out))
}
