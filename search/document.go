package search

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies a supported resume file format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOC  Kind = "doc"
	KindDOCX Kind = "docx"
)

// ErrUnsupportedKind is returned when a file's extension maps to no known format.
var ErrUnsupportedKind = fmt.Errorf("unsupported file kind")

// DefaultRecentWindow is how many of the latest uploads count as "recent"
// in the stats shown alongside totals.
const DefaultRecentWindow = 5

// KindForName maps a filename to its Kind by extension.
func KindForName(name string) (Kind, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "pdf":
		return KindPDF, nil
	case "doc":
		return KindDOC, nil
	case "docx":
		return KindDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, ext)
	}
}

// Document is one parsed resume. Text is lowercased at creation and never
// mutated afterwards. The optional fields (Email, Experience, CTC, Skills)
// use their zero values as "absent"; nothing in the loader populates them
// today, and every consumer branches on presence before using them.
type Document struct {
	ID         string
	Name       string
	Kind       Kind
	Text       string
	Source     string
	Email      string
	Experience string
	CTC        string
	Skills     []string
}

// NewDocument builds a Document from extracted text, assigning a fresh ID
// and folding the text to lowercase.
func NewDocument(name string, kind Kind, text, source string) Document {
	return Document{
		ID:     uuid.NewString(),
		Name:   name,
		Kind:   kind,
		Text:   strings.ToLower(text),
		Source: source,
	}
}

// MetaLine joins the optional candidate fields that are present into a
// single " | " separated line. Absent fields leave no separator behind.
func (d Document) MetaLine() string {
	var parts []string
	if d.Email != "" {
		parts = append(parts, d.Email)
	}
	if d.Experience != "" {
		parts = append(parts, d.Experience)
	}
	if d.CTC != "" {
		parts = append(parts, d.CTC)
	}
	if len(d.Skills) > 0 {
		parts = append(parts, strings.Join(d.Skills, ", "))
	}
	return strings.Join(parts, " | ")
}

// Collection is an insertion-ordered, append-only set of documents.
// It is not safe for concurrent mutation; callers append between searches,
// never during one.
type Collection struct {
	docs []Document
	byID map[string]int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{byID: make(map[string]int)}
}

// Append adds documents to the end of the collection, preserving order.
// A document whose ID is already present is rejected.
func (c *Collection) Append(docs ...Document) error {
	for _, d := range docs {
		if _, dup := c.byID[d.ID]; dup {
			return fmt.Errorf("duplicate document id %q", d.ID)
		}
		c.byID[d.ID] = len(c.docs)
		c.docs = append(c.docs, d)
	}
	return nil
}

// Len reports the number of documents loaded.
func (c *Collection) Len() int {
	return len(c.docs)
}

// All returns the documents in insertion order. The returned slice is shared;
// callers must not modify it.
func (c *Collection) All() []Document {
	return c.docs
}

// Recent returns up to the last n documents appended, oldest first. The
// returned slice is shared; callers must not modify it.
func (c *Collection) Recent(n int) []Document {
	if n <= 0 || len(c.docs) == 0 {
		return nil
	}
	if n > len(c.docs) {
		n = len(c.docs)
	}
	return c.docs[len(c.docs)-n:]
}

// Get looks a document up by ID.
func (c *Collection) Get(id string) (Document, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Document{}, false
	}
	return c.docs[i], true
}

// Filter returns the documents matching the term set, in insertion order.
// An empty term set matches everything.
func (c *Collection) Filter(terms []string) []Document {
	out := make([]Document, 0, len(c.docs))
	for _, d := range c.docs {
		if Match(d, terms) {
			out = append(out, d)
		}
	}
	return out
}
