package search

import (
	"net/url"
	"strings"
)

// Filters holds the three free-text search fields. It is the single owner of
// the query state: both the matcher and the highlighter derive their term set
// from the same Filters value, and URL persistence goes through the explicit
// Values/FiltersFromValues pair below rather than ambient global state.
type Filters struct {
	Keywords string `json:"keywords"`
	Name     string `json:"name"`
	CTC      string `json:"ctc"`
}

// Terms derives the search term set: each non-empty field contributes exactly
// one term, its full value lowercased. Fields are not tokenized into words.
// All-empty filters produce an empty set, which matches every document.
func (f Filters) Terms() []string {
	terms := make([]string, 0, 3)
	for _, field := range []string{f.Keywords, f.Name, f.CTC} {
		if field == "" {
			continue
		}
		terms = append(terms, strings.ToLower(field))
	}
	return terms
}

// Empty reports whether no field is set.
func (f Filters) Empty() bool {
	return f.Keywords == "" && f.Name == "" && f.CTC == ""
}

// Values serializes the filters for the page URL. Empty fields are omitted so
// the query string stays minimal.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Keywords != "" {
		v.Set("keywords", f.Keywords)
	}
	if f.Name != "" {
		v.Set("name", f.Name)
	}
	if f.CTC != "" {
		v.Set("ctc", f.CTC)
	}
	return v
}

// FiltersFromValues restores filters from a URL query string.
func FiltersFromValues(v url.Values) Filters {
	return Filters{
		Keywords: v.Get("keywords"),
		Name:     v.Get("name"),
		CTC:      v.Get("ctc"),
	}
}
