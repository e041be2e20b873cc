package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilters_Terms(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"all empty", Filters{}, []string{}},
		{"keywords only", Filters{Keywords: "Java Developer"}, []string{"java developer"}},
		{"all three, whole fields", Filters{Keywords: "Spring Boot", Name: "Priya", CTC: "12 LPA"},
			[]string{"spring boot", "priya", "12 lpa"}},
		{"fields are not tokenized", Filters{Name: "Priya Sharma"}, []string{"priya sharma"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Terms())
		})
	}
}

func TestFilters_Empty(t *testing.T) {
	assert.True(t, Filters{}.Empty())
	assert.False(t, Filters{CTC: "10"}.Empty())
}

func TestFilters_URLRoundTrip(t *testing.T) {
	f := Filters{Keywords: "java developer", Name: "Priya", CTC: "12 LPA"}

	got := FiltersFromValues(f.Values())
	assert.Equal(t, f, got)
}

func TestFilters_ValuesOmitsEmptyFields(t *testing.T) {
	v := Filters{Name: "Priya"}.Values()
	require.Equal(t, url.Values{"name": {"Priya"}}, v)
}

func TestFiltersFromValues_IgnoresUnknownKeys(t *testing.T) {
	v := url.Values{"name": {"Priya"}, "page": {"2"}}
	got := FiltersFromValues(v)
	assert.Equal(t, Filters{Name: "Priya"}, got)
}
