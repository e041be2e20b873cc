package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestExcerpt_ShortTextReturnsWhole(t *testing.T) {
	text := "short resume text mentioning java"
	got := BestExcerpt(text, []string{"java"}, 200)
	assert.Equal(t, text, got, "text shorter than one window comes back whole")
}

func TestBestExcerpt_NoTermsReturnsHead(t *testing.T) {
	text := strings.Repeat("a", 500)
	got := BestExcerpt(text, nil, 200)
	assert.Equal(t, text[:200], got)
}

func TestBestExcerpt_NoOccurrencesFallsBackToHead(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 40)
	got := BestExcerpt(text, []string{"golang"}, 200)
	assert.Equal(t, text[:200], got)
}

func TestBestExcerpt_PicksDensestWindow(t *testing.T) {
	// One mention early, a cluster of three much later. The clustered
	// region must win.
	filler := strings.Repeat("x ", 150)
	text := "java " + filler + " java java java " + filler
	got := BestExcerpt(text, []string{"java"}, 200)

	require.LessOrEqual(t, len(got), 200)
	assert.GreaterOrEqual(t, strings.Count(got, "java"), 2)
}

func TestBestExcerpt_FirstWindowWinsTies(t *testing.T) {
	// Two equally dense regions; the earlier window must be kept because a
	// later one only replaces it on a strictly greater score.
	pad := strings.Repeat("y ", 120)
	text := "go go " + pad + " go go " + pad
	got := BestExcerpt(text, []string{"go"}, 100)

	idx := strings.Index(text, got)
	require.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 100, "tie must resolve to the earliest window")
}

func TestBestExcerpt_LengthBound(t *testing.T) {
	text := strings.Repeat("java is great ", 300)
	for _, window := range []int{50, 200, 1000} {
		got := BestExcerpt(text, []string{"java"}, window)
		assert.LessOrEqual(t, len(got), window)
	}
}

func TestBestExcerpt_RegexMetacharactersInTerms(t *testing.T) {
	text := strings.Repeat("filler text here ", 30) + "expert in c++ and .net development" + strings.Repeat(" trailing filler", 30)
	got := BestExcerpt(text, []string{"c++"}, 60)
	assert.Contains(t, got, "c++")
}

func TestBestExcerpt_ZeroWindowUsesDefault(t *testing.T) {
	text := strings.Repeat("z", 500)
	got := BestExcerpt(text, nil, 0)
	assert.Len(t, got, DefaultExcerptWindow)
}

var benchExcerpt string

func BenchmarkBestExcerpt(b *testing.B) {
	// Build a ~1MB document with term clusters scattered through it.
	var sb strings.Builder
	fill := "lorem ipsum dolor sit amet consectetur adipiscing elit "
	for sb.Len() < 1<<20 {
		sb.WriteString(fill)
		if sb.Len()%7919 < len(fill) {
			sb.WriteString("java developer spring ")
		}
	}
	text := sb.String()
	terms := []string{"java developer", "spring"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchExcerpt = BestExcerpt(text, terms, DefaultExcerptWindow)
	}
	_ = benchExcerpt
}
