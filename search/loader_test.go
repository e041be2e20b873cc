package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubExtractor echoes the file bytes as text, or misbehaves on demand.
type stubExtractor struct {
	err    error
	delay  time.Duration
	panics bool
}

func (s *stubExtractor) ExtractText(data []byte) (string, error) {
	if s.panics {
		panic("extractor blew up")
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return "", s.err
	}
	return string(data), nil
}

func stubRegistry(pdf, doc, docx Extractor) *ExtractorRegistry {
	return &ExtractorRegistry{extractors: map[Kind]Extractor{
		KindPDF:  pdf,
		KindDOC:  doc,
		KindDOCX: docx,
	}}
}

func echoRegistry() *ExtractorRegistry {
	e := &stubExtractor{}
	return stubRegistry(e, e, e)
}

func TestLoadBatch_AllUnsupported(t *testing.T) {
	l := NewLoader(echoRegistry(), 2, 0, zap.NewNop())

	res, err := l.LoadBatch(context.Background(), []NamedFile{
		{Name: "notes.txt", Data: []byte("x")},
		{Name: "photo.jpg", Data: []byte("x")},
	})
	require.ErrorIs(t, err, ErrNoSupportedFiles)
	assert.Empty(t, res.Added)
	require.Len(t, res.Failed, 2)
	for _, f := range res.Failed {
		assert.ErrorIs(t, f.Err, ErrUnsupportedKind)
	}
}

func TestLoadBatch_MixedOutcomes(t *testing.T) {
	broken := &stubExtractor{err: errors.New("corrupt stream")}
	l := NewLoader(stubRegistry(&stubExtractor{}, broken, &stubExtractor{}), 2, 0, zap.NewNop())

	res, err := l.LoadBatch(context.Background(), []NamedFile{
		{Name: "good.pdf", Data: []byte("Java Developer")},
		{Name: "bad.doc", Data: []byte("whatever")},
		{Name: "skip.png", Data: []byte("img")},
		{Name: "also-good.docx", Data: []byte("Python Engineer")},
	})
	require.NoError(t, err, "per-file failures never fail the batch")

	require.Len(t, res.Added, 2)
	assert.Equal(t, "good.pdf", res.Added[0].Name)
	assert.Equal(t, "java developer", res.Added[0].Text)
	assert.Equal(t, "also-good.docx", res.Added[1].Name)

	require.Len(t, res.Failed, 2)
	names := []string{res.Failed[0].Name, res.Failed[1].Name}
	assert.Contains(t, names, "bad.doc")
	assert.Contains(t, names, "skip.png")
}

func TestLoadBatch_PreservesInputOrder(t *testing.T) {
	// Make the first file the slowest so completion order differs from
	// input order.
	slow := &stubExtractor{delay: 50 * time.Millisecond}
	fast := &stubExtractor{}
	l := NewLoader(stubRegistry(slow, fast, fast), 4, 0, zap.NewNop())

	res, err := l.LoadBatch(context.Background(), []NamedFile{
		{Name: "first.pdf", Data: []byte("a")},
		{Name: "second.doc", Data: []byte("b")},
		{Name: "third.docx", Data: []byte("c")},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 3)
	assert.Equal(t, "first.pdf", res.Added[0].Name)
	assert.Equal(t, "second.doc", res.Added[1].Name)
	assert.Equal(t, "third.docx", res.Added[2].Name)
}

func TestLoadBatch_PerFileTimeout(t *testing.T) {
	hung := &stubExtractor{delay: 2 * time.Second}
	fast := &stubExtractor{}
	l := NewLoader(stubRegistry(hung, fast, fast), 2, 50*time.Millisecond, zap.NewNop())

	res, err := l.LoadBatch(context.Background(), []NamedFile{
		{Name: "hung.pdf", Data: []byte("x")},
		{Name: "ok.docx", Data: []byte("fine")},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 1)
	assert.Equal(t, "ok.docx", res.Added[0].Name)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "hung.pdf", res.Failed[0].Name)
	assert.ErrorIs(t, res.Failed[0].Err, ErrExtractionTimeout)
}

func TestLoadBatch_ExtractorPanicIsIsolated(t *testing.T) {
	panicky := &stubExtractor{panics: true}
	fast := &stubExtractor{}
	l := NewLoader(stubRegistry(panicky, fast, fast), 2, 0, zap.NewNop())

	res, err := l.LoadBatch(context.Background(), []NamedFile{
		{Name: "boom.pdf", Data: []byte("x")},
		{Name: "ok.doc", Data: []byte("fine")},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 1)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "boom.pdf", res.Failed[0].Name)
	assert.Contains(t, res.Failed[0].Err.Error(), "panic")
}

func TestLoadBatch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := &stubExtractor{delay: time.Second}
	l := NewLoader(stubRegistry(slow, slow, slow), 1, 0, zap.NewNop())

	res, err := l.LoadBatch(ctx, []NamedFile{
		{Name: "a.pdf", Data: []byte("x")},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	require.Len(t, res.Failed, 1)
}
