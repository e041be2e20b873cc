package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindResumeFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), "x")
	writeFile(t, filepath.Join(dir, "sub", "b.docx"), "x")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	writeFile(t, filepath.Join(dir, ".git", "c.pdf"), "x")
	writeFile(t, filepath.Join(dir, "node_modules", "d.doc"), "x")

	files, err := FindResumeFiles(dir)
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	assert.ElementsMatch(t, []string{"a.pdf", "b.docx"}, names)
}

func TestFindResumeFiles_MissingRoot(t *testing.T) {
	_, err := FindResumeFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), "Java Developer resume")
	writeFile(t, filepath.Join(dir, "b.docx"), "Python Engineer resume")
	writeFile(t, filepath.Join(dir, "ignored.txt"), "not a resume")

	l := NewLoader(echoRegistry(), 2, 0, zap.NewNop())
	res, err := l.LoadDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, res.Added, 2)
	assert.Empty(t, res.Failed)

	for _, d := range res.Added {
		assert.NotEmpty(t, d.Text)
		assert.NotEmpty(t, d.Source)
	}
}

func TestLoadDirectory_NoResumes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"), "x")

	l := NewLoader(echoRegistry(), 2, 0, zap.NewNop())
	_, err := l.LoadDirectory(context.Background(), dir)
	assert.ErrorIs(t, err, ErrNoSupportedFiles)
}
