package search

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// skipDirs lists directory names never worth descending into when
// scanning for resumes.
var skipDirs = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	"node_modules": true,
	".vscode":      true,
	".idea":        true,
	"__pycache__":  true,
	"vendor":       true,
	"build":        true,
	"dist":         true,
	"coverage":     true,
}

func shouldSkipDir(name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".")
}

// FindResumeFiles walks root and returns the paths of every pdf, doc and
// docx file, skipping hidden and tooling directories. Unreadable entries
// are skipped silently; the walk itself only fails if root is unusable.
func FindResumeFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := KindForName(d.Name()); err == nil {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// readFileDropCache reads a file whole and tells the kernel we will not
// read it again, so large resume batches do not evict warmer pages.
func readFileDropCache(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_DONTNEED)
	return data, nil
}

// LoadDirectory discovers every resume file under root and runs them
// through LoadBatch. Files that cannot be read are reported in Failed
// alongside extraction failures.
func (l *Loader) LoadDirectory(ctx context.Context, root string) (BatchResult, error) {
	paths, err := FindResumeFiles(root)
	if err != nil {
		return BatchResult{}, err
	}
	if len(paths) == 0 {
		return BatchResult{}, ErrNoSupportedFiles
	}

	var unreadable []FileError
	named := make([]NamedFile, 0, len(paths))
	for _, p := range paths {
		data, err := readFileDropCache(p)
		if err != nil {
			unreadable = append(unreadable, FileError{Name: filepath.Base(p), Err: err})
			continue
		}
		named = append(named, NamedFile{Name: filepath.Base(p), Data: data, Source: p})
	}
	if len(named) == 0 {
		return BatchResult{Failed: unreadable}, nil
	}

	res, err := l.LoadBatch(ctx, named)
	res.Failed = append(res.Failed, unreadable...)
	return res, err
}
