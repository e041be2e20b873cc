package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoSupportedFiles is returned when a batch contains no file with a
// recognized extension.
var ErrNoSupportedFiles = errors.New("no supported files found")

// ErrExtractionTimeout is returned when a single file exceeds the per-file
// extraction deadline.
var ErrExtractionTimeout = errors.New("extraction timed out")

// NamedFile is one input to a batch load: the file's name (used for the
// extension check), its raw bytes, and where it came from.
type NamedFile struct {
	Name   string
	Data   []byte
	Source string
}

// FileError records a single file that failed to load, without affecting
// the rest of its batch.
type FileError struct {
	Name string
	Err  error
}

// BatchResult reports the outcome of a batch load per file: documents that
// parsed, in input order, and the files that did not.
type BatchResult struct {
	Added  []Document
	Failed []FileError
}

// Loader turns raw files into Documents. Extraction fans out across a
// bounded worker pool; each file gets its own timeout and its failures
// never abort the batch.
type Loader struct {
	registry *ExtractorRegistry
	workers  int
	timeout  time.Duration
	log      *zap.Logger
}

// NewLoader creates a loader backed by the given extractor registry.
// Zero workers means one per CPU; a zero timeout disables the per-file
// deadline.
func NewLoader(registry *ExtractorRegistry, workers int, timeout time.Duration, log *zap.Logger) *Loader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		registry: registry,
		workers:  workers,
		timeout:  timeout,
		log:      log,
	}
}

// LoadBatch extracts every supported file in the batch concurrently.
//
// Files whose extension maps to no known format are reported in Failed and
// skipped; if that removes the whole batch, the error is ErrNoSupportedFiles.
// Supported files are extracted independently: one corrupt or slow file
// shows up in Failed while the rest land in Added. Added preserves the
// input order of the batch.
func (l *Loader) LoadBatch(ctx context.Context, files []NamedFile) (BatchResult, error) {
	var res BatchResult

	type job struct {
		file NamedFile
		kind Kind
	}
	jobs := make([]job, 0, len(files))
	for _, f := range files {
		kind, err := KindForName(f.Name)
		if err != nil {
			res.Failed = append(res.Failed, FileError{Name: f.Name, Err: err})
			continue
		}
		jobs = append(jobs, job{file: f, kind: kind})
	}
	if len(jobs) == 0 {
		return res, ErrNoSupportedFiles
	}

	docs := make([]*Document, len(jobs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			doc, err := l.loadOne(ctx, j.file, j.kind)
			if err != nil {
				l.log.Warn("file failed to load",
					zap.String("file", j.file.Name),
					zap.Error(err))
				mu.Lock()
				res.Failed = append(res.Failed, FileError{Name: j.file.Name, Err: err})
				mu.Unlock()
				return nil
			}
			docs[i] = &doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	for _, d := range docs {
		if d != nil {
			res.Added = append(res.Added, *d)
		}
	}

	l.log.Info("batch loaded",
		zap.Int("files", len(files)),
		zap.Int("added", len(res.Added)),
		zap.Int("failed", len(res.Failed)))
	return res, nil
}

// loadOne extracts a single file under the per-file deadline. The extractor
// runs in its own goroutine behind a recover guard, so a panicking parser
// costs the batch one file, not the process.
func (l *Loader) loadOne(ctx context.Context, f NamedFile, kind Kind) (Document, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("extractor panic: %v", r)}
			}
		}()
		text, err := l.registry.Extract(f.Data, kind)
		done <- outcome{text: text, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return Document{}, fmt.Errorf("extracting %s: %w", f.Name, out.err)
		}
		return NewDocument(f.Name, kind, out.text, f.Source), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Document{}, fmt.Errorf("extracting %s: %w", f.Name, ErrExtractionTimeout)
		}
		return Document{}, ctx.Err()
	}
}
