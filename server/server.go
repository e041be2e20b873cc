// Package server exposes the resume search tool over HTTP: multipart batch
// upload, filtered search with highlighted excerpts, and original file
// download.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/prasanthlucy/Resume-project-xeedo/metrics"
	"github.com/prasanthlucy/Resume-project-xeedo/search"
)

// Server holds the loaded resumes and their original bytes. All state is
// owned here and touched only under mu; handlers never share mutable
// search state any other way.
type Server struct {
	loader  *search.Loader
	window  int
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu    sync.RWMutex
	col   *search.Collection
	blobs map[string][]byte

	maxUploadBytes int64
}

// New creates an HTTP server around a loader.
func New(loader *search.Loader, excerptWindow int, maxUploadMB int, logger *zap.Logger, m *metrics.Metrics) *Server {
	return &Server{
		loader:         loader,
		window:         excerptWindow,
		logger:         logger,
		metrics:        m,
		col:            search.NewCollection(),
		blobs:          make(map[string][]byte),
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogMiddleware(s.logger, s.metrics))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/resumes", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/", s.handleSearch)
		r.Get("/{id}/file", s.handleDownload)
	})

	return r
}

type uploadedResume struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Size int    `json:"size"`
}

type failedFile struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type uploadResponse struct {
	Added  []uploadedResume `json:"added"`
	Failed []failedFile     `json:"failed"`
	Total  int              `json:"total"`
	Recent int              `json:"recent_uploads"`
}

// handleUpload accepts a multipart batch under the "files" field. Every
// file gets its own verdict; a bad file never sinks its batch.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeError(w, http.StatusBadRequest, "no files in request")
		return
	}

	// Sources carry the part index so each blob lands on its own document
	// even when two parts share a filename.
	var files []search.NamedFile
	var unreadable []search.FileError
	for i, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			unreadable = append(unreadable, search.FileError{Name: fh.Filename, Err: err})
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			unreadable = append(unreadable, search.FileError{Name: fh.Filename, Err: err})
			continue
		}
		files = append(files, search.NamedFile{
			Name:   fh.Filename,
			Data:   data,
			Source: fmt.Sprintf("upload:%d:%s", i, fh.Filename),
		})
	}

	res, err := s.loader.LoadBatch(r.Context(), files)
	res.Failed = append(res.Failed, unreadable...)
	if err != nil {
		if errors.Is(err, search.ErrNoSupportedFiles) {
			writeJSON(w, http.StatusBadRequest, uploadResponse{
				Added:  []uploadedResume{},
				Failed: failedFiles(res.Failed),
			})
			return
		}
		s.logger.Error("batch load failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	bySource := make(map[string][]byte, len(files))
	for _, f := range files {
		bySource[f.Source] = f.Data
	}

	s.mu.Lock()
	for _, d := range res.Added {
		s.blobs[d.ID] = bySource[d.Source]
	}
	appendErr := s.col.Append(res.Added...)
	total := s.col.Len()
	recent := len(s.col.Recent(search.DefaultRecentWindow))
	s.mu.Unlock()
	if appendErr != nil {
		s.logger.Error("append failed", zap.Error(appendErr))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.ResumesLoadedTotal.Add(float64(len(res.Added)))
	for _, f := range res.Failed {
		s.metrics.LoadFailuresTotal.WithLabelValues(failureReason(f.Err)).Inc()
	}

	added := make([]uploadedResume, len(res.Added))
	for i, d := range res.Added {
		added[i] = uploadedResume{
			ID:   d.ID,
			Name: d.Name,
			Kind: string(d.Kind),
			Size: len(s.blobFor(d.ID)),
		}
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		Added:  added,
		Failed: failedFiles(res.Failed),
		Total:  total,
		Recent: recent,
	})
}

type segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

type searchHit struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	NameHL  []segment `json:"name_segments"`
	Meta    string    `json:"meta,omitempty"`
	Excerpt []segment `json:"excerpt"`
}

type searchResponse struct {
	Total   int            `json:"total"`
	Matched int            `json:"matched"`
	Recent  int            `json:"recent_uploads"`
	Filters search.Filters `json:"filters"`
	Results []searchHit    `json:"results"`
}

// handleSearch filters the loaded resumes by the keywords, name and ctc
// query parameters and returns highlighted excerpts in load order.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	filters := search.FiltersFromValues(r.URL.Query())
	terms := filters.Terms()

	s.mu.RLock()
	total := s.col.Len()
	recent := len(s.col.Recent(search.DefaultRecentWindow))
	docs := s.col.Filter(terms)
	s.mu.RUnlock()

	s.metrics.SearchesTotal.Inc()
	s.metrics.SearchResultsCount.Observe(float64(len(docs)))

	hits := make([]searchHit, len(docs))
	for i, d := range docs {
		hits[i] = searchHit{
			ID:      d.ID,
			Name:    d.Name,
			NameHL:  segments(search.Highlight(d.Name, terms)),
			Meta:    d.MetaLine(),
			Excerpt: segments(search.Highlight(search.BestExcerpt(d.Text, terms, s.window), terms)),
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Total:   total,
		Matched: len(docs),
		Recent:  recent,
		Filters: filters,
		Results: hits,
	})
}

// handleDownload streams a resume's original bytes back.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	doc, ok := s.col.Get(id)
	data := s.blobs[id]
	s.mu.RUnlock()
	if !ok || data == nil {
		writeError(w, http.StatusNotFound, "resume not found")
		return
	}

	w.Header().Set("Content-Type", contentTypeForKind(doc.Kind))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	total := s.col.Len()
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"resumes": total,
	})
}

func (s *Server) blobFor(id string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blobs[id]
}

func segments(segs []search.Segment) []segment {
	out := make([]segment, len(segs))
	for i, s := range segs {
		out[i] = segment{Text: s.Text, Matched: s.Matched}
	}
	return out
}

func failedFiles(fe []search.FileError) []failedFile {
	out := make([]failedFile, len(fe))
	for i, f := range fe {
		out[i] = failedFile{Name: f.Name, Error: f.Err.Error()}
	}
	return out
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, search.ErrUnsupportedKind):
		return "unsupported"
	case errors.Is(err, search.ErrExtractionTimeout):
		return "timeout"
	default:
		return "extraction"
	}
}

func contentTypeForKind(k search.Kind) string {
	switch k {
	case search.KindPDF:
		return "application/pdf"
	case search.KindDOC:
		return "application/msword"
	case search.KindDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
