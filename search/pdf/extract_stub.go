//go:build !pdfcpu

package pdf

import "errors"

// ErrFallbackDisabled is returned when the pdfcpu extraction path is not
// compiled in.
var ErrFallbackDisabled = errors.New("pdfcpu fallback disabled")

// Stub caps, mirrored from the tagged implementation so callers can pass
// them unconditionally.
const (
	DefaultPageCap    = 200
	DefaultPerPageCap = 128 * 1024
)

// ExtractAllTextCapped is the stub used by default builds. Compile with the
// "pdfcpu" tag to enable the content-stream fallback for PDFs the primary
// reader rejects.
func ExtractAllTextCapped(data []byte, pageCap, perPageCap int) (string, error) {
	return "", ErrFallbackDisabled
}
