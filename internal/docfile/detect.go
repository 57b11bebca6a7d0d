// Package docfile classifies input files into the coarse document kinds the
// conversion pipeline understands.
package docfile

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/scandocs/doc2text/internal/domain"
)

// Detector classifies files by content sniffing.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect reads the file header and returns the populated Document. An
// unreadable file is an io error; a readable file of an unknown type comes
// back as KindUnsupported (the caller decides whether that is fatal).
func (d *Detector) Detect(path string) (domain.Document, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return domain.Document{}, domain.IOError(fmt.Sprintf("cannot read file for type detection: %s", path), err)
	}

	doc := domain.Document{
		FilePath: path,
		MimeType: mt.String(),
		Kind:     kindOf(mt.String()),
	}
	return doc, nil
}

// kindOf maps a mime type string to a document kind. DjVu is checked before
// the generic image/ prefix because its registered type is image/vnd.djvu.
func kindOf(mime string) domain.Kind {
	switch {
	case strings.HasPrefix(mime, "text/plain"):
		return domain.KindPlainText
	case strings.HasPrefix(mime, "application/pdf"):
		return domain.KindPDF
	case strings.HasPrefix(mime, "image/vnd.djvu"):
		return domain.KindDjvu
	case strings.HasPrefix(mime, "image/"):
		return domain.KindImage
	default:
		return domain.KindUnsupported
	}
}
