package domain

import "time"

// Kind is the coarse document classification that gates which pipeline
// branch runs.
type Kind string

const (
	KindPlainText   Kind = "text"
	KindPDF         Kind = "pdf"
	KindDjvu        Kind = "djvu"
	KindImage       Kind = "image"
	KindUnsupported Kind = "unsupported"
)

// Paginated reports whether documents of this kind must be rasterized page
// by page before OCR.
func (k Kind) Paginated() bool {
	return k == KindPDF || k == KindDjvu
}

// Document represents the source file being converted.
type Document struct {
	FilePath   string
	Kind       Kind
	MimeType   string // detected mime type, e.g. "application/pdf"
	TotalPages int    // 0 until counted; 1 for plain images
}

// PageJob is the ephemeral per-page unit of work. Both temp paths are owned
// exclusively by the job and removed (best effort) when the page finishes,
// whether it succeeded or not.
type PageJob struct {
	PageNumber int
	SourcePath string
	RasterPath string // temp image produced by the rasterizer
	TextPath   string // temp text produced by the OCR backend
}

// ConversionResult is the final aggregate returned to the caller.
type ConversionResult struct {
	OutputPath string
	TempOutput bool   // destination was a temp file; Text carries the content
	Text       string // populated only when TempOutput is true
	Stats      ConversionStats
}

// ConversionStats summarizes the per-page loop.
type ConversionStats struct {
	TotalTime       time.Duration
	PagesSelected   int
	PagesSucceeded  int
	PagesSkipped    int
}

// PageEventType identifies the progress callback events.
type PageEventType string

const (
	EventPageDone    PageEventType = "page_done"
	EventPageSkipped PageEventType = "page_skipped"
)

// PageEvent is delivered synchronously after each page of the loop, in page
// order, so callers can render progress without introducing concurrency.
type PageEvent struct {
	Type       PageEventType
	PageNumber int
	Index      int // 1-based position in the selected sequence
	Total      int
	Err        error // set for EventPageSkipped
}
