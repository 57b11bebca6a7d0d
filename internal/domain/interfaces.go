package domain

import "context"

// Classifier maps a file path to a coarse document kind.
type Classifier interface {
	// Detect inspects the file contents and returns the populated Document.
	Detect(path string) (Document, error)
}

// PageCounter determines the total page count of a paginated document.
type PageCounter interface {
	// PageCount returns the number of pages, or a pagecount error carrying
	// the metadata tool's diagnostic output.
	PageCount(ctx context.Context, doc Document) (int, error)
}
