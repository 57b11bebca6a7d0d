package ocr

import (
	"context"

	"github.com/scandocs/doc2text/internal/shell"
)

// Catdoc is a text-extraction backend for legacy office/text formats. It is
// not an OCR engine: it reads the document directly and copies its stdout
// into the text file, so it only makes sense on inputs catdoc understands.
type Catdoc struct {
	runner *shell.Runner
	bin    string
}

// NewCatdoc creates the catdoc backend. bin defaults to "catdoc".
func NewCatdoc(runner *shell.Runner, bin string) *Catdoc {
	if bin == "" {
		bin = "catdoc"
	}
	return &Catdoc{runner: runner, bin: bin}
}

// Name returns "catdoc".
func (c *Catdoc) Name() string { return "catdoc" }

// Recognize extracts the document's text to textPath. imagePath is the
// source document itself for this backend.
func (c *Catdoc) Recognize(ctx context.Context, imagePath, textPath string) (shell.Result, error) {
	return c.runner.RunToFile(ctx, textPath, c.bin, imagePath)
}
