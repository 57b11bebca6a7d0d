//go:build !gosseract

package ocr

import (
	"context"
	"errors"

	"github.com/scandocs/doc2text/internal/shell"
)

// ErrGosseractNotEnabled is returned when the in-process Tesseract backend
// is requested but the binary was built without the "gosseract" tag.
var ErrGosseractNotEnabled = errors.New("gosseract backend not compiled in; rebuild with -tags gosseract")

// Gosseract is the stub used without the "gosseract" build tag.
type Gosseract struct{}

// NewGosseract returns the stub backend.
func NewGosseract(language string, psm int) *Gosseract {
	return &Gosseract{}
}

// Name returns "gosseract".
func (g *Gosseract) Name() string { return "gosseract" }

// Recognize always fails with ErrGosseractNotEnabled.
func (g *Gosseract) Recognize(ctx context.Context, imagePath, textPath string) (shell.Result, error) {
	return shell.Result{Args: []string{"gosseract", imagePath}}, ErrGosseractNotEnabled
}
