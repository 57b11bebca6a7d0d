package raster

import (
	"context"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/scandocs/doc2text/internal/shell"
)

// Fitz renders PDF pages in-process with MuPDF. It exists for hosts without
// ghostscript; the result is shaped like an external invocation so the
// orchestrator's skip policy applies unchanged.
type Fitz struct {
	dpi int
}

// NewFitz creates an embedded MuPDF rasterizer.
func NewFitz(dpi int) *Fitz {
	if dpi <= 0 {
		dpi = 300
	}
	return &Fitz{dpi: dpi}
}

// RasterizePage renders the 1-based page of srcPath into a PNG at destPath.
// Failures are reported as a synthetic nonzero exit so they stay per-page.
func (f *Fitz) RasterizePage(ctx context.Context, srcPath string, page int, destPath string) (shell.Result, error) {
	res := shell.Result{Args: []string{"mupdf:render", srcPath}, Ran: true}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	doc, err := fitz.New(srcPath)
	if err != nil {
		res.ExitCode = 1
		res.Stderr = err.Error()
		return res, nil
	}
	defer doc.Close()

	img, err := doc.ImageDPI(page-1, float64(f.dpi))
	if err != nil {
		res.ExitCode = 1
		res.Stderr = err.Error()
		return res, nil
	}

	out, err := os.Create(destPath)
	if err != nil {
		return res, err
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		res.ExitCode = 1
		res.Stderr = err.Error()
		return res, nil
	}
	return res, nil
}

// ImageExt returns ".png".
func (f *Fitz) ImageExt() string { return ".png" }
