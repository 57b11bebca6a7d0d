// Package raster converts single pages of paginated documents into flat
// image files, normally by invoking document-type-specific external tools.
package raster

import (
	"context"
	"fmt"

	"github.com/scandocs/doc2text/internal/domain"
	"github.com/scandocs/doc2text/internal/shell"
)

// Rasterizer converts one page of a document into a single image file at
// destPath. A nonzero exit status in the Result is a per-page failure the
// orchestrator skips over, not a pipeline abort.
type Rasterizer interface {
	// RasterizePage renders the given 1-based page of srcPath into destPath.
	RasterizePage(ctx context.Context, srcPath string, page int, destPath string) (shell.Result, error)

	// ImageExt is the file extension (with dot) of the images produced.
	ImageExt() string
}

// Options configure rasterization.
type Options struct {
	DPI         int
	Ghostscript string // binary name override, default "gs"
	Ddjvu       string // binary name override, default "ddjvu"
	Embedded    bool   // render PDFs in-process with MuPDF instead of ghostscript
}

// DefaultOptions returns the standard tool names and 300 dpi.
func DefaultOptions() Options {
	return Options{DPI: 300, Ghostscript: "gs", Ddjvu: "ddjvu"}
}

func (o Options) dpi() int {
	if o.DPI <= 0 {
		return 300
	}
	return o.DPI
}

// ForKind returns the rasterizer for a document kind.
func ForKind(kind domain.Kind, runner *shell.Runner, opts Options) (Rasterizer, error) {
	switch kind {
	case domain.KindPDF:
		if opts.Embedded {
			return NewFitz(opts.dpi()), nil
		}
		return NewGhostscript(runner, opts), nil
	case domain.KindDjvu:
		return NewDdjvu(runner, opts), nil
	default:
		return nil, domain.ValidationError(fmt.Sprintf("kind %q cannot be rasterized", kind), nil)
	}
}

// Ghostscript rasterizes PDF pages via the gs binary.
type Ghostscript struct {
	runner *shell.Runner
	bin    string
	dpi    int
}

// NewGhostscript creates a Ghostscript rasterizer.
func NewGhostscript(runner *shell.Runner, opts Options) *Ghostscript {
	bin := opts.Ghostscript
	if bin == "" {
		bin = "gs"
	}
	return &Ghostscript{runner: runner, bin: bin, dpi: opts.dpi()}
}

// RasterizePage renders exactly one PDF page to a PNG at destPath. First and
// last page are pinned to the target page and interpolation is enabled.
func (g *Ghostscript) RasterizePage(ctx context.Context, srcPath string, page int, destPath string) (shell.Result, error) {
	args := []string{
		"-dSAFER",
		"-q",
		fmt.Sprintf("-r%d", g.dpi),
		fmt.Sprintf("-dFirstPage=%d", page),
		fmt.Sprintf("-dLastPage=%d", page),
		"-dNOPAUSE",
		"-dINTERPOLATE",
		"-sDEVICE=png16m",
		fmt.Sprintf("-sOutputFile=%s", destPath),
		srcPath,
		"-c", "quit",
	}
	return g.runner.Run(ctx, g.bin, args...)
}

// ImageExt returns ".png".
func (g *Ghostscript) ImageExt() string { return ".png" }

// Ddjvu rasterizes DjVu pages via the ddjvu binary.
type Ddjvu struct {
	runner *shell.Runner
	bin    string
}

// NewDdjvu creates a Ddjvu rasterizer.
func NewDdjvu(runner *shell.Runner, opts Options) *Ddjvu {
	bin := opts.Ddjvu
	if bin == "" {
		bin = "ddjvu"
	}
	return &Ddjvu{runner: runner, bin: bin}
}

// RasterizePage exports one DjVu page as TIFF at destPath.
func (d *Ddjvu) RasterizePage(ctx context.Context, srcPath string, page int, destPath string) (shell.Result, error) {
	args := []string{
		fmt.Sprintf("-page=%d", page),
		"-format=tif",
		srcPath,
		destPath,
	}
	return d.runner.Run(ctx, d.bin, args...)
}

// ImageExt returns ".tif".
func (d *Ddjvu) ImageExt() string { return ".tif" }
