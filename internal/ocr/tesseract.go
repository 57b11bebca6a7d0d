package ocr

import (
	"context"
	"strconv"

	"github.com/scandocs/doc2text/internal/shell"
)

// TesseractConfig holds the tesseract CLI parameters.
type TesseractConfig struct {
	// Bin is the tesseract binary name, default "tesseract".
	Bin string

	// Language is the recognition language passed as -l (empty for the
	// engine default).
	Language string

	// PSM is the page segmentation mode. 12 ("sparse text with OSD")
	// matches the historical invocation this pipeline was built around.
	PSM int
}

// Tesseract is the default OCR backend: the tesseract CLI writing
// recognized text to stdout, which is captured into the page's text file.
type Tesseract struct {
	runner *shell.Runner
	cfg    TesseractConfig
}

// NewTesseract creates the tesseract CLI backend.
func NewTesseract(runner *shell.Runner, cfg TesseractConfig) *Tesseract {
	if cfg.Bin == "" {
		cfg.Bin = "tesseract"
	}
	if cfg.PSM == 0 {
		cfg.PSM = 12
	}
	return &Tesseract{runner: runner, cfg: cfg}
}

// Name returns "tesseract".
func (t *Tesseract) Name() string { return "tesseract" }

// Recognize runs tesseract on imagePath with stdout redirected to textPath.
func (t *Tesseract) Recognize(ctx context.Context, imagePath, textPath string) (shell.Result, error) {
	args := []string{imagePath, "stdout", "--psm", strconv.Itoa(t.cfg.PSM)}
	if t.cfg.Language != "" {
		args = append(args, "-l", t.cfg.Language)
	}
	return t.runner.RunToFile(ctx, textPath, t.cfg.Bin, args...)
}
