//go:build gosseract

package ocr

import (
	"context"
	"os"

	"github.com/otiai10/gosseract/v2"

	"github.com/scandocs/doc2text/internal/shell"
)

// Gosseract recognizes text in-process through the Tesseract C API instead
// of spawning the CLI per page. Requires libtesseract at build time, so it
// sits behind the "gosseract" build tag.
type Gosseract struct {
	language string
	psm      int
}

// NewGosseract creates the in-process Tesseract backend.
func NewGosseract(language string, psm int) *Gosseract {
	if psm == 0 {
		psm = 12
	}
	return &Gosseract{language: language, psm: psm}
}

// Name returns "gosseract".
func (g *Gosseract) Name() string { return "gosseract" }

// Recognize runs recognition on imagePath and writes the text to textPath.
// Failures are reported as a synthetic nonzero exit so the orchestrator's
// per-page skip policy applies unchanged.
func (g *Gosseract) Recognize(ctx context.Context, imagePath, textPath string) (shell.Result, error) {
	res := shell.Result{Args: []string{"gosseract", imagePath}, Ran: true}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if g.language != "" {
		if err := client.SetLanguage(g.language); err != nil {
			res.ExitCode = 1
			res.Stderr = err.Error()
			return res, nil
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(g.psm)); err != nil {
		res.ExitCode = 1
		res.Stderr = err.Error()
		return res, nil
	}
	if err := client.SetImage(imagePath); err != nil {
		res.ExitCode = 1
		res.Stderr = err.Error()
		return res, nil
	}

	text, err := client.Text()
	if err != nil {
		res.ExitCode = 1
		res.Stderr = err.Error()
		return res, nil
	}

	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		return res, err
	}
	res.Stdout = text
	return res, nil
}
