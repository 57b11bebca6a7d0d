package pages

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/scandocs/doc2text/internal/domain"
	"github.com/scandocs/doc2text/internal/observability"
	"github.com/scandocs/doc2text/internal/shell"
)

// pdfinfo prints a "Pages: N" line among other metadata.
var pdfinfoPages = regexp.MustCompile(`(?m)^Pages:\s+([0-9]+)`)

// CounterTools names the external binaries used for page counting.
type CounterTools struct {
	Mdls    string // fast metadata query, typically macOS only
	Pdfinfo string
	Djvused string
}

// DefaultCounterTools returns the standard binary names.
func DefaultCounterTools() CounterTools {
	return CounterTools{Mdls: "mdls", Pdfinfo: "pdfinfo", Djvused: "djvused"}
}

// Counter determines document page counts via external metadata tools, with
// an embedded MuPDF fallback for PDFs on hosts without poppler.
type Counter struct {
	runner *shell.Runner
	tools  CounterTools
	log    *observability.Logger
}

// NewCounter creates a Counter.
func NewCounter(runner *shell.Runner, tools CounterTools, log *observability.Logger) *Counter {
	return &Counter{
		runner: runner,
		tools:  tools,
		log:    log.WithComponent("pages"),
	}
}

// PageCount returns the total number of pages of a PDF or DjVu document. A
// failure to determine the count aborts the whole conversion, so the error
// carries the metadata tool's diagnostic output.
func (c *Counter) PageCount(ctx context.Context, doc domain.Document) (int, error) {
	switch doc.Kind {
	case domain.KindPDF:
		return c.pdfPages(ctx, doc.FilePath)
	case domain.KindDjvu:
		return c.djvuPages(ctx, doc.FilePath)
	default:
		return 0, domain.ValidationError(fmt.Sprintf("kind %q has no page count", doc.Kind), nil)
	}
}

// pdfPages tries mdls first when present, falls back to pdfinfo when mdls is
// unavailable or reports no value, and finally opens the document with MuPDF
// when neither metadata binary exists.
func (c *Counter) pdfPages(ctx context.Context, path string) (int, error) {
	if shell.CommandExists(c.tools.Mdls) {
		res, err := c.runner.Run(ctx, c.tools.Mdls, "-raw", "-name", "kMDItemNumberOfPages", path)
		if err != nil {
			return 0, domain.PageCountError("could not determine page count", err)
		}
		out := strings.TrimSpace(res.Stdout)
		if res.ExitCode == 0 && out != "" && !strings.Contains(out, "(null)") {
			n, err := res.Int()
			if err != nil {
				return 0, domain.PageCountError(fmt.Sprintf("could not determine page count: %s", res.Diagnostic()), err)
			}
			return n, nil
		}
		c.log.Debug().Str("file", path).Msg("mdls returned no page count, falling back to pdfinfo")
	}

	if shell.CommandExists(c.tools.Pdfinfo) {
		res, err := c.runner.Run(ctx, c.tools.Pdfinfo, path)
		if err != nil {
			return 0, domain.PageCountError("could not determine page count", err)
		}
		if res.ExitCode != 0 {
			return 0, domain.PageCountError(fmt.Sprintf("could not determine page count: %s", res.Diagnostic()), nil)
		}
		n, err := parsePdfinfoPages(res.Stdout)
		if err != nil {
			return 0, domain.PageCountError(fmt.Sprintf("could not determine page count: %s", res.Diagnostic()), err)
		}
		return n, nil
	}

	c.log.Debug().Str("file", path).Msg("no metadata binary found, opening document with MuPDF")
	return c.fitzPages(path)
}

// djvuPages invokes djvused, whose stdout is the bare page count.
func (c *Counter) djvuPages(ctx context.Context, path string) (int, error) {
	res, err := c.runner.Run(ctx, c.tools.Djvused, "-e", "n", path)
	if err != nil {
		return 0, domain.PageCountError("could not determine page count", err)
	}
	if res.ExitCode != 0 {
		return 0, domain.PageCountError(fmt.Sprintf("could not determine page count: %s", res.Diagnostic()), nil)
	}
	n, err := res.Int()
	if err != nil {
		return 0, domain.PageCountError(fmt.Sprintf("could not determine page count: %s", res.Diagnostic()), err)
	}
	return n, nil
}

// fitzPages opens the PDF in-process and reads the page count.
func (c *Counter) fitzPages(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, domain.PageCountError("could not determine page count", err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// parsePdfinfoPages extracts the page count from pdfinfo's textual output.
func parsePdfinfoPages(out string) (int, error) {
	m := pdfinfoPages.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("no Pages field in pdfinfo output")
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}
