// Package converter is the public entry point for the document-to-text
// pipeline. It wires the internal components from a single configuration
// and exposes one Convert call.
package converter

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/scandocs/doc2text/internal/config"
	"github.com/scandocs/doc2text/internal/convert"
	"github.com/scandocs/doc2text/internal/docfile"
	"github.com/scandocs/doc2text/internal/domain"
	"github.com/scandocs/doc2text/internal/observability"
	"github.com/scandocs/doc2text/internal/ocr"
	"github.com/scandocs/doc2text/internal/pages"
	"github.com/scandocs/doc2text/internal/raster"
	"github.com/scandocs/doc2text/internal/shell"
)

// Re-export result and event types for the public API.
type (
	Request          = convert.Request
	ConversionResult = domain.ConversionResult
	ConversionStats  = domain.ConversionStats
	PageEvent        = domain.PageEvent
	PageEventType    = domain.PageEventType
)

// Page event constants.
const (
	EventPageDone    = domain.EventPageDone
	EventPageSkipped = domain.EventPageSkipped
)

// Client is the main entry point for the doc2text library.
type Client struct {
	service *convert.Service
	cfg     *config.Config
	log     *observability.Logger
}

// NewClient creates a client from the environment: .env is loaded when
// present, then DOC2TEXT_CONFIG may name a YAML file, then DOC2TEXT_*
// variables override individual settings.
func NewClient() (*Client, error) {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg, err := config.Load(os.Getenv("DOC2TEXT_CONFIG"))
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client from an explicit configuration.
func NewClientWithConfig(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	return newClient(cfg, log), nil
}

func newClient(cfg *config.Config, log *observability.Logger) *Client {
	runner := shell.NewRunner()

	counterTools := pages.DefaultCounterTools()
	if cfg.Tools.Mdls != "" {
		counterTools.Mdls = cfg.Tools.Mdls
	}
	if cfg.Tools.Pdfinfo != "" {
		counterTools.Pdfinfo = cfg.Tools.Pdfinfo
	}
	if cfg.Tools.Djvused != "" {
		counterTools.Djvused = cfg.Tools.Djvused
	}

	rasterOpts := raster.DefaultOptions()
	rasterOpts.DPI = cfg.Raster.DPI
	rasterOpts.Embedded = cfg.Raster.Embedded
	if cfg.Tools.Ghostscript != "" {
		rasterOpts.Ghostscript = cfg.Tools.Ghostscript
	}
	if cfg.Tools.Ddjvu != "" {
		rasterOpts.Ddjvu = cfg.Tools.Ddjvu
	}

	registry := ocr.NewRegistry(
		ocr.NewTesseract(runner, ocr.TesseractConfig{
			Bin:      cfg.Tools.Tesseract,
			Language: cfg.OCR.Language,
			PSM:      cfg.OCR.PSM,
		}),
		ocr.NewCatdoc(runner, cfg.Tools.Catdoc),
		ocr.NewGosseract(cfg.OCR.Language, cfg.OCR.PSM),
	)

	factory := func(kind domain.Kind) (raster.Rasterizer, error) {
		return raster.ForKind(kind, runner, rasterOpts)
	}

	service := convert.NewService(docfile.NewDetector(), pages.NewCounter(runner, counterTools, log), factory, registry, log)
	return &Client{service: service, cfg: cfg, log: log}
}

// Convert runs one document through the pipeline. An unset Backend in the
// request falls back to the configured default.
func (c *Client) Convert(ctx context.Context, req Request) (*ConversionResult, error) {
	if req.Backend == "" {
		req.Backend = c.cfg.OCR.Backend
	}
	return c.service.Convert(ctx, req)
}
