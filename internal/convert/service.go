// Package convert drives the document-to-text pipeline: classify the input,
// count and select pages, rasterize and recognize each page in order, then
// write and validate the final output.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scandocs/doc2text/internal/domain"
	"github.com/scandocs/doc2text/internal/observability"
	"github.com/scandocs/doc2text/internal/ocr"
	"github.com/scandocs/doc2text/internal/pages"
	"github.com/scandocs/doc2text/internal/raster"
)

// outputExt is the only accepted extension for named output files.
const outputExt = ".txt"

// RasterizerFactory returns the rasterizer for a document kind.
type RasterizerFactory func(kind domain.Kind) (raster.Rasterizer, error)

// BackendResolver looks up an OCR backend by name.
type BackendResolver interface {
	Resolve(name string) (ocr.Backend, error)
}

// Request carries one conversion's resolved configuration. The CLI layer
// produces it; nothing here is read from process-global state.
type Request struct {
	InputPath  string
	OutputPath string // empty: return text via a temp file deleted afterward
	Backend    string // OCR backend name, default "tesseract"
	Pages      string // page spec, empty selects all pages

	// OnPage, when set, is called synchronously after each page of the
	// loop, in processing order.
	OnPage func(domain.PageEvent)
}

// Service orchestrates the conversion pipeline. Processing is strictly
// sequential: one page is rasterized, recognized, and cleaned up before the
// next begins.
type Service struct {
	classifier  domain.Classifier
	counter     domain.PageCounter
	rasterizers RasterizerFactory
	backends    BackendResolver
	log         *observability.Logger
}

// NewService creates a conversion service.
func NewService(classifier domain.Classifier, counter domain.PageCounter, rasterizers RasterizerFactory, backends BackendResolver, log *observability.Logger) *Service {
	return &Service{
		classifier:  classifier,
		counter:     counter,
		rasterizers: rasterizers,
		backends:    backends,
		log:         log.WithComponent("convert"),
	}
}

// Convert runs the whole pipeline for one document. Per-page failures are
// logged and skipped; only configuration, page-count, and final-validation
// failures surface as errors.
func (s *Service) Convert(ctx context.Context, req Request) (*domain.ConversionResult, error) {
	start := time.Now()
	log := s.log.WithJob(uuid.NewString())

	if strings.TrimSpace(req.InputPath) == "" {
		return nil, domain.ValidationError("input path cannot be empty", nil)
	}
	if _, err := os.Stat(req.InputPath); err != nil {
		return nil, domain.ValidationError(fmt.Sprintf("cannot access input file: %s", req.InputPath), err)
	}

	doc, err := s.classifier.Detect(req.InputPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", req.InputPath).Str("mime", doc.MimeType).Str("kind", string(doc.Kind)).Msg("classified input")

	switch doc.Kind {
	case domain.KindUnsupported:
		return nil, domain.ConfigError(fmt.Sprintf("unsupported mime type %q", doc.MimeType), nil)
	case domain.KindPlainText:
		// Already text: no external tool runs at all.
		return s.passThrough(req, start)
	}

	backendName := req.Backend
	if backendName == "" {
		backendName = "tesseract"
	}
	backend, err := s.backends.Resolve(backendName)
	if err != nil {
		return nil, err
	}

	outputPath, tempOutput, err := s.resolveOutput(req.OutputPath, log)
	if err != nil {
		return nil, err
	}

	var stats domain.ConversionStats
	if doc.Kind == domain.KindImage {
		err = s.convertImage(ctx, doc, backend, outputPath, log)
		stats.PagesSelected, stats.PagesSucceeded = 1, 1
	} else {
		stats, err = s.convertPaginated(ctx, doc, backend, outputPath, req, log)
	}
	if err != nil {
		if tempOutput {
			removeQuiet(outputPath, log)
		}
		return nil, err
	}

	if err := s.validateOutput(outputPath, tempOutput, log); err != nil {
		return nil, err
	}

	stats.TotalTime = time.Since(start)
	result := &domain.ConversionResult{OutputPath: outputPath, TempOutput: tempOutput, Stats: stats}
	if tempOutput {
		data, err := os.ReadFile(outputPath)
		if err != nil {
			return nil, domain.IOError("cannot read converted text back", err)
		}
		removeQuiet(outputPath, log)
		result.OutputPath = ""
		result.Text = string(data)
	}

	log.Info().Int("pages_ok", stats.PagesSucceeded).Int("pages_skipped", stats.PagesSkipped).Dur("took", stats.TotalTime).Msg("conversion successful")
	return result, nil
}

// passThrough handles an input that is already plain text: returned (or
// copied) verbatim, byte for byte.
func (s *Service) passThrough(req Request, start time.Time) (*domain.ConversionResult, error) {
	data, err := os.ReadFile(req.InputPath)
	if err != nil {
		return nil, domain.IOError("cannot read plain-text input", err)
	}

	stats := domain.ConversionStats{TotalTime: time.Since(start)}
	if req.OutputPath == "" {
		return &domain.ConversionResult{TempOutput: true, Text: string(data), Stats: stats}, nil
	}
	if filepath.Ext(req.OutputPath) != outputExt {
		return nil, domain.ConfigError(fmt.Sprintf("output file needs a %s extension: %s", outputExt, req.OutputPath), nil)
	}
	if err := os.WriteFile(req.OutputPath, data, 0o644); err != nil {
		return nil, domain.IOError("cannot write output file", err)
	}
	return &domain.ConversionResult{OutputPath: req.OutputPath, Stats: stats}, nil
}

// resolveOutput decides where the converted text lands. No caller-supplied
// path means a temp file whose contents are returned and then deleted; a
// named path must carry the canonical extension and is created as an empty
// placeholder when absent.
func (s *Service) resolveOutput(outputPath string, log *observability.Logger) (string, bool, error) {
	if outputPath == "" {
		tmp, err := os.CreateTemp("", "doc2text-*"+outputExt)
		if err != nil {
			return "", false, domain.IOError("cannot create temp output file", err)
		}
		tmp.Close()
		return tmp.Name(), true, nil
	}

	if filepath.Ext(outputPath) != outputExt {
		return "", false, domain.ConfigError(fmt.Sprintf("output file needs a %s extension: %s", outputExt, outputPath), nil)
	}
	if _, err := os.Stat(outputPath); err == nil {
		log.Warn().Str("file", outputPath).Msg("output file already exists, it will be overwritten")
	} else {
		if err := os.WriteFile(outputPath, nil, 0o644); err != nil {
			return "", false, domain.IOError("cannot create output file", err)
		}
	}
	return outputPath, false, nil
}

// convertImage is the direct path for inputs that are already raster
// images: a single OCR invocation whose outcome is the whole result.
func (s *Service) convertImage(ctx context.Context, doc domain.Document, backend ocr.Backend, outputPath string, log *observability.Logger) error {
	res, err := backend.Recognize(ctx, doc.FilePath, outputPath)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return domain.OCRError("OCR backend failed", err)
	}
	if res.ExitCode != 0 {
		return domain.OCRError(fmt.Sprintf("OCR failed: %s", res.Diagnostic()), nil)
	}
	log.Debug().Str("file", doc.FilePath).Msg("recognized image directly")
	return nil
}

// convertPaginated runs the per-page loop for PDF and DjVu inputs.
func (s *Service) convertPaginated(ctx context.Context, doc domain.Document, backend ocr.Backend, outputPath string, req Request, log *observability.Logger) (domain.ConversionStats, error) {
	var stats domain.ConversionStats

	total, err := s.counter.PageCount(ctx, doc)
	if err != nil {
		return stats, err
	}
	doc.TotalPages = total
	log.Info().Int("pages", total).Msg("determined page count")

	selected, err := pages.Expand(req.Pages, total)
	if err != nil {
		return stats, err
	}
	stats.PagesSelected = len(selected)

	rasterizer, err := s.rasterizers(doc.Kind)
	if err != nil {
		return stats, err
	}

	tempDir, err := os.MkdirTemp("", "doc2text-")
	if err != nil {
		return stats, domain.IOError("cannot create temp directory", err)
	}
	defer os.RemoveAll(tempDir)

	var text strings.Builder
	for i, page := range selected {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if backend == nil {
			// resolved before the loop; kept as a guard against future
			// refactors that delay resolution
			return stats, domain.ConfigError("no OCR backend resolved", nil)
		}

		job := domain.PageJob{
			PageNumber: page,
			SourcePath: doc.FilePath,
			RasterPath: filepath.Join(tempDir, fmt.Sprintf("p%04d_%03d%s", page, i+1, rasterizer.ImageExt())),
			TextPath:   filepath.Join(tempDir, fmt.Sprintf("p%04d_%03d.txt", page, i+1)),
		}

		pageText, err := s.processPage(ctx, job, rasterizer, backend)
		removeQuiet(job.RasterPath, log)
		removeQuiet(job.TextPath, log)

		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			// Non-fatal: the page contributes no text, the loop goes on.
			stats.PagesSkipped++
			log.Error().Int("page", page).Err(err).Msg("skipping page")
			s.emit(req, domain.PageEvent{Type: domain.EventPageSkipped, PageNumber: page, Index: i + 1, Total: len(selected), Err: err})
			continue
		}

		text.WriteString(pageText)
		stats.PagesSucceeded++
		log.Debug().Int("page", page).Int("of", len(selected)).Msg("page recognized")
		s.emit(req, domain.PageEvent{Type: domain.EventPageDone, PageNumber: page, Index: i + 1, Total: len(selected)})
	}

	if err := os.WriteFile(outputPath, []byte(text.String()), 0o644); err != nil {
		return stats, domain.IOError("cannot write output file", err)
	}
	return stats, nil
}

// processPage rasterizes one page and recognizes the resulting image. The
// caller owns temp-file cleanup.
func (s *Service) processPage(ctx context.Context, job domain.PageJob, rasterizer raster.Rasterizer, backend ocr.Backend) (string, error) {
	res, err := rasterizer.RasterizePage(ctx, job.SourcePath, job.PageNumber, job.RasterPath)
	if err != nil {
		return "", domain.ConversionError(fmt.Sprintf("page %d could not be rasterized", job.PageNumber), err)
	}
	if res.ExitCode != 0 {
		return "", domain.ConversionError(fmt.Sprintf("page %d could not be rasterized: %s", job.PageNumber, res.Diagnostic()), nil)
	}

	res, err = backend.Recognize(ctx, job.RasterPath, job.TextPath)
	if err != nil {
		return "", domain.OCRError(fmt.Sprintf("page %d could not be recognized", job.PageNumber), err)
	}
	if res.ExitCode != 0 {
		return "", domain.OCRError(fmt.Sprintf("page %d could not be recognized: %s", job.PageNumber, res.Diagnostic()), nil)
	}

	data, err := os.ReadFile(job.TextPath)
	if err != nil {
		return "", domain.IOError(fmt.Sprintf("cannot read recognized text of page %d", job.PageNumber), err)
	}
	return string(data), nil
}

// validateOutput enforces that the conversion produced real text: at least
// one alphanumeric character anywhere in the file. Blank output from tools
// that "succeeded" is still a total conversion failure.
func (s *Service) validateOutput(outputPath string, tempOutput bool, log *observability.Logger) error {
	ok, err := fileContainsAlnum(outputPath)
	if err != nil {
		return domain.IOError("cannot check converted text", err)
	}
	if !ok {
		size := int64(0)
		if info, statErr := os.Stat(outputPath); statErr == nil {
			size = info.Size()
		}
		if tempOutput {
			removeQuiet(outputPath, log)
		}
		return domain.ConversionError(fmt.Sprintf("converted text (%d bytes) does not seem to contain text", size), nil)
	}
	return nil
}

func (s *Service) emit(req Request, ev domain.PageEvent) {
	if req.OnPage != nil {
		req.OnPage(ev)
	}
}

// removeQuiet deletes a file best effort; deletion failures are logged and
// never propagated.
func removeQuiet(path string, log *observability.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Str("file", path).Err(err).Msg("could not remove temp file")
	}
}
