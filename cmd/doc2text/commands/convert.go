package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scandocs/doc2text/cmd/doc2text/ui"
	"github.com/scandocs/doc2text/internal/config"
	"github.com/scandocs/doc2text/pkg/converter"
)

var (
	convertOutputPath string
	convertPages      string
	convertBackend    string
	convertLanguage   string
	convertDPI        int
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a document to plain text",
	Long: `Convert a PDF, DjVu, or image file to plain text via OCR.

Without --output the converted text is printed to stdout. The --pages flag
selects pages with a comma-separated list of numbers and ranges; a reversed
range like 10-1 processes pages in descending order, and duplicates are
kept, e.g. 1,3,3,2 or 5-2,8.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutputPath, "output", "o", "", "output .txt file (default: print to stdout)")
	convertCmd.Flags().StringVarP(&convertPages, "pages", "p", "", "pages to convert, e.g. 1,3,5-7 (default: all)")
	convertCmd.Flags().StringVarP(&convertBackend, "backend", "b", "", "OCR backend: tesseract, catdoc, or gosseract")
	convertCmd.Flags().StringVarP(&convertLanguage, "language", "l", "", "OCR language, e.g. eng or deu")
	convertCmd.Flags().IntVar(&convertDPI, "dpi", 0, "rasterization resolution")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if convertLanguage != "" {
		cfg.OCR.Language = convertLanguage
	}
	if convertDPI != 0 {
		cfg.Raster.DPI = convertDPI
	}

	ui.Init(noColor, verbose)

	client, err := converter.NewClientWithConfig(cfg)
	if err != nil {
		return err
	}

	inputPath := args[0]
	ui.Info("input: %s", inputPath)
	if convertOutputPath != "" {
		ui.Info("output: %s", convertOutputPath)
	}

	var bar *ui.ProgressBar
	skipped := 0
	onPage := func(ev converter.PageEvent) {
		if bar == nil {
			bar = ui.NewProgressBar(ev.Total, "converting")
		}
		if ev.Type == converter.EventPageSkipped {
			skipped++
			ui.Warning("page %d skipped: %v", ev.PageNumber, ev.Err)
		}
		bar.Set(ev.Index)
	}

	res, err := client.Convert(ctx, converter.Request{
		InputPath:  inputPath,
		OutputPath: convertOutputPath,
		Backend:    convertBackend,
		Pages:      convertPages,
		OnPage:     onPage,
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if skipped > 0 {
		ui.Warning("%d of %d pages could not be converted", skipped, res.Stats.PagesSelected)
	}
	if res.TempOutput {
		fmt.Print(res.Text)
	} else {
		ui.Success("converted %d pages in %s: %s", res.Stats.PagesSucceeded, res.Stats.TotalTime.Round(time.Millisecond), res.OutputPath)
	}
	return nil
}
