package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "doc2text",
	Version: "0.1.0",
	Short:   "Convert scanned documents to plain text",
	Long: `
doc2text turns scanned documents into plain text. PDF and DjVu files
are rasterized page by page and run through an OCR engine; images are
recognized directly; plain-text inputs pass through unchanged.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
