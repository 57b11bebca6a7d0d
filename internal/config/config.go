// Package config provides unified configuration loading for doc2text.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/scandocs/doc2text/internal/domain"
)

// Config holds all configuration for the conversion pipeline.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	OCR    OCRConfig    `yaml:"ocr"`
	Raster RasterConfig `yaml:"raster"`
	Tools  ToolsConfig  `yaml:"tools"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// OCRConfig holds OCR backend settings.
type OCRConfig struct {
	Backend  string `yaml:"backend"` // tesseract, catdoc, or gosseract
	Language string `yaml:"language"`
	PSM      int    `yaml:"psm"`
}

// RasterConfig holds page rasterization settings.
type RasterConfig struct {
	DPI      int  `yaml:"dpi"`
	Embedded bool `yaml:"embedded"` // render in process instead of spawning tools
}

// ToolsConfig overrides the names of the external binaries the pipeline
// shells out to. Empty fields keep the stock names.
type ToolsConfig struct {
	Mdls        string `yaml:"mdls"`
	Pdfinfo     string `yaml:"pdfinfo"`
	Djvused     string `yaml:"djvused"`
	Ghostscript string `yaml:"ghostscript"`
	Ddjvu       string `yaml:"ddjvu"`
	Tesseract   string `yaml:"tesseract"`
	Catdoc      string `yaml:"catdoc"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path loads defaults plus the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.ConfigError(fmt.Sprintf("read config file: %s", path), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, domain.ConfigError(fmt.Sprintf("parse config file: %s", path), err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		OCR: OCRConfig{
			Backend: "tesseract",
			PSM:     12,
		},
		Raster: RasterConfig{
			DPI: 300,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return domain.ConfigError(fmt.Sprintf("invalid log format: %s", c.Log.Format), nil)
	}

	switch c.OCR.Backend {
	case "tesseract", "catdoc", "gosseract":
	default:
		return domain.ConfigError(fmt.Sprintf("invalid OCR backend: %s", c.OCR.Backend), nil)
	}

	if c.OCR.PSM < 0 || c.OCR.PSM > 13 {
		return domain.ConfigError(fmt.Sprintf("psm must be between 0 and 13, got %d", c.OCR.PSM), nil)
	}

	if c.Raster.DPI < 50 || c.Raster.DPI > 1200 {
		return domain.ConfigError(fmt.Sprintf("dpi must be between 50 and 1200, got %d", c.Raster.DPI), nil)
	}

	return nil
}

// applyEnvOverrides applies DOC2TEXT_* environment overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOC2TEXT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("DOC2TEXT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("DOC2TEXT_OCR_BACKEND"); v != "" {
		cfg.OCR.Backend = v
	}

	if v := os.Getenv("DOC2TEXT_OCR_LANGUAGE"); v != "" {
		cfg.OCR.Language = v
	}

	if v := os.Getenv("DOC2TEXT_OCR_PSM"); v != "" {
		if psm, err := strconv.Atoi(v); err == nil {
			cfg.OCR.PSM = psm
		}
	}

	if v := os.Getenv("DOC2TEXT_RASTER_DPI"); v != "" {
		if dpi, err := strconv.Atoi(v); err == nil {
			cfg.Raster.DPI = dpi
		}
	}

	if v := os.Getenv("DOC2TEXT_RASTER_EMBEDDED"); v == "true" {
		cfg.Raster.Embedded = true
	}

	if v := os.Getenv("DOC2TEXT_TESSERACT_BIN"); v != "" {
		cfg.Tools.Tesseract = v
	}

	if v := os.Getenv("DOC2TEXT_GHOSTSCRIPT_BIN"); v != "" {
		cfg.Tools.Ghostscript = v
	}

	if v := os.Getenv("DOC2TEXT_PDFINFO_BIN"); v != "" {
		cfg.Tools.Pdfinfo = v
	}
}
