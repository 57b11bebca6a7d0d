package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scandocs/doc2text/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "tesseract", cfg.OCR.Backend)
	assert.Equal(t, 12, cfg.OCR.PSM)
	assert.Equal(t, 300, cfg.Raster.DPI)
	assert.False(t, cfg.Raster.Embedded)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc2text.yaml")
	content := `
log:
  level: debug
  format: json
ocr:
  backend: catdoc
  language: deu
raster:
  dpi: 150
tools:
  pdfinfo: /opt/poppler/bin/pdfinfo
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "catdoc", cfg.OCR.Backend)
	assert.Equal(t, "deu", cfg.OCR.Language)
	// Unset fields keep their defaults.
	assert.Equal(t, 12, cfg.OCR.PSM)
	assert.Equal(t, 150, cfg.Raster.DPI)
	assert.Equal(t, "/opt/poppler/bin/pdfinfo", cfg.Tools.Pdfinfo)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc2text.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ocr:\n  backend: catdoc\n"), 0o644))

	t.Setenv("DOC2TEXT_OCR_BACKEND", "gosseract")
	t.Setenv("DOC2TEXT_RASTER_DPI", "600")
	t.Setenv("DOC2TEXT_RASTER_EMBEDDED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gosseract", cfg.OCR.Backend)
	assert.Equal(t, 600, cfg.Raster.DPI)
	assert.True(t, cfg.Raster.Embedded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"bad backend", func(c *Config) { c.OCR.Backend = "abbyy" }, true},
		{"psm out of range", func(c *Config) { c.OCR.PSM = 14 }, true},
		{"dpi too low", func(c *Config) { c.Raster.DPI = 10 }, true},
		{"gosseract is accepted", func(c *Config) { c.OCR.Backend = "gosseract" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsType(err, domain.ErrorTypeConfig))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
