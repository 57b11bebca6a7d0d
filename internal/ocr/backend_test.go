package ocr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scandocs/doc2text/internal/domain"
	"github.com/scandocs/doc2text/internal/shell"
)

func TestRegistry_Resolve(t *testing.T) {
	runner := shell.NewRunner()
	reg := NewRegistry(
		NewTesseract(runner, TesseractConfig{}),
		NewCatdoc(runner, ""),
	)

	b, err := reg.Resolve("tesseract")
	if err != nil {
		t.Fatalf("Resolve(tesseract) error = %v", err)
	}
	if b.Name() != "tesseract" {
		t.Errorf("Name() = %q, want tesseract", b.Name())
	}

	if got := reg.Names(); len(got) != 2 || got[0] != "catdoc" || got[1] != "tesseract" {
		t.Errorf("Names() = %v, want [catdoc tesseract]", got)
	}
}

func TestRegistry_UnknownBackendIsConfigError(t *testing.T) {
	reg := NewRegistry(NewTesseract(shell.NewRunner(), TesseractConfig{}))

	_, err := reg.Resolve("totally-made-up")
	if err == nil {
		t.Fatal("Resolve() error = nil, want config error")
	}
	if !domain.IsType(err, domain.ErrorTypeConfig) {
		t.Errorf("Resolve() error type = %v, want config", err)
	}
	if !strings.Contains(err.Error(), "totally-made-up") {
		t.Errorf("Resolve() error = %v, want it to name the backend", err)
	}
}

// Tesseract's contract is: run the binary with the image, capture stdout
// into the text file. Exercise it with a stand-in binary.
func TestTesseract_WritesStdoutToTextFile(t *testing.T) {
	if !shell.CommandExists("sh") {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "fake-tesseract")
	script := "#!/bin/sh\necho \"recognized $1 psm=$4\"\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	backend := NewTesseract(shell.NewRunner(), TesseractConfig{Bin: fake})
	textPath := filepath.Join(dir, "page.txt")

	res, err := backend.Recognize(context.Background(), "/tmp/page.png", textPath)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("ExitCode = %d, want 0", res.ExitCode)
	}

	data, err := os.ReadFile(textPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := strings.TrimSpace(string(data))
	if got != "recognized /tmp/page.png psm=12" {
		t.Errorf("text file = %q, want default psm 12 invocation on the image", got)
	}
}

func TestTesseract_LanguageFlag(t *testing.T) {
	if !shell.CommandExists("sh") {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "fake-tesseract")
	script := "#!/bin/sh\necho \"$@\"\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	backend := NewTesseract(shell.NewRunner(), TesseractConfig{Bin: fake, Language: "deu", PSM: 3})
	textPath := filepath.Join(dir, "page.txt")

	if _, err := backend.Recognize(context.Background(), "in.png", textPath); err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	data, _ := os.ReadFile(textPath)
	got := string(data)
	for _, want := range []string{"in.png", "stdout", "--psm 3", "-l deu"} {
		if !strings.Contains(got, want) {
			t.Errorf("tesseract args = %q, missing %q", got, want)
		}
	}
}

func TestCatdoc_FailureKeepsDiagnostics(t *testing.T) {
	if !shell.CommandExists("sh") {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "fake-catdoc")
	script := "#!/bin/sh\necho \"no such file\" >&2\nexit 1\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	backend := NewCatdoc(shell.NewRunner(), fake)
	res, err := backend.Recognize(context.Background(), "missing.doc", filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("Recognize() error = %v, want failure via ExitCode", err)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "no such file") {
		t.Errorf("Stderr = %q, want diagnostic preserved", res.Stderr)
	}
}
