package docfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scandocs/doc2text/internal/domain"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// Minimal headers sufficient for content sniffing.
var (
	pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
	// DjVu files are IFF85 containers: AT&TFORM <len> DJVM/DJVU.
	djvuHeader = []byte("AT&TFORM\x00\x00\x00\x10DJVMDIRM\x00\x00\x00\x00")
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

func TestDetect_Kinds(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want domain.Kind
	}{
		{"plain text", "notes.txt", []byte("just some readable text\n"), domain.KindPlainText},
		{"pdf", "scan.pdf", pdfHeader, domain.KindPDF},
		{"djvu", "scan.djvu", djvuHeader, domain.KindDjvu},
		{"png image", "page.png", pngHeader, domain.KindImage},
		{"binary garbage", "blob.bin", []byte{0x00, 0x01, 0x02, 0x03, 0xff}, domain.KindUnsupported},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.file, tt.data)
			doc, err := d.Detect(path)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if doc.Kind != tt.want {
				t.Errorf("Detect() kind = %q (mime %q), want %q", doc.Kind, doc.MimeType, tt.want)
			}
			if doc.FilePath != path {
				t.Errorf("Detect() path = %q, want %q", doc.FilePath, path)
			}
		})
	}
}

func TestDetect_MissingFile(t *testing.T) {
	d := NewDetector()
	_, err := d.Detect(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	if err == nil {
		t.Fatal("Detect() error = nil, want io error")
	}
	if !domain.IsType(err, domain.ErrorTypeIO) {
		t.Errorf("Detect() error type = %v, want io", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		mime string
		want domain.Kind
	}{
		{"text/plain; charset=utf-8", domain.KindPlainText},
		{"application/pdf", domain.KindPDF},
		{"image/vnd.djvu", domain.KindDjvu},
		{"image/png", domain.KindImage},
		{"image/tiff", domain.KindImage},
		{"application/zip", domain.KindUnsupported},
		{"application/octet-stream", domain.KindUnsupported},
	}
	for _, tt := range tests {
		if got := kindOf(tt.mime); got != tt.want {
			t.Errorf("kindOf(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
