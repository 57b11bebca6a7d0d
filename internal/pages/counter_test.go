package pages

import (
	"context"
	"testing"

	"github.com/scandocs/doc2text/internal/domain"
	"github.com/scandocs/doc2text/internal/observability"
	"github.com/scandocs/doc2text/internal/shell"
)

func TestParsePdfinfoPages(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{
			name: "typical output",
			out: "Title:          Annual Report\n" +
				"Producer:       pdfTeX\n" +
				"Pages:          17\n" +
				"Encrypted:      no\n",
			want: 17,
		},
		{
			name: "pages on first line",
			out:  "Pages:          1\n",
			want: 1,
		},
		{
			name:    "field missing",
			out:     "Title: whatever\nEncrypted: no\n",
			wantErr: true,
		},
		{
			name:    "field only mid-line does not match",
			out:     "Notes: Pages:  3 appear in the title\n",
			wantErr: true,
		},
		{
			name:    "empty output",
			out:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePdfinfoPages(tt.out)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parsePdfinfoPages() = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePdfinfoPages() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parsePdfinfoPages() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPageCount_RejectsUnpaginatedKinds(t *testing.T) {
	c := NewCounter(shell.NewRunner(), DefaultCounterTools(), observability.Nop())

	for _, kind := range []domain.Kind{domain.KindPlainText, domain.KindImage, domain.KindUnsupported} {
		_, err := c.PageCount(context.Background(), domain.Document{FilePath: "x", Kind: kind})
		if err == nil {
			t.Errorf("PageCount(kind=%q) error = nil, want validation error", kind)
		}
	}
}

func TestPageCount_DjvuToolFailure(t *testing.T) {
	// Point the djvused binary at something that exits nonzero so the error
	// path carries the tool diagnostics.
	if !shell.CommandExists("false") {
		t.Skip("false not available")
	}
	tools := DefaultCounterTools()
	tools.Djvused = "false"

	c := NewCounter(shell.NewRunner(), tools, observability.Nop())
	_, err := c.PageCount(context.Background(), domain.Document{FilePath: "x.djvu", Kind: domain.KindDjvu})
	if err == nil {
		t.Fatal("PageCount() error = nil, want pagecount error")
	}
	if !domain.IsType(err, domain.ErrorTypePageCount) {
		t.Errorf("PageCount() error type = %v, want pagecount", err)
	}
}
