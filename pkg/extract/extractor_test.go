package extract

import (
	"strings"
	"testing"
)

func TestPlainTextExtract(t *testing.T) {
	e := NewPlainTextExtractor()

	tests := []struct {
		name       string
		filename   string
		data       []byte
		want       string
		wantErr    bool
		wantReason string
	}{
		{
			name:     "txt file",
			filename: "notes.txt",
			data:     []byte("hello world"),
			want:     "hello world",
		},
		{
			name:     "markdown file",
			filename: "README.md",
			data:     []byte("# Title"),
			want:     "# Title",
		},
		{
			name:     "extensionless file",
			filename: "Makefile",
			data:     []byte("all: build"),
			want:     "all: build",
		},
		{
			name:     "uppercase extension",
			filename: "DATA.CSV",
			data:     []byte("a,b,c"),
			want:     "a,b,c",
		},
		{
			name:       "unsupported extension",
			filename:   "report.pdf",
			data:       []byte("%PDF-1.4"),
			wantErr:    true,
			wantReason: "unsupported file type",
		},
		{
			name:       "empty file",
			filename:   "empty.txt",
			data:       []byte{},
			wantErr:    true,
			wantReason: "file is empty",
		},
		{
			name:       "whitespace only",
			filename:   "blank.txt",
			data:       []byte("  \n\t  "),
			wantErr:    true,
			wantReason: "no readable text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(tt.filename, tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Extract(%q) succeeded, want error", tt.filename)
				}
				if !strings.Contains(err.Error(), tt.wantReason) {
					t.Errorf("error %q does not mention %q", err, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract(%q) error = %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestPlainTextExtractReplacesInvalidUTF8(t *testing.T) {
	e := NewPlainTextExtractor()

	got, err := e.Extract("weird.txt", []byte{'o', 'k', 0xff, 0xfe, '!'})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.HasPrefix(got, "ok") || !strings.HasSuffix(got, "!") {
		t.Errorf("Extract() = %q, expected valid text around replaced bytes", got)
	}
	if strings.ContainsRune(got, 0xff) {
		t.Error("invalid byte survived extraction")
	}
}
