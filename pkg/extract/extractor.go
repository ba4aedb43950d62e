package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ExtractionError reports an unreadable or unsupported upload. It is a user
// error: surfaced immediately, never retried.
type ExtractionError struct {
	Filename string
	Reason   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract text from %q: %s", e.Filename, e.Reason)
}

// Extractor turns raw upload bytes into plain text. Format-specific parsers
// (PDF, DOCX) plug in behind this interface; this package only ships the
// plain-text implementation.
type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

// PlainTextExtractor handles text-like uploads (.txt, .md, .csv and
// extensionless files). Bytes must decode as UTF-8; invalid sequences are
// replaced rather than rejected, matching lenient decoding in earlier
// versions of the product.
type PlainTextExtractor struct{}

var _ Extractor = &PlainTextExtractor{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

var textExtensions = map[string]bool{
	"":     true,
	".txt": true,
	".md":  true,
	".csv": true,
	".log": true,
}

func (e *PlainTextExtractor) Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !textExtensions[ext] {
		return "", &ExtractionError{Filename: filename, Reason: fmt.Sprintf("unsupported file type %q", ext)}
	}
	if len(data) == 0 {
		return "", &ExtractionError{Filename: filename, Reason: "file is empty"}
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Filename: filename, Reason: "no readable text"}
	}
	return text, nil
}
