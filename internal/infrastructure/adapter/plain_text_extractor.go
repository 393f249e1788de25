package adapter

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

// Extraction failures. Both also match model.ErrValidation.
var (
	ErrUnsupportedFormat  = errors.New("unsupported document format")
	ErrUnreadableDocument = errors.New("unreadable document")
)

// minReadableChars is the least non-space text a document must yield.
const minReadableChars = 20

// PlainTextExtractor implements port.DocumentTextExtractor for text/plain
// uploads. Scanned documents need an OCR-backed extractor.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract returns the document body as text.
func (e *PlainTextExtractor) Extract(_ context.Context, doc model.Document) (string, error) {
	if !isPlainText(doc) {
		return "", fmt.Errorf("%w: %w", ErrUnsupportedFormat,
			model.NewValidationError("content_type", "%q (%s) is not text/plain", doc.ContentType, doc.Filename))
	}
	if !utf8.Valid(doc.Content) {
		return "", fmt.Errorf("%w: %w", ErrUnreadableDocument,
			model.NewValidationError("document", "%s is not valid UTF-8 text", doc.Filename))
	}

	text := string(doc.Content)
	if n := visibleChars(text); n < minReadableChars {
		return "", fmt.Errorf("%w: %w", ErrUnreadableDocument,
			model.NewValidationError("document", "%s yielded %d readable characters, need %d", doc.Filename, n, minReadableChars))
	}
	return text, nil
}

func isPlainText(doc model.Document) bool {
	if doc.ContentType == "" {
		return strings.EqualFold(filepath.Ext(doc.Filename), ".txt")
	}
	mediaType, _, err := mime.ParseMediaType(doc.ContentType)
	return err == nil && mediaType == "text/plain"
}

func visibleChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
