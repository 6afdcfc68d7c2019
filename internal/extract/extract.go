// Package extract turns uploaded documents into plain text.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"resumescore/internal/errors"

	pkgerrors "github.com/pkg/errors"
)

// DefaultMaxSize is the upload size cap when none is configured.
const DefaultMaxSize int64 = 16 << 20

// Extensions accepted for upload, lower-case with the leading dot.
var Extensions = []string{".pdf", ".docx", ".txt", ".html", ".htm"}

// Extractor dispatches on file extension.
type Extractor struct {
	logger  *errors.Logger
	maxSize int64
}

// New creates an extractor. A non-positive maxSize means DefaultMaxSize.
func New(logger *errors.Logger, maxSize int64) *Extractor {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Extractor{logger: logger, maxSize: maxSize}
}

// MaxSize is the upload cap this extractor enforces.
func (e *Extractor) MaxSize() int64 {
	return e.maxSize
}

// Extract validates the upload and returns its text. A document that yields
// no text is rejected as invalid input.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (string, error) {
	if err := ValidateUpload(name, int64(len(data)), e.maxSize); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data, e.maxSize)
	case ".txt":
		text, err = extractText(data)
	case ".html", ".htm":
		text, err = extractHTML(data)
	}
	if pkgerrors.Is(err, errDocumentTooLarge) {
		return "", errors.NewInvalidInputError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("%s expands beyond the %d byte limit", filepath.Base(name), e.maxSize), err).
			WithContext("file", name)
	}
	if err != nil {
		e.logger.LogError(err, "Text extraction failed", "file", name)
		return "", errors.NewInvalidInputError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Could not read %s", filepath.Base(name)), err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.NewInvalidInputError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Could not extract text from %s", filepath.Base(name)), nil)
	}
	e.logger.Debug("Extracted document text", "file", name, "bytes", len(data), "chars", len(text))
	return text, nil
}

// ValidateUpload checks the extension allow-list and the size bounds.
func ValidateUpload(name string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(Extensions, ext) {
		return errors.NewInvalidInputError(errors.ErrCodeUnsupportedFile,
			fmt.Sprintf("Unsupported file type %q; allowed: %s", ext, strings.Join(Extensions, ", ")), nil).
			WithContext("file", name)
	}
	if size == 0 {
		return errors.NewInvalidInputError(errors.ErrCodeEmptyFile, "File is empty", nil).
			WithContext("file", name)
	}
	if size > maxSize {
		return errors.NewInvalidInputError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("File exceeds the %d byte limit", maxSize), nil).
			WithContext("file", name).
			WithContext("size", size)
	}
	return nil
}
