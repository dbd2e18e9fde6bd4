// Package extract turns uploaded PDF and plain-text documents into text.
package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"mcqgen/internal/domain"
	"mcqgen/internal/logger"

	"github.com/tmc/langchaingo/documentloaders"
	"go.uber.org/zap"
)

// Extractor reads PDF and plain-text uploads with langchaingo's document loaders.
type Extractor struct {
	maxBytes int64
}

// NewExtractor returns an Extractor. A maxBytes of 0 disables the size check.
func NewExtractor(maxBytes int64) *Extractor {
	return &Extractor{maxBytes: maxBytes}
}

// Extract implements domain.TextExtractor.
func (e *Extractor) Extract(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	if err := checkSize(doc, e.maxBytes); err != nil {
		return "", err
	}

	switch doc.Kind() {
	case domain.DocumentKindPDF:
		return e.extractPDF(ctx, doc)
	case domain.DocumentKindText:
		return e.extractText(ctx, doc)
	default:
		return "", domain.NewUnsupportedFormatError(doc.Filename)
	}
}

// extractPDF concatenates the text of every page in order. Any failure, including
// a panic in the PDF reader on a malformed file, discards the partial text.
func (e *Extractor) extractPDF(ctx context.Context, doc domain.UploadedDocument) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("PDF reader panicked", zap.String("filename", doc.Filename), zap.Any("panic", r))
			text, err = "", domain.NewPDFReadError(fmt.Errorf("malformed PDF: %v", r))
		}
	}()

	pages, err := documentloaders.NewPDF(doc.Body, doc.Size).Load(ctx)
	if err != nil {
		logger.Get().Warn("Failed to read PDF", zap.String("filename", doc.Filename), zap.Error(err))
		return "", domain.NewPDFReadError(err)
	}

	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page.PageContent)
	}
	logger.Get().Debug("Extracted PDF text",
		zap.String("filename", doc.Filename),
		zap.Int("pages", len(pages)),
		zap.Int("chars", b.Len()))
	return b.String(), nil
}

func (e *Extractor) extractText(ctx context.Context, doc domain.UploadedDocument) (string, error) {
	docs, err := documentloaders.NewText(doc.Body).Load(ctx)
	if err != nil {
		return "", domain.NewInternalError("failed to read the text file", err)
	}

	var b strings.Builder
	for _, d := range docs {
		b.WriteString(d.PageContent)
	}
	text := b.String()
	if !utf8.ValidString(text) {
		return "", domain.NewTextDecodeError(nil)
	}
	return text, nil
}

// checkSize rejects uploads over maxBytes. A maxBytes of 0 disables it.
func checkSize(doc domain.UploadedDocument, maxBytes int64) error {
	if maxBytes > 0 && doc.Size > maxBytes {
		return domain.NewInvalidInputError(fmt.Sprintf("file is too large: %d bytes, limit is %d", doc.Size, maxBytes))
	}
	return nil
}

var _ domain.TextExtractor = (*Extractor)(nil)
