package domain

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// DocumentKind is the declared type of an uploaded document.
type DocumentKind string

const (
	DocumentKindUnknown DocumentKind = ""
	DocumentKindPDF     DocumentKind = "pdf"
	DocumentKindText    DocumentKind = "text"
)

// DocumentSource is the byte stream of an upload. PDF parsing needs random access.
type DocumentSource interface {
	io.Reader
	io.ReaderAt
}

// UploadedDocument is created per submission and consumed once by the extractor.
type UploadedDocument struct {
	Filename    string
	ContentType string
	Size        int64
	Body        DocumentSource
}

// Kind derives the document kind from the file extension.
func (d UploadedDocument) Kind() DocumentKind {
	return KindFromFilename(d.Filename)
}

// KindFromFilename maps ".pdf" and ".txt" (any case) to a DocumentKind.
func KindFromFilename(name string) DocumentKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return DocumentKindPDF
	case ".txt":
		return DocumentKindText
	default:
		return DocumentKindUnknown
	}
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc UploadedDocument) (string, error)
}
