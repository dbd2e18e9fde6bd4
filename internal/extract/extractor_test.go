package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"mcqgen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upload(name string, data []byte) domain.UploadedDocument {
	return domain.UploadedDocument{
		Filename: name,
		Size:     int64(len(data)),
		Body:     bytes.NewReader(data),
	}
}

// buildPDF writes a minimal PDF with one Helvetica text line per page.
func buildPDF(pages ...string) []byte {
	fontID := 3 + 2*len(pages)
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))

	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractor_PDFPagesInOrder(t *testing.T) {
	e := NewExtractor(0)
	ctx := context.Background()

	first, err := e.Extract(ctx, upload("first.pdf", buildPDF("Photosynthesis happens in leaves")))
	require.NoError(t, err)
	second, err := e.Extract(ctx, upload("second.pdf", buildPDF("Chlorophyll absorbs light")))
	require.NoError(t, err)
	require.Contains(t, first, "Photosynthesis happens in leaves")
	require.Contains(t, second, "Chlorophyll absorbs light")

	text, err := e.Extract(ctx, upload("notes.PDF", buildPDF("Photosynthesis happens in leaves", "Chlorophyll absorbs light")))
	require.NoError(t, err)
	assert.Equal(t, first+second, text)
	assert.Less(t, strings.Index(text, "Photosynthesis"), strings.Index(text, "Chlorophyll"))
}

func TestExtractor_PlainTextVerbatim(t *testing.T) {
	content := "Photosynthesis converts light into chemical energy.\n\tÉnergie → glucose ✓\n"
	text, err := NewExtractor(0).Extract(context.Background(), upload("notes.txt", []byte(content)))
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestExtractor_ExtensionIsCaseInsensitive(t *testing.T) {
	text, err := NewExtractor(0).Extract(context.Background(), upload("NOTES.TXT", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtractor_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"notes.docx", "notes", "notes.txt.zip", "slides.pptx"} {
		t.Run(name, func(t *testing.T) {
			_, err := NewExtractor(0).Extract(context.Background(), upload(name, []byte("data")))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
		})
	}
}

func TestExtractor_InvalidUTF8(t *testing.T) {
	_, err := NewExtractor(0).Extract(context.Background(), upload("notes.txt", []byte{0xff, 0xfe, 'a'}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTextDecode))
}

func TestExtractor_BrokenPDF(t *testing.T) {
	tests := map[string][]byte{
		"not a pdf":       []byte("this is plain text pretending to be a pdf"),
		"truncated pdf":   []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog"),
		"empty pdf bytes": {},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			text, err := NewExtractor(0).Extract(context.Background(), upload("paper.pdf", data))
			require.Error(t, err)
			assert.Empty(t, text)
			assert.True(t, errors.Is(err, domain.ErrPDFRead))
		})
	}
}

func TestExtractor_TooLarge(t *testing.T) {
	_, err := NewExtractor(4).Extract(context.Background(), upload("notes.txt", []byte("hello")))
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}
