package extract_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poextract/internal/domain"
	"poextract/internal/extract"
)

func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.Cell(0, 10, line)
		doc.Ln(12)
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestPDFExtractor_Extract(t *testing.T) {
	data := buildPDF(t, "PO Number: 12345 items shipped")
	doc := &domain.Document{Ref: "https://x.test/po.pdf", Origin: domain.OriginRemote, Data: data}

	text, err := extract.NewPDFExtractor(extract.DefaultWrapWidth).Extract(context.Background(), doc)

	require.NoError(t, err)
	assert.Contains(t, text, "12345")
	assert.Contains(t, text, "PO Number")
}

func TestPDFExtractor_RemoteHasNoLayoutVariant(t *testing.T) {
	data := buildPDF(t, "Invoice No: 55012")
	doc := &domain.Document{Ref: "https://x.test/po.pdf", Origin: domain.OriginRemote, Data: data}

	text, err := extract.NewPDFExtractor(extract.DefaultWrapWidth).ExtractPDF(context.Background(), doc)

	require.NoError(t, err)
	assert.Empty(t, text.Layout)
	assert.Len(t, text.Variants(), 1)
}

func TestPDFExtractor_LocalFileHasLayoutVariant(t *testing.T) {
	data := buildPDF(t, "Order confirmation", "Invoice No: 55012")
	path := filepath.Join(t.TempDir(), "po.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	doc := &domain.Document{Ref: path, Origin: domain.OriginLocal, Data: data}

	text, err := extract.NewPDFExtractor(extract.DefaultWrapWidth).ExtractPDF(context.Background(), doc)

	require.NoError(t, err)
	assert.Contains(t, text.Wrapped, "55012")
	assert.Contains(t, text.Layout, "55012")
	assert.Len(t, text.Variants(), 2)
}

func TestPDFExtractor_NotAPDF(t *testing.T) {
	doc := &domain.Document{Ref: "scan.pdf", Origin: domain.OriginRemote, Data: []byte("this is not a pdf")}

	_, err := extract.NewPDFExtractor(extract.DefaultWrapWidth).ExtractPDF(context.Background(), doc)

	assert.True(t, errors.Is(err, domain.ErrNoTextExtracted))
}

func TestPDFExtractor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := &domain.Document{Ref: "po.pdf", Origin: domain.OriginRemote, Data: buildPDF(t, "12345")}

	_, err := extract.NewPDFExtractor(extract.DefaultWrapWidth).Extract(ctx, doc)

	assert.ErrorIs(t, err, context.Canceled)
}
