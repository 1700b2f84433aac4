package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poextract/internal/config"
	"poextract/internal/domain"
	"poextract/internal/extract"
	"poextract/internal/service"
	"poextract/internal/source"
)

// newFlowService wires the real fetcher and extractors. OCR is never reached
// by these tests.
func newFlowService() service.ExtractionService {
	fetcher := source.NewFetcher(&config.FetchConfig{Timeout: 5 * time.Second, UserAgent: "poextract-test"}, nil)
	pdf := extract.NewPDFExtractor(extract.DefaultWrapWidth)
	dispatcher := extract.NewDispatcher(
		pdf,
		extract.NewDocumentExtractor(extract.DefaultWrapWidth),
		extract.NewRawExtractor(),
		extract.NewOCREngine(config.OCRConfig{}),
	)
	return service.NewExtractionService(fetcher, pdf, dispatcher)
}

func pdfFixture(t *testing.T, line string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 10, line)
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestFlow_ExtractPO_RemotePDF(t *testing.T) {
	data := pdfFixture(t, "PO Number: 12345 items shipped")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	result, err := newFlowService().ExtractPO(context.Background(), srv.URL+"/po.pdf")

	require.NoError(t, err)
	require.True(t, result.Found())
	assert.Equal(t, "12345", *result.InvoiceNo)
}

func TestFlow_ExtractPO_LocalPDFWithoutNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.pdf")
	require.NoError(t, os.WriteFile(path, pdfFixture(t, "Thank you for your order"), 0o600))

	result, err := newFlowService().ExtractPO(context.Background(), path)

	require.NoError(t, err)
	assert.False(t, result.Found())
}

func TestFlow_ExtractPO_MissingFile(t *testing.T) {
	_, err := newFlowService().ExtractPO(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))

	assert.True(t, errors.Is(err, domain.ErrNoTextExtracted))
	assert.True(t, errors.Is(err, domain.ErrSourceNotFound))
}

func TestFlow_ExtractText_LocalCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("po,qty\n48213,2\n"), 0o600))

	text, err := newFlowService().ExtractText(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "po,qty\n48213,2\n", text)
}

func TestFlow_ExtractText_UnsupportedExtension(t *testing.T) {
	_, err := newFlowService().ExtractText(context.Background(), "notes.txt")

	assert.True(t, errors.Is(err, domain.ErrUnsupportedFileType))
}

func TestFlow_ExtractText_ObjectStorageWithoutClient(t *testing.T) {
	_, err := newFlowService().ExtractText(context.Background(), "s3://bucket/orders.csv")

	assert.True(t, errors.Is(err, domain.ErrNoTextExtracted))
	assert.True(t, errors.Is(err, domain.ErrObjectStorage))
}
