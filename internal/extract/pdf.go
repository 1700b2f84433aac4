package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"poextract/internal/domain"
)

// PDFExtractor reads the text layer of PDF documents.
type PDFExtractor struct {
	wrapWidth int
}

// NewPDFExtractor creates a PDFExtractor that wraps text to wrapWidth columns.
func NewPDFExtractor(wrapWidth int) *PDFExtractor {
	return &PDFExtractor{wrapWidth: wrapWidth}
}

// Extract returns the wrapped page text of the PDF.
func (e *PDFExtractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := e.ExtractPDF(ctx, doc)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text.Wrapped) == "" {
		return "", fmt.Errorf("%w: empty pdf text", domain.ErrNoTextExtracted)
	}
	return text.Wrapped, nil
}

// ExtractPDF concatenates the plain text of all pages and wraps it. For
// documents read from the local filesystem the file on disk is also read
// row by row into the Layout variant.
func (e *PDFExtractor) ExtractPDF(ctx context.Context, doc *domain.Document) (*domain.PDFText, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plain, err := plainText(doc.Data)
	if err != nil {
		log.Warn().Err(err).Str("ref", doc.Ref).Msg("failed to parse pdf")
		return nil, fmt.Errorf("%w: parsing pdf: %w", domain.ErrNoTextExtracted, err)
	}

	result := &domain.PDFText{Wrapped: Wrap(plain, e.wrapWidth)}

	if doc.Origin == domain.OriginLocal {
		layout, err := layoutTextFromPath(doc.Ref)
		if err != nil {
			log.Warn().Err(err).Str("ref", doc.Ref).Msg("row-based pdf extraction failed")
		} else {
			result.Layout = layout
		}
	}

	if len(result.Variants()) == 0 {
		return nil, fmt.Errorf("%w: empty pdf text", domain.ErrNoTextExtracted)
	}
	return result, nil
}

// plainText concatenates the plain text of every page of the PDF in data.
func plainText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			log.Debug().Err(err).Int("page", i).Msg("skipping unreadable pdf page")
			continue
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

// layoutTextFromPath opens the PDF at path and rebuilds its text row by row,
// one line per text row.
func layoutTextFromPath(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			log.Debug().Err(err).Int("page", i).Msg("skipping unreadable pdf page")
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, ""))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
