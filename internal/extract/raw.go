package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"poextract/internal/csvexport"
	"poextract/internal/domain"
)

// RawExtractor returns delimited-text documents exactly as stored. Excel
// workbooks (.xlsx) are zip containers and are rendered sheet by sheet as CSV.
type RawExtractor struct{}

// NewRawExtractor creates a RawExtractor.
func NewRawExtractor() *RawExtractor {
	return &RawExtractor{}
}

func (e *RawExtractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrNoTextExtracted)
	}

	if doc.Ext() == ".xlsx" && bytes.HasPrefix(doc.Data, zipMagic) {
		text, err := workbookText(doc.Data)
		if err != nil {
			log.Warn().Err(err).Str("ref", doc.Ref).Msg("failed to read workbook")
			return "", fmt.Errorf("%w: %w", domain.ErrNoTextExtracted, err)
		}
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("%w: empty workbook", domain.ErrNoTextExtracted)
		}
		return text, nil
	}

	if !utf8.Valid(doc.Data) {
		log.Warn().Str("ref", doc.Ref).Msg("document is not valid utf-8")
		return "", fmt.Errorf("%w: invalid utf-8", domain.ErrNoTextExtracted)
	}
	return string(doc.Data), nil
}

func workbookText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		if err := w.WriteSheet(rows); err != nil {
			return "", fmt.Errorf("rendering sheet %q: %w", sheet, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
