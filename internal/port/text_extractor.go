package port

import (
	"context"

	"poextract/internal/domain"
)

// TextExtractor converts the raw bytes of one document format into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// PDFExtractor produces every text variant available for a PDF document.
type PDFExtractor interface {
	TextExtractor
	ExtractPDF(ctx context.Context, doc *domain.Document) (*domain.PDFText, error)
}

// ExtractorRegistry resolves the extractor for a document reference.
type ExtractorRegistry interface {
	ExtractorFor(ref string) (TextExtractor, error)
}
