package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"poextract/internal/domain"
	"poextract/internal/matcher"
	"poextract/internal/port"
)

// ExtractionService defines the document text and PO number extraction contract.
type ExtractionService interface {
	ExtractPO(ctx context.Context, ref string) (*domain.POResult, error)
	ExtractText(ctx context.Context, ref string) (string, error)
}

type extractionService struct {
	fetcher  port.SourceFetcher
	pdf      port.PDFExtractor
	registry port.ExtractorRegistry
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	fetcher port.SourceFetcher,
	pdf port.PDFExtractor,
	registry port.ExtractorRegistry,
) ExtractionService {
	return &extractionService{
		fetcher:  fetcher,
		pdf:      pdf,
		registry: registry,
	}
}

// ExtractPO reads ref as a PDF regardless of its extension and searches every
// text variant, in order, for a PO number. A nil InvoiceNo in the result
// means text was extracted but held no number.
func (s *extractionService) ExtractPO(ctx context.Context, ref string) (*domain.POResult, error) {
	doc, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoTextExtracted, err)
	}

	text, err := s.pdf.ExtractPDF(ctx, doc)
	if err != nil {
		return nil, wrapNoText(err)
	}

	variants := text.Variants()
	m, ok := matcher.FindFirst(variants...)
	if !ok {
		log.Info().Str("ref", ref).Int("variants", len(variants)).Msg("no po number found")
		return &domain.POResult{}, nil
	}

	log.Info().Str("ref", ref).Str("po_number", m.Number).Bool("labeled", m.Labeled).Msg("po number found")
	number := m.Number
	return &domain.POResult{InvoiceNo: &number, Match: m}, nil
}

// ExtractText reads ref with the strategy chosen by its extension.
func (s *extractionService) ExtractText(ctx context.Context, ref string) (string, error) {
	extractor, err := s.registry.ExtractorFor(ref)
	if err != nil {
		log.Warn().Str("ref", ref).Msg("unsupported file type")
		return "", err
	}

	doc, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNoTextExtracted, err)
	}

	text, err := extractor.Extract(ctx, doc)
	if err != nil {
		return "", wrapNoText(err)
	}
	if text == "" {
		return "", domain.ErrNoTextExtracted
	}
	return text, nil
}

// wrapNoText marks an extraction failure as ErrNoTextExtracted unless it
// already is one or the request was canceled.
func wrapNoText(err error) error {
	if errors.Is(err, domain.ErrNoTextExtracted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrNoTextExtracted, err)
}
