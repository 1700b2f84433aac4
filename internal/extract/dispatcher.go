package extract

import (
	"fmt"

	"poextract/internal/domain"
	"poextract/internal/port"
)

// Dispatcher selects the extraction strategy for a document reference by its
// file extension.
type Dispatcher struct {
	extractors map[domain.FileFormat]port.TextExtractor
}

// NewDispatcher creates a Dispatcher from one extractor per supported format.
func NewDispatcher(pdf, document, tabular, image port.TextExtractor) *Dispatcher {
	return &Dispatcher{
		extractors: map[domain.FileFormat]port.TextExtractor{
			domain.FormatPDF:      pdf,
			domain.FormatDocument: document,
			domain.FormatTabular:  tabular,
			domain.FormatImage:    image,
		},
	}
}

// FormatFor returns the format of ref, judged by the extension of its path
// component. Unknown extensions yield domain.ErrUnsupportedFileType.
func FormatFor(ref string) (domain.FileFormat, error) {
	ext := domain.RefExt(ref)
	format, ok := domain.SupportedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}
	return format, nil
}

// ExtractorFor returns the extractor registered for the format of ref.
func (d *Dispatcher) ExtractorFor(ref string) (port.TextExtractor, error) {
	format, err := FormatFor(ref)
	if err != nil {
		return nil, err
	}
	e, ok := d.extractors[format]
	if !ok || e == nil {
		return nil, fmt.Errorf("%w: no extractor for %s", domain.ErrUnsupportedFileType, format)
	}
	return e, nil
}
