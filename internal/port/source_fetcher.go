package port

import (
	"context"

	"poextract/internal/domain"
)

// SourceFetcher resolves a path-or-URL reference to the document's raw bytes.
type SourceFetcher interface {
	Fetch(ctx context.Context, ref string) (*domain.Document, error)
}
