package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"poextract/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

// MockPDFExtractor is a mock implementation of port.PDFExtractor.
type MockPDFExtractor struct {
	mock.Mock
}

func (m *MockPDFExtractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockPDFExtractor) ExtractPDF(ctx context.Context, doc *domain.Document) (*domain.PDFText, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PDFText), args.Error(1)
}
