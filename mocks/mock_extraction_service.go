package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"poextract/internal/domain"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ExtractPO(ctx context.Context, ref string) (*domain.POResult, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POResult), args.Error(1)
}

func (m *MockExtractionService) ExtractText(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
