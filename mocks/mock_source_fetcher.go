package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"poextract/internal/domain"
)

// MockSourceFetcher is a mock implementation of port.SourceFetcher.
type MockSourceFetcher struct {
	mock.Mock
}

func (m *MockSourceFetcher) Fetch(ctx context.Context, ref string) (*domain.Document, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
