package mocks

import (
	"github.com/stretchr/testify/mock"

	"poextract/internal/port"
)

// MockExtractorRegistry is a mock implementation of port.ExtractorRegistry.
type MockExtractorRegistry struct {
	mock.Mock
}

func (m *MockExtractorRegistry) ExtractorFor(ref string) (port.TextExtractor, error) {
	args := m.Called(ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.TextExtractor), args.Error(1)
}
