package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte, filename, declaredType string) (string, error) {
	args := m.Called(ctx, data, filename, declaredType)
	return args.String(0), args.Error(1)
}
