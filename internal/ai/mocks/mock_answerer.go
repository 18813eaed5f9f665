package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, question, documentText string) (string, error) {
	args := m.Called(ctx, question, documentText)
	return args.String(0), args.Error(1)
}
