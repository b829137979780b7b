package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Shorten(ctx context.Context, longURL string, password *string) (string, error) {
	args := m.Called(ctx, longURL, password)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Stats(ctx context.Context, shortCode string, password *string) (map[string]any, error) {
	args := m.Called(ctx, shortCode, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
