package mocks

import (
	"context"

	"mediashare/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockShareLinkService struct {
	mock.Mock
}

func (m *MockShareLinkService) Create(ctx context.Context, in service.CreateShareLinkInput) (*service.CreateShareLinkResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateShareLinkResult), args.Error(1)
}

func (m *MockShareLinkService) Access(ctx context.Context, id, password string) (*service.AccessResult, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AccessResult), args.Error(1)
}

func (m *MockShareLinkService) Analytics(ctx context.Context, id, password string) (*service.AnalyticsResult, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyticsResult), args.Error(1)
}

func (m *MockShareLinkService) ListByMedia(ctx context.Context, mediaID string, opts service.ListShareLinksOptions) (*service.ShareLinkListResult, error) {
	args := m.Called(ctx, mediaID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShareLinkListResult), args.Error(1)
}
