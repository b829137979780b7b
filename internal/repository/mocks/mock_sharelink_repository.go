package mocks

import (
	"context"
	"time"

	"mediashare/internal/model"
	"mediashare/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockShareLinkRepository struct {
	mock.Mock
}

func (m *MockShareLinkRepository) Create(ctx context.Context, link *model.ShareLink) (*model.ShareLink, error) {
	args := m.Called(ctx, link)
	if f, ok := args.Get(0).(func(context.Context, *model.ShareLink) *model.ShareLink); ok {
		return f(ctx, link), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareLink), args.Error(1)
}

func (m *MockShareLinkRepository) FindByID(ctx context.Context, id string) (*model.ShareLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareLink), args.Error(1)
}

func (m *MockShareLinkRepository) Finalize(ctx context.Context, id, shortCode, longURL string) (*model.ShareLink, error) {
	args := m.Called(ctx, id, shortCode, longURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareLink), args.Error(1)
}

func (m *MockShareLinkRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShareLinkRepository) DeleteAllByMedia(ctx context.Context, mediaID string) error {
	args := m.Called(ctx, mediaID)
	return args.Error(0)
}

func (m *MockShareLinkRepository) Query(ctx context.Context, mediaID string, q repository.ShareLinkQuery) (*repository.PageResult[model.ShareLink], error) {
	args := m.Called(ctx, mediaID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ShareLink]), args.Error(1)
}

func (m *MockShareLinkRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShareLinkRepository) DeleteStaleProvisional(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
