package mocks

import (
	"context"
	"io"

	"dronemap/internal/model"
	"dronemap/internal/repository"
	"dronemap/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, r io.Reader, originalFilename string, size int64, lat, lon float64, projectID string) (*model.MediaRecord, error) {
	args := m.Called(ctx, r, originalFilename, size, lat, lon, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaRecord), args.Error(1)
}

func (m *MockMediaService) Get(ctx context.Context, id string) (*model.MediaRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MediaRecord), args.Error(1)
}

func (m *MockMediaService) List(ctx context.Context, q repository.ListQuery) ([]model.MediaRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MediaRecord), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaService) Stats(ctx context.Context) (service.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.Stats), args.Error(1)
}
