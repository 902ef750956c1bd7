package test

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"socialfeedCPT/internal/models"
	"socialfeedCPT/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, req service.UpdatePostRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPostService) DeletePost(ctx context.Context, actorID, postID string) error {
	args := m.Called(ctx, actorID, postID)
	return args.Error(0)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetFeed(ctx context.Context, channel string, limit, offset int) ([]models.Post, error) {
	args := m.Called(ctx, channel, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) AttachImages(ctx context.Context, actorID, postID string, refs []models.ImageRef) ([]models.ImageAsset, error) {
	args := m.Called(ctx, actorID, postID, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ImageAsset), args.Error(1)
}

func (m *MockPostService) SoftDeleteImages(ctx context.Context, actorID, postID string, imageIDs []string) error {
	args := m.Called(ctx, actorID, postID, imageIDs)
	return args.Error(0)
}

func (m *MockPostService) ReorderImages(ctx context.Context, actorID, postID string, refs []models.ImageRef) error {
	args := m.Called(ctx, actorID, postID, refs)
	return args.Error(0)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Stage(ctx context.Context, ownerID string, files []models.UploadFile) ([]models.ImageAsset, error) {
	args := m.Called(ctx, ownerID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ImageAsset), args.Error(1)
}

func (m *MockImageService) Activate(ctx context.Context, q sqlx.ExtContext, ownerID, postID string, refs []models.ImageRef) error {
	args := m.Called(ctx, q, ownerID, postID, refs)
	return args.Error(0)
}

func (m *MockImageService) SoftDelete(ctx context.Context, ownerID, postID string, imageIDs []string) error {
	args := m.Called(ctx, ownerID, postID, imageIDs)
	return args.Error(0)
}

func (m *MockImageService) DeleteBlobs(ctx context.Context, ownerID string, assets []models.ImageAsset) {
	m.Called(ctx, ownerID, assets)
}

// MockIdempotencyService при Return(nil) пропускает операцию дальше,
// при любой другой ошибке ведёт себя как отказ в допуске
type MockIdempotencyService struct {
	mock.Mock
}

func (m *MockIdempotencyService) Admit(ctx context.Context, actorID, opSig string) error {
	args := m.Called(ctx, actorID, opSig)
	return args.Error(0)
}

func (m *MockIdempotencyService) Release(ctx context.Context, actorID, opSig string) {
	m.Called(ctx, actorID, opSig)
}

func (m *MockIdempotencyService) Execute(ctx context.Context, actorID, opSig string, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, actorID, opSig)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
