package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"socialfeedCPT/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ExistsByID(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, q sqlx.ExtContext, post *models.Post) error {
	args := m.Called(ctx, q, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByChannel(ctx context.Context, channel string, limit, offset int) ([]models.Post, error) {
	args := m.Called(ctx, channel, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, q sqlx.ExtContext, post *models.Post) error {
	args := m.Called(ctx, q, post)
	return args.Error(0)
}

func (m *MockPostRepository) MarkDeleted(ctx context.Context, q sqlx.ExtContext, postID string) error {
	args := m.Called(ctx, q, postID)
	return args.Error(0)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) CreateBatch(ctx context.Context, assets []models.ImageAsset) error {
	args := m.Called(ctx, assets)
	return args.Error(0)
}

func (m *MockImageRepository) GetActiveByPostID(ctx context.Context, postID string) ([]models.ImageAsset, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ImageAsset), args.Error(1)
}

func (m *MockImageRepository) Activate(ctx context.Context, q sqlx.ExtContext, imageID, ownerID, postID string, sortOrder int) (bool, error) {
	args := m.Called(ctx, q, imageID, ownerID, postID, sortOrder)
	return args.Bool(0), args.Error(1)
}

func (m *MockImageRepository) CountActiveExcluding(ctx context.Context, q sqlx.ExtContext, postID string, excludeIDs []string) (int, error) {
	args := m.Called(ctx, q, postID, excludeIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockImageRepository) SoftDeleteBatch(ctx context.Context, q sqlx.ExtContext, ownerID, postID string, imageIDs []string) (int64, error) {
	args := m.Called(ctx, q, ownerID, postID, imageIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImageRepository) SoftDeleteByPostID(ctx context.Context, q sqlx.ExtContext, postID string) error {
	args := m.Called(ctx, q, postID)
	return args.Error(0)
}

type MockHashtagRepository struct {
	mock.Mock
}

func (m *MockHashtagRepository) Upsert(ctx context.Context, q sqlx.ExtContext, name string) (string, error) {
	args := m.Called(ctx, q, name)
	return args.String(0), args.Error(1)
}

func (m *MockHashtagRepository) DecrementUsage(ctx context.Context, q sqlx.ExtContext, hashtagIDs []string) error {
	args := m.Called(ctx, q, hashtagIDs)
	return args.Error(0)
}

func (m *MockHashtagRepository) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) GetNamesByPostID(ctx context.Context, postID string) ([]string, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHashtagRepository) GetLinkedIDs(ctx context.Context, q sqlx.ExtContext, postID string) ([]string, error) {
	args := m.Called(ctx, q, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHashtagRepository) CreateLink(ctx context.Context, q sqlx.ExtContext, postID, hashtagID string) error {
	args := m.Called(ctx, q, postID, hashtagID)
	return args.Error(0)
}

func (m *MockHashtagRepository) DeleteLinksByPostID(ctx context.Context, q sqlx.ExtContext, postID string) error {
	args := m.Called(ctx, q, postID)
	return args.Error(0)
}

type MockImageErrorRepository struct {
	mock.Mock
}

func (m *MockImageErrorRepository) Create(ctx context.Context, rec *models.ImageUploadError) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, data []byte, fileName, contentType string) (string, string, error) {
	args := m.Called(ctx, data, fileName, contentType)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, objectName string) (bool, error) {
	args := m.Called(ctx, objectName)
	return args.Bool(0), args.Error(1)
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

type MockHashtagService struct {
	mock.Mock
}

func (m *MockHashtagService) Upsert(ctx context.Context, q sqlx.ExtContext, names []string) ([]string, error) {
	args := m.Called(ctx, q, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockHashtagService) Decrement(ctx context.Context, q sqlx.ExtContext, hashtagIDs []string) error {
	args := m.Called(ctx, q, hashtagIDs)
	return args.Error(0)
}
