package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"socialfeedCPT/internal/models"
)

// Методы записи принимают sqlx.ExtContext, чтобы оркестратор мог
// выполнить их в одной транзакции. Методы чтения ходят напрямую в db.

type UserRepository interface {
	ExistsByID(ctx context.Context, userID string) (bool, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, q sqlx.ExtContext, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByChannel(ctx context.Context, channel string, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, q sqlx.ExtContext, post *models.Post) error
	MarkDeleted(ctx context.Context, q sqlx.ExtContext, postID string) error
}

type ImageRepository interface {
	CreateBatch(ctx context.Context, assets []models.ImageAsset) error
	GetActiveByPostID(ctx context.Context, postID string) ([]models.ImageAsset, error)
	Activate(ctx context.Context, q sqlx.ExtContext, imageID, ownerID, postID string, sortOrder int) (bool, error)
	CountActiveExcluding(ctx context.Context, q sqlx.ExtContext, postID string, excludeIDs []string) (int, error)
	SoftDeleteBatch(ctx context.Context, q sqlx.ExtContext, ownerID, postID string, imageIDs []string) (int64, error)
	SoftDeleteByPostID(ctx context.Context, q sqlx.ExtContext, postID string) error
}

type HashtagRepository interface {
	Upsert(ctx context.Context, q sqlx.ExtContext, name string) (string, error)
	DecrementUsage(ctx context.Context, q sqlx.ExtContext, hashtagIDs []string) error
	GetByName(ctx context.Context, name string) (*models.Hashtag, error)
	GetNamesByPostID(ctx context.Context, postID string) ([]string, error)
	GetLinkedIDs(ctx context.Context, q sqlx.ExtContext, postID string) ([]string, error)
	CreateLink(ctx context.Context, q sqlx.ExtContext, postID, hashtagID string) error
	DeleteLinksByPostID(ctx context.Context, q sqlx.ExtContext, postID string) error
}

type ImageErrorRepository interface {
	Create(ctx context.Context, rec *models.ImageUploadError) error
}

type Repository struct {
	User       UserRepository
	Post       PostRepository
	Image      ImageRepository
	Hashtag    HashtagRepository
	ImageError ImageErrorRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Post:       NewPostRepository(db),
		Image:      NewImageRepository(db),
		Hashtag:    NewHashtagRepository(db),
		ImageError: NewImageErrorRepository(db),
	}
}
