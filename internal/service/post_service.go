package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"socialfeedCPT/internal/database"
	"socialfeedCPT/internal/models"
	"socialfeedCPT/internal/repository"
)

// PostService - оркестратор записи: владелец, канал, строка поста,
// активация изображений и связи хэштегов как одна логическая единица.
// Транзакция БД покрывает только реляционные записи: файлы к этому
// моменту уже лежат в blob-хранилище (staging).
type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) error
	DeletePost(ctx context.Context, actorID, postID string) error
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetFeed(ctx context.Context, channel string, limit, offset int) ([]models.Post, error)
	AttachImages(ctx context.Context, actorID, postID string, refs []models.ImageRef) ([]models.ImageAsset, error)
	SoftDeleteImages(ctx context.Context, actorID, postID string, imageIDs []string) error
	ReorderImages(ctx context.Context, actorID, postID string, refs []models.ImageRef) error
}

type CreatePostRequest struct {
	AuthorID   string
	Content    string
	Channel    string
	AllChannel bool
	ImageRefs  []models.ImageRef
	Hashtags   []string
}

type UpdatePostRequest struct {
	ActorID  string
	PostID   string
	Content  string
	Hashtags []string
}

type postService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	imageRepo   repository.ImageRepository
	hashtagRepo repository.HashtagRepository
	images      ImageService
	hashtags    HashtagService
	db          *database.DB
	log         *zap.SugaredLogger
}

func NewPostService(repo *repository.Repository, images ImageService, hashtags HashtagService, db *database.DB, log *zap.SugaredLogger) PostService {
	return &postService{
		userRepo:    repo.User,
		postRepo:    repo.Post,
		imageRepo:   repo.Image,
		hashtagRepo: repo.Hashtag,
		images:      images,
		hashtags:    hashtags,
		db:          db,
		log:         log,
	}
}

// resolveChannel: флаг "всем" перекрывает код команды, иначе код
// нормализуется и сверяется с перечислением каналов
func resolveChannel(code string, allChannel bool) (string, error) {
	if allChannel {
		return models.ChannelAll, nil
	}

	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !models.KnownChannels[normalized] {
		return "", fmt.Errorf("%w: %s", ErrUnknownChannel, code)
	}

	return normalized, nil
}

func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	exists, err := s.userRepo.ExistsByID(ctx, req.AuthorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	channel, err := resolveChannel(req.Channel, req.AllChannel)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: req.AuthorID,
		Content:  req.Content,
		Channel:  channel,
		Status:   models.PostStatusActive,
	}

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.postRepo.Create(ctx, tx, post); err != nil {
			return err
		}

		if len(req.ImageRefs) > 0 {
			if err := s.images.Activate(ctx, tx, req.AuthorID, post.PostID, req.ImageRefs); err != nil {
				return err
			}
		}

		hashtagIDs, err := s.hashtags.Upsert(ctx, tx, req.Hashtags)
		if err != nil {
			return err
		}

		for _, hid := range hashtagIDs {
			if err := s.hashtagRepo.CreateLink(ctx, tx, post.PostID, hid); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) error {
	post, err := s.getOwnedPost(ctx, req.ActorID, req.PostID)
	if err != nil {
		return err
	}

	post.Content = req.Content

	return s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.postRepo.Update(ctx, tx, post); err != nil {
			return err
		}

		// полная замена хэштегов: старые связи снимаются через Decrement,
		// прямых правок usage_count здесь нет
		oldIDs, err := s.hashtagRepo.GetLinkedIDs(ctx, tx, post.PostID)
		if err != nil {
			return err
		}

		if len(oldIDs) > 0 {
			if err := s.hashtagRepo.DeleteLinksByPostID(ctx, tx, post.PostID); err != nil {
				return err
			}
			if err := s.hashtags.Decrement(ctx, tx, oldIDs); err != nil {
				return err
			}
		}

		newIDs, err := s.hashtags.Upsert(ctx, tx, req.Hashtags)
		if err != nil {
			return err
		}

		for _, hid := range newIDs {
			if err := s.hashtagRepo.CreateLink(ctx, tx, post.PostID, hid); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *postService) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := s.getOwnedPost(ctx, actorID, postID)
	if err != nil {
		return err
	}

	// файлы для best-effort очистки хранилища после фиксации
	assets, err := s.imageRepo.GetActiveByPostID(ctx, postID)
	if err != nil {
		return err
	}

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		linkedIDs, err := s.hashtagRepo.GetLinkedIDs(ctx, tx, postID)
		if err != nil {
			return err
		}

		if len(linkedIDs) > 0 {
			if err := s.hashtagRepo.DeleteLinksByPostID(ctx, tx, postID); err != nil {
				return err
			}
			if err := s.hashtags.Decrement(ctx, tx, linkedIDs); err != nil {
				return err
			}
		}

		if err := s.imageRepo.SoftDeleteByPostID(ctx, tx, postID); err != nil {
			return err
		}

		return s.postRepo.MarkDeleted(ctx, tx, postID)
	})
	if err != nil {
		return err
	}

	// пост уже удалён, сбой очистки хранилища только логируется
	s.images.DeleteBlobs(ctx, post.AuthorID, assets)

	return nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	images, err := s.imageRepo.GetActiveByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	names, err := s.hashtagRepo.GetNamesByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Hashtags = names

	return post, nil
}

func (s *postService) GetFeed(ctx context.Context, channel string, limit, offset int) ([]models.Post, error) {
	resolved, err := resolveChannel(channel, channel == "" || strings.EqualFold(channel, models.ChannelAll))
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetByChannel(ctx, resolved, limit, offset)
}

func (s *postService) AttachImages(ctx context.Context, actorID, postID string, refs []models.ImageRef) ([]models.ImageAsset, error) {
	if _, err := s.getOwnedPost(ctx, actorID, postID); err != nil {
		return nil, err
	}

	err := s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return s.images.Activate(ctx, tx, actorID, postID, refs)
	})
	if err != nil {
		return nil, err
	}

	return s.imageRepo.GetActiveByPostID(ctx, postID)
}

func (s *postService) SoftDeleteImages(ctx context.Context, actorID, postID string, imageIDs []string) error {
	if _, err := s.getOwnedPost(ctx, actorID, postID); err != nil {
		return err
	}

	return s.images.SoftDelete(ctx, actorID, postID, imageIDs)
}

func (s *postService) ReorderImages(ctx context.Context, actorID, postID string, refs []models.ImageRef) error {
	if _, err := s.getOwnedPost(ctx, actorID, postID); err != nil {
		return err
	}

	return s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return s.images.Activate(ctx, tx, actorID, postID, refs)
	})
}

// getOwnedPost - общий шаблон "проверить владельца, потом менять"
func (s *postService) getOwnedPost(ctx context.Context, actorID, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.AuthorID != actorID {
		return nil, ErrPostAccessDenied
	}

	return post, nil
}
