package service

import (
	"go.uber.org/zap"

	"socialfeedCPT/internal/config"
	"socialfeedCPT/internal/database"
	"socialfeedCPT/internal/locker"
	"socialfeedCPT/internal/repository"
	"socialfeedCPT/internal/storage"
)

type Service struct {
	Post        PostService
	Image       ImageService
	Hashtag     HashtagService
	Idempotency IdempotencyService
}

func NewService(rep *repository.Repository, db *database.DB, cfg *config.Config, store storage.Storage, locks locker.LockStore, log *zap.SugaredLogger) *Service {
	images := NewImageService(rep.Image, rep.ImageError, store, db, log)
	hashtags := NewHashtagService(rep.Hashtag)

	return &Service{
		Post:        NewPostService(rep, images, hashtags, db, log),
		Image:       images,
		Hashtag:     hashtags,
		Idempotency: NewIdempotencyService(locks, cfg.IdempotencyTTL, log),
	}
}
