package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"socialfeedCPT/internal/database"
	"socialfeedCPT/internal/models"
	"socialfeedCPT/internal/repository"
	"socialfeedCPT/internal/storage"
)

// ImageService - движок staging-загрузки: файлы уходят в blob-хранилище
// до существования поста, метаданные создаются в PENDING, привязка к
// посту делает их ACTIVE. При сбое загрузки партия откатывается целиком.
type ImageService interface {
	Stage(ctx context.Context, ownerID string, files []models.UploadFile) ([]models.ImageAsset, error)
	Activate(ctx context.Context, q sqlx.ExtContext, ownerID, postID string, refs []models.ImageRef) error
	SoftDelete(ctx context.Context, ownerID, postID string, imageIDs []string) error
	DeleteBlobs(ctx context.Context, ownerID string, assets []models.ImageAsset)
}

type imageService struct {
	imageRepo repository.ImageRepository
	errorRepo repository.ImageErrorRepository
	store     storage.Storage
	db        *database.DB
	log       *zap.SugaredLogger
}

func NewImageService(imageRepo repository.ImageRepository, errorRepo repository.ImageErrorRepository, store storage.Storage, db *database.DB, log *zap.SugaredLogger) ImageService {
	return &imageService{
		imageRepo: imageRepo,
		errorRepo: errorRepo,
		store:     store,
		db:        db,
		log:       log,
	}
}

// Stage валидирует партию, загружает файлы по одному и сохраняет
// PENDING-строки. У blob-хранилища нет транзакций на несколько объектов,
// поэтому при сбое на i-м файле уже загруженные 1..i-1 удаляются
// компенсацией, и вся партия завершается ErrImageUploadFailed.
func (s *imageService) Stage(ctx context.Context, ownerID string, files []models.UploadFile) ([]models.ImageAsset, error) {
	if err := ValidateImages(files); err != nil {
		return nil, err
	}

	uploaded := make([]models.ImageAsset, 0, len(files))
	for _, f := range files {
		contentType := DetectMimeType(f.Data)

		imageURL, storageName, err := s.store.Upload(ctx, f.Data, f.FileName, contentType)
		if err != nil {
			s.DeleteBlobs(ctx, ownerID, uploaded)
			return nil, fmt.Errorf("%w: %v", ErrImageUploadFailed, err)
		}

		uploaded = append(uploaded, models.ImageAsset{
			ImageID:      uuid.New().String(),
			OwnerID:      ownerID,
			ImageURL:     imageURL,
			OriginalName: f.FileName,
			StorageName:  storageName,
			ByteSize:     f.Size,
			MimeType:     contentType,
			Status:       models.ImageStatusPending,
		})
	}

	if err := s.imageRepo.CreateBatch(ctx, uploaded); err != nil {
		s.DeleteBlobs(ctx, ownerID, uploaded)
		return nil, fmt.Errorf("%w: %v", ErrImageUploadFailed, err)
	}

	return uploaded, nil
}

// Activate привязывает изображения к посту и проставляет порядок.
// Количество разрешённых строк обязано совпасть с количеством запрошенных:
// несуществующий id, чужое изображение или неверный статус валят всю
// операцию ErrImageOrderMismatch.
func (s *imageService) Activate(ctx context.Context, q sqlx.ExtContext, ownerID, postID string, refs []models.ImageRef) error {
	if len(refs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ImageID)
	}

	// потолок считается вместе с уже прикреплёнными изображениями поста
	existing, err := s.imageRepo.CountActiveExcluding(ctx, q, postID, ids)
	if err != nil {
		return err
	}

	if existing+len(refs) > MaxImagesPerPost {
		return fmt.Errorf("%w: у поста уже %d изображений", ErrImageCountExceeded, existing)
	}

	resolved := 0
	for _, ref := range refs {
		ok, err := s.imageRepo.Activate(ctx, q, ref.ImageID, ownerID, postID, ref.SortOrder)
		if err != nil {
			return err
		}
		if ok {
			resolved++
		}
	}

	if resolved != len(refs) {
		return fmt.Errorf("%w: запрошено %d, сопоставлено %d", ErrImageOrderMismatch, len(refs), resolved)
	}

	return nil
}

// SoftDelete переводит ACTIVE изображения поста в MARKED_FOR_DELETION.
// Строки физически не удаляются никогда.
func (s *imageService) SoftDelete(ctx context.Context, ownerID, postID string, imageIDs []string) error {
	if len(imageIDs) == 0 {
		return ErrImageNotFound
	}

	affected, err := s.imageRepo.SoftDeleteBatch(ctx, s.db.DB, ownerID, postID, imageIDs)
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrImageNotFound
	}

	return nil
}

// DeleteBlobs - компенсация: best-effort удаление файлов из хранилища.
// Никогда не возвращает ошибку - к моменту вызова основная операция уже
// либо завершилась, либо сама откатывается, и её ошибку маскировать
// нельзя. Неудалённый файл фиксируется в журнале для ручной очистки.
func (s *imageService) DeleteBlobs(ctx context.Context, ownerID string, assets []models.ImageAsset) {
	for _, a := range assets {
		deleted, err := s.store.Delete(ctx, a.StorageName)
		if err == nil && deleted {
			continue
		}

		s.log.Warnw("компенсация не удалась, файл остался в хранилище",
			"storageName", a.StorageName,
			"error", err)

		rec := &models.ImageUploadError{
			ImageURL:    a.ImageURL,
			StorageName: a.StorageName,
			OwnerID:     ownerID,
		}

		if recErr := s.errorRepo.Create(ctx, rec); recErr != nil {
			s.log.Errorw("не удалось записать ошибку загрузки изображения",
				"storageName", a.StorageName,
				"error", recErr)
		}
	}
}
