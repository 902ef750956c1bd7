package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialfeedCPT/internal/models"
)

type ImageErrorRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageErrorRepository(db *sqlx.DB) *ImageErrorRepositoryImpl {
	return &ImageErrorRepositoryImpl{db: db}
}

// Create добавляет запись о файле, оставшемся в хранилище после
// неудавшейся компенсации
func (r *ImageErrorRepositoryImpl) Create(ctx context.Context, rec *models.ImageUploadError) error {
	query := `
		INSERT INTO image_upload_errors (error_id, image_url, storage_name, owner_id, occurred_at)
		VALUES (:error_id, :image_url, :storage_name, :owner_id, :occurred_at)
	`

	if rec.ErrorID == "" {
		rec.ErrorID = uuid.New().String()
	}

	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("ошибка при записи ошибки загрузки изображения: %w", err)
	}

	return nil
}
