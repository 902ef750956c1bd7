package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialfeedCPT/internal/models"
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

// CreateBatch сохраняет staged-изображения в статусе PENDING,
// post_id остаётся пустым до привязки
func (r *ImageRepositoryImpl) CreateBatch(ctx context.Context, assets []models.ImageAsset) error {
	query := `
		INSERT INTO image_assets
		(image_id, owner_id, post_id, image_url, original_name, storage_name,
		 byte_size, mime_type, sort_order, status, created_at, updated_at)
		VALUES
		(:image_id, :owner_id, :post_id, :image_url, :original_name, :storage_name,
		 :byte_size, :mime_type, :sort_order, :status, :created_at, :updated_at)
	`

	now := time.Now()
	for i := range assets {
		if assets[i].ImageID == "" {
			assets[i].ImageID = uuid.New().String()
		}
		assets[i].CreatedAt = now
		assets[i].UpdatedAt = now

		if _, err := r.db.NamedExecContext(ctx, query, assets[i]); err != nil {
			return fmt.Errorf("ошибка при создании изображения %s: %w", assets[i].OriginalName, err)
		}
	}

	return nil
}

func (r *ImageRepositoryImpl) GetActiveByPostID(ctx context.Context, postID string) ([]models.ImageAsset, error) {
	query := `
		SELECT * FROM image_assets
		WHERE post_id = $1 AND status = 'ACTIVE'
		ORDER BY sort_order
	`

	var images []models.ImageAsset
	err := r.db.SelectContext(ctx, &images, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений поста: %w", err)
	}

	return images, nil
}

// Activate переводит изображение в ACTIVE и проставляет post_id и позицию.
// Условие допускает PENDING (первая привязка) и уже ACTIVE того же поста
// (смена порядка). Возвращает false, если строка не подошла под условие:
// чужой владелец, чужой пост или неверный статус.
func (r *ImageRepositoryImpl) Activate(ctx context.Context, q sqlx.ExtContext, imageID, ownerID, postID string, sortOrder int) (bool, error) {
	query := `
		UPDATE image_assets SET
			status = 'ACTIVE',
			post_id = $1,
			sort_order = $2,
			updated_at = CURRENT_TIMESTAMP
		WHERE image_id = $3 AND owner_id = $4
		  AND (status = 'PENDING' OR (status = 'ACTIVE' AND post_id = $1))
	`

	result, err := q.ExecContext(ctx, query, postID, sortOrder, imageID, ownerID)
	if err != nil {
		return false, fmt.Errorf("ошибка при активации изображения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

// CountActiveExcluding - количество ACTIVE изображений поста, не входящих
// в переданный список. Нужен для проверки потолка при докреплении.
func (r *ImageRepositoryImpl) CountActiveExcluding(ctx context.Context, q sqlx.ExtContext, postID string, excludeIDs []string) (int, error) {
	query := `
		SELECT COUNT(*) FROM image_assets
		WHERE post_id = $1 AND status = 'ACTIVE' AND NOT (image_id = ANY($2))
	`

	var count int
	err := sqlx.GetContext(ctx, q, &count, query, postID, pq.Array(excludeIDs))
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте изображений поста: %w", err)
	}

	return count, nil
}

func (r *ImageRepositoryImpl) SoftDeleteBatch(ctx context.Context, q sqlx.ExtContext, ownerID, postID string, imageIDs []string) (int64, error) {
	query := `
		UPDATE image_assets SET
			status = 'MARKED_FOR_DELETION',
			updated_at = CURRENT_TIMESTAMP
		WHERE image_id = ANY($1) AND post_id = $2 AND owner_id = $3 AND status = 'ACTIVE'
	`

	result, err := q.ExecContext(ctx, query, pq.Array(imageIDs), postID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при пометке изображений на удаление: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	return rowsAffected, nil
}

func (r *ImageRepositoryImpl) SoftDeleteByPostID(ctx context.Context, q sqlx.ExtContext, postID string) error {
	query := `
		UPDATE image_assets SET
			status = 'MARKED_FOR_DELETION',
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $1 AND status = 'ACTIVE'
	`

	_, err := q.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при пометке изображений поста на удаление: %w", err)
	}

	return nil
}
