package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialfeedCPT/internal/models"
)

type HashtagRepositoryImpl struct {
	db *sqlx.DB
}

func NewHashtagRepository(db *sqlx.DB) *HashtagRepositoryImpl {
	return &HashtagRepositoryImpl{db: db}
}

// Upsert - одно атомарное выражение "вставить со счётчиком 1 или
// увеличить счётчик". Никаких exists-проверок перед записью: при
// конкурентных писателях на один тег они теряют инкременты и ловят
// взаимные блокировки. Атомарность обеспечивает сама БД.
func (r *HashtagRepositoryImpl) Upsert(ctx context.Context, q sqlx.ExtContext, name string) (string, error) {
	query := `
		INSERT INTO hashtags (hashtag_id, name, usage_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (name) DO UPDATE SET usage_count = hashtags.usage_count + 1
		RETURNING hashtag_id
	`

	var hashtagID string
	err := sqlx.GetContext(ctx, q, &hashtagID, query, uuid.New().String(), name)
	if err != nil {
		return "", fmt.Errorf("ошибка при обновлении хэштега %s: %w", name, err)
	}

	return hashtagID, nil
}

// DecrementUsage уменьшает счётчики на 1, не опускаясь ниже нуля
func (r *HashtagRepositoryImpl) DecrementUsage(ctx context.Context, q sqlx.ExtContext, hashtagIDs []string) error {
	if len(hashtagIDs) == 0 {
		return nil
	}

	query := `
		UPDATE hashtags SET usage_count = GREATEST(usage_count - 1, 0)
		WHERE hashtag_id = ANY($1)
	`

	_, err := q.ExecContext(ctx, query, pq.Array(hashtagIDs))
	if err != nil {
		return fmt.Errorf("ошибка при уменьшении счётчиков хэштегов: %w", err)
	}

	return nil
}

func (r *HashtagRepositoryImpl) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	query := `SELECT * FROM hashtags WHERE name = $1`

	var hashtag models.Hashtag
	err := r.db.GetContext(ctx, &hashtag, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("хэштег %s не найден", name)
		}
		return nil, fmt.Errorf("ошибка при получении хэштега: %w", err)
	}

	return &hashtag, nil
}

func (r *HashtagRepositoryImpl) GetNamesByPostID(ctx context.Context, postID string) ([]string, error) {
	query := `
		SELECT h.name FROM hashtags h
		JOIN post_hashtags ph ON ph.hashtag_id = h.hashtag_id
		WHERE ph.post_id = $1
		ORDER BY h.name
	`

	var names []string
	err := r.db.SelectContext(ctx, &names, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении хэштегов поста: %w", err)
	}

	return names, nil
}

func (r *HashtagRepositoryImpl) GetLinkedIDs(ctx context.Context, q sqlx.ExtContext, postID string) ([]string, error) {
	query := `SELECT hashtag_id FROM post_hashtags WHERE post_id = $1`

	var ids []string
	err := sqlx.SelectContext(ctx, q, &ids, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении связей поста: %w", err)
	}

	return ids, nil
}

func (r *HashtagRepositoryImpl) CreateLink(ctx context.Context, q sqlx.ExtContext, postID, hashtagID string) error {
	query := `
		INSERT INTO post_hashtags (post_id, hashtag_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, hashtag_id) DO NOTHING
	`

	_, err := q.ExecContext(ctx, query, postID, hashtagID)
	if err != nil {
		return fmt.Errorf("ошибка при привязке хэштега к посту: %w", err)
	}

	return nil
}

func (r *HashtagRepositoryImpl) DeleteLinksByPostID(ctx context.Context, q sqlx.ExtContext, postID string) error {
	query := `DELETE FROM post_hashtags WHERE post_id = $1`

	_, err := q.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении связей поста: %w", err)
	}

	return nil
}
