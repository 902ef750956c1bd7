package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialfeedCPT/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, q sqlx.ExtContext, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, author_id, content, channel, comment_count, reaction_count, status, created_at, updated_at)
        VALUES
        (:post_id, :author_id, :content, :channel, :comment_count, :reaction_count, :status, :created_at, :updated_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := sqlx.NamedExecContext(ctx, q, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE post_id = $1 AND status != 'DELETED'
    `

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s не найден: %w", postID, sql.ErrNoRows)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetByChannel(ctx context.Context, channel string, limit, offset int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE channel = $1 AND status != 'DELETED'
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, channel, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты канала %s: %w", channel, err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, q sqlx.ExtContext, post *models.Post) error {
	query := `
		UPDATE posts SET
			content = :content,
			updated_at = :updated_at
		WHERE post_id = :post_id AND author_id = :author_id AND status != 'DELETED'
	`

	post.UpdatedAt = time.Now()

	result, err := sqlx.NamedExecContext(ctx, q, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пост не найден или изменён другим автором")
	}

	return nil
}

func (r *PostRepositoryImpl) MarkDeleted(ctx context.Context, q sqlx.ExtContext, postID string) error {
	query := `
		UPDATE posts SET
			status = 'DELETED',
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $1 AND status != 'DELETED'
	`

	result, err := q.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return errors.New("пост не найден")
	}

	return nil
}
