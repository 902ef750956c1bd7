package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeedCPT/internal/models"
)

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

// ExistsByID - проверка существования пользователя для оркестратора
func (r *UserRepositoryImpl) ExistsByID(ctx context.Context, userID string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE user_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке пользователя: %w", err)
	}

	return count > 0, nil
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT * FROM users WHERE user_id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с ID %s не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}
