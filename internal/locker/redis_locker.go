package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"socialfeedCPT/internal/config"
)

// LockStore - key/value хранилище с атомарным set-if-absent.
// Единственная точка синхронизации для проверки идемпотентности.
type LockStore interface {
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(cfg *config.Config) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
	}

	return &RedisLocker{client: client}, nil
}

// NewRedisLockerFromClient - для тестов с miniredis
func NewRedisLockerFromClient(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

// SetIfAbsent возвращает false, если ключ уже существует.
// SETNX атомарен на стороне Redis, in-process блокировок нет.
func (l *RedisLocker) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("ошибка при установке блокировки %s: %w", key, err)
	}
	return ok, nil
}

func (l *RedisLocker) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("ошибка при снятии блокировки %s: %w", key, err)
	}
	return nil
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}
