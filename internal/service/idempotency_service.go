package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"socialfeedCPT/internal/locker"
)

// IdempotencyService превращает атомарный set-if-absent хранилища
// блокировок в решение "первый запрос или повтор".
type IdempotencyService interface {
	Admit(ctx context.Context, actorID, opSig string) error
	Release(ctx context.Context, actorID, opSig string)
	Execute(ctx context.Context, actorID, opSig string, fn func(ctx context.Context) error) error
}

type idempotencyService struct {
	locks locker.LockStore
	ttl   time.Duration
	log   *zap.SugaredLogger
}

func NewIdempotencyService(locks locker.LockStore, ttl time.Duration, log *zap.SugaredLogger) IdempotencyService {
	return &idempotencyService{
		locks: locks,
		ttl:   ttl,
		log:   log,
	}
}

func lockKey(actorID, opSig string) string {
	return fmt.Sprintf("idem:%s:%s", actorID, opSig)
}

// Admit возвращает ErrDuplicateRequest, если ключ уже занят.
// Set-if-absent в хранилище - единственный источник истины о том,
// кто был первым.
func (s *idempotencyService) Admit(ctx context.Context, actorID, opSig string) error {
	ok, err := s.locks.SetIfAbsent(ctx, lockKey(actorID, opSig), "1", s.ttl)
	if err != nil {
		return fmt.Errorf("ошибка обращения к хранилищу блокировок: %w", err)
	}

	if !ok {
		return ErrDuplicateRequest
	}

	return nil
}

// Release снимает блокировку досрочно, чтобы после неудачной попытки
// повтор не ждал весь TTL. Ошибка снятия не мешает вызывающему:
// блокировка всё равно истечёт сама.
func (s *idempotencyService) Release(ctx context.Context, actorID, opSig string) {
	key := lockKey(actorID, opSig)
	if err := s.locks.Release(ctx, key); err != nil {
		s.log.Warnw("не удалось снять блокировку идемпотентности",
			"key", key,
			"error", err)
	}
}

// Execute - явный декоратор вокруг операции записи: пропускает первый
// запрос, отклоняет повтор, при ошибке операции снимает блокировку.
// При успехе блокировка остаётся жить до TTL как окно дедупликации.
func (s *idempotencyService) Execute(ctx context.Context, actorID, opSig string, fn func(ctx context.Context) error) error {
	if err := s.Admit(ctx, actorID, opSig); err != nil {
		return err
	}

	if err := fn(ctx); err != nil {
		s.Release(ctx, actorID, opSig)
		return err
	}

	return nil
}
