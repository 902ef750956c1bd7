package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"socialfeedCPT/internal/repository"
)

// HashtagService - счётчики использования тегов. Вся атомарность живёт
// в upsert-выражении БД, in-process блокировок здесь нет.
type HashtagService interface {
	Upsert(ctx context.Context, q sqlx.ExtContext, names []string) ([]string, error)
	Decrement(ctx context.Context, q sqlx.ExtContext, hashtagIDs []string) error
}

type hashtagService struct {
	hashtagRepo repository.HashtagRepository
}

func NewHashtagService(hashtagRepo repository.HashtagRepository) HashtagService {
	return &hashtagService{hashtagRepo: hashtagRepo}
}

// NormalizeTags приводит имена к каноничному виду: без '#', без пробелов,
// в нижнем регистре, без дублей, в лексикографическом порядке. Одинаковый
// порядок обхода у всех писателей снижает конкуренцию на горячих тегах.
func NormalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))

	for _, n := range names {
		n = strings.TrimSpace(n)
		n = strings.TrimPrefix(n, "#")
		n = strings.ToLower(strings.TrimSpace(n))

		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}

	sort.Strings(out)
	return out
}

// Upsert создаёт-или-инкрементирует каждый тег одним атомарным
// выражением и возвращает id в порядке обработки
func (s *hashtagService) Upsert(ctx context.Context, q sqlx.ExtContext, names []string) ([]string, error) {
	normalized := NormalizeTags(names)

	ids := make([]string, 0, len(normalized))
	for _, name := range normalized {
		id, err := s.hashtagRepo.Upsert(ctx, q, name)
		if err != nil {
			return nil, fmt.Errorf("ошибка при обработке хэштега %s: %w", name, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *hashtagService) Decrement(ctx context.Context, q sqlx.ExtContext, hashtagIDs []string) error {
	return s.hashtagRepo.DecrementUsage(ctx, q, hashtagIDs)
}
