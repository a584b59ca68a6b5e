package services

import (
	"context"

	"github.com/Brayzonn/shortlink/internal/models"
)

// MaxFreeLinks максимальное число ссылок анонимного посетителя.
const MaxFreeLinks = 3

// Quota считает остаток квоты анонимного посетителя. Жесткое ограничение
// обеспечивает хранилище (LinkRepository.CreateAnonymousBounded), здесь
// только подсчет остатка для ответов API.
type Quota struct {
	repo LinkRepository
}

func NewQuota(repo LinkRepository) *Quota {
	return &Quota{repo: repo}
}

// Remaining возвращает остаток квоты владельца, не меньше нуля.
// Для зарегистрированных пользователей квота не применяется.
func (q *Quota) Remaining(ctx context.Context, owner models.OwnerKey) (int, error) {
	if !owner.IsAnonymous() {
		return 0, nil
	}
	count, err := q.repo.CountByOwner(ctx, owner)
	if err != nil {
		return 0, ErrUnknown
	}
	remaining := MaxFreeLinks - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// CanCreate сообщает, может ли владелец создать еще одну ссылку.
func (q *Quota) CanCreate(ctx context.Context, owner models.OwnerKey) (bool, error) {
	if !owner.IsAnonymous() {
		return true, nil
	}
	remaining, err := q.Remaining(ctx, owner)
	if err != nil {
		return false, err
	}
	return remaining > 0, nil
}
