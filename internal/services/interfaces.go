package services

import (
	"context"
	"time"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
)

// LinkRepository описывает репозиторий коротких ссылок.
type LinkRepository interface {
	// Create создает запись. Возвращает repositories.ErrDuplicateKey при
	// коллизии кода.
	Create(ctx context.Context, link *models.Link) error
	// CreateAnonymousBounded создает анонимную запись если квота посетителя
	// не исчерпана, иначе возвращает repositories.ErrQuotaExceeded.
	// Проверка и вставка атомарны на уровне хранилища.
	CreateAnonymousBounded(ctx context.Context, link *models.Link, max int) error
	// GetByCode находит запись по коду короткой ссылки.
	GetByCode(ctx context.Context, code string) (*models.Link, error)
	// GetByDestination находит запись владельца по целевому URL.
	GetByDestination(ctx context.Context, owner models.OwnerKey, destination string) (*models.Link, error)
	// ListByOwner возвращает записи владельца в порядке вставки.
	ListByOwner(ctx context.Context, owner models.OwnerKey) ([]models.Link, error)
	// CountByOwner возвращает число записей владельца.
	CountByOwner(ctx context.Context, owner models.OwnerKey) (int64, error)
	// IncrementClicks атомарно увеличивает счетчик переходов.
	IncrementClicks(ctx context.Context, id uint) error
	// UpdateStatus частично обновляет статус проверки ссылки.
	UpdateStatus(ctx context.Context, id uint, status models.LinkStatus, checkedAt time.Time) error
	// UpdateFavicon частично обновляет иконку ссылки.
	UpdateFavicon(ctx context.Context, id uint, fav repositories.FaviconUpdate, checkedAt time.Time) error
}

// UserRepository описывает репозиторий пользователей.
type UserRepository interface {
	// Create создает пользователя. Возвращает repositories.ErrDuplicateKey
	// если email уже занят.
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}
