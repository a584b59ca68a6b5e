package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/Brayzonn/shortlink/internal/db"
	"github.com/Brayzonn/shortlink/internal/db/memory"
	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
)

// UserRepo репозиторий пользователей поверх in-memory хранилища. Записи
// хранятся по ключу email (email уникален).
type UserRepo struct {
	s      *db.MemoryStorage
	mu     sync.Mutex
	nextID uint
}

func NewUserRepo(store *db.MemoryStorage) *UserRepo {
	return &UserRepo{
		s: store,
	}
}

func (r *UserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := memory.Set(user.Email, user, r.s.MStorage); err != nil {
		r.nextID--
		return convertErrorType(err)
	}
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, err := memory.Get[models.User](email, r.s.MStorage)
	if err != nil {
		return nil, convertErrorType(err)
	}
	return user, nil
}

func (r *UserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	found := memory.FilterAll[models.User](r.s.MStorage, func(val models.User) bool {
		return val.ID == id
	})
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &found[0], nil
}
