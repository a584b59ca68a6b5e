package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Brayzonn/shortlink/internal/db"
	"github.com/Brayzonn/shortlink/internal/db/memory"
	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
)

// LinkRepo репозиторий ссылок поверх in-memory хранилища. Записи хранятся
// по ключу кода ссылки, что дает O(1) поиск при редиректе.
type LinkRepo struct {
	s      *db.MemoryStorage
	mu     sync.Mutex
	nextID uint
}

func NewLinkRepo(store *db.MemoryStorage) *LinkRepo {
	return &LinkRepo{
		s: store,
	}
}

func (r *LinkRepo) Create(_ context.Context, link *models.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.create(link)
}

// CreateAnonymousBounded создает анонимную ссылку при условии что посетитель
// еще не исчерпал квоту max. Подсчет и вставка выполняются под одним мьютексом,
// две конкурентные вставки не могут превысить квоту.
func (r *LinkRepo) CreateAnonymousBounded(_ context.Context, link *models.Link, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if link.VisitorUUID == nil {
		return repositories.ErrUnknown
	}

	owned := memory.FilterAll[models.Link](r.s.MStorage, func(val models.Link) bool {
		return val.VisitorUUID != nil && *val.VisitorUUID == *link.VisitorUUID
	})
	if len(owned) >= max {
		return repositories.ErrQuotaExceeded
	}
	return r.create(link)
}

func (r *LinkRepo) GetByCode(_ context.Context, code string) (*models.Link, error) {
	link, err := memory.Get[models.Link](code, r.s.MStorage)
	if err != nil {
		return nil, convertErrorType(err)
	}
	return link, nil
}

func (r *LinkRepo) GetByDestination(_ context.Context, owner models.OwnerKey, destination string) (*models.Link, error) {
	found := memory.FilterAll[models.Link](r.s.MStorage, func(val models.Link) bool {
		return owner.Owns(&val) && val.Destination == destination
	})
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	sortByID(found)
	return &found[0], nil
}

// ListByOwner возвращает ссылки владельца в порядке вставки.
func (r *LinkRepo) ListByOwner(_ context.Context, owner models.OwnerKey) ([]models.Link, error) {
	found := memory.FilterAll[models.Link](r.s.MStorage, func(val models.Link) bool {
		return owner.Owns(&val)
	})
	sortByID(found)
	return found, nil
}

func (r *LinkRepo) CountByOwner(_ context.Context, owner models.OwnerKey) (int64, error) {
	found := memory.FilterAll[models.Link](r.s.MStorage, func(val models.Link) bool {
		return owner.Owns(&val)
	})
	return int64(len(found)), nil
}

// IncrementClicks увеличивает счетчик переходов на единицу. Чтение и запись
// выполняются под мьютексом репозитория, конкурентные инкременты не теряются.
func (r *LinkRepo) IncrementClicks(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, err := r.findByID(id)
	if err != nil {
		return err
	}

	link.Clicks++
	link.UpdatedAt = time.Now().UTC()
	if updErr := memory.Update(link.Code, link, r.s.MStorage); updErr != nil {
		return convertErrorType(updErr)
	}
	return nil
}

func (r *LinkRepo) UpdateStatus(_ context.Context, id uint, status models.LinkStatus, checkedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, err := r.findByID(id)
	if err != nil {
		return err
	}

	link.Status = status
	link.LastStatusCheck = &checkedAt
	link.UpdatedAt = time.Now().UTC()
	if updErr := memory.Update(link.Code, link, r.s.MStorage); updErr != nil {
		return convertErrorType(updErr)
	}
	return nil
}

func (r *LinkRepo) UpdateFavicon(_ context.Context, id uint, fav repositories.FaviconUpdate, checkedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, err := r.findByID(id)
	if err != nil {
		return err
	}

	link.FaviconURL = fav.SourceURL
	link.FaviconImage = fav.Image
	link.FaviconMIME = fav.MIMEType
	link.FaviconLastChecked = &checkedAt
	link.UpdatedAt = time.Now().UTC()
	if updErr := memory.Update(link.Code, link, r.s.MStorage); updErr != nil {
		return convertErrorType(updErr)
	}
	return nil
}

// create вставляет запись. Вызывающий обязан держать r.mu.
func (r *LinkRepo) create(link *models.Link) error {
	r.nextID++
	link.ID = r.nextID

	now := time.Now().UTC()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = now
	}
	link.UpdatedAt = now

	if err := memory.Set(link.Code, link, r.s.MStorage); err != nil {
		r.nextID--
		return convertErrorType(err)
	}
	return nil
}

// findByID ищет запись по первичному ключу. Вызывающий обязан держать r.mu.
func (r *LinkRepo) findByID(id uint) (*models.Link, error) {
	found := memory.FilterAll[models.Link](r.s.MStorage, func(val models.Link) bool {
		return val.ID == id
	})
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &found[0], nil
}

func sortByID(links []models.Link) {
	sort.Slice(links, func(i, j int) bool {
		return links[i].ID < links[j].ID
	})
}
