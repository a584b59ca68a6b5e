// Package health периодически перепроверяет доступность целевых URL и
// обновляет их иконки. Проверки запускаются лениво перед выдачей листинга,
// с ограничением числа одновременных исходящих запросов и кешированием
// результата на записи самой ссылки.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
	"github.com/sirupsen/logrus"
)

const (
	// StatusTTL срок годности результата проверки доступности.
	StatusTTL = 24 * time.Hour
	// FaviconTTL срок годности сохраненной иконки.
	FaviconTTL = 7 * 24 * time.Hour

	// DefaultBatchSize число одновременных исходящих проверок.
	DefaultBatchSize = 3

	statusProbeTimeout  = 5 * time.Second
	faviconProbeTimeout = 3 * time.Second

	defaultRateLimitBackoff = 2 * time.Second
)

// LinkHealthStore подмножество репозитория ссылок для записи результатов
// проверок.
type LinkHealthStore interface {
	UpdateStatus(ctx context.Context, id uint, status models.LinkStatus, checkedAt time.Time) error
	UpdateFavicon(ctx context.Context, id uint, fav repositories.FaviconUpdate, checkedAt time.Time) error
}

// Refresher обновляет статус и иконку устаревших записей. Свежие записи
// (в пределах TTL) не опрашиваются повторно.
type Refresher struct {
	store         LinkHealthStore
	statusClient  *http.Client
	faviconClient *http.Client
	logger        *logrus.Entry

	batchSize  int
	statusTTL  time.Duration
	faviconTTL time.Duration
	backoff    time.Duration

	now func() time.Time
}

// Option настраивает Refresher.
type Option func(*Refresher)

// WithBatchSize задает число одновременных проверок.
func WithBatchSize(n int) Option {
	return func(r *Refresher) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithTTL задает сроки годности статуса и иконки.
func WithTTL(status, favicon time.Duration) Option {
	return func(r *Refresher) {
		r.statusTTL = status
		r.faviconTTL = favicon
	}
}

// WithBackoff задает паузу перед повтором после 429.
func WithBackoff(d time.Duration) Option {
	return func(r *Refresher) {
		r.backoff = d
	}
}

// WithClients подменяет HTTP клиенты исходящих проверок.
func WithClients(status, favicon *http.Client) Option {
	return func(r *Refresher) {
		r.statusClient = status
		r.faviconClient = favicon
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(r *Refresher) {
		r.now = now
	}
}

func NewRefresher(store LinkHealthStore, logger *logrus.Logger, opts ...Option) *Refresher {
	r := &Refresher{
		store:         store,
		statusClient:  &http.Client{Timeout: statusProbeTimeout},
		faviconClient: &http.Client{Timeout: faviconProbeTimeout},
		logger:        logger.WithField("module", "services/health"),
		batchSize:     DefaultBatchSize,
		statusTTL:     StatusTTL,
		faviconTTL:    FaviconTTL,
		backoff:       defaultRateLimitBackoff,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RefreshAll обновляет устаревшие записи листинга и возвращает обогащенный
// срез. Записи обрабатываются пачками фиксированного размера: внутри пачки
// проверки идут параллельно, пачки последовательно. Ошибка проверки или
// записи результата деградирует только свою запись и никогда не срывает
// листинг целиком.
func (r *Refresher) RefreshAll(ctx context.Context, links []models.Link) []models.Link {
	// обрыв клиента не должен отменять уже начатые проверки: иначе отмена
	// классифицировалась бы как недоступность и кешировалась на весь TTL.
	// Таймауты HTTP клиентов ограничивают время жизни проверок.
	ctx = context.WithoutCancel(ctx)

	out := make([]models.Link, len(links))
	copy(out, links)

	for start := 0; start < len(out); start += r.batchSize {
		end := start + r.batchSize
		if end > len(out) {
			end = len(out)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(l *models.Link) {
				defer wg.Done()
				r.refreshOne(ctx, l)
			}(&out[i])
		}
		wg.Wait()
	}
	return out
}

func (r *Refresher) refreshOne(ctx context.Context, link *models.Link) {
	if r.needsStatusRefresh(link) {
		status := r.probeStatus(ctx, link.Destination)
		checkedAt := r.now().UTC()

		link.Status = status
		link.LastStatusCheck = &checkedAt

		if err := r.store.UpdateStatus(ctx, link.ID, status, checkedAt); err != nil {
			r.logger.WithError(err).Errorf("failed to persist status for link %d", link.ID)
		}
	}

	if r.needsFaviconRefresh(link) {
		fav := r.probeFavicon(ctx, link.Destination)
		checkedAt := r.now().UTC()

		link.FaviconURL = fav.SourceURL
		link.FaviconImage = fav.Image
		link.FaviconMIME = fav.MIMEType
		link.FaviconLastChecked = &checkedAt

		if err := r.store.UpdateFavicon(ctx, link.ID, fav, checkedAt); err != nil {
			r.logger.WithError(err).Errorf("failed to persist favicon for link %d", link.ID)
		}
	}
}

func (r *Refresher) needsStatusRefresh(link *models.Link) bool {
	if link.LastStatusCheck == nil {
		return true
	}
	return r.now().Sub(*link.LastStatusCheck) > r.statusTTL
}

// needsFaviconRefresh смотрит только на временную метку: неудачная попытка
// тоже фиксируется меткой, иначе каждый листинг заново ходил бы за иконкой
// к хосту у которого ее нет.
func (r *Refresher) needsFaviconRefresh(link *models.Link) bool {
	if link.FaviconLastChecked == nil {
		return true
	}
	return r.now().Sub(*link.FaviconLastChecked) > r.faviconTTL
}
