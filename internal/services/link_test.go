package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brayzonn/shortlink/internal/db"
	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
	"github.com/Brayzonn/shortlink/internal/repositories/memstore"
)

func newTestLinkService(t *testing.T) (*LinkService, *memstore.LinkRepo) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := memstore.NewLinkRepo(db.NewMemStorage())
	baseURL := &url.URL{Scheme: "http", Host: "test.com"}
	return NewLinkService(repo, baseURL, logger), repo
}

func TestLinkService_Submit_Anonymous(t *testing.T) {
	svc, _ := newTestLinkService(t)
	owner := models.AnonymousOwner("v1")

	link, created, err := svc.Submit(context.Background(), owner, "https://example.com")
	require.NoError(t, err)
	require.True(t, created)

	assert.Len(t, link.Code, models.CodeLength)
	assert.Equal(t, "http://test.com/b/"+link.Code, link.ShortURL)
	assert.Equal(t, uint64(0), link.Clicks)
	assert.Equal(t, models.StatusActive, link.Status)

	remaining, remErr := svc.Remaining(context.Background(), owner)
	require.NoError(t, remErr)
	assert.Equal(t, 2, remaining)
}

func TestLinkService_Submit_Registered(t *testing.T) {
	svc, _ := newTestLinkService(t)
	owner := models.RegisteredOwner(42)

	// квота на зарегистрированных не распространяется
	for i := range MaxFreeLinks + 2 {
		link, created, err := svc.Submit(context.Background(), owner, fmt.Sprintf("https://example.com/page/%d", i))
		require.NoError(t, err)
		require.True(t, created)
		assert.Equal(t, "http://test.com/a/"+link.Code, link.ShortURL)
	}

	links, listErr := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, listErr)
	assert.Len(t, links, MaxFreeLinks+2)
}

func TestLinkService_Submit_Idempotent(t *testing.T) {
	svc, _ := newTestLinkService(t)
	owner := models.AnonymousOwner("v1")
	rawURL := "https://example.com/some/path"

	first, created, err := svc.Submit(context.Background(), owner, rawURL)
	require.NoError(t, err)
	require.True(t, created)

	second, createdAgain, errAgain := svc.Submit(context.Background(), owner, rawURL)
	require.NoError(t, errAgain)
	assert.False(t, createdAgain)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.ShortURL, second.ShortURL)

	links, listErr := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, listErr)
	assert.Len(t, links, 1)
}

func TestLinkService_Submit_SameDestinationDifferentOwners(t *testing.T) {
	svc, _ := newTestLinkService(t)
	rawURL := "https://example.com"

	first, _, err := svc.Submit(context.Background(), models.AnonymousOwner("v1"), rawURL)
	require.NoError(t, err)

	second, created, errSecond := svc.Submit(context.Background(), models.AnonymousOwner("v2"), rawURL)
	require.NoError(t, errSecond)
	assert.True(t, created, "dedup is per owner, another visitor gets its own record")
	assert.NotEqual(t, first.Code, second.Code)
}

func TestLinkService_Submit_InvalidURL(t *testing.T) {
	svc, _ := newTestLinkService(t)
	owner := models.AnonymousOwner("v1")

	tests := []struct {
		name   string
		rawURL string
	}{
		{name: "empty", rawURL: ""},
		{name: "spaces only", rawURL: "   "},
		{name: "no scheme", rawURL: "example.com/page"},
		{name: "bad scheme", rawURL: "ftp://example.com"},
		{name: "no host", rawURL: "https://"},
		{name: "space in host", rawURL: "https://exa mple.com"},
		{name: "root domain without zone", rawURL: "https://example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Submit(context.Background(), owner, tt.rawURL)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}

	links, listErr := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, listErr)
	assert.Empty(t, links, "validation failures must not create records")
}

func TestLinkService_QuotaBoundary(t *testing.T) {
	svc, _ := newTestLinkService(t)
	owner := models.AnonymousOwner("v1")

	firstURL := "https://example.com/page/0"
	for i := range MaxFreeLinks {
		_, _, err := svc.Submit(context.Background(), owner, fmt.Sprintf("https://example.com/page/%d", i))
		require.NoError(t, err)
	}

	remaining, remErr := svc.Remaining(context.Background(), owner)
	require.NoError(t, remErr)
	require.Equal(t, 0, remaining)

	// новая ссылка сверх квоты отклоняется
	_, _, overErr := svc.Submit(context.Background(), owner, "https://example.com/page/over")
	assert.ErrorIs(t, overErr, ErrQuotaExceeded)

	// повтор уже сокращенной проходит через дедупликацию
	link, created, dedupErr := svc.Submit(context.Background(), owner, firstURL)
	require.NoError(t, dedupErr)
	assert.False(t, created)
	assert.Equal(t, firstURL, link.Destination)

	links, listErr := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, listErr)
	assert.Len(t, links, MaxFreeLinks)
}

func TestLinkService_QuotaConcurrentSubmissions(t *testing.T) {
	svc, _ := newTestLinkService(t)
	owner := models.AnonymousOwner("v1")

	for i := range MaxFreeLinks - 1 {
		_, _, err := svc.Submit(context.Background(), owner, fmt.Sprintf("https://example.com/page/%d", i))
		require.NoError(t, err)
	}

	// на последнее свободное место претендуют два конкурентных запроса;
	// вставка с проверкой квоты атомарна, пройти должен ровно один
	const contenders = 2
	errs := make([]error, contenders)
	var wg sync.WaitGroup
	for i := range contenders {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _, errs[n] = svc.Submit(context.Background(), owner, fmt.Sprintf("https://example.com/race/%d", n))
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrQuotaExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	links, listErr := svc.ListByOwner(context.Background(), owner)
	require.NoError(t, listErr)
	assert.Len(t, links, MaxFreeLinks)
}

func TestLinkService_Resolve(t *testing.T) {
	svc, repo := newTestLinkService(t)
	owner := models.AnonymousOwner("v1")

	link, _, err := svc.Submit(context.Background(), owner, "https://example.com")
	require.NoError(t, err)

	const hits = 5
	for range hits {
		resolved, resolveErr := svc.Resolve(context.Background(), link.Code)
		require.NoError(t, resolveErr)
		assert.Equal(t, "https://example.com", resolved.Destination)
	}

	stored, getErr := repo.GetByCode(context.Background(), link.Code)
	require.NoError(t, getErr)
	assert.Equal(t, uint64(hits), stored.Clicks)
}

func TestLinkService_Resolve_NotFound(t *testing.T) {
	svc, _ := newTestLinkService(t)

	_, err := svc.Resolve(context.Background(), "zzz999aa")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestLinkService_Resolve_ConcurrentClicks(t *testing.T) {
	svc, repo := newTestLinkService(t)
	owner := models.AnonymousOwner("v1")

	link, _, err := svc.Submit(context.Background(), owner, "https://example.com")
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, resolveErr := svc.Resolve(context.Background(), link.Code)
			assert.NoError(t, resolveErr)
		}()
	}
	wg.Wait()

	stored, getErr := repo.GetByCode(context.Background(), link.Code)
	require.NoError(t, getErr)
	assert.Equal(t, uint64(workers), stored.Clicks, "no lost updates under concurrent resolution")
}

// collidingRepo подсовывает ErrDuplicateKey первым failures вставкам.
type collidingRepo struct {
	*memstore.LinkRepo
	mu       sync.Mutex
	failures int
	attempts int
}

func (r *collidingRepo) Create(ctx context.Context, link *models.Link) error {
	r.mu.Lock()
	r.attempts++
	reject := r.attempts <= r.failures
	r.mu.Unlock()

	if reject {
		return repositories.ErrDuplicateKey
	}
	return r.LinkRepo.Create(ctx, link)
}

func TestLinkService_Submit_RetriesOnDuplicateCode(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	baseURL := &url.URL{Scheme: "http", Host: "test.com"}

	repo := &collidingRepo{LinkRepo: memstore.NewLinkRepo(db.NewMemStorage()), failures: 2}
	svc := NewLinkService(repo, baseURL, logger)

	link, created, err := svc.Submit(context.Background(), models.RegisteredOwner(1), gofakeit.URL())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, link.Code)
	assert.Equal(t, 3, repo.attempts)
}

func TestLinkService_Submit_AllocationExhausted(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	baseURL := &url.URL{Scheme: "http", Host: "test.com"}

	repo := &collidingRepo{LinkRepo: memstore.NewLinkRepo(db.NewMemStorage()), failures: maxCodeAttempts}
	svc := NewLinkService(repo, baseURL, logger)

	_, _, err := svc.Submit(context.Background(), models.RegisteredOwner(1), gofakeit.URL())
	assert.ErrorIs(t, err, ErrAllocationExhausted)
	assert.Equal(t, maxCodeAttempts, repo.attempts)
}
