package services

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// maxCodeAttempts ограничивает число повторных генераций кода при коллизии.
const maxCodeAttempts = 5

// hostnameRegex в соответствии с `RFC 1123` за исключением - исключает корневые доменные имена (без зоны).
var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9](-?[a-zA-Z0-9])*\.)+([a-zA-Z0-9](-?[a-zA-Z0-9])*)$`)

// LinkService отвечает за создание, разрешение и листинг коротких ссылок.
type LinkService struct {
	repo    LinkRepository
	quota   *Quota
	baseURL *url.URL
	logger  *logrus.Entry
}

func NewLinkService(repo LinkRepository, baseURL *url.URL, logger *logrus.Logger) *LinkService {
	return &LinkService{
		repo:    repo,
		quota:   NewQuota(repo),
		baseURL: baseURL,
		logger:  logger.WithField("module", "services/link"),
	}
}

// Submit проводит запрос на сокращение ссылки: валидация, дедупликация по
// владельцу и целевому URL, квота для анонимных посетителей, генерация кода
// с повтором при коллизии, вставка.
//
// Повторная отправка уже сокращенного URL возвращает существующую запись
// (created=false) и не считается ошибкой, в том числе при исчерпанной квоте.
func (s *LinkService) Submit(ctx context.Context, owner models.OwnerKey, rawURL string) (*models.Link, bool, error) {
	parsedURL, parseErr := validateURL(rawURL)
	if parseErr != nil {
		return nil, false, errors.Wrap(ErrInvalidURL, parseErr.Error())
	}
	destination := parsedURL.String()

	existing, existingErr := s.repo.GetByDestination(ctx, owner, destination)
	if existingErr == nil {
		return existing, false, nil
	}
	if !errors.Is(existingErr, repositories.ErrNotFound) {
		s.logger.WithError(existingErr).Error("dedup lookup failed")
		return nil, false, ErrUnknown
	}

	for range maxCodeAttempts {
		code := GenerateCode()
		link := &models.Link{
			UserID:      owner.UserID,
			VisitorUUID: owner.VisitorUUID,
			Destination: destination,
			Code:        code,
			ShortURL:    s.buildShortURL(owner, code),
			Clicks:      0,
			Status:      models.StatusActive,
		}

		var createErr error
		if owner.IsAnonymous() {
			createErr = s.repo.CreateAnonymousBounded(ctx, link, MaxFreeLinks)
		} else {
			createErr = s.repo.Create(ctx, link)
		}

		switch {
		case createErr == nil:
			return link, true, nil
		case errors.Is(createErr, repositories.ErrDuplicateKey):
			continue
		case errors.Is(createErr, repositories.ErrQuotaExceeded):
			return nil, false, ErrQuotaExceeded
		default:
			s.logger.WithError(createErr).Errorf("failed to create link for %s", destination)
			return nil, false, ErrUnknown
		}
	}
	return nil, false, errors.Wrapf(ErrAllocationExhausted, "gave up after %d attempts", maxCodeAttempts)
}

// Resolve находит запись по коду и увеличивает счетчик переходов ровно на
// единицу. Ошибка инкремента логируется и не мешает редиректу.
func (s *LinkService) Resolve(ctx context.Context, code string) (*models.Link, error) {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "code %s not found", code)
		}
		s.logger.WithError(err).Errorf("failed to resolve code %s", code)
		return nil, ErrUnknown
	}

	if incErr := s.repo.IncrementClicks(ctx, link.ID); incErr != nil {
		s.logger.WithError(incErr).Errorf("failed to increment clicks for code %s", code)
	} else {
		link.Clicks++
	}
	return link, nil
}

// ListByOwner возвращает ссылки владельца в порядке вставки.
func (s *LinkService) ListByOwner(ctx context.Context, owner models.OwnerKey) ([]models.Link, error) {
	links, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.WithError(err).Error("failed to list links")
		return nil, ErrUnknown
	}
	return links, nil
}

// Remaining возвращает остаток квоты анонимного владельца.
func (s *LinkService) Remaining(ctx context.Context, owner models.OwnerKey) (int, error) {
	return s.quota.Remaining(ctx, owner)
}

func (s *LinkService) buildShortURL(owner models.OwnerKey, code string) string {
	base := strings.TrimRight(s.baseURL.String(), "/")
	return base + owner.PathPrefix() + code
}

// validateURL проверяет, является ли строка корректным абсолютным URL.
func validateURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errors.New("empty URL")
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("URL must have http or https scheme")
	}

	if parsedURL.Host == "" {
		return nil, errors.New("URL must have a host")
	}

	hostname := parsedURL.Hostname()
	if hostname != "localhost" && !hostnameRegex.MatchString(hostname) {
		return nil, errors.New("invalid hostname")
	}

	return parsedURL, nil
}
