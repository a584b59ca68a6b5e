package health

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/Brayzonn/shortlink/internal/models"
)

// probeStatus проверяет доступность целевого URL и классифицирует итог в
// статус ссылки. Проверка легковесная: HEAD, при 405 повтор через GET.
// На 429 делается ровно один повтор после паузы, при повторном 429
// возвращается StatusRateLimited.
func (r *Refresher) probeStatus(ctx context.Context, destination string) models.LinkStatus {
	code, err := r.doProbe(ctx, destination)
	if err != nil {
		return classifyNetError(err)
	}

	if code == http.StatusTooManyRequests {
		select {
		case <-time.After(r.backoff):
		case <-ctx.Done():
			return models.StatusRateLimited
		}

		code, err = r.doProbe(ctx, destination)
		if err != nil {
			return classifyNetError(err)
		}
		if code == http.StatusTooManyRequests {
			return models.StatusRateLimited
		}
	}

	return classifyStatusCode(code)
}

// doProbe выполняет HEAD запрос, при 405 повторяет его методом GET.
func (r *Refresher) doProbe(ctx context.Context, destination string) (int, error) {
	code, err := r.request(ctx, http.MethodHead, destination)
	if err != nil {
		return 0, err
	}
	if code == http.StatusMethodNotAllowed {
		return r.request(ctx, http.MethodGet, destination)
	}
	return code, nil
}

func (r *Refresher) request(ctx context.Context, method, destination string) (int, error) {
	req, reqErr := http.NewRequestWithContext(ctx, method, destination, nil)
	if reqErr != nil {
		return 0, reqErr
	}

	resp, err := r.statusClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

func classifyStatusCode(code int) models.LinkStatus {
	switch {
	case code == http.StatusNotFound:
		return models.StatusNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return models.StatusRestricted
	case code == http.StatusTooManyRequests:
		return models.StatusRateLimited
	case code >= http.StatusInternalServerError:
		return models.StatusServerError
	case code >= http.StatusOK && code < http.StatusBadRequest:
		return models.StatusActive
	default:
		return models.StatusInactive
	}
}

func classifyNetError(err error) models.LinkStatus {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return models.StatusDomainNotFound
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return models.StatusConnectionRefused
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.StatusTimeout
	}

	return models.StatusUnknown
}
