package health

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/repositories"
)

// faviconPaths стандартные пути иконки относительно origin, в порядке
// попыток. Первая успешная побеждает.
var faviconPaths = []string{
	"/favicon.ico",
	"/favicon.png",
	"/apple-touch-icon.png",
}

// probeFavicon пытается получить иконку для целевого URL. При исчерпании
// всех путей возвращается пустое обновление: вызывающий фиксирует временную
// метку, чтобы не опрашивать хост заново на каждом листинге.
func (r *Refresher) probeFavicon(ctx context.Context, destination string) repositories.FaviconUpdate {
	origin, originErr := extractOrigin(destination)
	if originErr != nil {
		return repositories.FaviconUpdate{}
	}

	for _, p := range faviconPaths {
		faviconURL := origin + p
		image, mimeType, fetchErr := r.fetchFavicon(ctx, faviconURL)
		if fetchErr != nil {
			continue
		}
		return repositories.FaviconUpdate{
			SourceURL: &faviconURL,
			Image:     image,
			MIMEType:  mimeType,
		}
	}
	return repositories.FaviconUpdate{}
}

// fetchFavicon скачивает иконку и проверяет что ответ действительно
// изображение, а не страница ошибки отданная с кодом 200.
func (r *Refresher) fetchFavicon(ctx context.Context, faviconURL string) ([]byte, string, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, faviconURL, nil)
	if reqErr != nil {
		return nil, "", reqErr
	}

	resp, err := r.faviconClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", errNotAnImage
	}

	// читаем на байт больше лимита чтобы распознать превышение размера
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, models.MaxFaviconSize+1))
	if readErr != nil {
		return nil, "", readErr
	}
	if len(body) == 0 || len(body) > models.MaxFaviconSize {
		return nil, "", errNotAnImage
	}

	contentType := resp.Header.Get("Content-Type")
	if !looksLikeImage(contentType, body) {
		return nil, "", errNotAnImage
	}

	return body, normalizeMIME(contentType, body), nil
}

// looksLikeImage отбраковывает HTML/XML замаскированный под иконку.
func looksLikeImage(contentType string, body []byte) bool {
	trimmed := strings.TrimLeft(string(body[:min(len(body), 64)]), " \t\r\n")
	if strings.HasPrefix(trimmed, "<") {
		return false
	}

	if contentType != "" {
		return strings.Contains(contentType, "image")
	}
	return strings.HasPrefix(http.DetectContentType(body), "image/")
}

func normalizeMIME(contentType string, body []byte) string {
	mimeType, _, _ := strings.Cut(contentType, ";")
	mimeType = strings.TrimSpace(mimeType)

	if mimeType == "" || !strings.Contains(mimeType, "image") {
		if sniffed := http.DetectContentType(body); strings.HasPrefix(sniffed, "image/") {
			return sniffed
		}
		return models.DefaultFaviconMIME
	}
	return mimeType
}

// extractOrigin возвращает scheme://host целевого URL.
func extractOrigin(destination string) (string, error) {
	parsed, err := url.Parse(destination)
	if err != nil {
		return "", err
	}
	origin := url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	return origin.String(), nil
}
