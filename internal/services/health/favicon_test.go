package health

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brayzonn/shortlink/internal/models"
)

// pngBytes минимальный валидный заголовок PNG, достаточный для сниффинга типа.
var pngBytes = []byte("\x89PNG\r\n\x1a\n" + "fake image payload")

func TestProbeFavicon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/favicon.ico" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/x-icon")
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	r := newTestRefresher()
	fav := r.probeFavicon(context.Background(), srv.URL+"/some/deep/page?q=1")

	require.NotNil(t, fav.SourceURL)
	assert.Equal(t, srv.URL+"/favicon.ico", *fav.SourceURL, "favicon is resolved against the origin, not the page path")
	assert.Equal(t, pngBytes, fav.Image)
	assert.Equal(t, "image/x-icon", fav.MIMEType)
}

func TestProbeFavicon_PathFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/favicon.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	}))
	defer srv.Close()

	r := newTestRefresher()
	fav := r.probeFavicon(context.Background(), srv.URL)

	require.NotNil(t, fav.SourceURL)
	assert.Equal(t, srv.URL+"/favicon.png", *fav.SourceURL)
	assert.Equal(t, "image/png", fav.MIMEType)
}

func TestProbeFavicon_RejectsHTMLMasquerade(t *testing.T) {
	// страница ошибки отданная с кодом 200 и типом image
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/x-icon")
		_, _ = w.Write([]byte("<html><body>Not Found</body></html>"))
	}))
	defer srv.Close()

	r := newTestRefresher()
	fav := r.probeFavicon(context.Background(), srv.URL)

	assert.Nil(t, fav.SourceURL)
	assert.Empty(t, fav.Image)
}

func TestProbeFavicon_RejectsOversized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
		_, _ = w.Write(bytes.Repeat([]byte{0}, models.MaxFaviconSize))
	}))
	defer srv.Close()

	r := newTestRefresher()
	fav := r.probeFavicon(context.Background(), srv.URL)

	assert.Nil(t, fav.SourceURL)
	assert.Empty(t, fav.Image)
}

func TestProbeFavicon_AllPathsExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := newTestRefresher()
	fav := r.probeFavicon(context.Background(), srv.URL)

	assert.Nil(t, fav.SourceURL)
	assert.Empty(t, fav.Image)
	assert.Empty(t, fav.MIMEType)
}

func TestNormalizeMIME(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        []byte
		want        string
	}{
		{name: "header wins", contentType: "image/x-icon", body: pngBytes, want: "image/x-icon"},
		{name: "charset stripped", contentType: "image/png; charset=utf-8", body: pngBytes, want: "image/png"},
		{name: "missing header sniffed", contentType: "", body: pngBytes, want: "image/png"},
		{name: "unsniffable falls back", contentType: "", body: []byte{0x00, 0x01, 0x02}, want: models.DefaultFaviconMIME},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMIME(tt.contentType, tt.body))
		})
	}
}
