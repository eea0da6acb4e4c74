package game

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(snowPayload))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)

	data, err := f.Fetch(context.Background(), srv.URL+"/effects.json")
	require.NoError(t, err)
	assert.Equal(t, snowPayload, string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), addr)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestWebSocketFetcher(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(snowPayload))
		// 等客户端关闭
		conn.ReadMessage()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/effects?_t=1"
	data, err := (&WebSocketFetcher{Timeout: time.Second}).Fetch(context.Background(), wsURL)
	require.NoError(t, err)
	assert.Equal(t, snowPayload, string(data))
}

func TestWebSocketFetcher_HandshakeFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, err := (&WebSocketFetcher{Timeout: time.Second}).Fetch(context.Background(), wsURL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effects.json")
	require.NoError(t, os.WriteFile(path, []byte(snowPayload), 0o644))

	data, err := FileFetcher{}.Fetch(context.Background(), withCacheBuster("file://"+path, t0))
	require.NoError(t, err)
	assert.Equal(t, snowPayload, string(data))

	_, err = FileFetcher{}.Fetch(context.Background(), "file://"+path+".missing")
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestNewFetcher_Scheme(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://example.com/a.json", want: "*game.HTTPFetcher"},
		{url: "http://example.com/a.json", want: "*game.HTTPFetcher"},
		{url: "wss://example.com/ws", want: "*game.WebSocketFetcher"},
		{url: "file:///tmp/a.json", want: "game.FileFetcher"},
		{url: "ftp://example.com/a.json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			f, err := NewFetcher(tt.url, time.Second)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, typeName(f))
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *HTTPFetcher:
		return "*game.HTTPFetcher"
	case *WebSocketFetcher:
		return "*game.WebSocketFetcher"
	case FileFetcher:
		return "game.FileFetcher"
	}
	return "unknown"
}

func TestWithCacheBuster(t *testing.T) {
	got := withCacheBuster("https://example.com/e.json?_t=1&a=b", time.UnixMilli(1735000000000))
	assert.Contains(t, got, "_t=1735000000000")
	assert.Contains(t, got, "a=b")
	assert.NotContains(t, got, "_t=1&")
}
