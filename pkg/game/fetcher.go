package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// ErrFetch 获取远程配置失败（网络、状态码、读取）
var ErrFetch = errors.New("config fetch failed")

// maxConfigSize 配置原文的大小上限
const maxConfigSize = 1 << 20

// Fetcher 获取配置原文
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc 把函数适配为 Fetcher
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// NewFetcher 按 URL 协议选择获取方式
//
// 参数:
//   - rawURL: http(s)://、ws(s):// 或 file:// 地址
//   - timeout: 单次获取的超时
func NewFetcher(rawURL string, timeout time.Duration) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse config url: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return NewHTTPFetcher(timeout), nil
	case "ws", "wss":
		return &WebSocketFetcher{Timeout: timeout}, nil
	case "file":
		return FileFetcher{}, nil
	}
	return nil, fmt.Errorf("unsupported config url scheme %q", u.Scheme)
}

// HTTPFetcher 通过 HTTP GET 获取配置
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrFetch, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: response larger than %d bytes", ErrFetch, maxConfigSize)
	}
	return data, nil
}

// WebSocketFetcher 连接 WebSocket 并读取一条文本消息作为配置
type WebSocketFetcher struct {
	Timeout time.Duration
	Dialer  *websocket.Dialer
}

func (f *WebSocketFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	dialer := f.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: f.Timeout}
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	conn, resp, err := dialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: websocket handshake HTTP %d: %v", ErrFetch, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer conn.Close()

	conn.SetReadLimit(maxConfigSize)
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	msgType, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("%w: read message: %v", ErrFetch, err)
	}
	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("%w: unexpected websocket message type %d", ErrFetch, msgType)
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return data, nil
}

// FileFetcher 读取本地文件（file:// 地址，查询参数被忽略）
type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	path := u.Path
	if u.Host != "" && u.Host != "localhost" {
		path = u.Host + u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}

// withCacheBuster 追加 _t=<毫秒时间戳> 查询参数
func withCacheBuster(rawURL string, now time.Time) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("_t", fmt.Sprint(now.UnixMilli()))
	u.RawQuery = q.Encode()
	return u.String()
}
