// Package remote implements the backend over the library's HTTP JSON API.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/id"
	"github.com/listenupapp/library-client/internal/ratelimit"
	"github.com/listenupapp/library-client/internal/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultRPS     = 10.0
	defaultBurst   = 20
	defaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of a failed response is read for its message.
	maxErrorBody = 64 << 10
)

// Options configures a remote Backend.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client // defaults to a client with a 30s timeout
	RPS        float64
	Burst      int
	Logger     *slog.Logger
}

// Backend is a rate-limited client for the library API.
type Backend struct {
	baseURL *url.URL
	http    *http.Client
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

var _ backend.Backend = (*Backend)(nil)

// New creates a remote backend rooted at opts.BaseURL.
func New(opts Options) (*Backend, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", opts.BaseURL)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if opts.RPS <= 0 {
		opts.RPS = defaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Backend{
		baseURL: base,
		http:    opts.HTTPClient,
		limiter: ratelimit.New(opts.RPS, opts.Burst),
		logger:  opts.Logger,
	}, nil
}

// Shutdown stops the rate limiter's cleanup goroutine.
func (b *Backend) Shutdown() error {
	b.limiter.Stop()
	b.http.CloseIdleConnections()
	return nil
}

// envelope is the uniform response body of the API.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
}

// do sends one request and decodes the envelope's data into out (when non-nil).
// path is relative to the base URL and may carry a query.
func (b *Backend) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := b.limiter.Wait(ctx, family(path)); err != nil {
		return err
	}

	u := b.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", id.RequestID())
	if token, ok := session.TokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	b.logger.Debug("api request", "method", method, "path", path)

	resp, err := b.http.Do(req)
	if err != nil {
		// Surface the context's own error so callers see TIMEOUT or CANCELED.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if err == io.EOF && out == nil {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return errors.Internal(firstNonEmpty(env.Message, "request was not successful"))
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

func (b *Backend) get(ctx context.Context, path string, query url.Values, out any) error {
	return b.do(ctx, http.MethodGet, path, query, nil, out)
}

func (b *Backend) post(ctx context.Context, path string, body, out any) error {
	return b.do(ctx, http.MethodPost, path, nil, body, out)
}

func (b *Backend) put(ctx context.Context, path string, body, out any) error {
	return b.do(ctx, http.MethodPut, path, nil, body, out)
}

func (b *Backend) delete(ctx context.Context, path string) error {
	return b.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// statusError maps a non-2xx response into the error taxonomy, keeping the
// server's message when the body carries one.
func statusError(resp *http.Response) error {
	var env envelope
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if len(data) > 0 {
		_ = json.Unmarshal(data, &env)
	}
	return errors.FromStatus(resp.StatusCode, env.Message)
}

// family returns the resource family of an API path, used as the rate limit key.
// "/api/books/7/reviews" belongs to "books".
func family(path string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(path, "/"), "api/")
	head, _, _ := strings.Cut(rest, "/")
	return head
}

// escape quotes one path segment.
func escape(segment string) string {
	return url.PathEscape(segment)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
