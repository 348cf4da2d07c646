// Package session keeps the bearer token between calls and carries it to
// backends through the request context.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/listenupapp/library-client/internal/store"
)

// tokenKey is the single well-known key the token is stored under.
const tokenKey = "token"

// TokenStore holds the current session's bearer token.
// Token presence is the only record of being signed in.
type TokenStore interface {
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// PersistentTokens keeps the token in an on-disk store so it survives restarts.
type PersistentTokens struct {
	store  *store.Store
	logger *slog.Logger
}

// NewPersistentTokens creates a token store backed by s.
func NewPersistentTokens(s *store.Store, logger *slog.Logger) *PersistentTokens {
	return &PersistentTokens{store: s, logger: logger}
}

// Token returns the stored token. Read failures are logged and treated as signed out.
func (p *PersistentTokens) Token(ctx context.Context) (string, bool) {
	var token string
	err := p.store.GetValue(ctx, tokenKey, &token)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && p.logger != nil {
			p.logger.Warn("failed to read stored token", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

// SetToken replaces the stored token.
func (p *PersistentTokens) SetToken(ctx context.Context, token string) error {
	return p.store.SetValue(ctx, tokenKey, token)
}

// Clear removes the stored token.
func (p *PersistentTokens) Clear(ctx context.Context) error {
	return p.store.DeleteValue(ctx, tokenKey)
}

// MemoryTokens keeps the token for the life of the process.
type MemoryTokens struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokens creates an empty in-memory token store.
func NewMemoryTokens() *MemoryTokens {
	return &MemoryTokens{}
}

// Token returns the held token.
func (m *MemoryTokens) Token(context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// SetToken replaces the held token.
func (m *MemoryTokens) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

// Clear drops the held token.
func (m *MemoryTokens) Clear(context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

type ctxKey struct{}

// WithToken returns a context carrying the bearer token.
// An empty token returns ctx unchanged.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFrom extracts the bearer token placed by WithToken.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ctxKey{}).(string)
	return token, ok && token != ""
}
