package remote

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/logger"
	"github.com/listenupapp/library-client/internal/session"
)

// fakeAPI is a minimal stand-in for the library API.
type fakeAPI struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
}

func (f *fakeAPI) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, string(body))
}

func (f *fakeAPI) last() (*http.Request, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.requests)
	return f.requests[n-1], f.bodies[n-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := json.Marshal(v)
	_, _ = w.Write(data)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok", "data": data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func setupRemote(t *testing.T) (*Backend, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api.record(r)
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			ok(w, map[string]any{
				"token": "tok-123",
				"user":  map[string]any{"_id": "u1", "name": "John", "email": "john@email.com", "role": "user"},
			})
		})
		r.Get("/auth/profile", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-123" {
				fail(w, http.StatusUnauthorized, "token missing or invalid")
				return
			}
			ok(w, map[string]any{"_id": "u1", "name": "John", "role": "user"})
		})
		r.Post("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.Get("/books", func(w http.ResponseWriter, r *http.Request) {
			ok(w, []map[string]any{{
				"_id":          "7",
				"title":        "Clean Code",
				"publishedAt":  "2008-08-01T00:00:00.000Z",
				"availability": map[string]int{"total": 5, "available": 3},
			}})
		})
		r.Get("/books/search", func(w http.ResponseWriter, r *http.Request) {
			ok(w, []map[string]any{{"_id": "1", "title": r.URL.Query().Get("q")}})
		})
		r.Get("/books/{id}", func(w http.ResponseWriter, r *http.Request) {
			fail(w, http.StatusNotFound, "Book "+chi.URLParam(r, "id")+" not found")
		})
		r.Get("/authors", func(w http.ResponseWriter, r *http.Request) {
			ok(w, map[string]any{
				"authors":    []map[string]any{{"_id": "1-2", "name": "John Smith (2)"}},
				"pagination": map[string]any{"page": 2, "limit": 5, "total": 60, "totalPages": 12, "hasNext": true, "hasPrev": true},
			})
		})
		r.Post("/borrowed", func(w http.ResponseWriter, r *http.Request) {
			fail(w, http.StatusUnprocessableEntity, "No copies available")
		})
		r.Put("/borrowed/{id}/return", func(w http.ResponseWriter, r *http.Request) {
			ok(w, map[string]any{"_id": chi.URLParam(r, "id"), "status": "returned"})
		})
		r.Delete("/reviews/{id}", func(w http.ResponseWriter, r *http.Request) {
			ok(w, nil)
		})
		r.Get("/admin/stats", func(w http.ResponseWriter, r *http.Request) {
			fail(w, http.StatusForbidden, "")
		})
		r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "backend hiccup"})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	b, err := New(Options{BaseURL: srv.URL + "/", RPS: 1000, Burst: 1000, Logger: logger.Discard()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown() })
	return b, api
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New(Options{BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestLogin_SendsCredentials(t *testing.T) {
	b, api := setupRemote(t)

	res, err := b.Login(t.Context(), "john@email.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", res.Token)
	assert.Equal(t, domain.RoleUser, res.User.Role)

	req, body := api.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.JSONEq(t, `{"email":"john@email.com","password":"password123"}`, body)
}

func TestProfile_BearerToken(t *testing.T) {
	b, _ := setupRemote(t)

	_, err := b.Profile(t.Context())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
	assert.Equal(t, "token missing or invalid", errors.From(err).Message)

	user, err := b.Profile(session.WithToken(t.Context(), "tok-123"))
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestLogout_EmptyBody(t *testing.T) {
	b, _ := setupRemote(t)
	assert.NoError(t, b.Logout(t.Context()))
}

func TestListBooks_FilterQuery(t *testing.T) {
	b, api := setupRemote(t)

	books, err := b.ListBooks(t.Context(), backend.BookFilter{Search: "clean code", Category: "4"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Clean Code", books[0].Title)
	assert.Equal(t, 2008, books[0].PublishedAt.Year())
	assert.Equal(t, 3, books[0].Availability.Available)

	req, _ := api.last()
	assert.Equal(t, "clean code", req.URL.Query().Get("search"))
	assert.Equal(t, "4", req.URL.Query().Get("category"))
	assert.False(t, req.URL.Query().Has("author"))
}

func TestSearchBooks_EscapesQuery(t *testing.T) {
	b, _ := setupRemote(t)

	books, err := b.SearchBooks(t.Context(), "fast & slow")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "fast & slow", books[0].Title)
}

func TestAuthorsPage(t *testing.T) {
	b, api := setupRemote(t)

	page, err := b.AuthorsPage(t.Context(), backend.PageRequest{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 60, page.Pagination.Total)
	assert.Equal(t, "1-2", page.Authors[0].ID)

	req, _ := api.last()
	assert.Equal(t, "2", req.URL.Query().Get("page"))
	assert.Equal(t, "5", req.URL.Query().Get("limit"))

	_, err = b.AuthorsPage(t.Context(), backend.PageRequest{Page: 0, Limit: 5})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestStatusMapping(t *testing.T) {
	b, _ := setupRemote(t)

	t.Run("not found keeps the server message", func(t *testing.T) {
		_, err := b.GetBook(t.Context(), "42")
		assert.True(t, errors.Is(err, errors.ErrNotFound))
		assert.Equal(t, "Book 42 not found", errors.From(err).Message)
	})

	t.Run("unavailable", func(t *testing.T) {
		_, err := b.Borrow(t.Context(), "2")
		assert.True(t, errors.Is(err, errors.ErrUnavailable))
	})

	t.Run("forbidden falls back to status text", func(t *testing.T) {
		_, err := b.Stats(t.Context())
		assert.True(t, errors.Is(err, errors.ErrForbidden))
		assert.Equal(t, http.StatusText(http.StatusForbidden), errors.From(err).Message)
	})

	t.Run("unsuccessful envelope", func(t *testing.T) {
		err := b.get(t.Context(), "/api/broken", nil, nil)
		assert.True(t, errors.Is(err, errors.ErrInternal))
	})
}

func TestReturnAndDelete_Paths(t *testing.T) {
	b, api := setupRemote(t)

	loan, err := b.Return(t.Context(), "loan 1")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, loan.Status)
	assert.Equal(t, "loan 1", loan.ID)

	req, _ := api.last()
	assert.Equal(t, http.MethodPut, req.Method)

	require.NoError(t, b.DeleteReview(t.Context(), "r1"))
	req, _ = api.last()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/reviews/r1", req.URL.Path)
}

func TestContextDeadline(t *testing.T) {
	b, _ := setupRemote(t)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	err := b.get(ctx, "/api/slow", nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, errors.Is(errors.From(err), errors.ErrTimeout))
}

func TestFamily(t *testing.T) {
	tests := map[string]string{
		"/api/books/7/reviews":   "books",
		"/api/auth/login":        "auth",
		"/api/admin/borrowed":    "admin",
		"/api/borrowed/1/return": "borrowed",
		"api/categories/1/books": "categories",
	}
	for path, want := range tests {
		assert.Equal(t, want, family(path), path)
	}
}
