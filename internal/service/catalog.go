// Package service composes data access calls and UI state into the
// operations views run: joined reads, reads with a bundled fallback and
// checkout of the borrow cart.
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/listenupapp/library-client/internal/api"
	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/backend/fixture"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/uistore"
)

// AuthorDetail is an author together with their books.
type AuthorDetail struct {
	Author *domain.Author `json:"author"`
	Books  []domain.Book  `json:"books"`
}

// AuthorsPage is a page of authors. Warning is set when the page was served
// from the bundled fallback because the backend failed.
type AuthorsPage struct {
	*domain.AuthorPage
	Warning string `json:"warning,omitempty"`
}

// CatalogService serves the catalog views.
type CatalogService struct {
	client   *api.Client
	ui       *uistore.Store
	fallback *fixture.Directory
	logger   *slog.Logger
}

// NewCatalogService creates a catalog service. fallbackTotal sizes the bundled
// author directory used when the author listing cannot be fetched.
func NewCatalogService(client *api.Client, ui *uistore.Store, fallbackTotal int, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		client:   client,
		ui:       ui,
		fallback: fixture.NewDirectory(fixture.Authors(), fallbackTotal),
		logger:   logger,
	}
}

// AuthorDetail fetches an author and their books together.
// Both must succeed; a failure of either fails the whole call.
func (s *CatalogService) AuthorDetail(ctx context.Context, authorID string) (*AuthorDetail, error) {
	g, ctx := errgroup.WithContext(ctx)

	var detail AuthorDetail
	g.Go(func() error {
		env, err := s.client.Authors.Get(ctx, authorID)
		if err != nil {
			return err
		}
		detail.Author = env.Data
		return nil
	})
	g.Go(func() error {
		env, err := s.client.Authors.Books(ctx, authorID)
		if err != nil {
			return err
		}
		detail.Books = env.Data
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AuthorsPage fetches one page of authors. When the backend fails the page is
// built from the bundled authors instead and a warning is attached.
// Cancellation and invalid page requests are returned as errors.
func (s *CatalogService) AuthorsPage(ctx context.Context, page, limit int) (*AuthorsPage, error) {
	env, err := s.client.Authors.Page(ctx, page, limit)
	if err == nil {
		return &AuthorsPage{AuthorPage: env.Data}, nil
	}
	if errors.Is(err, errors.ErrCanceled) || errors.Is(err, errors.ErrValidation) || ctx.Err() != nil {
		return nil, err
	}

	bundled, fbErr := s.fallback.Page(backend.PageRequest{Page: page, Limit: limit})
	if fbErr != nil {
		return nil, err
	}

	s.logger.Warn("author listing unavailable, showing bundled authors",
		"page", page,
		"limit", limit,
		"error", err,
	)
	return &AuthorsPage{
		AuthorPage: bundled,
		Warning:    "Authors could not be loaded. Showing sample data.",
	}, nil
}

// Browse lists the books matching the search text and category currently
// selected in the UI store.
func (s *CatalogService) Browse(ctx context.Context) ([]domain.Book, error) {
	filter := backend.BookFilter{Search: s.ui.SearchQuery()}
	if category, ok := s.ui.SelectedCategory(); ok {
		filter.Category = category
	}

	env, err := s.client.Books.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
