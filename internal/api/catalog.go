package api

import (
	"context"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// BooksAPI reads the catalog.
type BooksAPI struct {
	c *Client
}

// List returns the books matching filter.
func (b *BooksAPI) List(ctx context.Context, filter backend.BookFilter) (*Envelope[[]domain.Book], error) {
	return call(ctx, b.c, "books.list", func(ctx context.Context) ([]domain.Book, error) {
		return b.c.backend.ListBooks(ctx, filter)
	})
}

// Get returns one book.
func (b *BooksAPI) Get(ctx context.Context, id string) (*Envelope[*domain.Book], error) {
	return call(ctx, b.c, "books.get", func(ctx context.Context) (*domain.Book, error) {
		return b.c.backend.GetBook(ctx, id)
	})
}

// Search runs a free-text search.
func (b *BooksAPI) Search(ctx context.Context, q string) (*Envelope[[]domain.Book], error) {
	return call(ctx, b.c, "books.search", func(ctx context.Context) ([]domain.Book, error) {
		return b.c.backend.SearchBooks(ctx, q)
	})
}

// Categories returns every category.
func (b *BooksAPI) Categories(ctx context.Context) (*Envelope[[]domain.Category], error) {
	return call(ctx, b.c, "books.categories", b.c.backend.ListCategories)
}

// ByCategory returns the books of one category.
func (b *BooksAPI) ByCategory(ctx context.Context, categoryID string) (*Envelope[[]domain.Book], error) {
	return call(ctx, b.c, "books.by_category", func(ctx context.Context) ([]domain.Book, error) {
		return b.c.backend.BooksByCategory(ctx, categoryID)
	})
}

// AuthorsAPI reads authors.
type AuthorsAPI struct {
	c *Client
}

// List returns every author.
func (a *AuthorsAPI) List(ctx context.Context) (*Envelope[[]domain.Author], error) {
	return call(ctx, a.c, "authors.list", a.c.backend.ListAuthors)
}

// Page returns one page of authors.
func (a *AuthorsAPI) Page(ctx context.Context, page, limit int) (*Envelope[*domain.AuthorPage], error) {
	return call(ctx, a.c, "authors.page", func(ctx context.Context) (*domain.AuthorPage, error) {
		return a.c.backend.AuthorsPage(ctx, backend.PageRequest{Page: page, Limit: limit})
	})
}

// Get returns one author.
func (a *AuthorsAPI) Get(ctx context.Context, id string) (*Envelope[*domain.Author], error) {
	return call(ctx, a.c, "authors.get", func(ctx context.Context) (*domain.Author, error) {
		return a.c.backend.GetAuthor(ctx, id)
	})
}

// Books returns the books of one author.
func (a *AuthorsAPI) Books(ctx context.Context, authorID string) (*Envelope[[]domain.Book], error) {
	return call(ctx, a.c, "authors.books", func(ctx context.Context) ([]domain.Book, error) {
		return a.c.backend.BooksByAuthor(ctx, authorID)
	})
}
