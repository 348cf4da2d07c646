package remote

import (
	"context"
	"net/url"
	"strconv"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// ListBooks fetches /api/books with the non-empty filter fields as query parameters.
func (b *Backend) ListBooks(ctx context.Context, filter backend.BookFilter) ([]domain.Book, error) {
	return b.books(ctx, "/api/books", filterQuery(filter))
}

// GetBook fetches one book.
func (b *Backend) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	var out domain.Book
	if err := b.get(ctx, "/api/books/"+escape(bookID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchBooks runs the server-side free-text search.
func (b *Backend) SearchBooks(ctx context.Context, query string) ([]domain.Book, error) {
	return b.books(ctx, "/api/books/search", url.Values{"q": {query}})
}

// ListCategories fetches every category.
func (b *Backend) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := b.get(ctx, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BooksByCategory fetches the books of one category.
func (b *Backend) BooksByCategory(ctx context.Context, categoryID string) ([]domain.Book, error) {
	return b.books(ctx, "/api/categories/"+escape(categoryID)+"/books", nil)
}

// ListAuthors fetches every author.
func (b *Backend) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	var out []domain.Author
	if err := b.get(ctx, "/api/authors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuthorsPage fetches one page of authors. The request is checked locally first.
func (b *Backend) AuthorsPage(ctx context.Context, req backend.PageRequest) (*domain.AuthorPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{
		"page":  {strconv.Itoa(req.Page)},
		"limit": {strconv.Itoa(req.Limit)},
	}
	var out domain.AuthorPage
	if err := b.get(ctx, "/api/authors", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAuthor fetches one author.
func (b *Backend) GetAuthor(ctx context.Context, authorID string) (*domain.Author, error) {
	var out domain.Author
	if err := b.get(ctx, "/api/authors/"+escape(authorID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BooksByAuthor fetches the books of one author.
func (b *Backend) BooksByAuthor(ctx context.Context, authorID string) ([]domain.Book, error) {
	return b.books(ctx, "/api/authors/"+escape(authorID)+"/books", nil)
}

func (b *Backend) books(ctx context.Context, path string, query url.Values) ([]domain.Book, error) {
	var out []domain.Book
	if err := b.get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func filterQuery(f backend.BookFilter) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Author != "" {
		q.Set("author", f.Author)
	}
	return q
}
