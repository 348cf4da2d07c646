package fixture

import (
	"context"
	"slices"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// ListBooks returns the books matching filter.
func (b *Backend) ListBooks(ctx context.Context, filter backend.BookFilter) ([]domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.listBooks(ctx, filter)
}

func (b *Backend) listBooks(ctx context.Context, filter backend.BookFilter) ([]domain.Book, error) {
	books, err := b.store.Books.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return filterBooks(books, filter), nil
}

// GetBook returns one book.
func (b *Backend) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	book, err := b.store.Books.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "book", id)
	}
	return book, nil
}

// SearchBooks matches query against title, author name and description.
func (b *Backend) SearchBooks(ctx context.Context, query string) ([]domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.listBooks(ctx, backend.BookFilter{Search: query})
}

// ListCategories returns every category with its live book count.
func (b *Backend) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	categories, err := b.store.Categories.Collect(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := b.bookCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		c.BookCount = counts.byCategory[c.ID]
		out = append(out, *c)
	}
	slices.SortFunc(out, func(x, y domain.Category) int { return compareIDs(x.ID, y.ID) })
	return out, nil
}

// BooksByCategory returns the books whose category id is exactly categoryID.
func (b *Backend) BooksByCategory(ctx context.Context, categoryID string) ([]domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.store.Categories.Get(ctx, categoryID); err != nil {
		return nil, notFound(err, "category", categoryID)
	}

	books, err := b.store.Books.ListByIndex(ctx, "category", categoryID)
	if err != nil {
		return nil, err
	}
	return filterBooks(books, backend.BookFilter{}), nil
}

// ListAuthors returns the stored authors with their live book counts.
func (b *Backend) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	authors, err := b.store.Authors.Collect(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := b.bookCounts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Author, 0, len(authors))
	for _, a := range authors {
		a.BookCount = counts.byAuthor[a.ID]
		out = append(out, *a)
	}
	slices.SortFunc(out, func(x, y domain.Author) int { return compareIDs(x.ID, y.ID) })
	return out, nil
}

// AuthorsPage returns one page of the virtual author directory.
func (b *Backend) AuthorsPage(ctx context.Context, req backend.PageRequest) (*domain.AuthorPage, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	page, err := b.directory.Page(req)
	if err != nil {
		return nil, err
	}

	counts, err := b.bookCounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range page.Authors {
		if baseID, _, ok := b.directory.Resolve(page.Authors[i].ID); ok {
			page.Authors[i].BookCount = counts.byAuthor[baseID]
		}
	}
	return page, nil
}

// GetAuthor returns one author. Directory ids resolve to the author they repeat.
func (b *Backend) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	baseID := id
	author, err := b.store.Authors.Get(ctx, id)
	if err != nil {
		virtual, ok := b.directory.Lookup(id)
		if !ok {
			return nil, notFound(err, "author", id)
		}
		author = &virtual
		baseID, _, _ = b.directory.Resolve(id)
	}

	counts, err := b.bookCounts(ctx)
	if err != nil {
		return nil, err
	}
	author.BookCount = counts.byAuthor[baseID]
	return author, nil
}

// BooksByAuthor returns the books written by authorID.
func (b *Backend) BooksByAuthor(ctx context.Context, authorID string) ([]domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	baseID := authorID
	if _, err := b.store.Authors.Get(ctx, authorID); err != nil {
		resolved, _, ok := b.directory.Resolve(authorID)
		if !ok {
			return nil, notFound(err, "author", authorID)
		}
		baseID = resolved
	}

	books, err := b.store.Books.ListByIndex(ctx, "author", baseID)
	if err != nil {
		return nil, err
	}
	return filterBooks(books, backend.BookFilter{}), nil
}

type bookCounts struct {
	byCategory map[string]int
	byAuthor   map[string]int
}

// bookCounts tallies the live collection. Counts are never stored.
func (b *Backend) bookCounts(ctx context.Context) (*bookCounts, error) {
	counts := &bookCounts{byCategory: map[string]int{}, byAuthor: map[string]int{}}
	for book, err := range b.store.Books.List(ctx) {
		if err != nil {
			return nil, err
		}
		counts.byCategory[book.Category.ID]++
		counts.byAuthor[book.Author.ID]++
	}
	return counts, nil
}
