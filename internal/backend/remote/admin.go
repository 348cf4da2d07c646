package remote

import (
	"context"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// Stats fetches the dashboard counters.
func (b *Backend) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := b.get(ctx, "/api/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminBooks fetches the back-office book listing.
func (b *Backend) AdminBooks(ctx context.Context, filter backend.BookFilter) ([]domain.Book, error) {
	return b.books(ctx, "/api/admin/books", filterQuery(filter))
}

// CreateBook adds a book.
func (b *Backend) CreateBook(ctx context.Context, in backend.BookInput) (*domain.Book, error) {
	var out domain.Book
	if err := b.post(ctx, "/api/admin/books", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBook replaces a book.
func (b *Backend) UpdateBook(ctx context.Context, bookID string, in backend.BookInput) (*domain.Book, error) {
	var out domain.Book
	if err := b.put(ctx, "/api/admin/books/"+escape(bookID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBook removes a book.
func (b *Backend) DeleteBook(ctx context.Context, bookID string) error {
	return b.delete(ctx, "/api/admin/books/"+escape(bookID))
}

// ListUsers fetches every account.
func (b *Backend) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := b.get(ctx, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser adds an account.
func (b *Backend) CreateUser(ctx context.Context, in backend.UserInput) (*domain.User, error) {
	var out domain.User
	if err := b.post(ctx, "/api/admin/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser replaces an account's details.
func (b *Backend) UpdateUser(ctx context.Context, userID string, in backend.UserInput) (*domain.User, error) {
	var out domain.User
	if err := b.put(ctx, "/api/admin/users/"+escape(userID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminLoans fetches every loan.
func (b *Backend) AdminLoans(ctx context.Context) ([]domain.Loan, error) {
	var out []domain.Loan
	if err := b.get(ctx, "/api/admin/borrowed", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminReturnLoan ends any user's loan.
func (b *Backend) AdminReturnLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	var out domain.Loan
	if err := b.put(ctx, "/api/admin/borrowed/"+escape(loanID)+"/return", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
