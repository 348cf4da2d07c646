package api

import (
	"context"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// AdminAPI exposes the back-office operations. Each needs an admin session.
type AdminAPI struct {
	c *Client
}

// Stats returns the dashboard counters.
func (a *AdminAPI) Stats(ctx context.Context) (*Envelope[*domain.DashboardStats], error) {
	return call(ctx, a.c, "admin.stats", a.c.backend.Stats)
}

// Books returns the back-office book listing.
func (a *AdminAPI) Books(ctx context.Context, filter backend.BookFilter) (*Envelope[[]domain.Book], error) {
	return call(ctx, a.c, "admin.books", func(ctx context.Context) ([]domain.Book, error) {
		return a.c.backend.AdminBooks(ctx, filter)
	})
}

// CreateBook adds a book.
func (a *AdminAPI) CreateBook(ctx context.Context, in backend.BookInput) (*Envelope[*domain.Book], error) {
	return call(ctx, a.c, "admin.create_book", func(ctx context.Context) (*domain.Book, error) {
		return a.c.backend.CreateBook(ctx, in)
	})
}

// UpdateBook replaces a book.
func (a *AdminAPI) UpdateBook(ctx context.Context, id string, in backend.BookInput) (*Envelope[*domain.Book], error) {
	return call(ctx, a.c, "admin.update_book", func(ctx context.Context) (*domain.Book, error) {
		return a.c.backend.UpdateBook(ctx, id, in)
	})
}

// DeleteBook removes a book.
func (a *AdminAPI) DeleteBook(ctx context.Context, id string) (*Envelope[struct{}], error) {
	return exec(ctx, a.c, "admin.delete_book", func(ctx context.Context) error {
		return a.c.backend.DeleteBook(ctx, id)
	})
}

// Users returns every account.
func (a *AdminAPI) Users(ctx context.Context) (*Envelope[[]domain.User], error) {
	return call(ctx, a.c, "admin.users", a.c.backend.ListUsers)
}

// CreateUser adds an account.
func (a *AdminAPI) CreateUser(ctx context.Context, in backend.UserInput) (*Envelope[*domain.User], error) {
	return call(ctx, a.c, "admin.create_user", func(ctx context.Context) (*domain.User, error) {
		return a.c.backend.CreateUser(ctx, in)
	})
}

// UpdateUser replaces an account's details.
func (a *AdminAPI) UpdateUser(ctx context.Context, id string, in backend.UserInput) (*Envelope[*domain.User], error) {
	return call(ctx, a.c, "admin.update_user", func(ctx context.Context) (*domain.User, error) {
		return a.c.backend.UpdateUser(ctx, id, in)
	})
}

// Loans returns every loan.
func (a *AdminAPI) Loans(ctx context.Context) (*Envelope[[]domain.Loan], error) {
	return call(ctx, a.c, "admin.loans", a.c.backend.AdminLoans)
}

// ReturnLoan ends any user's loan.
func (a *AdminAPI) ReturnLoan(ctx context.Context, loanID string) (*Envelope[*domain.Loan], error) {
	return call(ctx, a.c, "admin.return_loan", func(ctx context.Context) (*domain.Loan, error) {
		return a.c.backend.AdminReturnLoan(ctx, loanID)
	})
}
