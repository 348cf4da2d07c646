package fixture

import (
	"context"
	"slices"

	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/id"
)

// ListLoans returns the signed-in user's loans, newest first.
func (b *Backend) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	user, err := b.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	return b.loans(ctx, user.ID)
}

// Borrow lends one copy of bookID to the signed-in user for domain.LoanPeriod.
// No loan is recorded when no copy is available.
func (b *Backend) Borrow(ctx context.Context, bookID string) (*domain.Loan, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	user, err := b.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.store.Books.Get(ctx, bookID)
	if err != nil {
		return nil, notFound(err, "book", bookID)
	}
	if !book.Availability.Take() {
		return nil, errors.Unavailablef("no copies of %q are available", book.Title)
	}

	loanID, err := id.Generate(id.PrefixLoan)
	if err != nil {
		return nil, err
	}
	loan := domain.NewLoan(loanID, user.ID, *book, b.now())

	if err := b.store.Books.Update(ctx, book.ID, book); err != nil {
		return nil, err
	}
	if err := b.store.Loans.Create(ctx, loan.ID, loan); err != nil {
		book.Availability.Give()
		if rbErr := b.store.Books.Update(context.WithoutCancel(ctx), book.ID, book); rbErr != nil {
			b.logger.Error("failed to restore availability after loan write failed",
				"book_id", book.ID, "error", rbErr)
		}
		return nil, err
	}

	b.logger.Debug("book borrowed", "loan_id", loan.ID, "book_id", book.ID, "user_id", user.ID)
	return loan, nil
}

// Return ends one of the signed-in user's loans. Admins may return any loan.
func (b *Backend) Return(ctx context.Context, loanID string) (*domain.Loan, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	user, err := b.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return b.returnLoan(ctx, user, loanID)
}

func (b *Backend) returnLoan(ctx context.Context, user *domain.User, loanID string) (*domain.Loan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	loan, err := b.store.Loans.Get(ctx, loanID)
	if err != nil {
		return nil, notFound(err, "loan", loanID)
	}
	if loan.UserID != user.ID && !user.IsAdmin() {
		return nil, errors.Forbidden("loan belongs to another user")
	}

	if err := loan.Return(b.now()); err != nil {
		if errors.Is(err, domain.ErrLoanReturned) {
			return nil, errors.Conflictf("loan %q was already returned", loanID)
		}
		return nil, err
	}
	if err := b.store.Loans.Update(ctx, loan.ID, loan); err != nil {
		return nil, err
	}

	// The book may have been deleted since it was lent.
	book, err := b.store.Books.Get(ctx, loan.Book.ID)
	switch {
	case err == nil:
		book.Availability.Give()
		if err := b.store.Books.Update(ctx, book.ID, book); err != nil {
			return nil, err
		}
	case !errors.Is(err, errors.ErrNotFound):
		return nil, err
	}

	b.logger.Debug("loan returned", "loan_id", loan.ID, "user_id", user.ID)
	return loan, nil
}

// loans returns the loans of userID, or every loan when userID is empty, with
// overdue status derived from the current time. Newest first.
func (b *Backend) loans(ctx context.Context, userID string) ([]domain.Loan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var loans []*domain.Loan
	var err error
	if userID == "" {
		loans, err = b.store.Loans.Collect(ctx)
	} else {
		loans, err = b.store.Loans.ListByIndex(ctx, "user", userID)
	}
	if err != nil {
		return nil, err
	}

	now := b.now()
	out := make([]domain.Loan, 0, len(loans))
	for _, l := range loans {
		if l.Refresh(now) {
			if err := b.store.Loans.Update(ctx, l.ID, l); err != nil {
				return nil, err
			}
		}
		out = append(out, *l)
	}
	slices.SortStableFunc(out, func(x, y domain.Loan) int { return y.BorrowedAt.Compare(x.BorrowedAt) })
	return out, nil
}
