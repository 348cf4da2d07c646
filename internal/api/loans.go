package api

import (
	"context"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// LoansAPI borrows and returns books for the signed-in user.
type LoansAPI struct {
	c *Client
}

// List returns the signed-in user's loans.
func (l *LoansAPI) List(ctx context.Context) (*Envelope[[]domain.Loan], error) {
	return call(ctx, l.c, "loans.list", l.c.backend.ListLoans)
}

// Borrow lends one copy of bookID.
func (l *LoansAPI) Borrow(ctx context.Context, bookID string) (*Envelope[*domain.Loan], error) {
	return call(ctx, l.c, "loans.borrow", func(ctx context.Context) (*domain.Loan, error) {
		return l.c.backend.Borrow(ctx, bookID)
	})
}

// Return ends a loan.
func (l *LoansAPI) Return(ctx context.Context, loanID string) (*Envelope[*domain.Loan], error) {
	return call(ctx, l.c, "loans.return", func(ctx context.Context) (*domain.Loan, error) {
		return l.c.backend.Return(ctx, loanID)
	})
}

// ReviewsAPI reads and writes book reviews.
type ReviewsAPI struct {
	c *Client
}

// ForBook returns the reviews of one book.
func (r *ReviewsAPI) ForBook(ctx context.Context, bookID string) (*Envelope[[]domain.Review], error) {
	return call(ctx, r.c, "reviews.for_book", func(ctx context.Context) ([]domain.Review, error) {
		return r.c.backend.BookReviews(ctx, bookID)
	})
}

// Add posts the signed-in user's review of a book.
func (r *ReviewsAPI) Add(ctx context.Context, bookID string, rating int, comment string) (*Envelope[*domain.Review], error) {
	in := backend.ReviewInput{BookID: bookID, Rating: rating, Comment: comment}
	return call(ctx, r.c, "reviews.add", func(ctx context.Context) (*domain.Review, error) {
		return r.c.backend.AddReview(ctx, in)
	})
}

// Delete removes a review.
func (r *ReviewsAPI) Delete(ctx context.Context, reviewID string) (*Envelope[struct{}], error) {
	return exec(ctx, r.c, "reviews.delete", func(ctx context.Context) error {
		return r.c.backend.DeleteReview(ctx, reviewID)
	})
}
