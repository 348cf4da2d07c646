package remote

import (
	"context"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

type borrowRequest struct {
	BookID string `json:"bookId"`
}

// ListLoans fetches the signed-in user's loans.
func (b *Backend) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	var out []domain.Loan
	if err := b.get(ctx, "/api/borrowed", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Borrow asks the server to lend bookID.
func (b *Backend) Borrow(ctx context.Context, bookID string) (*domain.Loan, error) {
	var out domain.Loan
	if err := b.post(ctx, "/api/borrowed", borrowRequest{BookID: bookID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Return ends a loan.
func (b *Backend) Return(ctx context.Context, loanID string) (*domain.Loan, error) {
	var out domain.Loan
	if err := b.put(ctx, "/api/borrowed/"+escape(loanID)+"/return", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookReviews fetches the reviews of one book.
func (b *Backend) BookReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	var out []domain.Review
	if err := b.get(ctx, "/api/books/"+escape(bookID)+"/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddReview posts a review.
func (b *Backend) AddReview(ctx context.Context, in backend.ReviewInput) (*domain.Review, error) {
	var out domain.Review
	if err := b.post(ctx, "/api/reviews", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReview removes a review.
func (b *Backend) DeleteReview(ctx context.Context, reviewID string) error {
	return b.delete(ctx, "/api/reviews/"+escape(reviewID))
}
