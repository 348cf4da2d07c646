package fixture

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/id"
)

// BookReviews returns the reviews of bookID, newest first.
func (b *Backend) BookReviews(ctx context.Context, bookID string) ([]domain.Review, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.store.Books.Get(ctx, bookID); err != nil {
		return nil, notFound(err, "book", bookID)
	}

	reviews, err := b.store.Reviews.ListByIndex(ctx, "book", bookID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, *r)
	}
	slices.SortStableFunc(out, func(x, y domain.Review) int { return y.CreatedAt.Compare(x.CreatedAt) })
	return out, nil
}

// AddReview records the signed-in user's review and folds it into the book's rating.
func (b *Backend) AddReview(ctx context.Context, in backend.ReviewInput) (*domain.Review, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	user, err := b.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.validator.Validate(in); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.store.Books.Get(ctx, in.BookID)
	if err != nil {
		return nil, notFound(err, "book", in.BookID)
	}

	reviewID, err := id.Generate(id.PrefixReview)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{
		ID:        reviewID,
		User:      domain.ReviewerOf(user),
		Book:      *book,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: b.now(),
	}
	if err := b.store.Reviews.Create(ctx, review.ID, review); err != nil {
		return nil, err
	}

	book.Rating, book.TotalReviews = addRating(book.Rating, book.TotalReviews, in.Rating)
	if err := b.store.Books.Update(ctx, book.ID, book); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review. Only its author or an admin may do so.
func (b *Backend) DeleteReview(ctx context.Context, reviewID string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	user, err := b.currentUser(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	review, err := b.store.Reviews.Get(ctx, reviewID)
	if err != nil {
		return notFound(err, "review", reviewID)
	}
	if review.User.ID != user.ID && !user.IsAdmin() {
		return errors.Forbidden("only the author of a review or an admin can delete it")
	}

	if err := b.store.Reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	book, err := b.store.Books.Get(ctx, review.Book.ID)
	if errors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	book.Rating, book.TotalReviews = removeRating(book.Rating, book.TotalReviews, review.Rating)
	return b.store.Books.Update(ctx, book.ID, book)
}

// addRating folds one rating into an average over count ratings.
func addRating(avg float64, count, rating int) (float64, int) {
	return roundRating((avg*float64(count) + float64(rating)) / float64(count+1)), count + 1
}

// removeRating takes one rating back out of an average over count ratings.
func removeRating(avg float64, count, rating int) (float64, int) {
	if count <= 1 {
		return 0, 0
	}
	return roundRating((avg*float64(count) - float64(rating)) / float64(count-1)), count - 1
}

func roundRating(r float64) float64 {
	r = math.Max(0, math.Min(float64(domain.MaxRating), r))
	return math.Round(r*10) / 10
}
