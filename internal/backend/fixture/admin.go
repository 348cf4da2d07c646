package fixture

import (
	"context"
	"slices"
	"strings"

	"github.com/listenupapp/library-client/internal/auth"
	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/id"
	"github.com/listenupapp/library-client/internal/store"
)

// Stats summarises the collection for the admin dashboard.
func (b *Backend) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{}
	for book, err := range b.store.Books.List(ctx) {
		if err != nil {
			return nil, err
		}
		stats.TotalBooks++
		stats.TotalCopies += book.Availability.Total
		stats.AvailableCopies += book.Availability.Available
	}
	for _, err := range b.store.Users.List(ctx) {
		if err != nil {
			return nil, err
		}
		stats.TotalUsers++
	}

	loans, err := b.loans(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, l := range loans {
		switch l.Status {
		case domain.LoanActive:
			stats.ActiveLoans++
		case domain.LoanOverdue:
			stats.ActiveLoans++
			stats.OverdueLoans++
		}
	}
	return stats, nil
}

// AdminBooks is ListBooks behind the admin check.
func (b *Backend) AdminBooks(ctx context.Context, filter backend.BookFilter) ([]domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return b.listBooks(ctx, filter)
}

// CreateBook adds a title with all of its copies available.
func (b *Backend) CreateBook(ctx context.Context, in backend.BookInput) (*domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := b.validator.Validate(in); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, err
	}
	book := &domain.Book{
		ID:           bookID,
		Availability: domain.Availability{Total: in.TotalCopies, Available: in.TotalCopies},
	}
	if err := b.applyBookInput(ctx, book, in); err != nil {
		return nil, err
	}

	if err := b.store.Books.Create(ctx, book.ID, book); err != nil {
		return nil, err
	}
	b.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return book, nil
}

// UpdateBook replaces a book's details. Copies already lent stay lent.
func (b *Backend) UpdateBook(ctx context.Context, bookID string, in backend.BookInput) (*domain.Book, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := b.validator.Validate(in); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.store.Books.Get(ctx, bookID)
	if err != nil {
		return nil, notFound(err, "book", bookID)
	}
	if err := b.applyBookInput(ctx, book, in); err != nil {
		return nil, err
	}
	book.Availability.Resize(in.TotalCopies)

	if err := b.store.Books.Update(ctx, book.ID, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes a book. Loans and reviews keep their snapshots.
func (b *Backend) DeleteBook(ctx context.Context, bookID string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.store.Books.Get(ctx, bookID); err != nil {
		return notFound(err, "book", bookID)
	}
	return b.store.Books.Delete(ctx, bookID)
}

// ListUsers returns every account.
func (b *Backend) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := b.store.Users.Collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u.Public())
	}
	slices.SortFunc(out, func(x, y domain.User) int { return compareIDs(x.ID, y.ID) })
	return out, nil
}

// CreateUser adds an account. Role defaults to user.
func (b *Backend) CreateUser(ctx context.Context, in backend.UserInput) (*domain.User, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := b.validator.Validate(in); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, errors.ValidationWithDetails("password is required",
			map[string]string{"password": "is required"})
	}

	user := &domain.User{}
	applyUserInput(user, in)
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if err := b.createUser(ctx, user, in.Password); err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateUser replaces an account's details. An empty password keeps the old one.
func (b *Backend) UpdateUser(ctx context.Context, userID string, in backend.UserInput) (*domain.User, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := b.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := b.store.Users.Get(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}
	applyUserInput(user, in)
	if in.Password != "" {
		if user.PasswordHash, err = auth.HashPassword(in.Password); err != nil {
			return nil, errors.Validation(err.Error())
		}
	}

	if err := b.store.Users.Update(ctx, user.ID, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExistsf("email %q is already registered", user.Email)
		}
		return nil, err
	}
	return user.Public(), nil
}

// AdminLoans returns every loan, newest first.
func (b *Backend) AdminLoans(ctx context.Context) ([]domain.Loan, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if _, err := b.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return b.loans(ctx, "")
}

// AdminReturnLoan returns any user's loan.
func (b *Backend) AdminReturnLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	admin, err := b.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	return b.returnLoan(ctx, admin, loanID)
}

// applyBookInput copies in onto book, resolving the author and category.
func (b *Backend) applyBookInput(ctx context.Context, book *domain.Book, in backend.BookInput) error {
	author, err := b.store.Authors.Get(ctx, in.AuthorID)
	if err != nil {
		return notFound(err, "author", in.AuthorID)
	}
	category, err := b.store.Categories.Get(ctx, in.CategoryID)
	if err != nil {
		return notFound(err, "category", in.CategoryID)
	}

	book.Title = strings.TrimSpace(in.Title)
	book.Author = author.Ref()
	book.Category = category.Ref()
	book.Cover = in.Cover
	book.Description = in.Description
	book.Pages = in.Pages
	book.PublishedAt = in.PublishedAt
	book.ISBN = in.ISBN
	return nil
}

func applyUserInput(user *domain.User, in backend.UserInput) {
	user.Name = strings.TrimSpace(in.Name)
	user.Email = strings.TrimSpace(in.Email)
	user.Phone = in.Phone
	user.Avatar = in.Avatar
	user.Address = in.Address
	user.Bio = in.Bio
	if in.Role != "" {
		user.Role = in.Role
	}
}
