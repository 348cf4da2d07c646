package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/logger"
	"github.com/listenupapp/library-client/internal/session"
)

var testNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func setupBackend(t *testing.T) *Backend {
	t.Helper()

	b, err := New(Options{
		Clock:  func() time.Time { return testNow },
		Logger: logger.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown() })
	return b
}

// signIn logs in and returns a context carrying the session token.
func signIn(t *testing.T, b *Backend, email, password string) context.Context {
	t.Helper()

	res, err := b.Login(t.Context(), email, password)
	require.NoError(t, err)
	return session.WithToken(t.Context(), res.Token)
}

func asUser(t *testing.T, b *Backend) context.Context {
	return signIn(t, b, "johndoe@email.com", DefaultPassword)
}

func asAdmin(t *testing.T, b *Backend) context.Context {
	return signIn(t, b, AdminEmail, AdminPassword)
}

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestLogin(t *testing.T) {
	b := setupBackend(t)

	t.Run("admin", func(t *testing.T) {
		res, err := b.Login(t.Context(), AdminEmail, AdminPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, domain.RoleAdmin, res.User.Role)
		assert.Empty(t, res.User.PasswordHash)
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		res, err := b.Login(t.Context(), "JohnDoe@Email.com", DefaultPassword)
		require.NoError(t, err)
		assert.Equal(t, "user1", res.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := b.Login(t.Context(), AdminEmail, "nope")
		assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := b.Login(t.Context(), "ghost@email.com", DefaultPassword)
		assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
	})
}

func TestRegister(t *testing.T) {
	b := setupBackend(t)

	res, err := b.Register(t.Context(), backend.RegisterInput{
		Name: "New Reader", Email: "reader@email.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, res.User.Role)

	ctx := session.WithToken(t.Context(), res.Token)
	profile, err := b.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reader@email.com", profile.Email)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := b.Register(t.Context(), backend.RegisterInput{
			Name: "Again", Email: "Reader@Email.com", Password: "secret1",
		})
		assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := b.Register(t.Context(), backend.RegisterInput{
			Name: "Short", Email: "short@email.com", Password: "123",
		})
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})
}

func TestProfile_RequiresSession(t *testing.T) {
	b := setupBackend(t)

	_, err := b.Profile(t.Context())
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	_, err = b.Profile(session.WithToken(t.Context(), "v4.local.garbage"))
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestUpdateProfile(t *testing.T) {
	b := setupBackend(t)
	ctx := asUser(t, b)

	bio := "  Reads on the train.  "
	user, err := b.UpdateProfile(ctx, backend.ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Reads on the train.", user.Bio)
	assert.Equal(t, "John Doe", user.Name, "nil fields are left alone")

	blank := "   "
	_, err = b.UpdateProfile(ctx, backend.ProfileUpdate{Name: &blank})
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestListBooks_Filters(t *testing.T) {
	b := setupBackend(t)

	tests := []struct {
		name   string
		filter backend.BookFilter
		want   []string
	}{
		{
			name:   "no filter returns every book in id order",
			filter: backend.BookFilter{},
			want: []string{
				"The Great Adventure", "Future Technologies", "Space Odyssey", "The Psychology of Money",
				"Atomic Habits", "The Lean Startup", "Clean Code", "Thinking, Fast and Slow",
			},
		},
		{
			name:   "all three predicates",
			filter: backend.BookFilter{Category: "Technology", Author: "Michael", Search: "Clean"},
			want:   []string{"Clean Code"},
		},
		{
			name:   "category by id",
			filter: backend.BookFilter{Category: "4"},
			want:   []string{"Future Technologies", "Clean Code"},
		},
		{
			name:   "category by part of its name",
			filter: backend.BookFilter{Category: "econ"},
			want:   []string{"The Psychology of Money", "The Lean Startup"},
		},
		{
			name:   "search matches description",
			filter: backend.BookFilter{Search: "CRAFTSMANSHIP"},
			want:   []string{"Clean Code"},
		},
		{
			name:   "search matches author name",
			filter: backend.BookFilter{Search: "housel"},
			want:   []string{"The Psychology of Money"},
		},
		{
			name:   "nothing matches",
			filter: backend.BookFilter{Author: "Tolkien"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := b.ListBooks(t.Context(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(books))
		})
	}
}

func TestListBooks_FilterOrderDoesNotMatter(t *testing.T) {
	b := setupBackend(t)

	all, err := b.ListBooks(t.Context(), backend.BookFilter{Category: "Technology", Author: "Michael"})
	require.NoError(t, err)

	byCategory, err := b.ListBooks(t.Context(), backend.BookFilter{Category: "Technology"})
	require.NoError(t, err)
	var thenAuthor []domain.Book
	for _, book := range byCategory {
		if book.Author.Name == "Michael Brown" {
			thenAuthor = append(thenAuthor, book)
		}
	}

	assert.Equal(t, titles(all), titles(thenAuthor))
}

func TestGetBook(t *testing.T) {
	b := setupBackend(t)

	book, err := b.GetBook(t.Context(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", book.Title)

	_, err = b.GetBook(t.Context(), "999")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCategories_CountsAreComputed(t *testing.T) {
	b := setupBackend(t)

	categories, err := b.ListCategories(t.Context())
	require.NoError(t, err)
	require.Len(t, categories, 11)

	counts := map[string]int{}
	for _, c := range categories {
		counts[c.Name] = c.BookCount
	}
	assert.Equal(t, 2, counts["Technology"])
	assert.Equal(t, 2, counts["Business & Economics"])
	assert.Equal(t, 0, counts["Mystery"])

	books, err := b.BooksByCategory(t.Context(), "4")
	require.NoError(t, err)
	assert.Equal(t, []string{"Future Technologies", "Clean Code"}, titles(books))

	_, err = b.BooksByCategory(t.Context(), "Technology")
	assert.True(t, errors.Is(err, errors.ErrNotFound), "category listing takes an exact id")
}

func TestAuthors(t *testing.T) {
	b := setupBackend(t)

	authors, err := b.ListAuthors(t.Context())
	require.NoError(t, err)
	require.Len(t, authors, 5)
	assert.Equal(t, "Michael Brown", authors[2].Name)
	assert.Equal(t, 3, authors[2].BookCount)

	books, err := b.BooksByAuthor(t.Context(), "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Future Technologies", "The Lean Startup", "Clean Code"}, titles(books))
}

func TestAuthorsPage(t *testing.T) {
	b := setupBackend(t)

	page, err := b.AuthorsPage(t.Context(), backend.PageRequest{Page: 5, Limit: 12})
	require.NoError(t, err)

	assert.Len(t, page.Authors, 12)
	assert.Equal(t, 60, page.Pagination.Total)
	assert.Equal(t, 5, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	// Entry 48 is the fourth author's tenth appearance.
	first := page.Authors[0]
	assert.Equal(t, "4-10", first.ID)
	assert.Equal(t, "Morgan Housel (10)", first.Name)
	assert.Equal(t, 1, first.BookCount)

	t.Run("virtual ids resolve", func(t *testing.T) {
		author, err := b.GetAuthor(t.Context(), "3-2")
		require.NoError(t, err)
		assert.Equal(t, "Michael Brown (2)", author.Name)
		assert.Equal(t, 3, author.BookCount)

		books, err := b.BooksByAuthor(t.Context(), "3-2")
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})

	t.Run("ids past the directory are unknown", func(t *testing.T) {
		_, err := b.GetAuthor(t.Context(), "1-13")
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("invalid page", func(t *testing.T) {
		_, err := b.AuthorsPage(t.Context(), backend.PageRequest{Page: 0, Limit: 12})
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})
}

func TestBorrowAndReturn(t *testing.T) {
	b := setupBackend(t)
	ctx := asUser(t, b)

	loan, err := b.Borrow(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanActive, loan.Status)
	assert.Equal(t, testNow.Add(30*24*time.Hour), loan.DueAt)
	assert.Equal(t, "Clean Code", loan.Book.Title)

	book, err := b.GetBook(t.Context(), "7")
	require.NoError(t, err)
	assert.Equal(t, 2, book.Availability.Available)

	returned, err := b.Return(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)

	book, err = b.GetBook(t.Context(), "7")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Availability.Available)

	_, err = b.Return(ctx, loan.ID)
	assert.True(t, errors.Is(err, errors.ErrConflict))

	book, err = b.GetBook(t.Context(), "7")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Availability.Available, "a second return gives nothing back")
}

func TestBorrow_NoCopiesLeft(t *testing.T) {
	b := setupBackend(t)
	ctx := asUser(t, b)

	// Future Technologies has one copy on the shelf.
	_, err := b.Borrow(ctx, "2")
	require.NoError(t, err)

	before, err := b.ListLoans(ctx)
	require.NoError(t, err)

	_, err = b.Borrow(ctx, "2")
	assert.True(t, errors.Is(err, errors.ErrUnavailable))

	after, err := b.ListLoans(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before), "a refused borrow records no loan")

	book, err := b.GetBook(t.Context(), "2")
	require.NoError(t, err)
	assert.Equal(t, 0, book.Availability.Available)
}

func TestBorrow_RequiresSession(t *testing.T) {
	b := setupBackend(t)

	_, err := b.Borrow(t.Context(), "7")
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestReturn_OtherUsersLoan(t *testing.T) {
	b := setupBackend(t)

	jane := signIn(t, b, "janesmith@email.com", DefaultPassword)
	_, err := b.Return(jane, "loan1")
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	loan, err := b.AdminReturnLoan(asAdmin(t, b), "loan1")
	require.NoError(t, err)
	assert.Equal(t, domain.LoanReturned, loan.Status)
}

func TestListLoans_DerivesOverdue(t *testing.T) {
	b := setupBackend(t)
	ctx := asUser(t, b)

	loans, err := b.ListLoans(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 3)
	assert.Equal(t, []string{"loan1", "loan2", "loan3"}, []string{loans[0].ID, loans[1].ID, loans[2].ID})
	assert.Equal(t, domain.LoanActive, loans[0].Status)

	b.now = func() time.Time { return testNow.AddDate(0, 1, 0) }
	loans, err = b.ListLoans(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanOverdue, loans[0].Status)
	assert.Equal(t, domain.LoanReturned, loans[1].Status, "returned loans stay returned")
}

func TestReviews(t *testing.T) {
	b := setupBackend(t)
	ctx := asUser(t, b)

	reviews, err := b.BookReviews(t.Context(), "1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "review1", reviews[0].ID)

	before, err := b.GetBook(t.Context(), "8")
	require.NoError(t, err)

	review, err := b.AddReview(ctx, backend.ReviewInput{BookID: "8", Rating: 5, Comment: "Changed how I think."})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", review.User.Name)

	after, err := b.GetBook(t.Context(), "8")
	require.NoError(t, err)
	assert.Equal(t, before.TotalReviews+1, after.TotalReviews)

	t.Run("rating out of range", func(t *testing.T) {
		_, err := b.AddReview(ctx, backend.ReviewInput{BookID: "8", Rating: 6, Comment: "Too good"})
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})

	t.Run("blank comment", func(t *testing.T) {
		_, err := b.AddReview(ctx, backend.ReviewInput{BookID: "8", Rating: 3, Comment: "  "})
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := b.AddReview(ctx, backend.ReviewInput{BookID: "404", Rating: 3, Comment: "Where?"})
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("only the author or an admin may delete", func(t *testing.T) {
		jane := signIn(t, b, "janesmith@email.com", DefaultPassword)
		assert.True(t, errors.Is(b.DeleteReview(jane, review.ID), errors.ErrForbidden))

		require.NoError(t, b.DeleteReview(ctx, review.ID))

		restored, err := b.GetBook(t.Context(), "8")
		require.NoError(t, err)
		assert.Equal(t, before.TotalReviews, restored.TotalReviews)

		require.NoError(t, b.DeleteReview(asAdmin(t, b), "review2"))
	})
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	b := setupBackend(t)
	ctx := asUser(t, b)

	_, err := b.Stats(ctx)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	_, err = b.ListUsers(ctx)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	_, err = b.Stats(t.Context())
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestAdmin_Stats(t *testing.T) {
	b := setupBackend(t)

	stats, err := b.Stats(asAdmin(t, b))
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalBooks)
	assert.Equal(t, 42, stats.TotalCopies)
	assert.Equal(t, 24, stats.AvailableCopies)
	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 2, stats.ActiveLoans)
	assert.Equal(t, 1, stats.OverdueLoans)
}

func TestAdmin_BookLifecycle(t *testing.T) {
	b := setupBackend(t)
	ctx := asAdmin(t, b)

	in := backend.BookInput{
		Title:       "Deep Work",
		AuthorID:    "3",
		CategoryID:  "7",
		PublishedAt: domain.NewDate("2016-01-05"),
		TotalCopies: 2,
	}
	book, err := b.CreateBook(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.Availability{Total: 2, Available: 2}, book.Availability)
	assert.Equal(t, "Michael Brown", book.Author.Name)

	found, err := b.ListBooks(t.Context(), backend.BookFilter{Search: "deep work"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Deep Work"}, titles(found))

	_, err = b.Borrow(asUser(t, b), book.ID)
	require.NoError(t, err)

	in.TotalCopies = 4
	updated, err := b.UpdateBook(ctx, book.ID, in)
	require.NoError(t, err)
	assert.Equal(t, domain.Availability{Total: 4, Available: 3}, updated.Availability)

	t.Run("unknown author", func(t *testing.T) {
		bad := in
		bad.AuthorID = "99"
		_, err := b.CreateBook(ctx, bad)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})

	t.Run("no copies", func(t *testing.T) {
		bad := in
		bad.TotalCopies = 0
		_, err := b.CreateBook(ctx, bad)
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})

	require.NoError(t, b.DeleteBook(ctx, book.ID))
	_, err = b.GetBook(t.Context(), book.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.True(t, errors.Is(b.DeleteBook(ctx, book.ID), errors.ErrNotFound))
}

func TestAdmin_Users(t *testing.T) {
	b := setupBackend(t)
	ctx := asAdmin(t, b)

	users, err := b.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}

	created, err := b.CreateUser(ctx, backend.UserInput{
		Name: "Librarian", Email: "librarian@email.com", Password: "shelves",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, created.Role)

	_, err = b.CreateUser(ctx, backend.UserInput{Name: "No Password", Email: "nopass@email.com"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	promoted, err := b.UpdateUser(ctx, created.ID, backend.UserInput{
		Name: "Head Librarian", Email: "librarian@email.com", Role: domain.RoleAdmin, Password: "newshelves",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	_, err = b.Login(t.Context(), "librarian@email.com", "newshelves")
	require.NoError(t, err)

	_, err = b.UpdateUser(ctx, created.ID, backend.UserInput{Name: "Clash", Email: AdminEmail})
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
}

func TestAdminLoans_ListsEveryUser(t *testing.T) {
	b := setupBackend(t)

	_, err := b.Borrow(signIn(t, b, "janesmith@email.com", DefaultPassword), "5")
	require.NoError(t, err)

	loans, err := b.AdminLoans(asAdmin(t, b))
	require.NoError(t, err)
	assert.Len(t, loans, 4)
	assert.Equal(t, "user2", loans[0].UserID, "newest first")
}

func TestAuthorsPage_ConfiguredTotal(t *testing.T) {
	tests := []struct {
		name      string
		total     *int
		wantTotal int
		wantLen   int
	}{
		{name: "unset uses default", total: nil, wantTotal: DefaultAuthorTotal, wantLen: 12},
		{name: "zero is an empty directory", total: new(int), wantTotal: 0, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(Options{AuthorTotal: tt.total, Logger: logger.Discard()})
			require.NoError(t, err)
			t.Cleanup(func() { _ = b.Shutdown() })

			page, err := b.AuthorsPage(t.Context(), backend.PageRequest{Page: 1, Limit: 12})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, page.Pagination.Total)
			assert.Len(t, page.Authors, tt.wantLen)
		})
	}
}

func TestDelay_HonoursCancellation(t *testing.T) {
	b, err := New(Options{Delay: time.Hour, Logger: logger.Discard()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown() })

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, err = b.ListBooks(ctx, backend.BookFilter{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
