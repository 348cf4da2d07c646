// Package backend defines the operations every data source behind the client
// must provide. The fixture and remote packages implement it; one of them is
// chosen at startup.
//
// Credentials are read from the request context (see session.WithToken).
package backend

import (
	"context"

	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
)

// MaxPageLimit is the largest page size a paginated listing accepts.
const MaxPageLimit = 100

// Backend is the full set of library operations.
type Backend interface {
	AuthBackend
	CatalogBackend
	LoanBackend
	ReviewBackend
	AdminBackend
}

// AuthBackend covers sign-in and the caller's own profile.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*domain.AuthResult, error)
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, in ProfileUpdate) (*domain.User, error)
	Logout(ctx context.Context) error
}

// CatalogBackend covers books, categories and authors.
type CatalogBackend interface {
	ListBooks(ctx context.Context, filter BookFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	SearchBooks(ctx context.Context, query string) ([]domain.Book, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	BooksByCategory(ctx context.Context, categoryID string) ([]domain.Book, error)

	ListAuthors(ctx context.Context) ([]domain.Author, error)
	AuthorsPage(ctx context.Context, req PageRequest) (*domain.AuthorPage, error)
	GetAuthor(ctx context.Context, id string) (*domain.Author, error)
	BooksByAuthor(ctx context.Context, authorID string) ([]domain.Book, error)
}

// LoanBackend covers the caller's borrowing.
type LoanBackend interface {
	ListLoans(ctx context.Context) ([]domain.Loan, error)
	Borrow(ctx context.Context, bookID string) (*domain.Loan, error)
	Return(ctx context.Context, loanID string) (*domain.Loan, error)
}

// ReviewBackend covers book reviews.
type ReviewBackend interface {
	BookReviews(ctx context.Context, bookID string) ([]domain.Review, error)
	AddReview(ctx context.Context, in ReviewInput) (*domain.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

// AdminBackend covers the back-office operations. All require an admin session.
type AdminBackend interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	AdminBooks(ctx context.Context, filter BookFilter) ([]domain.Book, error)
	CreateBook(ctx context.Context, in BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id string, in BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, in UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UserInput) (*domain.User, error)
	AdminLoans(ctx context.Context) ([]domain.Loan, error)
	AdminReturnLoan(ctx context.Context, loanID string) (*domain.Loan, error)
}

// BookFilter narrows a book listing. Empty fields do not filter.
// Non-empty fields combine with AND.
type BookFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"` // category id, or part of its name
	Author   string `json:"author,omitempty"`   // part of the author's name
}

// IsZero reports whether the filter matches every book.
func (f BookFilter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.Author == ""
}

// PageRequest selects one page of a paginated listing. Page is 1-based.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Validate rejects pages below 1 and limits outside 1..MaxPageLimit.
// The request is never adjusted, so page math always uses the limit asked for.
func (p PageRequest) Validate() error {
	switch {
	case p.Page < 1:
		return errors.Validationf("page must be at least 1, got %d", p.Page)
	case p.Limit < 1:
		return errors.Validationf("limit must be at least 1, got %d", p.Limit)
	case p.Limit > MaxPageLimit:
		return errors.Validationf("limit must not exceed %d, got %d", MaxPageLimit, p.Limit)
	}
	return nil
}

// RegisterInput is a new account request.
type RegisterInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileUpdate changes the caller's own profile. Nil fields are left alone.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty" validate:"omitnil,notblank"`
	Phone   *string `json:"phone,omitempty"`
	Avatar  *string `json:"avatar,omitempty" validate:"omitnil,omitempty,url"`
	Address *string `json:"address,omitempty"`
	Bio     *string `json:"bio,omitempty"`
}

// BookInput creates or replaces a book from the admin screens.
type BookInput struct {
	Title       string      `json:"title" validate:"notblank"`
	AuthorID    string      `json:"authorId" validate:"required"`
	CategoryID  string      `json:"categoryId" validate:"required"`
	Cover       string      `json:"cover,omitempty"`
	Description string      `json:"description,omitempty"`
	Pages       int         `json:"pages,omitempty" validate:"gte=0"`
	PublishedAt domain.Date `json:"publishedAt"`
	ISBN        string      `json:"isbn,omitempty"`
	TotalCopies int         `json:"totalCopies" validate:"gte=1"`
}

// UserInput creates or updates an account from the admin screens.
// Password is required on create and optional on update.
type UserInput struct {
	Name     string      `json:"name" validate:"notblank"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password,omitempty" validate:"omitempty,min=6"`
	Phone    string      `json:"phone,omitempty"`
	Avatar   string      `json:"avatar,omitempty"`
	Address  string      `json:"address,omitempty"`
	Bio      string      `json:"bio,omitempty"`
	Role     domain.Role `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// ReviewInput adds a review to a book.
type ReviewInput struct {
	BookID  string `json:"bookId" validate:"required"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" validate:"notblank"`
}
