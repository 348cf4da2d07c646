package fixture

import (
	"time"

	"github.com/listenupapp/library-client/internal/domain"
)

// Passwords of the bundled accounts.
const (
	AdminEmail      = "admin@email.com"
	AdminPassword   = "admin123"
	DefaultPassword = "password123"
)

// Categories returns the bundled categories. BookCount is left at zero; it is
// computed from the live collection on every read.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Fiction"},
		{ID: "2", Name: "Non-Fiction"},
		{ID: "3", Name: "Science"},
		{ID: "4", Name: "Technology"},
		{ID: "5", Name: "History"},
		{ID: "6", Name: "Biography"},
		{ID: "7", Name: "Self-Help"},
		{ID: "8", Name: "Mystery"},
		{ID: "9", Name: "Business & Economics"},
		{ID: "10", Name: "Psychology"},
		{ID: "11", Name: "Finance & Economics"},
	}
}

// Authors returns the bundled authors.
func Authors() []domain.Author {
	return []domain.Author{
		{
			ID:     "1",
			Name:   "John Smith",
			Bio:    "Bestselling author with over 20 years of experience in fiction writing.",
			Avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
		},
		{
			ID:     "2",
			Name:   "Sarah Johnson",
			Bio:    "Science fiction author known for her imaginative storytelling.",
			Avatar: "https://images.unsplash.com/photo-1494790108755-2616b612b9f3?w=150&h=150&fit=crop&crop=face",
		},
		{
			ID:     "3",
			Name:   "Michael Brown",
			Bio:    "Technology expert and bestselling author of programming books.",
			Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
		},
		{
			ID:     "4",
			Name:   "Morgan Housel",
			Bio:    `Author of "The Psychology of Money" and financial expert.`,
			Avatar: "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=150&h=150&fit=crop&crop=face",
		},
		{
			ID:     "5",
			Name:   "Emily Chen",
			Bio:    "Psychology professor and bestselling author of behavioral books.",
			Avatar: "https://images.unsplash.com/photo-1494790108755-2616b612b9f3?w=150&h=150&fit=crop&crop=face",
		},
	}
}

// Books returns the bundled books.
func Books() []domain.Book {
	authors := Authors()
	categories := Categories()
	author := func(i int) domain.AuthorRef { return authors[i].Ref() }
	category := func(i int) domain.CategoryRef { return categories[i].Ref() }

	return []domain.Book{
		{
			ID:           "1",
			Title:        "The Great Adventure",
			Author:       author(0),
			Category:     category(0),
			Cover:        "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=300&h=400&fit=crop",
			Rating:       4.5,
			TotalReviews: 124,
			Description:  "An epic tale of adventure and discovery that will take you on a journey through uncharted territories and unknown dangers.",
			Pages:        320,
			PublishedAt:  domain.NewDate("2023-01-15"),
			ISBN:         "978-0-123456-78-9",
			Availability: domain.Availability{Total: 5, Available: 3},
		},
		{
			ID:           "2",
			Title:        "Future Technologies",
			Author:       author(2),
			Category:     category(3),
			Cover:        "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=300&h=400&fit=crop",
			Rating:       4.2,
			TotalReviews: 89,
			Description:  "Explore the cutting-edge technologies that will shape our future and transform the way we live and work.",
			Pages:        450,
			PublishedAt:  domain.NewDate("2023-03-22"),
			ISBN:         "978-0-987654-32-1",
			Availability: domain.Availability{Total: 3, Available: 1},
		},
		{
			ID:           "3",
			Title:        "Space Odyssey",
			Author:       author(1),
			Category:     category(2),
			Cover:        "https://images.unsplash.com/photo-1446776877081-d282a0f896e2?w=300&h=400&fit=crop",
			Rating:       4.8,
			TotalReviews: 203,
			Description:  "A thrilling science fiction novel about humanity's journey to the stars and the challenges they face in the cosmos.",
			Pages:        380,
			PublishedAt:  domain.NewDate("2023-02-10"),
			ISBN:         "978-0-555666-77-8",
			Availability: domain.Availability{Total: 4, Available: 2},
		},
		{
			ID:           "4",
			Title:        "The Psychology of Money",
			Author:       author(3),
			Category:     category(8),
			Cover:        "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=400&fit=crop",
			Rating:       4.9,
			TotalReviews: 1250,
			Description:  "The Psychology of Money explores how emotions, biases, and human behavior shape the way we think about money, investing, and financial decisions. Morgan Housel shares timeless lessons on wealth, greed, and happiness, showing that financial success is not about knowledge, but about behavior.",
			Pages:        320,
			PublishedAt:  domain.NewDate("2020-09-08"),
			ISBN:         "978-0-857197-68-2",
			Availability: domain.Availability{Total: 8, Available: 5},
		},
		{
			ID:           "5",
			Title:        "Atomic Habits",
			Author:       author(4),
			Category:     category(6),
			Cover:        "https://images.unsplash.com/photo-1589829085413-56de8ae18c73?w=300&h=400&fit=crop",
			Rating:       4.7,
			TotalReviews: 2150,
			Description:  "An Easy & Proven Way to Build Good Habits & Break Bad Ones. No matter your goals, Atomic Habits offers a proven framework for improving--every day.",
			Pages:        320,
			PublishedAt:  domain.NewDate("2018-10-16"),
			ISBN:         "978-0-735211-29-3",
			Availability: domain.Availability{Total: 6, Available: 4},
		},
		{
			ID:           "6",
			Title:        "The Lean Startup",
			Author:       author(2),
			Category:     category(8),
			Cover:        "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=400&fit=crop",
			Rating:       4.3,
			TotalReviews: 980,
			Description:  "How Today's Entrepreneurs Use Continuous Innovation to Create Radically Successful Businesses.",
			Pages:        336,
			PublishedAt:  domain.NewDate("2011-09-13"),
			ISBN:         "978-0-307887-89-9",
			Availability: domain.Availability{Total: 4, Available: 2},
		},
		{
			ID:           "7",
			Title:        "Clean Code",
			Author:       author(2),
			Category:     category(3),
			Cover:        "https://images.unsplash.com/photo-1515879218367-8466d910aaa4?w=300&h=400&fit=crop",
			Rating:       4.6,
			TotalReviews: 756,
			Description:  "A Handbook of Agile Software Craftsmanship. Even bad code can function. But if code isn't clean, it can bring a development organization to its knees.",
			Pages:        464,
			PublishedAt:  domain.NewDate("2008-08-01"),
			ISBN:         "978-0-132350-88-4",
			Availability: domain.Availability{Total: 5, Available: 3},
		},
		{
			ID:           "8",
			Title:        "Thinking, Fast and Slow",
			Author:       author(4),
			Category:     category(9),
			Cover:        "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=300&h=400&fit=crop",
			Rating:       4.4,
			TotalReviews: 1890,
			Description:  "Daniel Kahneman takes us on a groundbreaking tour of the mind and explains the two systems that drive the way we think.",
			Pages:        499,
			PublishedAt:  domain.NewDate("2011-10-25"),
			ISBN:         "978-0-374275-63-1",
			Availability: domain.Availability{Total: 7, Available: 4},
		},
	}
}

// Users returns the bundled accounts without password hashes.
func Users() []domain.User {
	return []domain.User{
		{
			ID:      "user1",
			Name:    "John Doe",
			Email:   "johndoe@email.com",
			Phone:   "081234567890",
			Avatar:  "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
			Address: "123 Main Street, City, Country",
			Bio:     "Book enthusiast and avid reader",
			Role:    domain.RoleUser,
		},
		{
			ID:      "user2",
			Name:    "Jane Smith",
			Email:   "janesmith@email.com",
			Phone:   "081234567891",
			Avatar:  "https://images.unsplash.com/photo-1494790108755-2616b612b9f3?w=150&h=150&fit=crop&crop=face",
			Address: "456 Oak Avenue, City, Country",
			Bio:     "Fiction lover and weekend reader",
			Role:    domain.RoleUser,
		},
		{
			ID:      "user3",
			Name:    "Mike Johnson",
			Email:   "mikejohnson@email.com",
			Phone:   "081234567892",
			Avatar:  "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			Address: "789 Pine Street, City, Country",
			Bio:     "Technology enthusiast and programming book collector",
			Role:    domain.RoleUser,
		},
		{
			ID:      "admin1",
			Name:    "Admin User",
			Email:   AdminEmail,
			Phone:   "081234567800",
			Avatar:  "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=150&h=150&fit=crop&crop=face",
			Address: "Admin Office, Library Building",
			Bio:     "Library administrator",
			Role:    domain.RoleAdmin,
		},
	}
}

// Loans returns the bundled loans. They all belong to the first bundled user.
// The copies they hold are already reflected in the bundled availability counts.
func Loans() []domain.Loan {
	books := Books()
	returned := mustTime("2024-02-08T14:30:00Z")

	return []domain.Loan{
		{
			ID:         "loan1",
			UserID:     "user1",
			Book:       books[0],
			BorrowedAt: mustTime("2024-01-15T10:00:00Z"),
			DueAt:      mustTime("2024-02-15T23:59:59Z"),
			Status:     domain.LoanActive,
		},
		{
			ID:         "loan2",
			UserID:     "user1",
			Book:       books[1],
			BorrowedAt: mustTime("2024-01-10T10:00:00Z"),
			DueAt:      mustTime("2024-02-10T23:59:59Z"),
			ReturnedAt: &returned,
			Status:     domain.LoanReturned,
		},
		{
			ID:         "loan3",
			UserID:     "user1",
			Book:       books[2],
			BorrowedAt: mustTime("2023-12-01T10:00:00Z"),
			DueAt:      mustTime("2024-01-01T23:59:59Z"),
			Status:     domain.LoanOverdue,
		},
	}
}

// Reviews returns the bundled reviews.
func Reviews() []domain.Review {
	books := Books()
	users := Users()

	return []domain.Review{
		{
			ID:        "review1",
			User:      domain.ReviewerOf(&users[0]),
			Book:      books[0],
			Rating:    5,
			Comment:   "An absolutely fantastic read! Couldn't put it down.",
			CreatedAt: mustTime("2024-01-20T15:30:00Z"),
		},
		{
			ID:        "review2",
			User:      domain.ReviewerOf(&users[1]),
			Book:      books[0],
			Rating:    4,
			Comment:   "Great story with well-developed characters. Highly recommended!",
			CreatedAt: mustTime("2024-01-18T09:15:00Z"),
		},
	}
}

// PasswordFor returns the plain-text password of a bundled account.
func PasswordFor(u *domain.User) string {
	if u.Role == domain.RoleAdmin {
		return AdminPassword
	}
	return DefaultPassword
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
