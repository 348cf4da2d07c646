package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

func TestMatcher_FoldsCase(t *testing.T) {
	book := &domain.Book{
		ID:          "1",
		Title:       "Straße der Bücher",
		Author:      domain.AuthorRef{ID: "1", Name: "Émile Zola"},
		Category:    domain.CategoryRef{ID: "3", Name: "Fiction"},
		Description: "A long walk.",
	}

	tests := []struct {
		name   string
		filter backend.BookFilter
		want   bool
	}{
		{"empty filter", backend.BookFilter{}, true},
		{"upper case search", backend.BookFilter{Search: "BÜCHER"}, true},
		{"accented author", backend.BookFilter{Author: "émile"}, true},
		{"category id", backend.BookFilter{Category: "3"}, true},
		{"category name", backend.BookFilter{Category: "fict"}, true},
		{"wrong category", backend.BookFilter{Category: "Science"}, false},
		{"search misses", backend.BookFilter{Search: "sprint"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newMatcher(tt.filter).match(book))
		})
	}
}

func TestCompareIDs(t *testing.T) {
	ids := []string{"10", "user2", "2", "admin1", "1"}
	books := make([]domain.Book, len(ids))
	for i, id := range ids {
		books[i] = domain.Book{ID: id}
	}

	sortBooks(books)

	got := make([]string, len(books))
	for i, b := range books {
		got[i] = b.ID
	}
	assert.Equal(t, []string{"1", "2", "10", "admin1", "user2"}, got)
}
