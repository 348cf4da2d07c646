package fixture

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

// matcher applies a BookFilter. Matching is case-insensitive substring
// containment using Unicode case folding.
type matcher struct {
	fold     cases.Caser
	search   string
	category string
	author   string
	rawCat   string
}

// newMatcher prepares f for matching. A Caser is stateful, so every call gets its own.
func newMatcher(f backend.BookFilter) *matcher {
	m := &matcher{fold: cases.Fold(), rawCat: f.Category}
	m.search = m.fold.String(f.Search)
	m.category = m.fold.String(f.Category)
	m.author = m.fold.String(f.Author)
	return m
}

func (m *matcher) contains(haystack, needle string) bool {
	return strings.Contains(m.fold.String(haystack), needle)
}

// match reports whether b passes every non-empty predicate.
func (m *matcher) match(b *domain.Book) bool {
	if m.category != "" && b.Category.ID != m.rawCat && !m.contains(b.Category.Name, m.category) {
		return false
	}
	if m.author != "" && !m.contains(b.Author.Name, m.author) {
		return false
	}
	if m.search != "" &&
		!m.contains(b.Title, m.search) &&
		!m.contains(b.Author.Name, m.search) &&
		!m.contains(b.Description, m.search) {
		return false
	}
	return true
}

// filterBooks returns the books passing f in seeded id order.
func filterBooks(books []*domain.Book, f backend.BookFilter) []domain.Book {
	m := newMatcher(f)
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if m.match(b) {
			out = append(out, *b)
		}
	}
	sortBooks(out)
	return out
}

func sortBooks(books []domain.Book) {
	slices.SortStableFunc(books, func(a, b domain.Book) int { return compareIDs(a.ID, b.ID) })
}

// compareIDs orders numeric ids numerically and before any other id.
// Other ids compare as strings.
func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na - nb
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
