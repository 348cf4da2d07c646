// Package uistore holds the UI state shared across views: search text, the
// selected category, which panels are open and the borrow cart.
//
// A Store is owned by the composition root and handed to whoever needs it.
// Every operation is synchronous and cannot fail.
package uistore

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/listenupapp/library-client/internal/domain"
)

// CartItem is a book waiting to be borrowed.
type CartItem struct {
	Book     domain.Book `json:"book"`
	Quantity int         `json:"quantity"`
}

// State is a point-in-time copy of the store.
type State struct {
	SearchQuery      string     `json:"searchQuery"`
	SelectedCategory *string    `json:"selectedCategory"`
	SearchOpen       bool       `json:"searchOpen"`
	MobileMenuOpen   bool       `json:"mobileMenuOpen"`
	CartOpen         bool       `json:"cartOpen"`
	Cart             []CartItem `json:"cart"` // insertion order
}

// Listener is called with the new state after every change.
type Listener func(State)

// Store is the UI state container. It is safe for concurrent use.
// Listeners run on the goroutine that made the change, after the lock is released.
type Store struct {
	mu               sync.RWMutex
	searchQuery      string
	selectedCategory *string
	searchOpen       bool
	mobileMenuOpen   bool
	cartOpen         bool

	// cart keeps ids in insertion order; items holds the entries.
	cart  []string
	items map[string]*CartItem

	listenersMu sync.RWMutex
	listeners   map[uint64]Listener
	nextID      uint64

	logger *slog.Logger
}

// New creates an empty store.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		items:     make(map[string]*CartItem),
		listeners: make(map[uint64]Listener),
		logger:    logger,
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// update applies fn under the write lock and notifies listeners when fn
// reports a change.
func (s *Store) update(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	var snap State
	if changed {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
	return changed
}

func (s *Store) notify(snap State) {
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// SetSearchQuery replaces the search text verbatim. It never runs a search.
func (s *Store) SetSearchQuery(q string) {
	s.update(func() bool {
		if s.searchQuery == q {
			return false
		}
		s.searchQuery = q
		return true
	})
}

// SetSelectedCategory selects the category filter.
func (s *Store) SetSelectedCategory(id string) {
	s.update(func() bool {
		if s.selectedCategory != nil && *s.selectedCategory == id {
			return false
		}
		s.selectedCategory = &id
		return true
	})
}

// ClearSelectedCategory removes the category filter.
func (s *Store) ClearSelectedCategory() {
	s.update(func() bool {
		if s.selectedCategory == nil {
			return false
		}
		s.selectedCategory = nil
		return true
	})
}

// ToggleSearch opens or closes the search panel. Closing also clears the text.
func (s *Store) ToggleSearch() {
	s.update(func() bool {
		if s.searchOpen {
			s.searchOpen = false
			s.searchQuery = ""
			return true
		}
		s.searchOpen = true
		return true
	})
}

// CloseSearch closes the search panel and clears the text.
func (s *Store) CloseSearch() {
	s.update(func() bool {
		if !s.searchOpen && s.searchQuery == "" {
			return false
		}
		s.searchOpen = false
		s.searchQuery = ""
		return true
	})
}

// ToggleMobileMenu opens or closes the mobile menu.
func (s *Store) ToggleMobileMenu() {
	s.update(func() bool {
		s.mobileMenuOpen = !s.mobileMenuOpen
		return true
	})
}

// ToggleCart opens or closes the cart drawer.
func (s *Store) ToggleCart() {
	s.update(func() bool {
		s.cartOpen = !s.cartOpen
		return true
	})
}

// SetCartOpen opens or closes the cart drawer.
func (s *Store) SetCartOpen(open bool) {
	s.update(func() bool {
		if s.cartOpen == open {
			return false
		}
		s.cartOpen = open
		return true
	})
}

// AddItem puts book in the cart with quantity 1. Adding a book that is
// already there changes nothing and returns false.
func (s *Store) AddItem(book domain.Book) bool {
	added := s.update(func() bool {
		if _, ok := s.items[book.ID]; ok {
			return false
		}
		s.items[book.ID] = &CartItem{Book: book, Quantity: 1}
		s.cart = append(s.cart, book.ID)
		return true
	})
	if added {
		s.logger.Debug("cart item added", "book_id", book.ID)
	}
	return added
}

// RemoveItem takes a book out of the cart. Returns false when it was not there.
func (s *Store) RemoveItem(id string) bool {
	return s.update(func() bool {
		return s.removeLocked(id)
	})
}

// SetQuantity changes how many copies of a cart item are wanted.
// n <= 0 removes the item. Unknown ids are ignored.
func (s *Store) SetQuantity(id string, n int) {
	s.update(func() bool {
		item, ok := s.items[id]
		if !ok {
			return false
		}
		if n <= 0 {
			return s.removeLocked(id)
		}
		if item.Quantity == n {
			return false
		}
		item.Quantity = n
		return true
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.update(func() bool {
		if len(s.cart) == 0 {
			return false
		}
		s.cart = nil
		clear(s.items)
		return true
	})
}

func (s *Store) removeLocked(id string) bool {
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, cid := range s.cart {
		if cid == id {
			s.cart = append(s.cart[:i:i], s.cart[i+1:]...)
			break
		}
	}
	return true
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := State{
		SearchQuery:    s.searchQuery,
		SearchOpen:     s.searchOpen,
		MobileMenuOpen: s.mobileMenuOpen,
		CartOpen:       s.cartOpen,
		Cart:           s.itemsLocked(),
	}
	if s.selectedCategory != nil {
		c := *s.selectedCategory
		st.SelectedCategory = &c
	}
	return st
}

// SearchQuery returns the current search text.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SelectedCategory returns the selected category id, if any.
func (s *Store) SelectedCategory() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedCategory == nil {
		return "", false
	}
	return *s.selectedCategory, true
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked()
}

// All iterates over a copy of the cart taken when iteration starts.
func (s *Store) All() iter.Seq[CartItem] {
	return func(yield func(CartItem) bool) {
		for _, item := range s.Items() {
			if !yield(item) {
				return
			}
		}
	}
}

func (s *Store) itemsLocked() []CartItem {
	out := make([]CartItem, 0, len(s.cart))
	for _, id := range s.cart {
		out = append(out, *s.items[id])
	}
	return out
}

// Len returns the number of distinct books in the cart.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cart)
}

// Has reports whether a book is in the cart.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}
