// Package store persists library records in Badger.
//
// The fixture backend runs it fully in memory; the session layer opens it on
// disk to keep the auth token between runs.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	jsoniter "github.com/json-iterator/go"

	"github.com/listenupapp/library-client/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Key prefixes for the library entities.
const (
	bookPrefix     = "book:"
	authorPrefix   = "author:"
	categoryPrefix = "category:"
	userPrefix     = "user:"
	loanPrefix     = "loan:"
	reviewPrefix   = "review:"
	kvPrefix       = "kv:"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Books      *Entity[domain.Book]
	Authors    *Entity[domain.Author]
	Categories *Entity[domain.Category]
	Users      *Entity[domain.User]
	Loans      *Entity[domain.Loan]
	Reviews    *Entity[domain.Review]
}

// New opens (or creates) a store at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	return open(opts, logger, path)
}

// NewInMemory opens a store that lives only as long as the process.
func NewInMemory(logger *slog.Logger) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), logger, ":memory:")
}

func open(opts badger.Options, logger *slog.Logger, path string) (*Store, error) {
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{db: db, logger: logger}
	s.initEntities()

	if logger != nil {
		logger.Debug("badger database opened", "path", path)
	}
	return s, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Debug("closing database")
	}
	return s.db.Close()
}

// Shutdown implements do.Shutdowner.
func (s *Store) Shutdown() error {
	return s.Close()
}

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key. Missing keys are not an error.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (s *Store) initEntities() {
	s.Books = NewEntity[domain.Book](s, bookPrefix).
		WithMultiIndex("category", func(b *domain.Book) []string {
			return []string{b.Category.ID}
		}).
		WithMultiIndex("author", func(b *domain.Book) []string {
			return []string{b.Author.ID}
		})
	s.Authors = NewEntity[domain.Author](s, authorPrefix)
	s.Categories = NewEntity[domain.Category](s, categoryPrefix)

	// Email lookups are case-insensitive.
	s.Users = NewEntity[domain.User](s, userPrefix).
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail,
		)

	s.Loans = NewEntity[domain.Loan](s, loanPrefix).
		WithMultiIndex("user", func(l *domain.Loan) []string {
			return []string{l.UserID}
		})
	s.Reviews = NewEntity[domain.Review](s, reviewPrefix).
		WithMultiIndex("book", func(r *domain.Review) []string {
			return []string{r.Book.ID}
		})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
