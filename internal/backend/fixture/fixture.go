// Package fixture is an in-process backend serving the bundled dataset from an
// in-memory Badger store. Mutations last for the life of the process.
package fixture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/listenupapp/library-client/internal/auth"
	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/session"
	"github.com/listenupapp/library-client/internal/store"
	"github.com/listenupapp/library-client/internal/validation"
)

// DefaultAuthorTotal is the directory size used when Options leaves it nil.
const DefaultAuthorTotal = 60

// Options configures a fixture Backend.
type Options struct {
	Delay       time.Duration    // simulated latency per call; zero disables it
	AuthorTotal *int             // size of the paginated author directory; nil means DefaultAuthorTotal
	TokenKey    string           // hex PASETO key; generated when empty
	Clock       func() time.Time // time source for loans, reviews and tokens
	Logger      *slog.Logger
}

// Backend serves every backend operation from the bundled dataset.
type Backend struct {
	store     *store.Store
	tokens    *auth.TokenService
	validator *validation.Validator
	directory *Directory
	logger    *slog.Logger
	delay     time.Duration
	now       func() time.Time

	// mu serialises read-modify-write sequences that span several records
	// (borrow, return, reviews feeding book ratings).
	mu sync.Mutex
}

var _ backend.Backend = (*Backend)(nil)

// New opens an in-memory store and seeds it with the bundled dataset.
func New(opts Options) (*Backend, error) {
	authorTotal := DefaultAuthorTotal
	if opts.AuthorTotal != nil {
		authorTotal = *opts.AuthorTotal
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	key, err := auth.KeyOrGenerate(opts.TokenKey)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenService(key, auth.DefaultAccessDuration)
	if err != nil {
		return nil, err
	}
	tokens.WithClock(opts.Clock)

	s, err := store.NewInMemory(opts.Logger)
	if err != nil {
		return nil, err
	}

	b := &Backend{
		store:     s,
		tokens:    tokens,
		validator: validation.New(),
		directory: NewDirectory(Authors(), authorTotal),
		logger:    opts.Logger,
		delay:     opts.Delay,
		now:       opts.Clock,
	}

	if err := b.seed(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("seed fixture dataset: %w", err)
	}
	return b, nil
}

// Shutdown releases the in-memory store.
func (b *Backend) Shutdown() error {
	return b.store.Close()
}

func (b *Backend) seed() error {
	w := b.store.NewBatch()
	defer w.Discard()

	for _, c := range Categories() {
		if err := store.BatchPut(w, b.store.Categories, c.ID, &c); err != nil {
			return err
		}
	}
	for _, a := range Authors() {
		if err := store.BatchPut(w, b.store.Authors, a.ID, &a); err != nil {
			return err
		}
	}
	for _, book := range Books() {
		if err := store.BatchPut(w, b.store.Books, book.ID, &book); err != nil {
			return err
		}
	}
	for _, u := range Users() {
		hash, err := auth.HashPassword(PasswordFor(&u))
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		if err := store.BatchPut(w, b.store.Users, u.ID, &u); err != nil {
			return err
		}
	}
	for _, l := range Loans() {
		if err := store.BatchPut(w, b.store.Loans, l.ID, &l); err != nil {
			return err
		}
	}
	for _, r := range Reviews() {
		if err := store.BatchPut(w, b.store.Reviews, r.ID, &r); err != nil {
			return err
		}
	}

	if err := w.Commit(); err != nil {
		return err
	}
	b.logger.Debug("fixture dataset seeded",
		"categories", len(Categories()),
		"authors", len(Authors()),
		"books", len(Books()),
	)
	return nil
}

// wait simulates network latency. It returns early with ctx's error when the
// caller gives up.
func (b *Backend) wait(ctx context.Context) error {
	if b.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(b.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// currentUser resolves the session carried by ctx.
func (b *Backend) currentUser(ctx context.Context) (*domain.User, error) {
	token, ok := session.TokenFrom(ctx)
	if !ok {
		return nil, errors.Unauthorized("authentication required")
	}

	claims, err := b.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := b.store.Users.Get(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.Unauthorized("account no longer exists")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// requireAdmin resolves the session and checks it belongs to an admin.
func (b *Backend) requireAdmin(ctx context.Context) (*domain.User, error) {
	user, err := b.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, errors.Forbidden("admin access required")
	}
	return user, nil
}

// notFound converts a store miss into a NOT_FOUND error naming the record.
func notFound(err error, what, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return errors.NotFoundf("%s %q not found", what, id)
	}
	return err
}
