// Package api is the client surface of the data access layer. Every operation
// resolves to a success Envelope or fails with an *errors.Error, and shares
// one policy for credentials, timeouts and expired sessions.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/session"
)

// DefaultMessage is the message of a success envelope.
const DefaultMessage = "Success"

// DefaultTimeout bounds a call when Options leaves Timeout zero.
const DefaultTimeout = 10 * time.Second

// Envelope is the success half of the uniform response shape.
// Failures are reported as *errors.Error; errors.Envelope renders them.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Options configures a Client.
type Options struct {
	Backend   backend.Backend
	Tokens    session.TokenStore
	Navigator session.Navigator
	LoginPath string
	Timeout   time.Duration
	Logger    *slog.Logger
}

// Client groups the operations by resource family.
type Client struct {
	Auth    *AuthAPI
	Books   *BooksAPI
	Authors *AuthorsAPI
	Loans   *LoansAPI
	Reviews *ReviewsAPI
	Admin   *AdminAPI

	backend   backend.Backend
	tokens    session.TokenStore
	navigator session.Navigator
	loginPath string
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a Client over opts.Backend.
func New(opts Options) *Client {
	if opts.Tokens == nil {
		opts.Tokens = session.NewMemoryTokens()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Navigator == nil {
		opts.Navigator = session.NewLogNavigator(opts.Logger)
	}
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	c := &Client{
		backend:   opts.Backend,
		tokens:    opts.Tokens,
		navigator: opts.Navigator,
		loginPath: opts.LoginPath,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
	}
	c.Auth = &AuthAPI{c: c}
	c.Books = &BooksAPI{c: c}
	c.Authors = &AuthorsAPI{c: c}
	c.Loans = &LoansAPI{c: c}
	c.Reviews = &ReviewsAPI{c: c}
	c.Admin = &AdminAPI{c: c}
	return c
}

// call runs one backend operation under the client policy:
//   - the stored token, when present, travels in the context;
//   - the call is bounded by the client timeout;
//   - every failure comes back as an *errors.Error;
//   - a rejected session clears the token and navigates to the login path.
func call[T any](ctx context.Context, c *Client, op string, fn func(context.Context) (T, error)) (*Envelope[T], error) {
	start := time.Now()

	token, attached := c.tokens.Token(ctx)
	if attached {
		ctx = session.WithToken(ctx, token)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := fn(callCtx)
	if err != nil {
		e := errors.From(err)
		c.logger.Debug("api call failed",
			"op", op,
			"duration", time.Since(start),
			"code", e.Code,
		)
		if e.Code.EndsSession() && attached {
			c.endSession(ctx, op)
		}
		return nil, e
	}

	c.logger.Debug("api call done", "op", op, "duration", time.Since(start))
	return &Envelope[T]{Success: true, Message: DefaultMessage, Data: data}, nil
}

// exec is call for operations that return no data.
func exec(ctx context.Context, c *Client, op string, fn func(context.Context) error) (*Envelope[struct{}], error) {
	return call(ctx, c, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

// endSession forgets the stored token and sends the user to sign in again.
func (c *Client) endSession(ctx context.Context, op string) {
	if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("failed to clear session token", "op", op, "error", err)
	}
	c.logger.Info("session ended by server", "op", op)
	c.navigator.Navigate(c.loginPath)
}
