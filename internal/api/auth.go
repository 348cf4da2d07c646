package api

import (
	"context"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
)

// AuthAPI signs users in and out and manages their profile.
type AuthAPI struct {
	c *Client
}

// Login signs in. The token is stored only when the backend accepts the credentials.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*Envelope[*domain.AuthResult], error) {
	env, err := call(ctx, a.c, "auth.login", func(ctx context.Context) (*domain.AuthResult, error) {
		return a.c.backend.Login(ctx, email, password)
	})
	if err != nil {
		return nil, err
	}
	if err := a.c.storeToken(ctx, env.Data.Token); err != nil {
		return nil, err
	}
	return env, nil
}

// Register creates an account and signs it in.
func (a *AuthAPI) Register(ctx context.Context, name, email, password string) (*Envelope[*domain.AuthResult], error) {
	in := backend.RegisterInput{Name: name, Email: email, Password: password}
	env, err := call(ctx, a.c, "auth.register", func(ctx context.Context) (*domain.AuthResult, error) {
		return a.c.backend.Register(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	if err := a.c.storeToken(ctx, env.Data.Token); err != nil {
		return nil, err
	}
	return env, nil
}

// Profile returns the signed-in user.
func (a *AuthAPI) Profile(ctx context.Context) (*Envelope[*domain.User], error) {
	return call(ctx, a.c, "auth.profile", a.c.backend.Profile)
}

// UpdateProfile changes the signed-in user's profile.
func (a *AuthAPI) UpdateProfile(ctx context.Context, update backend.ProfileUpdate) (*Envelope[*domain.User], error) {
	return call(ctx, a.c, "auth.update_profile", func(ctx context.Context) (*domain.User, error) {
		return a.c.backend.UpdateProfile(ctx, update)
	})
}

// Logout ends the session. The local token is cleared even when the backend call fails.
func (a *AuthAPI) Logout(ctx context.Context) (*Envelope[struct{}], error) {
	env, err := exec(ctx, a.c, "auth.logout", a.c.backend.Logout)
	if clearErr := a.c.tokens.Clear(context.WithoutCancel(ctx)); clearErr != nil && err == nil {
		return nil, errors.Wrap(clearErr, errors.CodeInternal, "failed to clear session token")
	}
	return env, err
}

// IsAuthenticated reports whether a token is stored.
func (a *AuthAPI) IsAuthenticated(ctx context.Context) bool {
	_, ok := a.c.tokens.Token(ctx)
	return ok
}

func (c *Client) storeToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.Internal("backend returned an empty session token")
	}
	if err := c.tokens.SetToken(ctx, token); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to store session token")
	}
	return nil
}
