package remote

import (
	"context"

	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts the credentials to /api/auth/login.
func (b *Backend) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if err := b.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account through /api/auth/register.
func (b *Backend) Register(ctx context.Context, in backend.RegisterInput) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if err := b.post(ctx, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the signed-in user.
func (b *Backend) Profile(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := b.get(ctx, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile sends the changed profile fields.
func (b *Backend) UpdateProfile(ctx context.Context, in backend.ProfileUpdate) (*domain.User, error) {
	var out domain.User
	if err := b.put(ctx, "/api/auth/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout tells the server the session is over.
func (b *Backend) Logout(ctx context.Context) error {
	return b.post(ctx, "/api/auth/logout", nil, nil)
}
