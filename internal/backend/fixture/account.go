package fixture

import (
	"context"
	"strings"

	"github.com/listenupapp/library-client/internal/auth"
	"github.com/listenupapp/library-client/internal/backend"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/id"
	"github.com/listenupapp/library-client/internal/store"
)

// Login checks the credentials and mints a session token.
// Unknown emails and wrong passwords fail the same way.
func (b *Backend) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	user, err := b.store.Users.GetByIndex(ctx, "email", email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.InvalidCredentials("invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	return b.authResult(user)
}

// Register creates a regular account and signs it in.
func (b *Backend) Register(ctx context.Context, in backend.RegisterInput) (*domain.AuthResult, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	if err := b.validator.Validate(in); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Role:  domain.RoleUser,
	}
	if err := b.createUser(ctx, user, in.Password); err != nil {
		return nil, err
	}

	b.logger.Info("account registered", "user_id", user.ID)
	return b.authResult(user)
}

// Profile returns the signed-in user.
func (b *Backend) Profile(ctx context.Context) (*domain.User, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	user, err := b.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile applies the non-nil fields of in to the signed-in user.
func (b *Backend) UpdateProfile(ctx context.Context, in backend.ProfileUpdate) (*domain.User, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	user, err := b.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.validator.Validate(in); err != nil {
		return nil, err
	}

	set := func(dst, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&user.Name, in.Name)
	set(&user.Phone, in.Phone)
	set(&user.Avatar, in.Avatar)
	set(&user.Address, in.Address)
	set(&user.Bio, in.Bio)

	if err := b.store.Users.Update(ctx, user.ID, user); err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// Logout has nothing to revoke: fixture tokens are self-contained.
func (b *Backend) Logout(ctx context.Context) error {
	return b.wait(ctx)
}

func (b *Backend) authResult(user *domain.User) (*domain.AuthResult, error) {
	token, err := b.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{Token: token, User: user.Public()}, nil
}

// createUser hashes password, assigns an id and stores user.
// A taken email yields ALREADY_EXISTS.
func (b *Backend) createUser(ctx context.Context, user *domain.User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return errors.Validation(err.Error())
	}
	user.PasswordHash = hash

	if user.ID, err = id.Generate(id.PrefixUser); err != nil {
		return err
	}

	if err := b.store.Users.Create(ctx, user.ID, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return errors.AlreadyExistsf("email %q is already registered", user.Email)
		}
		return err
	}
	return nil
}
