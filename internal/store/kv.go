package store

import (
	"context"
	"errors"
)

// GetValue reads a small keyed value such as the stored auth token.
// Returns ErrNotFound when the key was never set or has been deleted.
func (s *Store) GetValue(ctx context.Context, key string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.get([]byte(kvPrefix+key), dest)
}

// SetValue writes a keyed value, replacing any previous one.
func (s *Store) SetValue(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(kvPrefix+key), value)
}

// DeleteValue removes a keyed value. Missing keys are not an error.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.delete([]byte(kvPrefix + key))
}

// HasValue reports whether key is set.
func (s *Store) HasValue(ctx context.Context, key string) (bool, error) {
	var raw any
	err := s.GetValue(ctx, key, &raw)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
