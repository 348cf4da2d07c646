package store

import (
	"errors"

	liberrors "github.com/listenupapp/library-client/internal/errors"
)

// Sentinel errors. They carry the data access taxonomy codes so callers can
// match them with errors.Is against either package.
var (
	ErrNotFound      = liberrors.NotFound("record not found")
	ErrAlreadyExists = liberrors.AlreadyExists("record already exists")
)

// errStop ends an iteration the consumer abandoned.
var errStop = errors.New("iteration stopped")
