package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusUnprocessableEntity},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeTokenExpired, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeCanceled, StatusClientClosedRequest},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestCode_EndsSession(t *testing.T) {
	assert.True(t, CodeUnauthorized.EndsSession())
	assert.True(t, CodeTokenExpired.EndsSession())
	assert.False(t, CodeInvalidCredentials.EndsSession())
	assert.False(t, CodeForbidden.EndsSession())
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := Unavailablef("no copies of %q", "Clean Code")

	assert.True(t, Is(err, ErrUnavailable))
	assert.False(t, Is(err, ErrNotFound))

	wrapped := fmt.Errorf("borrow: %w", err)
	assert.True(t, Is(wrapped, ErrUnavailable))
}

func TestError_WithCauseKeepsCode(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Internal("store failed").WithCause(cause)

	assert.Equal(t, CodeInternal, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store failed: disk on fire", err.Error())
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Code
	}{
		{http.StatusNotFound, CodeNotFound},
		{http.StatusConflict, CodeAlreadyExists},
		{http.StatusUnprocessableEntity, CodeUnavailable},
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusBadRequest, CodeValidation},
		{http.StatusGatewayTimeout, CodeTimeout},
		{http.StatusBadGateway, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "")
			assert.Equal(t, tt.want, err.Code)
			assert.Equal(t, http.StatusText(tt.status), err.Message)
		})
	}
}

func TestFrom(t *testing.T) {
	t.Run("domain error passes through", func(t *testing.T) {
		orig := NotFound("book not found")
		assert.Same(t, orig, From(fmt.Errorf("get: %w", orig)))
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		err := From(context.DeadlineExceeded)
		assert.Equal(t, CodeTimeout, err.Code)
	})

	t.Run("cancel becomes canceled", func(t *testing.T) {
		err := From(fmt.Errorf("wait: %w", context.Canceled))
		assert.Equal(t, CodeCanceled, err.Code)
	})

	t.Run("unknown becomes internal", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := From(cause)
		assert.Equal(t, CodeInternal, err.Code)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, From(nil))
	})
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFoundf("book %s not found", "9")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(stderrors.New("boom")))
	assert.Equal(t, http.StatusGatewayTimeout, StatusCode(context.DeadlineExceeded))
}

func TestEnvelope(t *testing.T) {
	env := Envelope(AlreadyExists("email already registered"))

	require.False(t, env.Success)
	assert.Equal(t, "email already registered", env.Message)
	assert.Equal(t, http.StatusConflict, env.StatusCode)
}
