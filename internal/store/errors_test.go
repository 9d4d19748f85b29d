package store_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/listenupapp/board-server/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := &store.Error{
		Code:    http.StatusNotFound,
		Message: "not found",
	}

	assert.Equal(t, "not found", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("underlying error")
	err := &store.Error{
		Code:    http.StatusNotFound,
		Message: "not found",
		Err:     cause,
	}

	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "underlying error")
}

func TestError_HTTPCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, store.ErrInvalidInput.HTTPCode())
	assert.Equal(t, http.StatusNotFound, store.ErrMessageNotFound.HTTPCode())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := store.ErrInvalidInput.WithCause(cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestError_WithMessage(t *testing.T) {
	modified := store.ErrNotFound.WithMessage("custom message")

	assert.Equal(t, "custom message", modified.Message)
	assert.Equal(t, http.StatusNotFound, modified.Code)
	assert.Equal(t, "resource not found", store.ErrNotFound.Message)
}

func TestError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("get message 7: %w", store.ErrMessageNotFound)

	assert.ErrorIs(t, wrapped, store.ErrNotFound)
	assert.ErrorIs(t, wrapped, store.ErrMessageNotFound)
	assert.NotErrorIs(t, wrapped, store.ErrAlreadyExists)
	assert.NotErrorIs(t, wrapped, store.ErrInvalidInput)
}
