package service

import (
	domainerrors "github.com/listenupapp/board-server/internal/errors"
)

// Board service errors.
var (
	// ErrEmptyContent is returned when submitted text is empty after trimming.
	ErrEmptyContent = domainerrors.EmptyContent("content is empty")

	// ErrInvalidID is returned when an identifier is not numeric.
	ErrInvalidID = domainerrors.InvalidID("identifier is not numeric")

	// ErrMessageNotFound is returned when a reply targets a missing message.
	ErrMessageNotFound = domainerrors.NotFound("message not found")
)
