package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/listenupapp/board-server/internal/errors"
	"github.com/listenupapp/board-server/internal/logger"
	"github.com/listenupapp/board-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}

			var storeErr *store.Error
			if errors.As(err, &storeErr) && storeErr.HTTPCode() < http.StatusInternalServerError {
				return &APIError{
					status:  storeErr.HTTPCode(),
					Code:    statusToCode(storeErr.HTTPCode()),
					Message: storeErr.Message,
				}
			}

			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return &APIError{
					status:  http.StatusRequestEntityTooLarge,
					Code:    string(domainerrors.CodeValidation),
					Message: "request body too large",
				}
			}
		}

		// huma's own validation errors keep their details.
		var details any
		if len(errs) > 0 && status < http.StatusInternalServerError {
			msgs := make([]string, 0, len(errs))
			for _, err := range errs {
				msgs = append(msgs, err.Error())
			}
			details = msgs
		}

		return &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
			Details: details,
		}
	}
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case status == http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	case status == http.StatusServiceUnavailable:
		return string(domainerrors.CodeUnavailable)
	case status >= 400 && status < 500:
		return string(domainerrors.CodeValidation)
	default:
		return string(domainerrors.CodeInternal)
	}
}

// fail logs unexpected errors before handing them to huma. Domain and
// client errors are part of normal operation and are returned as is.
func (s *Server) fail(ctx context.Context, op string, err error) error {
	var domainErr *domainerrors.Error
	var storeErr *store.Error
	switch {
	case errors.As(err, &domainErr):
	case errors.As(err, &storeErr) && storeErr.HTTPCode() < http.StatusInternalServerError:
	default:
		logger.FromContext(ctx, s.logger).Error("Request failed", "op", op, "error", err)
	}
	return err
}
