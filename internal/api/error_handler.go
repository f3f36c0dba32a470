package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// RemainingAttempts is set only for incorrect verification codes so the UI
// can show a decrementing counter.
type errorResponse struct {
	Error             string `json:"error"`
	RemainingAttempts *int   `json:"remaining_attempts,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Collapses credential, deactivation, and not-activated failures into one
//     "invalid credentials" message to resist account enumeration.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var incorrect *domain.CodeIncorrectError
		if errors.As(err, &incorrect) {
			remaining := incorrect.Remaining
			_ = c.JSON(http.StatusUnauthorized, errorResponse{
				Error:             "incorrect verification code",
				RemainingAttempts: &remaining,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrAccountDeactivated),
		errors.Is(err, domain.ErrAccountNotActivated):
		// One message for all three; the sentinels stay distinct in logs.
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrCodeExpired):
		return http.StatusUnauthorized, "verification code expired"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusUnauthorized, "too many attempts"
	case errors.Is(err, domain.ErrInvalidSession):
		return http.StatusUnauthorized, "invalid or expired session"
	case errors.Is(err, domain.ErrInvalidTemporaryPassword):
		return http.StatusUnauthorized, "invalid temporary password"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusUnprocessableEntity, domain.ErrWeakPassword.Error()
	case errors.Is(err, domain.ErrEmailDeliveryFailed):
		return http.StatusBadGateway, "email delivery failed"
	case errors.Is(err, domain.ErrClubNotFound):
		return http.StatusNotFound, "club not found"
	case errors.Is(err, domain.ErrClubHasManager):
		return http.StatusConflict, "club already has a manager"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, "account already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
