package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lumenhub/appliance-portal/internal/api/middleware"
	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for JSON API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Sends browsers with an invalid session back to the login page.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"error": "<message>"} for JSON callers and plain text otherwise.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrSessionInvalid) {
			_ = c.Redirect(http.StatusFound, middleware.LoginPath)
			return
		}

		// The status endpoints always answer with a number.
		if errors.Is(err, domain.ErrDeviceUnreachable) {
			_ = c.JSON(http.StatusOK, domain.StatusUnknown)
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if wantsJSON(c) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		_ = c.String(code, msg)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Unexpected error!"
}

func wantsJSON(c echo.Context) bool {
	if strings.HasPrefix(c.Path(), "/appliance/") || strings.HasPrefix(c.Path(), "/health") {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

