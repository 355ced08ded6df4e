package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumenhub/appliance-portal/internal/api/middleware"
	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

// currentSession returns the session injected by the Auth middleware. Its
// absence means the route was registered without the middleware, which is a
// wiring bug; treat it as unauthenticated.
func currentSession(c echo.Context) (*domain.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
