package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUsers admits only sessions whose username is in allowed. It must run
// after Auth. An empty list admits nobody.
func RequireUsers(allowed ...string) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, u := range allowed {
		set[u] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			if _, ok := set[sess.Claims.Username]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
