package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
	"github.com/lumenhub/appliance-portal/internal/core/ports"
	"github.com/lumenhub/appliance-portal/internal/pkg/metrics"
)

const (
	// SessionKey holds the *domain.Session of an authenticated request.
	SessionKey = "session"
	LoginPath  = "/login"
)

// SessionCookie describes the cookie carrying the signed session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set attaches token as a persistent cookie expiring with the session.
func (sc SessionCookie) Set(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear instructs the browser to drop the session cookie.
func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the raw cookie value, or "" when absent.
func (sc SessionCookie) Token(c echo.Context) string {
	ck, err := c.Cookie(sc.Name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// Auth validates the session cookie on every request and injects the session
// into the context. Missing, expired or tampered sessions are redirected to
// the login page.
func Auth(sessions ports.SessionService, cookie SessionCookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := cookie.Token(c)
			sess, err := sessions.Validate(token)
			if err != nil {
				metrics.SessionRejectionsTotal.Inc()
				if token != "" {
					cookie.Clear(c)
				}
				return c.Redirect(http.StatusFound, LoginPath)
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session injected by Auth, if any.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(SessionKey).(*domain.Session)
	return sess, ok && sess != nil
}
