package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

func contextWithUser(username string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/hash", nil), rec)
	if username != "" {
		c.Set(SessionKey, &domain.Session{Claims: domain.Claims{Username: username}})
	}
	return c, rec
}

func TestRequireUsers_Allows(t *testing.T) {
	c, rec := contextWithUser("alice")

	called := false
	handler := RequireUsers("alice", "bob")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireUsers_Forbids(t *testing.T) {
	for _, tc := range []struct {
		name    string
		user    string
		allowed []string
	}{
		{"not listed", "carol", []string{"alice"}},
		{"empty list", "alice", nil},
		{"no session", "", []string{"alice"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := contextWithUser(tc.user)
			handler := RequireUsers(tc.allowed...)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			err := handler(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusForbidden {
				t.Fatalf("expected 403 HTTPError, got %v", err)
			}
		})
	}
}
