package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lumenhub/appliance-portal/internal/api/middleware"
	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

type stubApplianceService struct {
	status domain.ApplianceStatus
	toggle domain.ApplianceStatus
}

func (s *stubApplianceService) Status(context.Context) domain.ApplianceStatus { return s.status }
func (s *stubApplianceService) Toggle(context.Context) domain.ApplianceStatus { return s.toggle }

func TestApplianceHandler_Status(t *testing.T) {
	for _, tc := range []struct {
		status domain.ApplianceStatus
		body   string
	}{
		{domain.StatusOn, "1"},
		{domain.StatusOff, "0"},
		{domain.StatusUnknown, "-1"},
	} {
		e := newEcho(t)
		h := NewApplianceHandler(&stubApplianceService{status: tc.status}, nil)

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/appliance/status", nil), rec)
		if err := h.Status(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %v, got %d", tc.status, rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != tc.body {
			t.Fatalf("expected body %s, got %s", tc.body, got)
		}
	}
}

func TestApplianceHandler_Toggle_Unreachable(t *testing.T) {
	e := newEcho(t)
	h := NewApplianceHandler(&stubApplianceService{toggle: domain.StatusUnknown}, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/appliance/status/toggle", nil), rec)
	if err := h.Toggle(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "-1" {
		t.Fatalf("expected 200 -1, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestApplianceHandler_Index(t *testing.T) {
	e := newEcho(t)
	h := NewApplianceHandler(&stubApplianceService{}, func(u string) bool { return u == "alice" })

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(middleware.SessionKey, &domain.Session{Claims: domain.Claims{Username: "alice", DisplayName: "Alice Liddell"}})

	if err := h.Index(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "Alice Liddell") || !strings.Contains(body, `href="/hash"`) {
		t.Fatalf("unexpected index page: %d %s", rec.Code, body)
	}
}

func TestApplianceHandler_Index_NoSession(t *testing.T) {
	e := newEcho(t)
	h := NewApplianceHandler(&stubApplianceService{}, nil)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := h.Index(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
