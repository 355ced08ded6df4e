package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lumenhub/appliance-portal/internal/api/middleware"
	"github.com/lumenhub/appliance-portal/internal/api/view"
	"github.com/lumenhub/appliance-portal/internal/core/domain"
	"github.com/lumenhub/appliance-portal/internal/core/ports"
	"github.com/lumenhub/appliance-portal/internal/pkg/metrics"
	"github.com/lumenhub/appliance-portal/pkg/logger"
)

const (
	msgInvalidCredentials = "Invalid username or password."
	msgMissingFields      = "Username and password are required."
	msgUnexpected         = "Unexpected error!"
)

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionService
	throttle ports.LoginThrottle
	cookie   middleware.SessionCookie
	log      zerolog.Logger
}

// NewAuthHandler wires the login flow. throttle may be nil.
func NewAuthHandler(auth ports.AuthService, sessions ports.SessionService, throttle ports.LoginThrottle, cookie middleware.SessionCookie, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, throttle: throttle, cookie: cookie, log: log}
}

type loginForm struct {
	Username string `form:"username" validate:"required,max=256"`
	Password string `form:"password" validate:"required,max=1024"`
}

type hashForm struct {
	Password string `form:"password" validate:"required,max=1024"`
	Salt     string `form:"salt" validate:"required,max=1024"`
}

// LoginForm handles GET /login. A visitor with a valid session goes straight
// to the index.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if _, err := h.sessions.Validate(h.cookie.Token(c)); err == nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, view.PageLogin, &view.Data{})
}

// Login handles POST /login. Every credential failure renders the same
// message so the form never reveals which field was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx, h.log)

	var form loginForm
	if err := c.Bind(&form); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return c.Render(http.StatusBadRequest, view.PageLogin, &view.Data{Error: msgMissingFields})
	}
	if err := c.Validate(&form); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return c.Render(http.StatusBadRequest, view.PageLogin, &view.Data{Error: msgMissingFields, Username: form.Username})
	}

	ip := c.RealIP()
	if h.throttle != nil {
		blocked, err := h.throttle.Blocked(ctx, ip)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("login throttle check failed, continuing")
		} else if blocked {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			log.Warn().Str("username", form.Username).Str("ip", ip).Msg("login throttled")
			return c.Render(http.StatusTooManyRequests, view.PageLogin, &view.Data{Error: msgInvalidCredentials, Username: form.Username})
		}
	}

	user, err := h.auth.Authenticate(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			log.Info().Str("username", form.Username).Str("ip", ip).Msg("failed login attempt")
			h.recordFailure(c, ip)
			return c.Render(http.StatusUnauthorized, view.PageLogin, &view.Data{Error: msgInvalidCredentials, Username: form.Username})
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("authenticate failed")
		return c.Render(http.StatusInternalServerError, view.PageLogin, &view.Data{Error: msgUnexpected, Username: form.Username})
	}

	token, sess, err := h.sessions.Issue(user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("issue session failed")
		return c.Render(http.StatusInternalServerError, view.PageLogin, &view.Data{Error: msgUnexpected, Username: form.Username})
	}

	if h.throttle != nil {
		if err := h.throttle.Reset(ctx, ip); err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("login throttle reset failed")
		}
	}

	h.cookie.Set(c, token, sess.ExpiresAt)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()
	log.Info().Str("username", user.Username).Str("ip", ip).Msg("user logged in")

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) recordFailure(c echo.Context, ip string) {
	if h.throttle == nil {
		return
	}
	ctx := c.Request().Context()
	if err := h.throttle.RecordFailure(ctx, ip); err != nil {
		log := logger.FromContext(ctx, h.log)
		log.Warn().Err(err).Str("ip", ip).Msg("login throttle record failed")
	}
}

// Logout handles GET /logout. The token is only dropped client-side; a copy
// replayed before expiry still validates.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess, err := h.sessions.Validate(h.cookie.Token(c)); err == nil {
		log := logger.FromContext(c.Request().Context(), h.log)
		log.Info().
			Str("username", sess.Claims.Username).
			Str("ip", c.RealIP()).
			Msg("user logged out")
	}
	h.cookie.Clear(c)
	return c.Redirect(http.StatusFound, "/")
}

// HashForm handles GET /hash.
func (h *AuthHandler) HashForm(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageHash, hashPageData(c))
}

// Hash handles POST /hash and shows derive(password, salt) for provisioning
// stored credentials. The password is not echoed back.
func (h *AuthHandler) Hash(c echo.Context) error {
	data := hashPageData(c)

	var form hashForm
	if err := c.Bind(&form); err != nil {
		data.Error = "invalid payload"
		return c.Render(http.StatusBadRequest, view.PageHash, data)
	}
	data.Salt = form.Salt
	if err := c.Validate(&form); err != nil {
		data.Error = err.Error()
		return c.Render(http.StatusBadRequest, view.PageHash, data)
	}

	data.Hash = h.auth.Hash(form.Password, form.Salt)
	return c.Render(http.StatusOK, view.PageHash, data)
}

func hashPageData(c echo.Context) *view.Data {
	data := &view.Data{}
	if sess, ok := middleware.SessionFrom(c); ok {
		data.Authed = true
		data.DisplayName = sess.Claims.DisplayName
		data.Username = sess.Claims.Username
	}
	return data
}
