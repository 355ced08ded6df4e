package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumenhub/appliance-portal/internal/api/view"
	"github.com/lumenhub/appliance-portal/internal/core/ports"
)

// ApplianceHandler serves the control page and the two relay endpoints.
// Both endpoints answer 200 with the bare status number; an unreachable
// device is -1, never a 5xx.
type ApplianceHandler struct {
	appliance  ports.ApplianceService
	canUseHash func(username string) bool
}

func NewApplianceHandler(appliance ports.ApplianceService, canUseHash func(username string) bool) *ApplianceHandler {
	if canUseHash == nil {
		canUseHash = func(string) bool { return false }
	}
	return &ApplianceHandler{appliance: appliance, canUseHash: canUseHash}
}

// Index handles GET /.
func (h *ApplianceHandler) Index(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageIndex, &view.Data{
		Authed:       true,
		DisplayName:  sess.Claims.DisplayName,
		Username:     sess.Claims.Username,
		ShowHashLink: h.canUseHash(sess.Claims.Username),
	})
}

// Status handles GET /appliance/status.
//
// @Summary      Current appliance power state
// @Tags         appliance
// @Produce      json
// @Success      200  {integer}  int  "1 on, 0 off, -1 unknown"
// @Router       /appliance/status [get]
func (h *ApplianceHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.appliance.Status(c.Request().Context()))
}

// Toggle handles POST /appliance/status/toggle.
//
// @Summary      Toggle appliance power
// @Tags         appliance
// @Produce      json
// @Success      200  {integer}  int  "1 on, 0 off, -1 unknown"
// @Router       /appliance/status/toggle [post]
func (h *ApplianceHandler) Toggle(c echo.Context) error {
	return c.JSON(http.StatusOK, h.appliance.Toggle(c.Request().Context()))
}
