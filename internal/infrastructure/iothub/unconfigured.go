package iothub

import (
	"context"
	"fmt"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

// Unconfigured stands in when no hub connection string or device id is set,
// so the portal still serves logins and reports the device as unknown.
type Unconfigured struct{}

func (Unconfigured) GetStatus(context.Context) (domain.ApplianceStatus, error) {
	return domain.StatusUnknown, fmt.Errorf("%w: relay not configured", domain.ErrDeviceUnreachable)
}

func (Unconfigured) ToggleStatus(context.Context) (domain.ApplianceStatus, error) {
	return domain.StatusUnknown, fmt.Errorf("%w: relay not configured", domain.ErrDeviceUnreachable)
}
