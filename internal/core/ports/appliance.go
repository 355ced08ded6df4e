package ports

import (
	"context"

	"github.com/lumenhub/appliance-portal/internal/core/domain"
)

// DeviceRelay calls through to the device-management gateway. Every failure
// is returned as an error; mapping to StatusUnknown is the caller's job.
type DeviceRelay interface {
	GetStatus(ctx context.Context) (domain.ApplianceStatus, error)
	ToggleStatus(ctx context.Context) (domain.ApplianceStatus, error)
}

// ApplianceService never fails: unreachable devices read as StatusUnknown.
type ApplianceService interface {
	Status(ctx context.Context) domain.ApplianceStatus
	Toggle(ctx context.Context) domain.ApplianceStatus
}
