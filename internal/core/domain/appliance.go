package domain

import (
	"encoding/json"
	"fmt"
)

// ApplianceStatus is the tri-state power state reported by the device.
// It serialises as the bare integer the control page switches on.
type ApplianceStatus int

const (
	StatusUnknown ApplianceStatus = -1
	StatusOff     ApplianceStatus = 0
	StatusOn      ApplianceStatus = 1
)

// ParseApplianceStatus maps a raw device value to a status. Values outside
// the tri-state collapse to StatusUnknown.
func ParseApplianceStatus(v int) ApplianceStatus {
	switch ApplianceStatus(v) {
	case StatusOn, StatusOff:
		return ApplianceStatus(v)
	default:
		return StatusUnknown
	}
}

func (s ApplianceStatus) String() string {
	switch s {
	case StatusOn:
		return "on"
	case StatusOff:
		return "off"
	default:
		return "unknown"
	}
}

// UnmarshalJSON accepts the integer form only; anything else is an error.
func (s *ApplianceStatus) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("appliance status: %w", err)
	}
	*s = ParseApplianceStatus(v)
	return nil
}
