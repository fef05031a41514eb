package models

import "time"

// DriverStatus is the availability state of a delivery driver. Delivery
// assignment mutates it; the workflows themselves live outside this core.
type DriverStatus string

const (
	DriverAvailable  DriverStatus = "available"
	DriverDelivering DriverStatus = "delivering"
	DriverOffline    DriverStatus = "offline"
)

// AllDriverStatuses enumerates the accepted driver statuses.
var AllDriverStatuses = []DriverStatus{
	DriverAvailable,
	DriverDelivering,
	DriverOffline,
}

// DriverStatusNames returns the driver status tokens as strings.
func DriverStatusNames() []string {
	names := make([]string, len(AllDriverStatuses))
	for i, s := range AllDriverStatuses {
		names[i] = string(s)
	}
	return names
}

// ValidDriverStatus reports whether raw is a member of the enumerated set.
func ValidDriverStatus(raw string) bool {
	for _, s := range AllDriverStatuses {
		if string(s) == raw {
			return true
		}
	}
	return false
}

// Driver is a registered delivery driver. Phone numbers are unique.
type Driver struct {
	ID          int64        `json:"id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	PhoneNumber string       `json:"phone_number"`
	Status      DriverStatus `json:"status"`
	CreatedAt   time.Time    `json:"created"`
	UpdatedAt   time.Time    `json:"updated"`
}

// CreateDriverRequest is the payload for POST /drivers.
type CreateDriverRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Status      string `json:"status" binding:"required,driverstatus"`
}
