package domain

type VehicleStatus string

const (
	VehicleStatusAvailable    VehicleStatus = "available"
	VehicleStatusRented       VehicleStatus = "rented"
	VehicleStatusMaintenance  VehicleStatus = "maintenance"
	VehicleStatusOutOfService VehicleStatus = "out_of_service"
)

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusRented, VehicleStatusMaintenance, VehicleStatusOutOfService:
		return true
	}
	return false
}

// Bookable is false for vehicles an operator has taken off the road.
func (s VehicleStatus) Bookable() bool {
	switch s {
	case VehicleStatusMaintenance, VehicleStatusOutOfService:
		return false
	}
	return true
}

type Vehicle struct {
	ID              string        `json:"id"`
	OrgID           string        `json:"org_id"`
	ModelID         string        `json:"model_id"`
	PlateNumber     string        `json:"plate_number"`
	Status          VehicleStatus `json:"status"`
	CurrentOdometer int64         `json:"current_odometer"`
}

// AvailabilityState is the schedule-derived state of a vehicle at an instant.
type AvailabilityState string

const (
	AvailabilityAvailable AvailabilityState = "available"
	AvailabilityRented    AvailabilityState = "rented"
	AvailabilityReserved  AvailabilityState = "reserved"
)
