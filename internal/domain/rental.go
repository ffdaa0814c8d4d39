package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusConfirmed RentalStatus = "confirmed"
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusVoid      RentalStatus = "void"
)

// NonTerminalRentalStatuses are the statuses that still occupy a vehicle's schedule.
var NonTerminalRentalStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusConfirmed,
	RentalStatusActive,
}

func (s RentalStatus) IsValid() bool {
	switch s {
	case RentalStatusPending, RentalStatusConfirmed, RentalStatusActive,
		RentalStatusCompleted, RentalStatusCancelled, RentalStatusVoid:
		return true
	}
	return false
}

// IsTerminal reports whether a rental in this status no longer blocks the vehicle.
func (s RentalStatus) IsTerminal() bool {
	switch s {
	case RentalStatusCompleted, RentalStatusCancelled, RentalStatusVoid:
		return true
	}
	return false
}

type RentalType string

const (
	RentalTypeHourly  RentalType = "hourly"
	RentalTypeDaily   RentalType = "daily"
	RentalTypeWeekly  RentalType = "weekly"
	RentalTypeMonthly RentalType = "monthly"
)

func (t RentalType) IsValid() bool {
	switch t {
	case RentalTypeHourly, RentalTypeDaily, RentalTypeWeekly, RentalTypeMonthly:
		return true
	}
	return false
}

// ParseRentalType accepts the lowercase wire form of a duration class.
func ParseRentalType(s string) (RentalType, error) {
	t := RentalType(s)
	if !t.IsValid() {
		return "", NewValidationError("rental_type", "unknown rental type %q", s)
	}
	return t, nil
}

type Rental struct {
	ID           string       `json:"id"`
	OrgID        string       `json:"org_id"`
	VehicleID    string       `json:"vehicle_id"`
	CustomerID   string       `json:"customer_id"`
	CustomerName string       `json:"customer_name"`
	Start        time.Time    `json:"start"`
	End          time.Time    `json:"end"`
	RentalType   RentalType   `json:"rental_type"`
	Status       RentalStatus `json:"status"`
	// Package snapshot, copied onto the rental when a package is assigned.
	PackageID         *string         `json:"package_id,omitempty"`
	IncludedDistance  int64           `json:"included_distance"`
	ExtraDistanceRate decimal.Decimal `json:"extra_distance_rate"`
	StartOdometer     int64           `json:"start_odometer"`
	EndingOdometer    *int64          `json:"ending_odometer,omitempty"`
	TotalDistance     *int64          `json:"total_kilometers_driven,omitempty"`
	HasOverage        bool            `json:"has_overage"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	OverageCharge     decimal.Decimal `json:"overage_charge"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	CreatedOn         time.Time       `json:"created_on"`
	UpdatedOn         time.Time       `json:"updated_on"`
}

// Occupies reports whether the rental still blocks its vehicle's schedule.
func (r *Rental) Occupies() bool {
	return !r.Status.IsTerminal()
}
