package http

import (
	"time"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
)

type errorResponse struct {
	Error    string            `json:"error"`
	Field    string            `json:"field,omitempty"`
	Conflict *conflictResponse `json:"conflict,omitempty"`
}

type conflictResponse struct {
	RentalID     string    `json:"rental_id"`
	VehicleID    string    `json:"vehicle_id"`
	CustomerName string    `json:"customer_name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
}

type vehicleListResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
}

type validateRequest struct {
	VehicleID       string `json:"vehicle_id"`
	Start           string `json:"start"`
	End             string `json:"end"`
	ExcludeRentalID string `json:"exclude_rental_id,omitempty"`
}

type validateResponse struct {
	OK bool `json:"ok"`
}

type createRentalRequest struct {
	OrgID        string `json:"org_id"`
	VehicleID    string `json:"vehicle_id"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Start        string `json:"start"`
	End          string `json:"end"`
	RentalType   string `json:"rental_type"`
}

type scheduleRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type pickupRequest struct {
	StartOdometer *int64 `json:"start_odometer,omitempty"`
}

type checkoutRequest struct {
	EndingOdometer *int64 `json:"ending_odometer"`
}

type basePriceRequest struct {
	ModelID    string          `json:"model_id"`
	RentalType string          `json:"rental_type"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}
