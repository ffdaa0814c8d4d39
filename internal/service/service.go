package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
)

// VehicleAvailability is the schedule-derived state of one vehicle at an instant.
type VehicleAvailability struct {
	VehicleID            string                   `json:"vehicle_id"`
	State                domain.AvailabilityState `json:"state"`
	CurrentRental        *domain.Rental           `json:"current_rental,omitempty"`
	NextReservationStart *time.Time               `json:"next_reservation_start,omitempty"`
}

type AvailabilityService interface {
	Status(ctx context.Context, vehicleID string, now time.Time) (*VehicleAvailability, error)
	ListAvailableVehicles(ctx context.Context, start, end time.Time) ([]domain.Vehicle, error)
}

// ValidateRequest describes a proposed window for one vehicle. ExcludeRentalID is
// set when an existing booking is being edited. AllowPastStart skips the
// "not in the past" check for rentals already in progress.
type ValidateRequest struct {
	VehicleID       string
	Start           time.Time
	End             time.Time
	ExcludeRentalID string
	AllowPastStart  bool
}

type ReservationValidator interface {
	// Validate returns nil, a *domain.ValidationError or a *domain.ConflictError.
	Validate(ctx context.Context, req ValidateRequest) error
	FreeVehicles(ctx context.Context, start, end time.Time) ([]domain.Vehicle, error)
}

type PackageAssigner interface {
	EnsurePackage(ctx context.Context, rental *domain.Rental) (*domain.Rental, error)
	// EnsurePackageFor is EnsurePackage for a caller that already loaded the vehicle.
	EnsurePackageFor(ctx context.Context, rental *domain.Rental, vehicle *domain.Vehicle) (*domain.Rental, error)
}

type CheckoutResult struct {
	Rental          *domain.Rental  `json:"rental"`
	TotalDistance   int64           `json:"total_kilometers_driven"`
	OverageCharge   decimal.Decimal `json:"overage_charge"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	PricingFallback bool            `json:"pricing_fallback"`
}

type BillingService interface {
	FinalizeCheckout(ctx context.Context, rentalID string, endingOdometer int64) (*CheckoutResult, error)
	RecomputeOverage(ctx context.Context, rentalID string) (*CheckoutResult, error)
}

type BookingRequest struct {
	OrgID        string
	VehicleID    string
	CustomerID   string
	CustomerName string
	Start        time.Time
	End          time.Time
	RentalType   domain.RentalType
}

type RentalService interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*domain.Rental, error)
	RescheduleBooking(ctx context.Context, rentalID string, start, end time.Time) (*domain.Rental, error)
	ConfirmBooking(ctx context.Context, rentalID string) (*domain.Rental, error)
	// StartRental records pickup. A nil startOdometer takes the vehicle's current reading.
	StartRental(ctx context.Context, rentalID string, startOdometer *int64) (*domain.Rental, error)
	CancelRental(ctx context.Context, rentalID string) (*domain.Rental, error)
	VoidRental(ctx context.Context, rentalID string) (*domain.Rental, error)
	GetRental(ctx context.Context, rentalID string) (*domain.Rental, error)
}

type PricingService interface {
	SetBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType, unitPrice decimal.Decimal) (*domain.BasePrice, error)
}

// OperatorAlerter surfaces degraded-but-non-fatal conditions to whoever runs the fleet.
type OperatorAlerter interface {
	// PricingUnavailable reports a rental billed without an active base price.
	// billedUnitPrice is the fallback amount that was charged instead.
	PricingUnavailable(ctx context.Context, rental *domain.Rental, vehicle *domain.Vehicle, billedUnitPrice decimal.Decimal) error
}
