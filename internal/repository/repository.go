package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
)

// RentalRepository persists rentals. Implementations must reject a Create or a
// window change that would overlap another non-terminal rental of the same
// vehicle by returning domain.ErrOverlapConstraint.
type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	UpdateStatus(ctx context.Context, id string, status domain.RentalStatus) error
	ListNonTerminalByVehicle(ctx context.Context, vehicleID string) ([]domain.Rental, error)
	ListNonTerminal(ctx context.Context) ([]domain.Rental, error)
	ListActiveEndedBefore(ctx context.Context, t time.Time) ([]domain.Rental, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	UpdateOdometer(ctx context.Context, id string, odometer int64) error
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error
}

type PackageRepository interface {
	// ListActiveByModel returns active packages sorted ascending by included distance.
	ListActiveByModel(ctx context.Context, modelID string) ([]domain.Package, error)
}

type PricingRepository interface {
	// GetActiveBasePrice returns nil, nil when no active row exists.
	GetActiveBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType) (*domain.BasePrice, error)
	// ReplaceBasePrice deactivates the current row for the key and inserts a new active one.
	ReplaceBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType, unitPrice decimal.Decimal) (*domain.BasePrice, error)
}
