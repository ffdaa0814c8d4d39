package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fleet-rental-backend/internal/domain"
)

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) UpdateStatus(ctx context.Context, id string, status domain.RentalStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockRentalRepo) ListNonTerminalByVehicle(ctx context.Context, vehicleID string) ([]domain.Rental, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListNonTerminal(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListActiveEndedBefore(ctx context.Context, t time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, t)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) UpdateOdometer(ctx context.Context, id string, odometer int64) error {
	args := m.Called(ctx, id, odometer)
	return args.Error(0)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPackageRepo struct {
	mock.Mock
}

func (m *MockPackageRepo) ListActiveByModel(ctx context.Context, modelID string) ([]domain.Package, error) {
	args := m.Called(ctx, modelID)
	return args.Get(0).([]domain.Package), args.Error(1)
}

type MockPricingRepo struct {
	mock.Mock
}

func (m *MockPricingRepo) GetActiveBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType) (*domain.BasePrice, error) {
	args := m.Called(ctx, modelID, rentalType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BasePrice), args.Error(1)
}
func (m *MockPricingRepo) ReplaceBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType, unitPrice decimal.Decimal) (*domain.BasePrice, error) {
	args := m.Called(ctx, modelID, rentalType, unitPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BasePrice), args.Error(1)
}

type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) PricingUnavailable(ctx context.Context, rental *domain.Rental, vehicle *domain.Vehicle, billedUnitPrice decimal.Decimal) error {
	args := m.Called(ctx, rental, vehicle, billedUnitPrice)
	return args.Error(0)
}

// day returns 2024-06-10 at the given hour, UTC.
func day(offset, hour int) time.Time {
	return time.Date(2024, 6, 10+offset, hour, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }
