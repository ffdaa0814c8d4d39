package http

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/service"
)

type mockAvailability struct{ mock.Mock }

func (m *mockAvailability) Status(ctx context.Context, vehicleID string, now time.Time) (*service.VehicleAvailability, error) {
	args := m.Called(ctx, vehicleID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VehicleAvailability), args.Error(1)
}
func (m *mockAvailability) ListAvailableVehicles(ctx context.Context, start, end time.Time) ([]domain.Vehicle, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

type mockValidator struct{ mock.Mock }

func (m *mockValidator) Validate(ctx context.Context, req service.ValidateRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockValidator) FreeVehicles(ctx context.Context, start, end time.Time) ([]domain.Vehicle, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

type mockRentals struct{ mock.Mock }

func (m *mockRentals) rental(args mock.Arguments) (*domain.Rental, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentals) CreateBooking(ctx context.Context, req service.BookingRequest) (*domain.Rental, error) {
	return m.rental(m.Called(ctx, req))
}
func (m *mockRentals) RescheduleBooking(ctx context.Context, id string, start, end time.Time) (*domain.Rental, error) {
	return m.rental(m.Called(ctx, id, start, end))
}
func (m *mockRentals) ConfirmBooking(ctx context.Context, id string) (*domain.Rental, error) {
	return m.rental(m.Called(ctx, id))
}
func (m *mockRentals) StartRental(ctx context.Context, id string, startOdometer *int64) (*domain.Rental, error) {
	return m.rental(m.Called(ctx, id, startOdometer))
}
func (m *mockRentals) CancelRental(ctx context.Context, id string) (*domain.Rental, error) {
	return m.rental(m.Called(ctx, id))
}
func (m *mockRentals) VoidRental(ctx context.Context, id string) (*domain.Rental, error) {
	return m.rental(m.Called(ctx, id))
}
func (m *mockRentals) GetRental(ctx context.Context, id string) (*domain.Rental, error) {
	return m.rental(m.Called(ctx, id))
}

type mockBilling struct{ mock.Mock }

func (m *mockBilling) result(args mock.Arguments) (*service.CheckoutResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutResult), args.Error(1)
}
func (m *mockBilling) FinalizeCheckout(ctx context.Context, id string, ending int64) (*service.CheckoutResult, error) {
	return m.result(m.Called(ctx, id, ending))
}
func (m *mockBilling) RecomputeOverage(ctx context.Context, id string) (*service.CheckoutResult, error) {
	return m.result(m.Called(ctx, id))
}

type mockPricing struct{ mock.Mock }

func (m *mockPricing) SetBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType, unitPrice decimal.Decimal) (*domain.BasePrice, error) {
	args := m.Called(ctx, modelID, rentalType, unitPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BasePrice), args.Error(1)
}
