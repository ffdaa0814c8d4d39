package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
	"fleet-rental-backend/internal/utils"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	pricingRepo repository.PricingRepository
	validator   ReservationValidator
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	pricingRepo repository.PricingRepository,
	validator ReservationValidator,
) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		pricingRepo: pricingRepo,
		validator:   validator,
	}
}

// storeConflict turns a store-level overlap rejection into the same error the
// pre-check would have produced. This is the losing side of a concurrent booking.
func (s *rentalService) storeConflict(ctx context.Context, vehicleID, excludeID string, start, end time.Time) error {
	rentals, err := s.rentalRepo.ListNonTerminalByVehicle(ctx, vehicleID)
	if err == nil {
		for i := range rentals {
			r := &rentals[i]
			if r.ID != excludeID && utils.Overlaps(start, end, r.Start, r.End) {
				return domain.NewConflictError(r)
			}
		}
	}
	return &domain.ConflictError{VehicleID: vehicleID}
}

func (s *rentalService) CreateBooking(ctx context.Context, req BookingRequest) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.CreateBooking", "vehicleID", req.VehicleID, "customerID", req.CustomerID)

	rentalType, err := domain.ParseRentalType(string(req.RentalType))
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateBooking", err)
		return nil, err
	}
	if req.CustomerID == "" {
		err := domain.NewValidationError("customer_id", "customer is required")
		logger.ExitMethodWithError("rentalService.CreateBooking", err)
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateBooking", err, "vehicleID", req.VehicleID)
		return nil, err
	}
	if !vehicle.Status.Bookable() {
		err := domain.NewValidationError("vehicle_id", "vehicle %s is %s", vehicle.ID, vehicle.Status)
		logger.ExitMethodWithError("rentalService.CreateBooking", err, "vehicleID", req.VehicleID)
		return nil, err
	}

	if err := s.validator.Validate(ctx, ValidateRequest{VehicleID: vehicle.ID, Start: req.Start, End: req.End}); err != nil {
		logger.ExitMethodWithError("rentalService.CreateBooking", err, "vehicleID", req.VehicleID)
		return nil, err
	}

	orgID := req.OrgID
	if orgID == "" {
		orgID = vehicle.OrgID
	}
	rental := &domain.Rental{
		OrgID:         orgID,
		VehicleID:     vehicle.ID,
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		Start:         req.Start,
		End:           req.End,
		RentalType:    rentalType,
		Status:        domain.RentalStatusPending,
		StartOdometer: vehicle.CurrentOdometer,
		UnitPrice:     decimal.Zero,
		OverageCharge: decimal.Zero,
		TotalAmount:   decimal.Zero,
	}

	// Quote the current base price. Checkout falls back to this amount if the
	// price row is gone by then.
	bp, err := s.pricingRepo.GetActiveBasePrice(ctx, vehicle.ModelID, rentalType)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateBooking", err, "vehicleID", req.VehicleID)
		return nil, fmt.Errorf("quote booking: %w", err)
	}
	if bp != nil {
		rental.UnitPrice = bp.UnitPrice
		rental.TotalAmount = bp.UnitPrice
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		if errors.Is(err, domain.ErrOverlapConstraint) {
			err = s.storeConflict(ctx, vehicle.ID, "", req.Start, req.End)
		}
		logger.ExitMethodWithError("rentalService.CreateBooking", err, "vehicleID", req.VehicleID)
		return nil, err
	}

	logger.InfoContext(ctx, "Booking created", "rental_id", rental.ID, "vehicle_id", rental.VehicleID,
		"start", rental.Start, "end", rental.End)
	logger.ExitMethod("rentalService.CreateBooking", "rentalID", rental.ID)
	return rental, nil
}

func (s *rentalService) RescheduleBooking(ctx context.Context, rentalID string, start, end time.Time) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.RescheduleBooking", "rentalID", rentalID)

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError("rentalService.RescheduleBooking", err, "rentalID", rentalID)
		return nil, err
	}
	if rt.Status.IsTerminal() {
		err := domain.NewValidationError("status", "rental %s is %s and cannot be rescheduled", rt.ID, rt.Status)
		logger.ExitMethodWithError("rentalService.RescheduleBooking", err, "rentalID", rentalID)
		return nil, err
	}

	inProgress := rt.Status == domain.RentalStatusActive
	if inProgress && !start.Equal(rt.Start) {
		err := domain.NewValidationError("start", "start of a rental in progress cannot change")
		logger.ExitMethodWithError("rentalService.RescheduleBooking", err, "rentalID", rentalID)
		return nil, err
	}

	err = s.validator.Validate(ctx, ValidateRequest{
		VehicleID:       rt.VehicleID,
		Start:           start,
		End:             end,
		ExcludeRentalID: rt.ID,
		AllowPastStart:  inProgress,
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.RescheduleBooking", err, "rentalID", rentalID)
		return nil, err
	}

	updated := *rt
	updated.Start = start
	updated.End = end
	if err := s.rentalRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrOverlapConstraint) {
			err = s.storeConflict(ctx, rt.VehicleID, rt.ID, start, end)
		}
		logger.ExitMethodWithError("rentalService.RescheduleBooking", err, "rentalID", rentalID)
		return nil, err
	}

	logger.ExitMethod("rentalService.RescheduleBooking", "rentalID", rentalID)
	return &updated, nil
}

func (s *rentalService) ConfirmBooking(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	switch rt.Status {
	case domain.RentalStatusConfirmed:
		return rt, nil
	case domain.RentalStatusPending:
	default:
		return nil, domain.NewValidationError("status", "rental %s is %s, only pending bookings can be confirmed", rt.ID, rt.Status)
	}

	if err := s.rentalRepo.UpdateStatus(ctx, rt.ID, domain.RentalStatusConfirmed); err != nil {
		return nil, err
	}
	rt.Status = domain.RentalStatusConfirmed
	return rt, nil
}

func (s *rentalService) StartRental(ctx context.Context, rentalID string, startOdometer *int64) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.StartRental", "rentalID", rentalID)

	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError("rentalService.StartRental", err, "rentalID", rentalID)
		return nil, err
	}
	if rt.Status != domain.RentalStatusPending && rt.Status != domain.RentalStatusConfirmed {
		err := domain.NewValidationError("status", "rental %s is %s and cannot be picked up", rt.ID, rt.Status)
		logger.ExitMethodWithError("rentalService.StartRental", err, "rentalID", rentalID)
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, rt.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("rentalService.StartRental", err, "rentalID", rentalID)
		return nil, err
	}
	if !vehicle.Status.Bookable() {
		err := domain.NewValidationError("vehicle_id", "vehicle %s is %s", vehicle.ID, vehicle.Status)
		logger.ExitMethodWithError("rentalService.StartRental", err, "rentalID", rentalID)
		return nil, err
	}

	odometer := vehicle.CurrentOdometer
	if startOdometer != nil {
		if *startOdometer < vehicle.CurrentOdometer {
			err := domain.NewValidationError("start_odometer", "start odometer %d is below the vehicle reading %d",
				*startOdometer, vehicle.CurrentOdometer)
			logger.ExitMethodWithError("rentalService.StartRental", err, "rentalID", rentalID)
			return nil, err
		}
		odometer = *startOdometer
	}

	updated := *rt
	updated.Status = domain.RentalStatusActive
	updated.StartOdometer = odometer
	if err := s.rentalRepo.Update(ctx, &updated); err != nil {
		logger.ExitMethodWithError("rentalService.StartRental", err, "rentalID", rentalID)
		return nil, err
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusRented); err != nil {
		logger.ErrorContext(ctx, "Failed to mark vehicle rented", "vehicle_id", vehicle.ID, "error", err)
	}

	logger.ExitMethod("rentalService.StartRental", "rentalID", rentalID, "startOdometer", odometer)
	return &updated, nil
}

// CancelRental withdraws a booking that has not been picked up yet.
func (s *rentalService) CancelRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status != domain.RentalStatusPending && rt.Status != domain.RentalStatusConfirmed {
		return nil, domain.NewValidationError("status", "rental %s is %s and cannot be cancelled", rt.ID, rt.Status)
	}
	return s.terminate(ctx, rt, domain.RentalStatusCancelled)
}

// VoidRental administratively closes any non-terminal rental, including one in progress.
func (s *rentalService) VoidRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status.IsTerminal() {
		return nil, domain.NewValidationError("status", "rental %s is already %s", rt.ID, rt.Status)
	}
	return s.terminate(ctx, rt, domain.RentalStatusVoid)
}

func (s *rentalService) terminate(ctx context.Context, rt *domain.Rental, status domain.RentalStatus) (*domain.Rental, error) {
	wasActive := rt.Status == domain.RentalStatusActive
	if err := s.rentalRepo.UpdateStatus(ctx, rt.ID, status); err != nil {
		return nil, err
	}
	rt.Status = status

	if wasActive {
		vehicle, err := s.vehicleRepo.GetByID(ctx, rt.VehicleID)
		if err == nil && vehicle.Status == domain.VehicleStatusRented {
			err = s.vehicleRepo.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusAvailable)
		}
		if err != nil {
			logger.ErrorContext(ctx, "Failed to release vehicle", "vehicle_id", rt.VehicleID, "error", err)
		}
	}

	logger.InfoContext(ctx, "Rental closed", "rental_id", rt.ID, "status", status)
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, rentalID)
}
