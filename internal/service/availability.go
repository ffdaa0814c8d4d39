package service

import (
	"context"
	"time"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
	"fleet-rental-backend/internal/utils"
)

type availabilityService struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	validator   ReservationValidator
}

func NewAvailabilityService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	validator ReservationValidator,
) AvailabilityService {
	return &availabilityService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		validator:   validator,
	}
}

// Status derives availability from the schedule only. Maintenance and
// out-of-service vehicles are reported by their rentals like any other.
func (s *availabilityService) Status(ctx context.Context, vehicleID string, now time.Time) (*VehicleAvailability, error) {
	logger.EnterMethod("availabilityService.Status", "vehicleID", vehicleID)

	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		logger.ExitMethodWithError("availabilityService.Status", err, "vehicleID", vehicleID)
		return nil, err
	}

	rentals, err := s.rentalRepo.ListNonTerminalByVehicle(ctx, vehicleID)
	if err != nil {
		logger.ExitMethodWithError("availabilityService.Status", err, "vehicleID", vehicleID)
		return nil, err
	}

	result := &VehicleAvailability{VehicleID: vehicleID, State: domain.AvailabilityAvailable}
	var next *time.Time
	for i := range rentals {
		r := &rentals[i]
		if utils.Contains(r.Start, r.End, now) {
			result.State = domain.AvailabilityRented
			result.CurrentRental = r
			result.NextReservationStart = nil
			logger.ExitMethod("availabilityService.Status", "vehicleID", vehicleID, "state", result.State)
			return result, nil
		}
		if r.Start.After(now) && (next == nil || r.Start.Before(*next)) {
			start := r.Start
			next = &start
		}
	}

	if next != nil {
		result.State = domain.AvailabilityReserved
		result.NextReservationStart = next
	}

	logger.ExitMethod("availabilityService.Status", "vehicleID", vehicleID, "state", result.State)
	return result, nil
}

func (s *availabilityService) ListAvailableVehicles(ctx context.Context, start, end time.Time) ([]domain.Vehicle, error) {
	return s.validator.FreeVehicles(ctx, start, end)
}
