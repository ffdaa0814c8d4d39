package service

import (
	"context"
	"time"

	"fleet-rental-backend/internal/clock"
	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
	"fleet-rental-backend/internal/utils"
)

type reservationValidator struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	clock       clock.Clock
	loc         *time.Location
}

// NewReservationValidator builds a validator. loc is the timezone used for the
// calendar-date "not in the past" check; nil means UTC.
func NewReservationValidator(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	clk clock.Clock,
	loc *time.Location,
) ReservationValidator {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationValidator{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		clock:       clk,
		loc:         loc,
	}
}

func (v *reservationValidator) checkWindow(start, end time.Time, allowPastStart bool) error {
	if start.IsZero() || end.IsZero() {
		return domain.NewValidationError("window", "start and end are required")
	}
	if !start.Before(end) {
		return domain.NewValidationError("end", "end must be after start")
	}
	if !allowPastStart && utils.BeforeDate(start.In(v.loc), v.clock.Now()) {
		return domain.NewValidationError("start", "start date %s is in the past", start.In(v.loc).Format("2006-01-02"))
	}
	return nil
}

func (v *reservationValidator) Validate(ctx context.Context, req ValidateRequest) error {
	logger.EnterMethod("reservationValidator.Validate", "vehicleID", req.VehicleID, "excludeRentalID", req.ExcludeRentalID)

	if req.VehicleID == "" {
		err := domain.NewValidationError("vehicle_id", "vehicle is required")
		logger.ExitMethodWithError("reservationValidator.Validate", err)
		return err
	}
	if err := v.checkWindow(req.Start, req.End, req.AllowPastStart); err != nil {
		logger.ExitMethodWithError("reservationValidator.Validate", err, "vehicleID", req.VehicleID)
		return err
	}

	rentals, err := v.rentalRepo.ListNonTerminalByVehicle(ctx, req.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("reservationValidator.Validate", err, "vehicleID", req.VehicleID)
		return err
	}

	for i := range rentals {
		r := &rentals[i]
		if req.ExcludeRentalID != "" && r.ID == req.ExcludeRentalID {
			continue
		}
		if utils.Overlaps(req.Start, req.End, r.Start, r.End) {
			logger.InfoContext(ctx, "Booking conflict detected",
				"vehicle_id", req.VehicleID,
				"conflicting_rental_id", r.ID,
				"customer", r.CustomerName)
			err := domain.NewConflictError(r)
			logger.ExitMethodWithError("reservationValidator.Validate", err, "vehicleID", req.VehicleID)
			return err
		}
	}

	logger.ExitMethod("reservationValidator.Validate", "vehicleID", req.VehicleID, "result", "ok")
	return nil
}

// FreeVehicles lists bookable vehicles with no non-terminal rental overlapping
// [start, end). All rentals are fetched once rather than per vehicle.
func (v *reservationValidator) FreeVehicles(ctx context.Context, start, end time.Time) ([]domain.Vehicle, error) {
	logger.EnterMethod("reservationValidator.FreeVehicles", "start", start, "end", end)

	if err := v.checkWindow(start, end, true); err != nil {
		logger.ExitMethodWithError("reservationValidator.FreeVehicles", err)
		return nil, err
	}

	rentals, err := v.rentalRepo.ListNonTerminal(ctx)
	if err != nil {
		logger.ExitMethodWithError("reservationValidator.FreeVehicles", err)
		return nil, err
	}

	busy := make(map[string]bool)
	for _, r := range rentals {
		if utils.Overlaps(start, end, r.Start, r.End) {
			busy[r.VehicleID] = true
		}
	}

	vehicles, err := v.vehicleRepo.List(ctx)
	if err != nil {
		logger.ExitMethodWithError("reservationValidator.FreeVehicles", err)
		return nil, err
	}

	free := make([]domain.Vehicle, 0, len(vehicles))
	for _, vh := range vehicles {
		if busy[vh.ID] || !vh.Status.Bookable() {
			continue
		}
		free = append(free, vh)
	}

	logger.ExitMethod("reservationValidator.FreeVehicles", "vehicles", len(vehicles), "free", len(free))
	return free, nil
}
