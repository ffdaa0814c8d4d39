package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

type billingService struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	pricingRepo repository.PricingRepository
	assigner    PackageAssigner
	alerter     OperatorAlerter
}

func NewBillingService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	pricingRepo repository.PricingRepository,
	assigner PackageAssigner,
	alerter OperatorAlerter,
) BillingService {
	return &billingService{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		pricingRepo: pricingRepo,
		assigner:    assigner,
		alerter:     alerter,
	}
}

// overageCharge bills every unit past the included allowance. With no allowance
// the whole distance is billable.
func overageCharge(distance, included int64, rate decimal.Decimal) decimal.Decimal {
	if distance <= included {
		return decimal.Zero
	}
	return decimal.NewFromInt(distance - included).Mul(rate)
}

// unitPrice resolves the active base price for the vehicle's model and the
// rental's duration class. A missing price returns fallback and true.
func (s *billingService) unitPrice(ctx context.Context, rental *domain.Rental, vehicle *domain.Vehicle, fallback decimal.Decimal) (decimal.Decimal, bool, error) {
	bp, err := s.pricingRepo.GetActiveBasePrice(ctx, vehicle.ModelID, rental.RentalType)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("resolve base price for model %s: %w", vehicle.ModelID, err)
	}
	if bp != nil {
		return bp.UnitPrice, false, nil
	}

	logger.WarnContext(ctx, "Pricing unavailable, falling back to stored amount",
		"error", domain.ErrPricingUnavailable,
		"rental_id", rental.ID,
		"model_id", vehicle.ModelID,
		"rental_type", rental.RentalType,
		"fallback_unit_price", fallback.String())
	if s.alerter != nil {
		if err := s.alerter.PricingUnavailable(ctx, rental, vehicle, fallback); err != nil {
			logger.ErrorContext(ctx, "Failed to raise pricing alert", "rental_id", rental.ID, "error", err)
		}
	}
	return fallback, true, nil
}

// settle writes the billing outcome onto a copy of rental.
func settle(rental *domain.Rental, distance int64, unit decimal.Decimal) *domain.Rental {
	settled := *rental
	overage := overageCharge(distance, rental.IncludedDistance, rental.ExtraDistanceRate)
	settled.TotalDistance = &distance
	settled.HasOverage = overage.IsPositive()
	settled.UnitPrice = unit
	settled.OverageCharge = overage
	settled.TotalAmount = unit.Add(overage)
	return &settled
}

func (s *billingService) FinalizeCheckout(ctx context.Context, rentalID string, endingOdometer int64) (*CheckoutResult, error) {
	logger.EnterMethod("billingService.FinalizeCheckout", "rentalID", rentalID, "endingOdometer", endingOdometer)

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError("billingService.FinalizeCheckout", err, "rentalID", rentalID)
		return nil, err
	}

	switch {
	case rental.Status.IsTerminal():
		err = domain.NewValidationError("status", "rental %s is already %s", rental.ID, rental.Status)
	case rental.Status != domain.RentalStatusActive:
		err = &domain.ValidationError{Field: "status", Message: "checkout attempted before pickup"}
	case endingOdometer < rental.StartOdometer:
		err = domain.NewValidationError("ending_odometer", "ending odometer %d is below start odometer %d",
			endingOdometer, rental.StartOdometer)
	}
	if err != nil {
		logger.ExitMethodWithError("billingService.FinalizeCheckout", err, "rentalID", rentalID)
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("billingService.FinalizeCheckout", err, "rentalID", rentalID)
		return nil, err
	}

	if rental.PackageID == nil {
		rental, err = s.assigner.EnsurePackageFor(ctx, rental, vehicle)
		if err != nil {
			logger.ExitMethodWithError("billingService.FinalizeCheckout", err, "rentalID", rentalID)
			return nil, err
		}
	}

	unit, fallback, err := s.unitPrice(ctx, rental, vehicle, rental.TotalAmount)
	if err != nil {
		logger.ExitMethodWithError("billingService.FinalizeCheckout", err, "rentalID", rentalID)
		return nil, err
	}

	distance := endingOdometer - rental.StartOdometer
	settled := settle(rental, distance, unit)
	settled.EndingOdometer = &endingOdometer
	settled.Status = domain.RentalStatusCompleted

	if err := s.rentalRepo.Update(ctx, settled); err != nil {
		err = fmt.Errorf("save checkout for rental %s: %w", rentalID, err)
		logger.ExitMethodWithError("billingService.FinalizeCheckout", err, "rentalID", rentalID)
		return nil, err
	}

	if endingOdometer < vehicle.CurrentOdometer {
		logger.WarnContext(ctx, "Ending odometer behind vehicle reading, vehicle odometer left unchanged",
			"rental_id", rentalID, "vehicle_id", vehicle.ID,
			"ending_odometer", endingOdometer, "current_odometer", vehicle.CurrentOdometer)
	} else if err := s.vehicleRepo.UpdateOdometer(ctx, vehicle.ID, endingOdometer); err != nil {
		err = fmt.Errorf("rental %s completed but vehicle odometer update failed: %w", rentalID, err)
		logger.ExitMethodWithError("billingService.FinalizeCheckout", err, "rentalID", rentalID)
		return nil, err
	}

	// The returned vehicle is free again. Maintenance and out-of-service stay as set.
	if vehicle.Status == domain.VehicleStatusRented {
		if err := s.vehicleRepo.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusAvailable); err != nil {
			logger.ErrorContext(ctx, "Failed to release vehicle after checkout", "vehicle_id", vehicle.ID, "error", err)
		}
	}

	result := &CheckoutResult{
		Rental:          settled,
		TotalDistance:   distance,
		OverageCharge:   settled.OverageCharge,
		UnitPrice:       unit,
		PricingFallback: fallback,
	}
	logger.ExitMethod("billingService.FinalizeCheckout", "rentalID", rentalID,
		"distance", distance, "total", settled.TotalAmount.String(), "fallback", fallback)
	return result, nil
}

// RecomputeOverage re-prices a completed rental from its stored distance. The
// fallback unit price is the one billed at checkout, so repeated calls with no
// active price leave the total unchanged.
func (s *billingService) RecomputeOverage(ctx context.Context, rentalID string) (*CheckoutResult, error) {
	logger.EnterMethod("billingService.RecomputeOverage", "rentalID", rentalID)

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError("billingService.RecomputeOverage", err, "rentalID", rentalID)
		return nil, err
	}
	if rental.Status != domain.RentalStatusCompleted || rental.TotalDistance == nil {
		err := domain.NewValidationError("status", "rental %s has not been checked out", rental.ID)
		logger.ExitMethodWithError("billingService.RecomputeOverage", err, "rentalID", rentalID)
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, rental.VehicleID)
	if err != nil {
		logger.ExitMethodWithError("billingService.RecomputeOverage", err, "rentalID", rentalID)
		return nil, err
	}

	unit, fallback, err := s.unitPrice(ctx, rental, vehicle, rental.UnitPrice)
	if err != nil {
		logger.ExitMethodWithError("billingService.RecomputeOverage", err, "rentalID", rentalID)
		return nil, err
	}

	distance := *rental.TotalDistance
	settled := settle(rental, distance, unit)
	if err := s.rentalRepo.Update(ctx, settled); err != nil {
		err = fmt.Errorf("save recomputed charges for rental %s: %w", rentalID, err)
		logger.ExitMethodWithError("billingService.RecomputeOverage", err, "rentalID", rentalID)
		return nil, err
	}

	logger.ExitMethod("billingService.RecomputeOverage", "rentalID", rentalID,
		"total", settled.TotalAmount.String(), "fallback", fallback)
	return &CheckoutResult{
		Rental:          settled,
		TotalDistance:   distance,
		OverageCharge:   settled.OverageCharge,
		UnitPrice:       unit,
		PricingFallback: fallback,
	}, nil
}
