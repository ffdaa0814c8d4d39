package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

type pricingService struct {
	pricingRepo repository.PricingRepository
}

// NewPricingService wraps a pricing repository. Pass the caching decorator so
// writes invalidate cached lookups.
func NewPricingService(pricingRepo repository.PricingRepository) PricingService {
	return &pricingService{pricingRepo: pricingRepo}
}

func (s *pricingService) SetBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType, unitPrice decimal.Decimal) (*domain.BasePrice, error) {
	logger.EnterMethod("pricingService.SetBasePrice", "modelID", modelID, "rentalType", rentalType)

	if modelID == "" {
		err := domain.NewValidationError("model_id", "model is required")
		logger.ExitMethodWithError("pricingService.SetBasePrice", err)
		return nil, err
	}
	if !rentalType.IsValid() {
		err := domain.NewValidationError("rental_type", "unknown rental type %q", rentalType)
		logger.ExitMethodWithError("pricingService.SetBasePrice", err)
		return nil, err
	}
	if unitPrice.IsNegative() {
		err := domain.NewValidationError("unit_price", "unit price must not be negative")
		logger.ExitMethodWithError("pricingService.SetBasePrice", err)
		return nil, err
	}

	bp, err := s.pricingRepo.ReplaceBasePrice(ctx, modelID, rentalType, unitPrice)
	if err != nil {
		logger.ExitMethodWithError("pricingService.SetBasePrice", err, "modelID", modelID)
		return nil, err
	}

	logger.ExitMethod("pricingService.SetBasePrice", "modelID", modelID, "basePriceID", bp.ID)
	return bp, nil
}
