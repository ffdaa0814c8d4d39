package cache

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

// PricingRepository caches active base prices in front of another
// repository.PricingRepository. Absent prices are not cached, so a fix to the
// price table is picked up by the next checkout.
type PricingRepository struct {
	next  repository.PricingRepository
	cache Cache
}

func NewPricingRepository(next repository.PricingRepository, c Cache) *PricingRepository {
	return &PricingRepository{next: next, cache: c}
}

func basePriceKey(modelID string, rentalType domain.RentalType) string {
	return "base_price:" + modelID + ":" + string(rentalType)
}

func (p *PricingRepository) GetActiveBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType) (*domain.BasePrice, error) {
	key := basePriceKey(modelID, rentalType)

	if raw, ok, err := p.cache.Get(ctx, key); err != nil {
		// cache trouble degrades to a direct read
		logger.WarnContext(ctx, "Base price cache read failed", "key", key, "error", err)
	} else if ok {
		var bp domain.BasePrice
		if err := json.Unmarshal(raw, &bp); err == nil {
			return &bp, nil
		}
		_ = p.cache.Invalidate(ctx, key)
	}

	bp, err := p.next.GetActiveBasePrice(ctx, modelID, rentalType)
	if err != nil || bp == nil {
		return bp, err
	}

	if raw, err := json.Marshal(bp); err == nil {
		if err := p.cache.Set(ctx, key, raw); err != nil {
			logger.WarnContext(ctx, "Base price cache write failed", "key", key, "error", err)
		}
	}
	return bp, nil
}

func (p *PricingRepository) ReplaceBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType, unitPrice decimal.Decimal) (*domain.BasePrice, error) {
	bp, err := p.next.ReplaceBasePrice(ctx, modelID, rentalType, unitPrice)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Invalidate(ctx, basePriceKey(modelID, rentalType)); err != nil {
		logger.ErrorContext(ctx, "Base price cache invalidation failed", "modelID", modelID, "rentalType", rentalType, "error", err)
	}
	return bp, nil
}

var _ repository.PricingRepository = (*PricingRepository)(nil)
