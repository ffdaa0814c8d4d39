package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

type pricingRepository struct {
	db *sql.DB
}

func NewPricingRepository(db *sql.DB) repository.PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) GetActiveBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType) (*domain.BasePrice, error) {
	query := `SELECT id, model_id, rental_type, unit_price, is_active, created_on
	          FROM base_prices WHERE model_id = $1 AND rental_type = $2 AND is_active
	          ORDER BY created_on DESC LIMIT 1`
	logger.DatabaseCall("base_prices.get_active", query, "modelID", modelID, "rentalType", rentalType)

	bp := &domain.BasePrice{}
	err := r.db.QueryRowContext(ctx, query, modelID, rentalType).Scan(
		&bp.ID, &bp.ModelID, &bp.RentalType, &bp.UnitPrice, &bp.Active, &bp.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.DatabaseResult("base_prices.get_active", 0, err)
		return nil, err
	}
	return bp, nil
}

func (r *pricingRepository) ReplaceBasePrice(ctx context.Context, modelID string, rentalType domain.RentalType, unitPrice decimal.Decimal) (*domain.BasePrice, error) {
	logger.EnterMethod("pricingRepository.ReplaceBasePrice", "modelID", modelID, "rentalType", rentalType)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("pricingRepository.ReplaceBasePrice", err)
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Older rows are kept for price history.
	if _, err := tx.ExecContext(ctx,
		`UPDATE base_prices SET is_active = false WHERE model_id = $1 AND rental_type = $2 AND is_active`,
		modelID, rentalType); err != nil {
		logger.ExitMethodWithError("pricingRepository.ReplaceBasePrice", err)
		return nil, fmt.Errorf("deactivate base price: %w", err)
	}

	bp := &domain.BasePrice{ModelID: modelID, RentalType: rentalType, UnitPrice: unitPrice, Active: true}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO base_prices (model_id, rental_type, unit_price, is_active, created_on)
		 VALUES ($1, $2, $3, true, NOW()) RETURNING id, created_on`,
		modelID, rentalType, unitPrice).Scan(&bp.ID, &bp.CreatedOn)
	if err != nil {
		logger.ExitMethodWithError("pricingRepository.ReplaceBasePrice", err)
		return nil, fmt.Errorf("insert base price: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("pricingRepository.ReplaceBasePrice", err)
		return nil, fmt.Errorf("commit base price: %w", err)
	}

	logger.ExitMethod("pricingRepository.ReplaceBasePrice", "basePriceID", bp.ID)
	return bp, nil
}
