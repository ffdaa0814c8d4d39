package postgres

import (
	"context"
	"database/sql"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

type packageRepository struct {
	db *sql.DB
}

func NewPackageRepository(db *sql.DB) repository.PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) ListActiveByModel(ctx context.Context, modelID string) ([]domain.Package, error) {
	query := `SELECT id, model_id, name, included_kilometers, extra_km_rate, base_price, is_active
	          FROM packages WHERE model_id = $1 AND is_active ORDER BY included_kilometers ASC, id ASC`
	logger.DatabaseCall("packages.list_active_by_model", query, "modelID", modelID)

	rows, err := r.db.QueryContext(ctx, query, modelID)
	if err != nil {
		logger.DatabaseResult("packages.list_active_by_model", 0, err)
		return nil, err
	}
	defer rows.Close()

	var packages []domain.Package
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(&p.ID, &p.ModelID, &p.Name, &p.IncludedDistance, &p.ExtraDistanceRate, &p.BasePrice, &p.Active); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("packages.list_active_by_model", int64(len(packages)), nil)
	return packages, nil
}
