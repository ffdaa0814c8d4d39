package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

const vehicleColumns = `id, org_id, model_id, plate_number, status, current_odometer`

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	logger.DatabaseCall("vehicles.get", query, "vehicleID", id)

	v := &domain.Vehicle{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.OrgID, &v.ModelID, &v.PlateNumber, &v.Status, &v.CurrentOdometer)
	if err != nil {
		return nil, translateError(err, "vehicle", id)
	}
	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY plate_number`
	logger.DatabaseCall("vehicles.list", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("vehicles.list", 0, err)
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.OrgID, &v.ModelID, &v.PlateNumber, &v.Status, &v.CurrentOdometer); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("vehicles.list", int64(len(vehicles)), nil)
	return vehicles, nil
}

func (r *vehicleRepository) UpdateOdometer(ctx context.Context, id string, odometer int64) error {
	logger.EnterMethod("vehicleRepository.UpdateOdometer", "vehicleID", id, "odometer", odometer)

	query := `UPDATE vehicles SET current_odometer=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, odometer, time.Now(), id)
	if err != nil {
		logger.ExitMethodWithError("vehicleRepository.UpdateOdometer", err, "vehicleID", id)
		return err
	}
	if err := requireRow(res, "vehicle", id); err != nil {
		logger.ExitMethodWithError("vehicleRepository.UpdateOdometer", err, "vehicleID", id)
		return err
	}

	logger.ExitMethod("vehicleRepository.UpdateOdometer", "vehicleID", id)
	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`
	logger.DatabaseCall("vehicles.update_status", query, "vehicleID", id, "status", status)

	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		logger.DatabaseResult("vehicles.update_status", 0, err)
		return err
	}
	return requireRow(res, "vehicle", id)
}
