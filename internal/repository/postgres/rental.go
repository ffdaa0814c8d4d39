package postgres

import (
	"context"
	"database/sql"
	"time"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

const rentalColumns = `r.id, r.org_id, r.vehicle_id, r.customer_id, COALESCE(c.full_name, ''),
	r.start_at, r.end_at, r.rental_type, r.status, r.package_id, r.included_kilometers, r.extra_km_rate,
	r.start_odometer, r.ending_odometer, r.total_kilometers_driven, r.has_overage,
	r.unit_price, r.overage_charge, r.total_amount, r.created_on, r.updated_on`

const rentalFrom = ` FROM rentals r LEFT JOIN customers c ON c.id = r.customer_id`

const nonTerminalFilter = `r.status IN ('pending', 'confirmed', 'active')`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(s rowScanner) (*domain.Rental, error) {
	var rt domain.Rental
	var packageID sql.NullString
	var endingOdometer, totalDistance sql.NullInt64
	err := s.Scan(&rt.ID, &rt.OrgID, &rt.VehicleID, &rt.CustomerID, &rt.CustomerName,
		&rt.Start, &rt.End, &rt.RentalType, &rt.Status, &packageID, &rt.IncludedDistance, &rt.ExtraDistanceRate,
		&rt.StartOdometer, &endingOdometer, &totalDistance, &rt.HasOverage,
		&rt.UnitPrice, &rt.OverageCharge, &rt.TotalAmount, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if packageID.Valid {
		rt.PackageID = &packageID.String
	}
	if endingOdometer.Valid {
		rt.EndingOdometer = &endingOdometer.Int64
	}
	if totalDistance.Valid {
		rt.TotalDistance = &totalDistance.Int64
	}
	return &rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalRepository.Create", "vehicleID", rt.VehicleID, "customerID", rt.CustomerID)

	query := `INSERT INTO rentals (org_id, vehicle_id, customer_id, start_at, end_at, rental_type, status,
	              package_id, included_kilometers, extra_km_rate, start_odometer, unit_price, overage_charge, total_amount,
	              created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING id, created_on, updated_on`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		rt.OrgID, rt.VehicleID, rt.CustomerID, rt.Start, rt.End, rt.RentalType, rt.Status,
		rt.PackageID, rt.IncludedDistance, rt.ExtraDistanceRate, rt.StartOdometer, rt.UnitPrice, rt.OverageCharge, rt.TotalAmount,
		now, now,
	).Scan(&rt.ID, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		err = translateError(err, "rental", "")
		logger.ExitMethodWithError("rentalRepository.Create", err, "vehicleID", rt.VehicleID)
		return err
	}

	logger.ExitMethod("rentalRepository.Create", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + rentalFrom + ` WHERE r.id = $1`
	logger.DatabaseCall("rentals.get", query, "rentalID", id)

	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "rental", id)
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalRepository.Update", "rentalID", rt.ID, "status", rt.Status)

	query := `UPDATE rentals SET start_at=$1, end_at=$2, rental_type=$3, status=$4, package_id=$5,
	              included_kilometers=$6, extra_km_rate=$7, start_odometer=$8, ending_odometer=$9,
	              total_kilometers_driven=$10, has_overage=$11, unit_price=$12, overage_charge=$13, total_amount=$14,
	              updated_on=$15
	          WHERE id=$16`
	res, err := r.db.ExecContext(ctx, query,
		rt.Start, rt.End, rt.RentalType, rt.Status, rt.PackageID,
		rt.IncludedDistance, rt.ExtraDistanceRate, rt.StartOdometer, rt.EndingOdometer,
		rt.TotalDistance, rt.HasOverage, rt.UnitPrice, rt.OverageCharge, rt.TotalAmount,
		time.Now(), rt.ID)
	if err != nil {
		err = translateError(err, "rental", rt.ID)
		logger.ExitMethodWithError("rentalRepository.Update", err, "rentalID", rt.ID)
		return err
	}
	if err := requireRow(res, "rental", rt.ID); err != nil {
		return err
	}

	logger.ExitMethod("rentalRepository.Update", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, id string, status domain.RentalStatus) error {
	query := `UPDATE rentals SET status=$1, updated_on=$2 WHERE id=$3`
	logger.DatabaseCall("rentals.update_status", query, "rentalID", id, "status", status)

	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		err = translateError(err, "rental", id)
		logger.DatabaseResult("rentals.update_status", 0, err)
		return err
	}
	return requireRow(res, "rental", id)
}

func (r *rentalRepository) ListNonTerminalByVehicle(ctx context.Context, vehicleID string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + rentalFrom + ` WHERE r.vehicle_id = $1 AND ` + nonTerminalFilter + ` ORDER BY r.start_at`
	return r.list(ctx, "rentals.list_non_terminal_by_vehicle", query, vehicleID)
}

func (r *rentalRepository) ListNonTerminal(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + rentalFrom + ` WHERE ` + nonTerminalFilter + ` ORDER BY r.vehicle_id, r.start_at`
	return r.list(ctx, "rentals.list_non_terminal", query)
}

func (r *rentalRepository) ListActiveEndedBefore(ctx context.Context, t time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + rentalFrom + ` WHERE r.status = 'active' AND r.end_at < $1 ORDER BY r.end_at`
	return r.list(ctx, "rentals.list_active_ended_before", query, t)
}

func (r *rentalRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Rental, error) {
	logger.DatabaseCall(op, query)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult(op, 0, err)
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult(op, int64(len(rentals)), nil)
	return rentals, nil
}

func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}
