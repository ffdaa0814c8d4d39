package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/repository"
)

// SQLSTATE raised by the rentals_no_overlap exclusion constraint.
const exclusionViolation pq.ErrorCode = "23P01"

type Store struct {
	db *sql.DB
	repository.RentalRepository
	repository.VehicleRepository
	repository.PackageRepository
	repository.PricingRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		RentalRepository:  NewRentalRepository(db),
		VehicleRepository: NewVehicleRepository(db),
		PackageRepository: NewPackageRepository(db),
		PricingRepository: NewPricingRepository(db),
	}
}

// DB exposes the pool for health checks and jobs.
func (s *Store) DB() *sql.DB {
	return s.db
}

// translateError maps driver errors onto the domain taxonomy.
func translateError(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == exclusionViolation {
		return domain.ErrOverlapConstraint
	}
	return err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
