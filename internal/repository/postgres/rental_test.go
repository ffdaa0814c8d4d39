package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-rental-backend/internal/domain"
)

var rentalRowColumns = []string{"id", "org_id", "vehicle_id", "customer_id", "full_name",
	"start_at", "end_at", "rental_type", "status", "package_id", "included_kilometers", "extra_km_rate",
	"start_odometer", "ending_odometer", "total_kilometers_driven", "has_overage",
	"unit_price", "overage_charge", "total_amount", "created_on", "updated_on"}

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestRentalRepository_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	newRental := func() *domain.Rental {
		return &domain.Rental{
			OrgID:      "org-1",
			VehicleID:  "veh-1",
			CustomerID: "cus-1",
			Start:      start,
			End:        start.Add(10 * time.Hour),
			RentalType: domain.RentalTypeDaily,
			Status:     domain.RentalStatusConfirmed,
			UnitPrice:  decimal.NewFromInt(300),
		}
	}

	t.Run("Success", func(t *testing.T) {
		store, mock := newMock(t)
		rental := newRental()
		now := time.Now()

		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs("org-1", "veh-1", "cus-1", rental.Start, rental.End, rental.RentalType, rental.Status,
				sqlmock.AnyArg(), int64(0), sqlmock.AnyArg(), int64(0), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "updated_on"}).AddRow("rnt-1", now, now))

		err := store.RentalRepository.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, "rnt-1", rental.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exclusion constraint violation", func(t *testing.T) {
		store, mock := newMock(t)

		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnError(&pq.Error{Code: "23P01", Constraint: "rentals_no_overlap"})

		err := store.RentalRepository.Create(ctx, newRental())
		assert.ErrorIs(t, err, domain.ErrOverlapConstraint)
	})

	t.Run("Other driver error passes through", func(t *testing.T) {
		store, mock := newMock(t)
		boom := errors.New("connection reset")
		mock.ExpectQuery("INSERT INTO rentals").WillReturnError(boom)

		err := store.RentalRepository.Create(ctx, newRental())
		assert.ErrorIs(t, err, boom)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		store, mock := newMock(t)
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow("rnt-1", "org-1", "veh-1", "cus-1", "Amina Idrissi",
				start, start.Add(10*time.Hour), "daily", "completed", "pkg-1", 100, "2.00",
				1000, 1150, 150, true,
				"300.00", "100.00", "400.00", start, start)

		mock.ExpectQuery("SELECT (.+) FROM rentals r LEFT JOIN customers c ON c.id = r.customer_id WHERE r.id = \\$1").
			WithArgs("rnt-1").
			WillReturnRows(rows)

		rental, err := store.RentalRepository.GetByID(ctx, "rnt-1")
		require.NoError(t, err)
		assert.Equal(t, "Amina Idrissi", rental.CustomerName)
		assert.Equal(t, domain.RentalTypeDaily, rental.RentalType)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
		require.NotNil(t, rental.PackageID)
		assert.Equal(t, "pkg-1", *rental.PackageID)
		require.NotNil(t, rental.EndingOdometer)
		assert.Equal(t, int64(1150), *rental.EndingOdometer)
		assert.Equal(t, int64(150), *rental.TotalDistance)
		assert.True(t, rental.TotalAmount.Equal(decimal.NewFromInt(400)))
	})

	t.Run("Nullable columns", func(t *testing.T) {
		store, mock := newMock(t)
		rows := sqlmock.NewRows(rentalRowColumns).
			AddRow("rnt-2", "org-1", "veh-1", "cus-1", "",
				start, start.Add(time.Hour), "hourly", "pending", nil, 0, "0",
				500, nil, nil, false,
				"0", "0", "0", start, start)
		mock.ExpectQuery("SELECT (.+) FROM rentals").WithArgs("rnt-2").WillReturnRows(rows)

		rental, err := store.RentalRepository.GetByID(ctx, "rnt-2")
		require.NoError(t, err)
		assert.Nil(t, rental.PackageID)
		assert.Nil(t, rental.EndingOdometer)
		assert.Nil(t, rental.TotalDistance)
	})

	t.Run("Not found", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectQuery("SELECT (.+) FROM rentals").WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(rentalRowColumns))

		_, err := store.RentalRepository.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "rental", nf.Entity)
	})
}

func TestRentalRepository_Update(t *testing.T) {
	ctx := context.Background()
	ending := int64(1150)
	rental := &domain.Rental{ID: "rnt-1", Status: domain.RentalStatusCompleted, EndingOdometer: &ending}

	t.Run("Success", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectExec("UPDATE rentals SET start_at").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.RentalRepository.Update(ctx, rental))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing row", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectExec("UPDATE rentals SET start_at").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, store.RentalRepository.Update(ctx, rental), domain.ErrNotFound)
	})

	t.Run("Window change rejected by constraint", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectExec("UPDATE rentals SET start_at").
			WillReturnError(&pq.Error{Code: "23P01"})

		assert.ErrorIs(t, store.RentalRepository.Update(ctx, rental), domain.ErrOverlapConstraint)
	})
}

func TestRentalRepository_UpdateStatus(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec("UPDATE rentals SET status").
		WithArgs(domain.RentalStatusCancelled, sqlmock.AnyArg(), "rnt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.RentalRepository.UpdateStatus(context.Background(), "rnt-1", domain.RentalStatusCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListNonTerminalByVehicle(t *testing.T) {
	store, mock := newMock(t)
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(rentalRowColumns).
		AddRow("rnt-1", "org-1", "veh-1", "cus-1", "A", start, start.Add(10*time.Hour), "daily", "active", nil, 0, "0", 0, nil, nil, false, "0", "0", "0", start, start).
		AddRow("rnt-2", "org-1", "veh-1", "cus-2", "B", start.Add(24*time.Hour), start.Add(30*time.Hour), "hourly", "confirmed", nil, 0, "0", 0, nil, nil, false, "0", "0", "0", start, start)

	mock.ExpectQuery("WHERE r.vehicle_id = \\$1 AND r.status IN \\('pending', 'confirmed', 'active'\\)").
		WithArgs("veh-1").
		WillReturnRows(rows)

	rentals, err := store.RentalRepository.ListNonTerminalByVehicle(context.Background(), "veh-1")
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.Equal(t, "rnt-1", rentals[0].ID)
	assert.Equal(t, "B", rentals[1].CustomerName)
}

func TestRentalRepository_ListActiveEndedBefore(t *testing.T) {
	store, mock := newMock(t)
	now := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("WHERE r.status = 'active' AND r.end_at < \\$1").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(rentalRowColumns))

	rentals, err := store.RentalRepository.ListActiveEndedBefore(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, rentals)
}
