package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-rental-backend/internal/domain"
)

func TestPackageRepository_ListActiveByModel(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectQuery("FROM packages WHERE model_id = \\$1 AND is_active ORDER BY included_kilometers ASC").
		WithArgs("mdl-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "model_id", "name", "included_kilometers", "extra_km_rate", "base_price", "is_active"}).
			AddRow("pkg-100", "mdl-1", "City", 100, "2.00", "250.00", true).
			AddRow("pkg-300", "mdl-1", "Road trip", 300, "1.50", "400.00", true))

	packages, err := store.PackageRepository.ListActiveByModel(context.Background(), "mdl-1")
	require.NoError(t, err)
	require.Len(t, packages, 2)
	assert.Equal(t, int64(100), packages[0].IncludedDistance)
	assert.True(t, packages[0].ExtraDistanceRate.Equal(decimal.NewFromInt(2)))
}

func TestPricingRepository_GetActiveBasePrice(t *testing.T) {
	ctx := context.Background()
	cols := []string{"id", "model_id", "rental_type", "unit_price", "is_active", "created_on"}

	t.Run("Found", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectQuery("FROM base_prices WHERE model_id = \\$1 AND rental_type = \\$2 AND is_active").
			WithArgs("mdl-1", domain.RentalTypeDaily).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("bp-1", "mdl-1", "daily", "300.00", true, time.Now()))

		bp, err := store.PricingRepository.GetActiveBasePrice(ctx, "mdl-1", domain.RentalTypeDaily)
		require.NoError(t, err)
		require.NotNil(t, bp)
		assert.True(t, bp.UnitPrice.Equal(decimal.NewFromInt(300)))
	})

	t.Run("Absent is not an error", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectQuery("FROM base_prices").WillReturnRows(sqlmock.NewRows(cols))

		bp, err := store.PricingRepository.GetActiveBasePrice(ctx, "mdl-1", domain.RentalTypeWeekly)
		assert.NoError(t, err)
		assert.Nil(t, bp)
	})
}

func TestPricingRepository_ReplaceBasePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("Deactivates then inserts", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE base_prices SET is_active = false").
			WithArgs("mdl-1", domain.RentalTypeDaily).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO base_prices").
			WithArgs("mdl-1", domain.RentalTypeDaily, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow("bp-2", time.Now()))
		mock.ExpectCommit()

		bp, err := store.PricingRepository.ReplaceBasePrice(ctx, "mdl-1", domain.RentalTypeDaily, decimal.NewFromInt(320))
		require.NoError(t, err)
		assert.Equal(t, "bp-2", bp.ID)
		assert.True(t, bp.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back on insert failure", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE base_prices SET is_active = false").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO base_prices").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := store.PricingRepository.ReplaceBasePrice(ctx, "mdl-1", domain.RentalTypeDaily, decimal.NewFromInt(320))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert base price")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
