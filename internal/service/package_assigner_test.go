package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-rental-backend/internal/domain"
)

func TestPackageAssigner_AssignsSmallestPackage(t *testing.T) {
	ctx := context.Background()
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	packageRepo := new(MockPackageRepo)

	vehicleRepo.On("GetByID", mock.Anything, "v-1").Return(&domain.Vehicle{ID: "v-1", ModelID: "mdl-1"}, nil)
	packageRepo.On("ListActiveByModel", mock.Anything, "mdl-1").Return([]domain.Package{
		{ID: "pkg-100", IncludedDistance: 100, ExtraDistanceRate: decimal.NewFromInt(2)},
		{ID: "pkg-300", IncludedDistance: 300, ExtraDistanceRate: decimal.NewFromInt(1)},
	}, nil)
	rentalRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Rental) bool {
		return r.PackageID != nil && *r.PackageID == "pkg-100" && r.IncludedDistance == 100
	})).Return(nil).Once()

	a := NewPackageAssigner(rentalRepo, vehicleRepo, packageRepo)
	original := &domain.Rental{ID: "r-1", VehicleID: "v-1"}

	got, err := a.EnsurePackage(ctx, original)
	require.NoError(t, err)
	require.NotNil(t, got.PackageID)
	assert.Equal(t, "pkg-100", *got.PackageID)
	assert.True(t, got.ExtraDistanceRate.Equal(decimal.NewFromInt(2)))

	// A second pass is a no-op.
	again, err := a.EnsurePackage(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	rentalRepo.AssertNumberOfCalls(t, "Update", 1)
	vehicleRepo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestPackageAssigner_AlreadyAssigned(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	a := NewPackageAssigner(rentalRepo, vehicleRepo, new(MockPackageRepo))

	r := &domain.Rental{ID: "r-1", VehicleID: "v-1", PackageID: strPtr("pkg-9"), IncludedDistance: 50}
	got, err := a.EnsurePackage(context.Background(), r)
	require.NoError(t, err)
	assert.Same(t, r, got)
	vehicleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPackageAssigner_NoActivePackages(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	packageRepo := new(MockPackageRepo)
	vehicleRepo.On("GetByID", mock.Anything, "v-1").Return(&domain.Vehicle{ID: "v-1", ModelID: "mdl-1"}, nil)
	packageRepo.On("ListActiveByModel", mock.Anything, "mdl-1").Return([]domain.Package{}, nil)

	a := NewPackageAssigner(rentalRepo, vehicleRepo, packageRepo)
	r := &domain.Rental{ID: "r-1", VehicleID: "v-1"}
	got, err := a.EnsurePackage(context.Background(), r)
	require.NoError(t, err)
	assert.Nil(t, got.PackageID)
	assert.Zero(t, got.IncludedDistance)
	rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPackageAssigner_UpdateFailureLeavesRentalUntouched(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	packageRepo := new(MockPackageRepo)
	vehicleRepo.On("GetByID", mock.Anything, "v-1").Return(&domain.Vehicle{ID: "v-1", ModelID: "mdl-1"}, nil)
	packageRepo.On("ListActiveByModel", mock.Anything, "mdl-1").Return([]domain.Package{{ID: "pkg-1", IncludedDistance: 10}}, nil)
	rentalRepo.On("Update", mock.Anything, mock.Anything).Return(assert.AnError)

	a := NewPackageAssigner(rentalRepo, vehicleRepo, packageRepo)
	r := &domain.Rental{ID: "r-1", VehicleID: "v-1"}
	_, err := a.EnsurePackage(context.Background(), r)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, r.PackageID)
}

func TestPackageAssigner_EnsurePackageForSkipsVehicleLookup(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	packageRepo := new(MockPackageRepo)
	packageRepo.On("ListActiveByModel", mock.Anything, "mdl-1").Return([]domain.Package{
		{ID: "pkg-100", IncludedDistance: 100, ExtraDistanceRate: decimal.NewFromInt(2)},
	}, nil)
	rentalRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	a := NewPackageAssigner(rentalRepo, vehicleRepo, packageRepo)
	got, err := a.EnsurePackageFor(context.Background(), &domain.Rental{ID: "r-1", VehicleID: "v-1"}, &domain.Vehicle{ID: "v-1", ModelID: "mdl-1"})
	require.NoError(t, err)
	require.NotNil(t, got.PackageID)
	assert.Equal(t, "pkg-100", *got.PackageID)
	vehicleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
