package service

import (
	"context"
	"fmt"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
)

type packageAssigner struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	packageRepo repository.PackageRepository
}

func NewPackageAssigner(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	packageRepo repository.PackageRepository,
) PackageAssigner {
	return &packageAssigner{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		packageRepo: packageRepo,
	}
}

// EnsurePackage gives a rental the smallest active package of its vehicle's
// model. A rental that already has a package, or whose model has none, is
// returned unchanged.
func (a *packageAssigner) EnsurePackage(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	if rental.PackageID != nil {
		return rental, nil
	}

	vehicle, err := a.vehicleRepo.GetByID(ctx, rental.VehicleID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load vehicle for package assignment", "rental_id", rental.ID, "error", err)
		return nil, err
	}
	return a.EnsurePackageFor(ctx, rental, vehicle)
}

func (a *packageAssigner) EnsurePackageFor(ctx context.Context, rental *domain.Rental, vehicle *domain.Vehicle) (*domain.Rental, error) {
	if rental.PackageID != nil {
		return rental, nil
	}
	logger.EnterMethod("packageAssigner.EnsurePackageFor", "rentalID", rental.ID, "modelID", vehicle.ModelID)

	packages, err := a.packageRepo.ListActiveByModel(ctx, vehicle.ModelID)
	if err != nil {
		logger.ExitMethodWithError("packageAssigner.EnsurePackageFor", err, "rentalID", rental.ID)
		return nil, err
	}
	if len(packages) == 0 {
		logger.InfoContext(ctx, "No active package for model, billing every unit as overage",
			"rental_id", rental.ID, "model_id", vehicle.ModelID)
		logger.ExitMethod("packageAssigner.EnsurePackageFor", "rentalID", rental.ID, "assigned", false)
		return rental, nil
	}

	pkg := packages[0]
	pkgID := pkg.ID
	updated := *rental
	updated.PackageID = &pkgID
	updated.IncludedDistance = pkg.IncludedDistance
	updated.ExtraDistanceRate = pkg.ExtraDistanceRate

	if err := a.rentalRepo.Update(ctx, &updated); err != nil {
		err = fmt.Errorf("assign package %s to rental %s: %w", pkg.ID, rental.ID, err)
		logger.ExitMethodWithError("packageAssigner.EnsurePackageFor", err, "rentalID", rental.ID)
		return nil, err
	}

	logger.InfoContext(ctx, "Package assigned", "rental_id", rental.ID, "package_id", pkg.ID,
		"included_distance", pkg.IncludedDistance)
	logger.ExitMethod("packageAssigner.EnsurePackageFor", "rentalID", rental.ID, "assigned", true)
	return &updated, nil
}
