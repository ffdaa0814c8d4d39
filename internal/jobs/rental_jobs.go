package jobs

import (
	"context"
	"time"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
)

// SyncVehicleStatuses aligns each road-ready vehicle's stored status with its
// schedule. Vehicles in maintenance or out of service are left alone.
func (jr *JobRunner) SyncVehicleStatuses() {
	jr.runWithRecovery("SyncVehicleStatuses", func() {
		updated, err := jr.syncVehicleStatuses(context.Background())
		if err != nil {
			logger.Error("Failed to sync vehicle statuses", "error", err)
			return
		}
		logger.Info("Synced vehicle statuses", "updated", updated)
	})
}

func (jr *JobRunner) syncVehicleStatuses(ctx context.Context) (int, error) {
	vehicles, err := jr.vehicles.List(ctx)
	if err != nil {
		return 0, err
	}

	now := jr.clock.Now()
	updated := 0
	for _, v := range vehicles {
		if !v.Status.Bookable() {
			continue
		}

		availability, err := jr.services.Availability.Status(ctx, v.ID, now)
		if err != nil {
			logger.Error("Failed to compute vehicle availability", "vehicle_id", v.ID, "error", err)
			continue
		}

		want := domain.VehicleStatusAvailable
		if availability.State == domain.AvailabilityRented {
			want = domain.VehicleStatusRented
		}
		if v.Status == want {
			continue
		}

		if err := jr.vehicles.UpdateStatus(ctx, v.ID, want); err != nil {
			logger.Error("Failed to update vehicle status", "vehicle_id", v.ID, "status", want, "error", err)
			continue
		}
		logger.Debug("Vehicle status synced", "vehicle_id", v.ID, "from", v.Status, "to", want)
		updated++
	}
	return updated, nil
}

// FlagOverdueRentals reports active rentals whose window has already closed.
// Their status is not changed; checkout stays the only way out of active.
func (jr *JobRunner) FlagOverdueRentals() {
	jr.runWithRecovery("FlagOverdueRentals", func() {
		overdue, err := jr.flagOverdueRentals(context.Background())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}
		logger.Info("Flagged overdue rentals", "count", len(overdue))
	})
}

func (jr *JobRunner) flagOverdueRentals(ctx context.Context) ([]domain.Rental, error) {
	now := jr.clock.Now()
	overdue, err := jr.rentals.ListActiveEndedBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	for _, r := range overdue {
		logger.Warn("Rental overdue",
			"rental_id", r.ID,
			"vehicle_id", r.VehicleID,
			"customer", r.CustomerName,
			"end", r.End,
			"overdue_by", now.Sub(r.End).Round(time.Minute).String())
	}
	return overdue, nil
}
