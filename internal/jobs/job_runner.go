package jobs

import (
	"fleet-rental-backend/internal/clock"
	"fleet-rental-backend/internal/config"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
	"fleet-rental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals  repository.RentalRepository
	vehicles repository.VehicleRepository
	services *Services
	clock    clock.Clock
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Availability service.AvailabilityService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	rentals repository.RentalRepository,
	vehicles repository.VehicleRepository,
	services *Services,
	clk clock.Clock,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		rentals:  rentals,
		vehicles: vehicles,
		services: services,
		clock:    clk,
		config:   cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SyncVehicleStatuses()
	jr.FlagOverdueRentals()
}
