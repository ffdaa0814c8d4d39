package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"fleet-rental-backend/internal/logger"
)

// ServiceName is the name reported to gRPC health checks for the rental core.
const ServiceName = "fleet.rental.v1.RentalCore"

// HealthChecker mirrors database reachability into a gRPC health server.
type HealthChecker struct {
	server   *health.Server
	ping     func(ctx context.Context) error
	interval time.Duration
}

func NewHealthChecker(server *health.Server, ping func(ctx context.Context) error, interval time.Duration) *HealthChecker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &HealthChecker{server: server, ping: ping, interval: interval}
}

// Check pings once and publishes the result for both the overall server ("")
// and ServiceName.
func (h *HealthChecker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if err := h.ping(ctx); err != nil {
		logger.Warn("Health check failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", st)
	h.server.SetServingStatus(ServiceName, st)
	return st
}

// Run checks on every interval until ctx is done, then marks the server as
// shutting down.
func (h *HealthChecker) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, h.interval)
			h.Check(pingCtx)
			cancel()
		}
	}
}
