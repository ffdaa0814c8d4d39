package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	api "fleet-rental-backend/internal/api/grpc"
	"fleet-rental-backend/internal/api/grpc/interceptor"
	httpapi "fleet-rental-backend/internal/api/http"
	"fleet-rental-backend/internal/cache"
	"fleet-rental-backend/internal/clock"
	"fleet-rental-backend/internal/config"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/repository"
	"fleet-rental-backend/internal/repository/postgres"
	"fleet-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Fleet Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "grpc_address", cfg.GetServerAddress(), "http_address", cfg.GetHTTPAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	clk := clock.Real{}
	pricingRepo := newPricingRepository(cfg, store.PricingRepository, clk)

	// Initialize Alerts
	var alerter service.OperatorAlerter
	if cfg.Alerts.SendGridAPIKey != "" {
		logger.Info("Operator alerts via SendGrid", "to", cfg.Alerts.OperatorEmail)
		alerter = service.NewSendGridAlerter(cfg.Alerts.SendGridAPIKey, cfg.Alerts.FromEmail, cfg.Alerts.FromName, cfg.Alerts.OperatorEmail)
	} else {
		logger.Info("Operator alerts via log only")
		alerter = service.NewLogAlerter()
	}

	// Initialize Services
	validator := service.NewReservationValidator(store.RentalRepository, store.VehicleRepository, clk, cfg.BookingLocation())
	availabilitySvc := service.NewAvailabilityService(store.RentalRepository, store.VehicleRepository, validator)
	assigner := service.NewPackageAssigner(store.RentalRepository, store.VehicleRepository, store.PackageRepository)
	billingSvc := service.NewBillingService(store.RentalRepository, store.VehicleRepository, pricingRepo, assigner, alerter)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.VehicleRepository, pricingRepo, validator)
	pricingSvc := service.NewPricingService(pricingRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up gRPC server
	lis, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetServerAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	s := grpc.NewServer(
		grpc.UnaryInterceptor(interceptor.NewErrorInterceptor().Unary()),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(s, healthServer)
	go api.NewHealthChecker(healthServer, db.PingContext, 15*time.Second).Run(ctx)

	// Register reflection service for grpcurl
	reflection.Register(s)

	// Set up HTTP server for the rental API
	router := httpapi.NewRouter(httpapi.Services{
		Availability: availabilitySvc,
		Validator:    validator,
		Rentals:      rentalSvc,
		Billing:      billingSvc,
		Pricing:      pricingSvc,
	}, clk, cfg.BookingLocation(), db.PingContext)

	httpServer := &http.Server{
		Addr:              cfg.GetHTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	go func() {
		logger.Info("gRPC server listening", "address", cfg.GetServerAddress())
		if err := s.Serve(lis); err != nil {
			logger.Error("Failed to serve gRPC", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	s.GracefulStop()
	logger.Info("Server stopped. Goodbye!")
}

// newPricingRepository wraps base-price lookups with the configured cache.
func newPricingRepository(cfg *config.Config, next repository.PricingRepository, clk clock.Clock) repository.PricingRepository {
	switch cfg.Cache.Backend {
	case "none":
		logger.Info("Base-price cache disabled")
		return cache.NewPricingRepository(next, cache.Noop{})
	case "redis":
		logger.Info("Base-price cache on redis", "addr", cfg.Cache.RedisAddr, "ttl", cfg.CacheTTL())
		client := cache.NewRedis(cfg.Cache.RedisAddr)
		return cache.NewPricingRepository(next, cache.NewRedisCache(client, cfg.Cache.KeyPrefix, cfg.CacheTTL()))
	default:
		logger.Info("Base-price cache in memory", "ttl", cfg.CacheTTL())
		return cache.NewPricingRepository(next, cache.NewMemoryCache(cfg.CacheTTL(), clk))
	}
}
