package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fleet-rental-backend/internal/clock"
	"fleet-rental-backend/internal/service"
)

// Services are the core operations exposed over HTTP.
type Services struct {
	Availability service.AvailabilityService
	Validator    service.ReservationValidator
	Rentals      service.RentalService
	Billing      service.BillingService
	Pricing      service.PricingService
}

// Handler holds the dependencies shared by every route.
type Handler struct {
	svc   Services
	clock clock.Clock
	loc   *time.Location
	ping  func(ctx context.Context) error
}

// NewRouter wires the routes and middleware. loc is used to read timestamps
// sent without an offset. ping backs /healthz and may be nil.
func NewRouter(svc Services, clk clock.Clock, loc *time.Location, ping func(ctx context.Context) error) http.Handler {
	if loc == nil {
		loc = time.UTC
	}
	h := &Handler{svc: svc, clock: clk, loc: loc, ping: ping}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/vehicles/available", h.ListAvailableVehicles).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id}/status", h.VehicleStatus).Methods(http.MethodGet)

	r.HandleFunc("/reservations/validate", h.ValidateReservation).Methods(http.MethodPost)

	r.HandleFunc("/rentals", h.CreateRental).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}", h.GetRental).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id}/schedule", h.RescheduleRental).Methods(http.MethodPut)
	r.HandleFunc("/rentals/{id}/confirm", h.ConfirmRental).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}/pickup", h.PickupRental).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}/checkout", h.CheckoutRental).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}/recompute", h.RecomputeRental).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}/cancel", h.CancelRental).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}/void", h.VoidRental).Methods(http.MethodPost)

	r.HandleFunc("/base-prices", h.SetBasePrice).Methods(http.MethodPost)

	return requestIDMiddleware(loggingMiddleware(r))
}
