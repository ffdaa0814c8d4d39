package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/service"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListAvailableVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := parseWindow(q.Get("start"), q.Get("end"), h.loc)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	vehicles, err := h.svc.Availability.ListAvailableVehicles(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	writeJSON(w, r, http.StatusOK, vehicleListResponse{Vehicles: vehicles})
}

// VehicleStatus reports availability now, or at the optional "at" query instant.
func (h *Handler) VehicleStatus(w http.ResponseWriter, r *http.Request) {
	at := h.clock.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := parseTime("at", raw, h.loc)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		at = t
	}

	status, err := h.svc.Availability.Status(r.Context(), mux.Vars(r)["id"], at)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, status)
}

func (h *Handler) ValidateReservation(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	start, end, err := parseWindow(req.Start, req.End, h.loc)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	err = h.svc.Validator.Validate(r.Context(), service.ValidateRequest{
		VehicleID:       req.VehicleID,
		Start:           start,
		End:             end,
		ExcludeRentalID: req.ExcludeRentalID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, validateResponse{OK: true})
}

func (h *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	start, end, err := parseWindow(req.Start, req.End, h.loc)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	rental, err := h.svc.Rentals.CreateBooking(r.Context(), service.BookingRequest{
		OrgID:        req.OrgID,
		VehicleID:    req.VehicleID,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Start:        start,
		End:          end,
		RentalType:   domain.RentalType(req.RentalType),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, rental)
}

func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.svc.Rentals.GetRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rental)
}

func (h *Handler) RescheduleRental(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	start, end, err := parseWindow(req.Start, req.End, h.loc)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	rental, err := h.svc.Rentals.RescheduleBooking(r.Context(), mux.Vars(r)["id"], start, end)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rental)
}

func (h *Handler) ConfirmRental(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Rentals.ConfirmBooking)
}

func (h *Handler) CancelRental(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Rentals.CancelRental)
}

func (h *Handler) VoidRental(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Rentals.VoidRental)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*domain.Rental, error)) {
	rental, err := fn(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rental)
}

func (h *Handler) PickupRental(w http.ResponseWriter, r *http.Request) {
	var req pickupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	rental, err := h.svc.Rentals.StartRental(r.Context(), mux.Vars(r)["id"], req.StartOdometer)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rental)
}

func (h *Handler) CheckoutRental(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	if req.EndingOdometer == nil {
		writeDomainError(w, r, domain.NewValidationError("ending_odometer", "is required"))
		return
	}

	result, err := h.svc.Billing.FinalizeCheckout(r.Context(), mux.Vars(r)["id"], *req.EndingOdometer)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) RecomputeRental(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Billing.RecomputeOverage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) SetBasePrice(w http.ResponseWriter, r *http.Request) {
	var req basePriceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}
	rentalType, err := domain.ParseRentalType(req.RentalType)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	bp, err := h.svc.Pricing.SetBasePrice(r.Context(), req.ModelID, rentalType, req.UnitPrice)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, bp)
}
