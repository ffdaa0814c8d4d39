package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"fleet-rental-backend/internal/domain"
	"fleet-rental-backend/internal/logger"
	"fleet-rental-backend/internal/utils"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ErrorContext(r.Context(), "Encode response failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, status, "internal server error")
		return
	}

	res := errorResponse{Error: err.Error()}
	var ce *domain.ConflictError
	if errors.As(err, &ce) && ce.RentalID != "" {
		res.Conflict = &conflictResponse{
			RentalID:     ce.RentalID,
			VehicleID:    ce.VehicleID,
			CustomerName: ce.CustomerName,
			Start:        ce.Start,
			End:          ce.End,
		}
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		res.Field = ve.Field
	}
	writeJSON(w, r, status, res)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "malformed JSON: %v", err)
	}
	return nil
}

func parseTime(field, value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.NewValidationError(field, "is required")
	}
	t, err := utils.ParseTimestamp(value, loc)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "invalid timestamp %q", value)
	}
	return t, nil
}

func parseWindow(start, end string, loc *time.Location) (time.Time, time.Time, error) {
	s, err := parseTime("start", start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := parseTime("end", end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return s, e, nil
}
