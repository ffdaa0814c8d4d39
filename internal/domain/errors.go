package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConflict   = errors.New("booking conflict")
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")

	// ErrPricingUnavailable is soft: checkout falls back to the stored amount.
	ErrPricingUnavailable = errors.New("no active base price")

	// ErrOverlapConstraint is returned by repositories when the store itself
	// rejects a write that would double-book a vehicle.
	ErrOverlapConstraint = errors.New("rental window overlaps an existing rental")
)

// ConflictError carries the rental that collided with a proposed window.
type ConflictError struct {
	RentalID     string
	VehicleID    string
	CustomerName string
	Start        time.Time
	End          time.Time
}

func NewConflictError(r *Rental) *ConflictError {
	return &ConflictError{
		RentalID:     r.ID,
		VehicleID:    r.VehicleID,
		CustomerName: r.CustomerName,
		Start:        r.Start,
		End:          r.End,
	}
}

func (e *ConflictError) Error() string {
	if e.RentalID == "" {
		return fmt.Sprintf("vehicle %s is already booked for an overlapping window", e.VehicleID)
	}
	return fmt.Sprintf("vehicle %s is already booked by %s from %s to %s (rental %s)",
		e.VehicleID, e.CustomerName, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), e.RentalID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
