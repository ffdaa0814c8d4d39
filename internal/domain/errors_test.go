package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictError(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	r := &Rental{ID: "r-1", VehicleID: "v-1", CustomerName: "Amina", Start: start, End: start.Add(10 * time.Hour)}

	err := fmt.Errorf("create booking: %w", NewConflictError(r))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrValidation))

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "r-1", ce.RentalID)
	assert.Contains(t, ce.Error(), "Amina")
	assert.Contains(t, ce.Error(), "2024-06-01T08:00:00Z")
}

func TestConflictError_WithoutRental(t *testing.T) {
	err := &ConflictError{VehicleID: "v-1"}
	assert.Equal(t, "vehicle v-1 is already booked for an overlapping window", err.Error())
}

func TestValidationAndNotFound(t *testing.T) {
	v := NewValidationError("end", "must be after start")
	assert.Equal(t, "end: must be after start", v.Error())
	assert.ErrorIs(t, v, ErrValidation)
	assert.Equal(t, "checkout attempted before pickup", (&ValidationError{Message: "checkout attempted before pickup"}).Error())

	nf := NewNotFoundError("vehicle", "v-9")
	assert.Equal(t, "vehicle v-9 not found", nf.Error())
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.NotErrorIs(t, nf, ErrConflict)
}

func TestRentalStatus(t *testing.T) {
	for _, s := range NonTerminalRentalStatuses {
		assert.False(t, s.IsTerminal(), s)
		assert.True(t, (&Rental{Status: s}).Occupies())
	}
	for _, s := range []RentalStatus{RentalStatusCompleted, RentalStatusCancelled, RentalStatusVoid} {
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, RentalStatus("lost").IsValid())
}

func TestParseRentalType(t *testing.T) {
	rt, err := ParseRentalType("weekly")
	require.NoError(t, err)
	assert.Equal(t, RentalTypeWeekly, rt)

	_, err = ParseRentalType("Weekly")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVehicleStatusBookable(t *testing.T) {
	assert.True(t, VehicleStatusAvailable.Bookable())
	assert.True(t, VehicleStatusRented.Bookable())
	assert.False(t, VehicleStatusMaintenance.Bookable())
	assert.False(t, VehicleStatusOutOfService.Bookable())
}
