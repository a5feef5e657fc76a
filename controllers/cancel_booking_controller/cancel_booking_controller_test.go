package cancel_booking_controller

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lfreelance/Bhimsons/models/booking_models"
	"github.com/lfreelance/Bhimsons/models/shared_models"
)

func TestWithinCancellationWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	// Exactly at the boundary counts as too late.
	assert.True(t, withinCancellationWindow(now.Add(48*time.Hour), now, 48))
	assert.True(t, withinCancellationWindow(now.Add(47*time.Hour), now, 48))
	assert.True(t, withinCancellationWindow(now.Add(-time.Hour), now, 48))

	assert.False(t, withinCancellationWindow(now.Add(49*time.Hour), now, 48))
	assert.False(t, withinCancellationWindow(now.Add(30*24*time.Hour), now, 48))
}

func TestCheckCancellable(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	owner := uuid.New()
	cc := &CancelBookingController{CancellationHours: 48}

	booking := func(status string, visit time.Time) *booking_models.Booking {
		return &booking_models.Booking{
			UserID:    owner,
			Status:    status,
			VisitDate: visit,
		}
	}

	farVisit := now.Add(100 * time.Hour)

	assert.NoError(t, cc.checkCancellable(booking(shared_models.BookingStatusPending, farVisit), owner, now))
	assert.NoError(t, cc.checkCancellable(booking(shared_models.BookingStatusConfirmed, farVisit), owner, now))

	err := cc.checkCancellable(booking(shared_models.BookingStatusPending, farVisit), uuid.New(), now)
	assert.ErrorIs(t, err, ErrBookingNotOwnedByUser)

	err = cc.checkCancellable(booking(shared_models.BookingStatusCancelled, farVisit), owner, now)
	assert.ErrorIs(t, err, ErrBookingAlreadyCancelled)

	err = cc.checkCancellable(booking(shared_models.BookingStatusCompleted, farVisit), owner, now)
	assert.ErrorIs(t, err, ErrBookingCompleted)

	err = cc.checkCancellable(booking(shared_models.BookingStatusConfirmed, now.Add(12*time.Hour)), owner, now)
	assert.ErrorIs(t, err, ErrInsideCancellationWindow)

	// Ownership is checked before state, state before the window.
	err = cc.checkCancellable(booking(shared_models.BookingStatusCancelled, now), uuid.New(), now)
	assert.ErrorIs(t, err, ErrBookingNotOwnedByUser)
}
