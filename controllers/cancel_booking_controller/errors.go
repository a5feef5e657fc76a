package cancel_booking_controller

import "errors"

var (
	ErrBookingNotOwnedByUser    = errors.New("booking does not belong to this user")
	ErrBookingAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrBookingCompleted         = errors.New("completed bookings cannot be cancelled")
	ErrInsideCancellationWindow = errors.New("booking is inside the cancellation window")
)
