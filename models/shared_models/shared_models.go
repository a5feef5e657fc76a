package shared_models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lfreelance/Bhimsons/utils/shared_utils"
)

// Booking lifecycle statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Payment statuses. A payment only ever moves pending -> successful or
// pending -> failed.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusSuccessful = "successful"
	PaymentStatusFailed     = "failed"
)

// Audit log action tags.
const (
	ActionBookingCreated    = "booking_created"
	ActionBookingCancelled  = "booking_cancelled"
	ActionPaymentSuccessful = "payment_successful"
	ActionStatusUpdated     = "status_updated"
)

// IsValidBookingStatus reports whether s is a known booking status.
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// GenerateUUIDv7 generates a new UUIDv7.
func GenerateUUIDv7() (uuid.UUID, error) {
	return uuid.NewV7()
}

// NewBookingNumber builds a human-readable booking reference like
// BAP-20260901-K4X2TQ. It is used as the gateway receipt and printed on
// tickets and emails.
func NewBookingNumber(now time.Time) (string, error) {
	suffix, err := shared_utils.GenerateTinyID(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate booking number: %w", err)
	}
	return fmt.Sprintf("BAP-%s-%s", now.Format("20060102"), strings.ToUpper(suffix)), nil
}
