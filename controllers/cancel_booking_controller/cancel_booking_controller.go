package cancel_booking_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_log_models"
	"github.com/lfreelance/Bhimsons/models/booking_models"
	"github.com/lfreelance/Bhimsons/models/shared_models"
	"github.com/lfreelance/Bhimsons/utils"
	"github.com/lfreelance/Bhimsons/utils/api"
)

// CancelBookingController handles customer-initiated cancellations.
type CancelBookingController struct {
	DB                *pgxpool.Pool
	CancellationHours int
}

func NewCancelBookingController(db *pgxpool.Pool, cancellationHours int) (*CancelBookingController, error) {
	if db == nil {
		return nil, errors.New("database pool is required")
	}
	return &CancelBookingController{DB: db, CancellationHours: cancellationHours}, nil
}

// withinCancellationWindow reports whether the visit is too close to cancel.
// A visit exactly at the boundary counts as inside the window.
func withinCancellationWindow(visit, now time.Time, hours int) bool {
	return visit.Sub(now) <= time.Duration(hours)*time.Hour
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelBooking marks the caller's booking cancelled if policy allows it.
// The row is never deleted; cancellation is a status transition plus an
// audit log entry.
func (cc *CancelBookingController) CancelBooking(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, err.Error())
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid request body")
			return
		}
	}

	ctx := c.Request.Context()

	booking, err := booking_models.GetBookingByID(ctx, cc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to load booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load booking")
		return
	}

	if err := cc.checkCancellable(booking, userID, time.Now()); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotOwnedByUser):
			api.Fail(c, http.StatusForbidden, api.CodeForbidden, "You do not have access to this booking")
		case errors.Is(err, ErrBookingAlreadyCancelled):
			api.Fail(c, http.StatusBadRequest, api.CodeInvalidState, "Booking is already cancelled")
		case errors.Is(err, ErrBookingCompleted):
			api.Fail(c, http.StatusBadRequest, api.CodeInvalidState, "Completed bookings cannot be cancelled")
		case errors.Is(err, ErrInsideCancellationWindow):
			api.Fail(c, http.StatusBadRequest, api.CodePolicyViolation,
				fmt.Sprintf("Bookings can only be cancelled at least %d hours before the visit", cc.CancellationHours))
		default:
			api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to cancel booking")
		}
		return
	}

	if err := cc.cancel(ctx, booking, req.Reason, userID); err != nil {
		logger.ErrorLogger.Errorf("Failed to cancel booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to cancel booking")
		return
	}

	logger.InfoLogger.Infof("Booking %s cancelled by user %s", booking.BookingNumber, userID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled",
	})
}

func (cc *CancelBookingController) checkCancellable(b *booking_models.Booking, userID uuid.UUID, now time.Time) error {
	if b.UserID != userID {
		return ErrBookingNotOwnedByUser
	}
	switch b.Status {
	case shared_models.BookingStatusCancelled:
		return ErrBookingAlreadyCancelled
	case shared_models.BookingStatusCompleted:
		return ErrBookingCompleted
	}
	if withinCancellationWindow(b.VisitDate, now, cc.CancellationHours) {
		return ErrInsideCancellationWindow
	}
	return nil
}

func (cc *CancelBookingController) cancel(ctx context.Context, b *booking_models.Booking, reason string, actor uuid.UUID) error {
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	tag, err := cc.DB.Exec(ctx, `
		UPDATE bookings
		SET status = $1, cancelled_at = now(), cancellation_reason = $2, updated_at = now()
		WHERE id = $3`,
		shared_models.BookingStatusCancelled, reasonPtr, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return booking_models.ErrBookingNotFound
	}

	if err := booking_log_models.Record(ctx, cc.DB,
		b.ID, shared_models.ActionBookingCancelled,
		b.Status, shared_models.BookingStatusCancelled,
		reason, &actor,
	); err != nil {
		logger.WarnLogger.Warnf("Failed to write cancellation log for booking %s: %v", b.ID, err)
	}
	return nil
}
