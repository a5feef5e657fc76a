package email_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_models"
	"github.com/lfreelance/Bhimsons/utils/api"
	"github.com/lfreelance/Bhimsons/utils/mail"
)

// EmailController exposes on-demand confirmation email sending, used by the
// frontend as a resend button and as a fallback when the queued send after
// payment fails.
type EmailController struct {
	Mail *mail.Service
}

func NewEmailController(mailService *mail.Service) (*EmailController, error) {
	if mailService == nil {
		return nil, errors.New("mail service is required")
	}
	return &EmailController{Mail: mailService}, nil
}

type SendConfirmationRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// SendConfirmationEmail renders and sends the booking confirmation
// synchronously and returns the provider's email id.
func (ec *EmailController) SendConfirmationEmail(c *gin.Context) {
	var req SendConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "booking_id is required")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	emailID, err := ec.Mail.SendBookingConfirmation(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, booking_models.ErrBookingNotFound):
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found")
		case errors.Is(err, mail.ErrNoCustomerEmail):
			api.Fail(c, http.StatusBadRequest, api.CodeInvalidState, "Booking has no customer email")
		default:
			logger.ErrorLogger.Errorf("Failed to send confirmation email for booking %s: %v", bookingID, err)
			api.Fail(c, http.StatusBadGateway, api.CodeUpstream, "Failed to send confirmation email")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Confirmation email sent",
		"email_id": emailID,
	})
}
