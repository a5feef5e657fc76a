package qr_controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/clients"
	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_models"
	"github.com/lfreelance/Bhimsons/utils/api"
)

// QRController generates entry QR codes for bookings.
type QRController struct {
	DB *pgxpool.Pool
	QR *clients.QRServerClient
}

func NewQRController(db *pgxpool.Pool, qr *clients.QRServerClient) (*QRController, error) {
	if db == nil {
		return nil, errors.New("database pool is required")
	}
	if qr == nil {
		return nil, errors.New("qr client is required")
	}
	return &QRController{DB: db, QR: qr}, nil
}

// BuildQRPayload produces the JSON the gate scanner reads. The timestamp is
// when the code was generated, not when the payment happened.
func BuildQRPayload(b *booking_models.Booking, now time.Time) (string, error) {
	payload := map[string]interface{}{
		"booking_id":     b.ID.String(),
		"booking_number": b.BookingNumber,
		"visit_date":     b.VisitDate.Format("2006-01-02"),
		"guests":         b.NumAdults + b.NumChildren,
		"verified":       true,
		"timestamp":      now.UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

type GenerateQRRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// GenerateQRCode builds the scanner payload for a booking, renders it through
// the QR image service, and stores both on the booking.
func (qc *QRController) GenerateQRCode(c *gin.Context) {
	var req GenerateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "booking_id is required")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	ctx := c.Request.Context()

	booking, err := booking_models.GetBookingByID(ctx, qc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to load booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load booking")
		return
	}

	payload, err := BuildQRPayload(booking, time.Now())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to build QR payload for booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodeValidation, "Failed to generate QR code")
		return
	}

	qrURL := qc.QR.RenderURL(payload)

	if err := booking_models.UpdateBookingQR(ctx, qc.DB, bookingID, payload, qrURL); err != nil {
		// The URL is still usable; the stored copy is only a cache.
		logger.WarnLogger.Warnf("Failed to store QR code for booking %s: %v", bookingID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"qr_code_url":    qrURL,
		"booking_number": booking.BookingNumber,
	})
}
