package payment_controller

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lfreelance/Bhimsons/clients"
	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_log_models"
	"github.com/lfreelance/Bhimsons/models/booking_models"
	"github.com/lfreelance/Bhimsons/models/payment_models"
	"github.com/lfreelance/Bhimsons/models/shared_models"
	"github.com/lfreelance/Bhimsons/utils/api"
	"github.com/lfreelance/Bhimsons/utils/mail"
)

// PaymentController drives the Razorpay order and verification flow.
type PaymentController struct {
	DB         *pgxpool.Pool
	Razorpay   clients.RazorpayClientWrapper
	KeyID      string
	KeySecret  string
	Dispatcher *mail.Dispatcher
	Redis      *redis.Client
}

func NewPaymentController(db *pgxpool.Pool, razorpay clients.RazorpayClientWrapper, keyID, keySecret string, dispatcher *mail.Dispatcher, rdb *redis.Client) (*PaymentController, error) {
	if db == nil {
		return nil, errors.New("database pool is required")
	}
	if razorpay == nil {
		return nil, errors.New("razorpay client is required")
	}
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay credentials are required")
	}
	return &PaymentController{
		DB:         db,
		Razorpay:   razorpay,
		KeyID:      keyID,
		KeySecret:  keySecret,
		Dispatcher: dispatcher,
		Redis:      rdb,
	}, nil
}

// toPaise converts a rupee amount to the integer paise Razorpay expects.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// gatewayErrorMessage carries the gateway's own error description to the
// caller so the frontend can show why the order was refused.
func gatewayErrorMessage(err error) string {
	return "Payment gateway error: " + err.Error()
}

// orderResponse builds the checkout payload. payment_id is only advertised
// when the pending payment row actually persisted.
func orderResponse(detail *booking_models.BookingDetail, orderID string, paise int64, keyID string, payment *payment_models.Payment, persisted bool) gin.H {
	resp := gin.H{
		"success": true,
		"order": gin.H{
			"id":       orderID,
			"amount":   paise,
			"currency": "INR",
			"receipt":  detail.BookingNumber,
		},
		"key_id": keyID,
		"prefill": gin.H{
			"name":    detail.CustomerName,
			"email":   detail.CustomerEmail,
			"contact": detail.CustomerPhone,
		},
	}
	if persisted && payment != nil {
		resp["payment_id"] = payment.ID
	}
	return resp
}

type CreateOrderRequest struct {
	BookingID string  `json:"booking_id" binding:"required,uuid"`
	Amount    float64 `json:"amount" binding:"required"`
}

// CreateRazorpayOrder creates a gateway order for a booking and records a
// pending payment row. The checkout prefill comes from the booking's profile.
func (pc *PaymentController) CreateRazorpayOrder(c *gin.Context) {
	if pc.Razorpay == nil || pc.KeyID == "" || pc.KeySecret == "" {
		api.Fail(c, http.StatusInternalServerError, api.CodeServerMisconfigured, "Payment gateway is not configured")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "booking_id and amount are required")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	paise := toPaise(req.Amount)
	if paise < 100 {
		api.Fail(c, http.StatusBadRequest, api.CodePolicyViolation, "Amount must be at least ₹1")
		return
	}

	ctx := c.Request.Context()

	detail, err := booking_models.GetBookingDetail(ctx, pc.DB, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			api.Fail(c, http.StatusNotFound, api.CodeNotFound, "Booking not found")
			return
		}
		logger.ErrorLogger.Errorf("Failed to load booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusInternalServerError, api.CodePersistence, "Failed to load booking")
		return
	}

	order, err := pc.Razorpay.CreateOrder(map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  detail.BookingNumber,
		"notes": map[string]interface{}{
			"booking_id":     detail.ID.String(),
			"booking_number": detail.BookingNumber,
			"visit_date":     detail.VisitDate.Format("2006-01-02"),
		},
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Razorpay order creation failed for booking %s: %v", bookingID, err)
		api.Fail(c, http.StatusBadGateway, api.CodeUpstream, gatewayErrorMessage(err))
		return
	}

	orderID, _ := order["id"].(string)

	persisted := false
	payment, err := payment_models.NewPayment(detail.ID, orderID, req.Amount, "INR")
	if err == nil {
		_, err = payment_models.CreatePayment(ctx, pc.DB, payment)
		persisted = err == nil
	}
	if err != nil {
		// The gateway order exists either way; verification recovers by order id.
		logger.WarnLogger.Warnf("Failed to record pending payment for order %s: %v", orderID, err)
	}

	logger.InfoLogger.Infof("Razorpay order %s created for booking %s", orderID, detail.BookingNumber)

	c.JSON(http.StatusOK, orderResponse(detail, orderID, paise, pc.KeyID, payment, persisted))
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	BookingID         string `json:"booking_id" binding:"required,uuid"`
}

// VerifyPayment checks the gateway signature and, when valid, confirms the
// booking and queues the confirmation email. Persistence failures after a
// valid signature are logged but do not fail the request; the customer has
// paid and the records can be reconciled from the gateway.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	if pc.KeySecret == "" {
		api.Fail(c, http.StatusInternalServerError, api.CodeServerMisconfigured, "Payment gateway is not configured")
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation,
			"razorpay_order_id, razorpay_payment_id, razorpay_signature and booking_id are required")
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		api.Fail(c, http.StatusBadRequest, api.CodeValidation, "Invalid booking id")
		return
	}

	ctx := c.Request.Context()

	if !clients.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, pc.KeySecret) {
		logger.WarnLogger.Warnf("Signature verification failed for order %s", req.RazorpayOrderID)
		if err := payment_models.MarkFailed(ctx, pc.DB, req.RazorpayOrderID, "Signature verification failed"); err != nil {
			logger.WarnLogger.Warnf("Failed to mark payment failed for order %s: %v", req.RazorpayOrderID, err)
		}
		api.Fail(c, http.StatusBadRequest, api.CodeUnauthenticated, "Payment signature verification failed")
		return
	}

	if !pc.claimVerification(ctx, req.RazorpayOrderID) {
		// Already verified; report success without repeating the side effects.
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Payment verified successfully",
			"booking_id": bookingID,
		})
		return
	}

	if err := payment_models.MarkSuccessful(ctx, pc.DB, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, "razorpay"); err != nil {
		logger.ErrorLogger.Errorf("Failed to mark payment successful for order %s: %v", req.RazorpayOrderID, err)
	}

	if err := booking_models.UpdateBookingStatus(ctx, pc.DB, bookingID, shared_models.BookingStatusConfirmed); err != nil {
		logger.ErrorLogger.Errorf("Failed to confirm booking %s: %v", bookingID, err)
	}

	if err := booking_log_models.Record(ctx, pc.DB,
		bookingID, shared_models.ActionPaymentSuccessful,
		shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed,
		"Payment ID: "+req.RazorpayPaymentID, nil,
	); err != nil {
		logger.WarnLogger.Warnf("Failed to write payment log for booking %s: %v", bookingID, err)
	}

	if pc.Dispatcher != nil {
		pc.Dispatcher.Enqueue(bookingID)
	}

	logger.InfoLogger.Infof("Payment %s verified for booking %s", req.RazorpayPaymentID, bookingID)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Payment verified successfully",
		"booking_id": bookingID,
	})
}

// claimVerification takes a short-lived Redis lock so a retried verification
// does not repeat the confirmation side effects. Without Redis every call
// proceeds; the updates are idempotent at the SQL level.
func (pc *PaymentController) claimVerification(ctx context.Context, orderID string) bool {
	if pc.Redis == nil {
		return true
	}
	ok, err := pc.Redis.SetNX(ctx, "payment_verify:"+orderID, "1", 24*time.Hour).Result()
	if err != nil {
		logger.WarnLogger.Warnf("Redis verification guard failed for order %s: %v", orderID, err)
		return true
	}
	return ok
}
