package payment_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/shared_models"
)

// ErrPaymentNotFound is returned when no payment row matches.
var ErrPaymentNotFound = errors.New("payment not found")

// Payment records one gateway order for a booking. A booking can accumulate
// several historical rows (abandoned checkouts); the most recent row wins on
// reads. Status moves pending -> successful or pending -> failed, never back.
type Payment struct {
	ID                uuid.UUID `json:"id"`
	BookingID         uuid.UUID `json:"booking_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID *string   `json:"razorpay_payment_id"`
	RazorpaySignature *string   `json:"razorpay_signature"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	PaymentMethod     *string   `json:"payment_method"`
	ErrorDescription  *string   `json:"error_description"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewPayment builds a pending payment for a freshly minted gateway order.
func NewPayment(bookingID uuid.UUID, razorpayOrderID string, amount float64, currency string) (*Payment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for payment: %w", err)
	}
	now := time.Now()
	return &Payment{
		ID:              id,
		BookingID:       bookingID,
		RazorpayOrderID: razorpayOrderID,
		Amount:          amount,
		Currency:        currency,
		Status:          shared_models.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// CreatePayment inserts a new payment record.
func CreatePayment(ctx context.Context, db *pgxpool.Pool, p *Payment) (*Payment, error) {
	logger.InfoLogger.Infof("Attempting to create payment record for booking %s, order %s", p.BookingID, p.RazorpayOrderID)

	query := `
		INSERT INTO payments (id, booking_id, razorpay_order_id, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		p.ID, p.BookingID, p.RazorpayOrderID, p.Amount, p.Currency, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert payment for booking %s: %v", p.BookingID, err)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	p.ID = insertedID
	return p, nil
}

// MarkSuccessful records a verified payment against its gateway order.
func MarkSuccessful(ctx context.Context, db *pgxpool.Pool, razorpayOrderID, razorpayPaymentID, signature, method string) error {
	query := `
		UPDATE payments
		SET razorpay_payment_id = $2,
			razorpay_signature = $3,
			status = $4,
			payment_method = $5,
			updated_at = NOW()
		WHERE razorpay_order_id = $1`

	cmdTag, err := db.Exec(ctx, query, razorpayOrderID, razorpayPaymentID, signature,
		shared_models.PaymentStatusSuccessful, method)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to mark payment successful for order %s: %v", razorpayOrderID, err)
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	logger.InfoLogger.Infof("Payment for order %s marked successful (payment id %s)", razorpayOrderID, razorpayPaymentID)
	return nil
}

// MarkFailed records a failed verification against a gateway order.
func MarkFailed(ctx context.Context, db *pgxpool.Pool, razorpayOrderID, errorDescription string) error {
	query := `
		UPDATE payments
		SET status = $2, error_description = $3, updated_at = NOW()
		WHERE razorpay_order_id = $1`

	cmdTag, err := db.Exec(ctx, query, razorpayOrderID, shared_models.PaymentStatusFailed, errorDescription)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to mark payment failed for order %s: %v", razorpayOrderID, err)
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// GetByOrderID fetches a payment row by gateway order id.
func GetByOrderID(ctx context.Context, db *pgxpool.Pool, razorpayOrderID string) (*Payment, error) {
	query := `
		SELECT id, booking_id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
			amount, currency, status, payment_method, error_description, created_at, updated_at
		FROM payments
		WHERE razorpay_order_id = $1`

	p := &Payment{}
	err := db.QueryRow(ctx, query, razorpayOrderID).Scan(
		&p.ID, &p.BookingID, &p.RazorpayOrderID, &p.RazorpayPaymentID, &p.RazorpaySignature,
		&p.Amount, &p.Currency, &p.Status, &p.PaymentMethod, &p.ErrorDescription,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch payment for order %s: %v", razorpayOrderID, err)
		return nil, fmt.Errorf("database error fetching payment: %w", err)
	}
	return p, nil
}

// GetLatestByBookingID fetches the most recent payment row for a booking.
func GetLatestByBookingID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Payment, error) {
	query := `
		SELECT id, booking_id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
			amount, currency, status, payment_method, error_description, created_at, updated_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	p := &Payment{}
	err := db.QueryRow(ctx, query, bookingID).Scan(
		&p.ID, &p.BookingID, &p.RazorpayOrderID, &p.RazorpayPaymentID, &p.RazorpaySignature,
		&p.Amount, &p.Currency, &p.Status, &p.PaymentMethod, &p.ErrorDescription,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch latest payment for booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching payment: %w", err)
	}
	return p, nil
}
