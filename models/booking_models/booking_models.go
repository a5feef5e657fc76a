package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_log_models"
	"github.com/lfreelance/Bhimsons/models/shared_models"
)

// ErrBookingNotFound is returned when the requested booking does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// Booking is a customer's reservation of a pass for a visit date. Rows are
// never physically deleted; cancellation is a status transition.
type Booking struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	PassID             uuid.UUID  `json:"pass_id"`
	BookingNumber      string     `json:"booking_number"`
	VisitDate          time.Time  `json:"visit_date"`
	NumAdults          int        `json:"num_adults"`
	NumChildren        int        `json:"num_children"`
	BaseAmount         float64    `json:"base_amount"`
	TaxAmount          float64    `json:"tax_amount"`
	TotalAmount        float64    `json:"total_amount"`
	SpecialRequests    *string    `json:"special_requests"`
	DietaryPreferences *string    `json:"dietary_preferences"`
	Status             string     `json:"status"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason *string    `json:"cancellation_reason"`
	QRCode             *string    `json:"qr_code"`
	QRCodeURL          *string    `json:"qr_code_url"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// BookingDetail is a booking joined with its owner's profile and pass.
type BookingDetail struct {
	Booking
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	PassName      string  `json:"pass_name"`
	PassPrice     float64 `json:"pass_price"`
}

const bookingColumns = `
	id, user_id, pass_id, booking_number, visit_date, num_adults, num_children,
	base_amount, tax_amount, total_amount, special_requests, dietary_preferences,
	status, cancelled_at, cancellation_reason, qr_code, qr_code_url, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.PassID, &b.BookingNumber, &b.VisitDate,
		&b.NumAdults, &b.NumChildren,
		&b.BaseAmount, &b.TaxAmount, &b.TotalAmount,
		&b.SpecialRequests, &b.DietaryPreferences,
		&b.Status, &b.CancelledAt, &b.CancellationReason,
		&b.QRCode, &b.QRCodeURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewBooking builds a pending booking with a fresh id and booking number.
// Amounts must already be computed by the pricing calculator; they are never
// recomputed after creation.
func NewBooking(userID, passID uuid.UUID, visitDate time.Time, adults, children int, base, tax, total float64) (*Booking, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}
	now := time.Now()
	number, err := shared_models.NewBookingNumber(now)
	if err != nil {
		return nil, err
	}
	return &Booking{
		ID:            id,
		UserID:        userID,
		PassID:        passID,
		BookingNumber: number,
		VisitDate:     visitDate,
		NumAdults:     adults,
		NumChildren:   children,
		BaseAmount:    base,
		TaxAmount:     tax,
		TotalAmount:   total,
		Status:        shared_models.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CreateBooking inserts a new booking record and appends the booking_created
// audit row. A failed audit write is logged and swallowed; the booking has
// already been created.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, booking *Booking) (*Booking, error) {
	logger.InfoLogger.Infof("Attempting to create booking %s for user %s", booking.BookingNumber, booking.UserID)

	query := `
		INSERT INTO bookings (
			id, user_id, pass_id, booking_number, visit_date, num_adults, num_children,
			base_amount, tax_amount, total_amount, special_requests, dietary_preferences,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		booking.ID, booking.UserID, booking.PassID, booking.BookingNumber,
		booking.VisitDate, booking.NumAdults, booking.NumChildren,
		booking.BaseAmount, booking.TaxAmount, booking.TotalAmount,
		booking.SpecialRequests, booking.DietaryPreferences,
		booking.Status, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking %s: %v", booking.BookingNumber, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	booking.ID = insertedID

	notes := fmt.Sprintf("Booking created for %d adults, %d children", booking.NumAdults, booking.NumChildren)
	if err := booking_log_models.Record(ctx, db, booking.ID,
		shared_models.ActionBookingCreated, "", shared_models.BookingStatusPending, notes, &booking.UserID); err != nil {
		logger.ErrorLogger.Errorf("Failed to write booking_created log for %s: %v", booking.ID, err)
	}

	logger.InfoLogger.Infof("Booking %s (%s) created successfully", booking.ID, booking.BookingNumber)
	return booking, nil
}

// GetBookingByID fetches a booking record by its ID.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(db.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Booking with ID %s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}
	return booking, nil
}

// GetBookingDetail fetches a booking joined with its profile and pass.
func GetBookingDetail(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*BookingDetail, error) {
	query := `
		SELECT b.id, b.user_id, b.pass_id, b.booking_number, b.visit_date,
			b.num_adults, b.num_children,
			b.base_amount, b.tax_amount, b.total_amount,
			b.special_requests, b.dietary_preferences,
			b.status, b.cancelled_at, b.cancellation_reason,
			b.qr_code, b.qr_code_url, b.created_at, b.updated_at,
			p.full_name, p.email, p.phone,
			ps.name, ps.price
		FROM bookings b
		JOIN profiles p ON b.user_id = p.id
		JOIN passes ps ON b.pass_id = ps.id
		WHERE b.id = $1`

	d := &BookingDetail{}
	err := db.QueryRow(ctx, query, bookingID).Scan(
		&d.ID, &d.UserID, &d.PassID, &d.BookingNumber, &d.VisitDate,
		&d.NumAdults, &d.NumChildren,
		&d.BaseAmount, &d.TaxAmount, &d.TotalAmount,
		&d.SpecialRequests, &d.DietaryPreferences,
		&d.Status, &d.CancelledAt, &d.CancellationReason,
		&d.QRCode, &d.QRCodeURL, &d.CreatedAt, &d.UpdatedAt,
		&d.CustomerName, &d.CustomerEmail, &d.CustomerPhone,
		&d.PassName, &d.PassPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking detail %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}
	return d, nil
}

// UpdateBookingStatus updates the status of a booking.
func UpdateBookingStatus(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, status string) error {
	logger.InfoLogger.Infof("Updating status for booking %s to %s", bookingID, status)

	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query, bookingID, status)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// UpdateBookingQR overwrites the QR payload and render URL on a booking.
// Repeated calls are idempotent apart from the embedded timestamp.
func UpdateBookingQR(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, payload, url string) error {
	query := `UPDATE bookings SET qr_code = $2, qr_code_url = $3, updated_at = NOW() WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query, bookingID, payload, url)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update QR code for booking %s: %v", bookingID, err)
		return fmt.Errorf("failed to update booking QR code: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// GetBookingsByUser retrieves a user's bookings with pagination and an
// optional status filter, newest first. Offset pagination can shift under
// concurrent inserts; callers accept that.
func GetBookingsByUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, status string, page, limit int) ([]Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	baseQuery := `SELECT` + bookingColumns + ` FROM bookings WHERE user_id = $1`
	countQuery := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	args := []interface{}{userID}
	if status != "" {
		baseQuery += ` AND status = $2`
		countQuery += ` AND status = $2`
		args = append(args, status)
	}

	var totalCount int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		logger.ErrorLogger.Errorf("Failed to count bookings for user %s: %v", userID, err)
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf("%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", baseQuery, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for user %s: %v", userID, err)
		return nil, 0, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, totalCount, rows.Err()
}

// GetUpcomingBookings returns a user's pending and confirmed bookings with a
// visit date of today or later, soonest first.
func GetUpcomingBookings(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) ([]Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		  AND status = ANY($2)
		  AND visit_date >= CURRENT_DATE
		ORDER BY visit_date ASC`

	statuses := []string{shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed}
	rows, err := db.Query(ctx, query, userID, statuses)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch upcoming bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch upcoming bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
