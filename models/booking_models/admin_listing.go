package booking_models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
)

// ListFilters narrows the admin booking listing. Zero values mean "no
// filter". Search matches booking number, customer name and customer email
// as case-insensitive substrings.
type ListFilters struct {
	Status        string
	PaymentStatus string
	PassID        uuid.UUID
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
	Limit         int
	Offset        int
}

// AdminBookingRow is a listing row with customer, pass and latest payment
// context attached.
type AdminBookingRow struct {
	Booking
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	PassName      string  `json:"pass_name"`
	PaymentStatus *string `json:"payment_status"`
}

// ListBookings is the admin listing: equality/range/substring filters with
// offset/limit pagination plus a total count. Most-recent payment wins when
// a booking has several payment rows.
func ListBookings(ctx context.Context, db *pgxpool.Pool, f ListFilters) ([]AdminBookingRow, int, error) {
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var conds []string
	var args []interface{}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("b.status = $%d", f.Status)
	}
	if f.PassID != uuid.Nil {
		add("b.pass_id = $%d", f.PassID)
	}
	if f.DateFrom != nil {
		add("b.visit_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("b.visit_date <= $%d", *f.DateTo)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		args = append(args, pattern)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(b.booking_number ILIKE $%d OR p.full_name ILIKE $%d OR p.email ILIKE $%d)", n, n, n))
	}
	if f.PaymentStatus != "" {
		add("pay.status = $%d", f.PaymentStatus)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	from := `
		FROM bookings b
		JOIN profiles p ON b.user_id = p.id
		JOIN passes ps ON b.pass_id = ps.id
		LEFT JOIN LATERAL (
			SELECT status FROM payments
			WHERE booking_id = b.id
			ORDER BY created_at DESC
			LIMIT 1
		) pay ON true` + where

	var totalCount int
	if err := db.QueryRow(ctx, "SELECT COUNT(*)"+from, args...).Scan(&totalCount); err != nil {
		logger.ErrorLogger.Errorf("Failed to count admin booking listing: %v", err)
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT b.id, b.user_id, b.pass_id, b.booking_number, b.visit_date,
			b.num_adults, b.num_children,
			b.base_amount, b.tax_amount, b.total_amount,
			b.special_requests, b.dietary_preferences,
			b.status, b.cancelled_at, b.cancellation_reason,
			b.qr_code, b.qr_code_url, b.created_at, b.updated_at,
			p.full_name, p.email, ps.name, pay.status
		%s
		ORDER BY b.created_at DESC
		LIMIT $%d OFFSET $%d`, from, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch admin booking listing: %v", err)
		return nil, 0, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	var result []AdminBookingRow
	for rows.Next() {
		var r AdminBookingRow
		err := rows.Scan(
			&r.ID, &r.UserID, &r.PassID, &r.BookingNumber, &r.VisitDate,
			&r.NumAdults, &r.NumChildren,
			&r.BaseAmount, &r.TaxAmount, &r.TotalAmount,
			&r.SpecialRequests, &r.DietaryPreferences,
			&r.Status, &r.CancelledAt, &r.CancellationReason,
			&r.QRCode, &r.QRCodeURL, &r.CreatedAt, &r.UpdatedAt,
			&r.CustomerName, &r.CustomerEmail, &r.PassName, &r.PaymentStatus,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking row: %w", err)
		}
		result = append(result, r)
	}
	return result, totalCount, rows.Err()
}

// DashboardStats summarises the booking book for the admin overview.
type DashboardStats struct {
	TotalBookings     int     `json:"total_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	BookingsToday     int     `json:"bookings_today"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// GetDashboardStats computes booking counts by status and the revenue from
// successful payments.
func GetDashboardStats(ctx context.Context, db *pgxpool.Pool) (*DashboardStats, error) {
	stats := &DashboardStats{}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'confirmed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE created_at::date = CURRENT_DATE)
		FROM bookings`

	err := db.QueryRow(ctx, query).Scan(
		&stats.TotalBookings, &stats.PendingBookings, &stats.ConfirmedBookings,
		&stats.CancelledBookings, &stats.CompletedBookings, &stats.BookingsToday,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to compute booking stats: %v", err)
		return nil, fmt.Errorf("failed to compute booking stats: %w", err)
	}

	revenueQuery := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'successful'`
	if err := db.QueryRow(ctx, revenueQuery).Scan(&stats.TotalRevenue); err != nil {
		logger.ErrorLogger.Errorf("Failed to compute revenue: %v", err)
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	return stats, nil
}
