package booking_log_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
)

// BookingLog is an append-only audit row. Every booking status transition is
// paired with exactly one log row describing it.
type BookingLog struct {
	ID        uuid.UUID  `json:"id"`
	BookingID uuid.UUID  `json:"booking_id"`
	Action    string     `json:"action"`
	OldStatus *string    `json:"old_status"`
	NewStatus *string    `json:"new_status"`
	Notes     *string    `json:"notes"`
	Actor     *uuid.UUID `json:"actor"`
	CreatedAt time.Time  `json:"created_at"`
}

// Insert appends an audit row.
func Insert(ctx context.Context, db *pgxpool.Pool, entry *BookingLog) error {
	if entry.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID: %w", err)
		}
		entry.ID = id
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO booking_logs (id, booking_id, action, old_status, new_status, notes, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := db.Exec(ctx, query,
		entry.ID, entry.BookingID, entry.Action,
		entry.OldStatus, entry.NewStatus, entry.Notes, entry.Actor, entry.CreatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking log for booking %s: %v", entry.BookingID, err)
		return fmt.Errorf("failed to insert booking log: %w", err)
	}
	return nil
}

// Record builds and appends an audit row for a status transition. Empty
// old/new/notes fields are stored as NULL.
func Record(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, action, oldStatus, newStatus, notes string, actor *uuid.UUID) error {
	entry := &BookingLog{
		BookingID: bookingID,
		Action:    action,
		OldStatus: nullable(oldStatus),
		NewStatus: nullable(newStatus),
		Notes:     nullable(notes),
		Actor:     actor,
	}
	return Insert(ctx, db, entry)
}

// ListByBooking returns the audit trail for a booking, oldest first.
func ListByBooking(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) ([]BookingLog, error) {
	query := `
		SELECT id, booking_id, action, old_status, new_status, notes, actor, created_at
		FROM booking_logs
		WHERE booking_id = $1
		ORDER BY created_at ASC`

	rows, err := db.Query(ctx, query, bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch booking logs for %s: %v", bookingID, err)
		return nil, fmt.Errorf("failed to fetch booking logs: %w", err)
	}
	defer rows.Close()

	var entries []BookingLog
	for rows.Next() {
		var e BookingLog
		if err := rows.Scan(&e.ID, &e.BookingID, &e.Action, &e.OldStatus, &e.NewStatus, &e.Notes, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking log row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
