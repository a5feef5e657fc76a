package pass_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/logger"
)

// ErrPassNotFound is returned when the requested pass does not exist.
var ErrPassNotFound = errors.New("pass not found")

// Pass is a purchasable admission-ticket product. Catalog rows are read-only
// from the booking flow's perspective; only the admin surface mutates them.
type Pass struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `json:"duration"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const passColumns = `id, name, description, price, duration, is_active, sort_order, created_at, updated_at`

func scanPass(row pgx.Row) (*Pass, error) {
	p := &Pass{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Duration,
		&p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPassByID fetches a single pass.
func GetPassByID(ctx context.Context, db *pgxpool.Pool, passID uuid.UUID) (*Pass, error) {
	query := `SELECT ` + passColumns + ` FROM passes WHERE id = $1`

	pass, err := scanPass(db.QueryRow(ctx, query, passID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Pass with ID %s not found", passID)
			return nil, ErrPassNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch pass %s: %v", passID, err)
		return nil, fmt.Errorf("database error fetching pass: %w", err)
	}
	return pass, nil
}

// GetActivePasses lists the purchasable catalog in display order.
func GetActivePasses(ctx context.Context, db *pgxpool.Pool) ([]Pass, error) {
	query := `SELECT ` + passColumns + ` FROM passes WHERE is_active = true ORDER BY sort_order ASC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch active passes: %v", err)
		return nil, fmt.Errorf("failed to fetch passes: %w", err)
	}
	defer rows.Close()

	var passes []Pass
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass row: %w", err)
		}
		passes = append(passes, *p)
	}
	return passes, rows.Err()
}

// GetAllPasses lists the full catalog including inactive passes (admin view).
func GetAllPasses(ctx context.Context, db *pgxpool.Pool) ([]Pass, error) {
	query := `SELECT ` + passColumns + ` FROM passes ORDER BY sort_order ASC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch passes: %v", err)
		return nil, fmt.Errorf("failed to fetch passes: %w", err)
	}
	defer rows.Close()

	var passes []Pass
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass row: %w", err)
		}
		passes = append(passes, *p)
	}
	return passes, rows.Err()
}

// PassUpdate carries the mutable fields of a pass; nil fields are untouched.
type PassUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *string  `json:"duration"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   *int     `json:"sort_order"`
}

// UpdatePass applies a partial update and returns the fresh row.
func UpdatePass(ctx context.Context, db *pgxpool.Pool, passID uuid.UUID, upd PassUpdate) (*Pass, error) {
	query := `
		UPDATE passes SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			duration = COALESCE($5, duration),
			is_active = COALESCE($6, is_active),
			sort_order = COALESCE($7, sort_order),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + passColumns

	pass, err := scanPass(db.QueryRow(ctx, query, passID,
		upd.Name, upd.Description, upd.Price, upd.Duration, upd.IsActive, upd.SortOrder))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPassNotFound
		}
		logger.ErrorLogger.Errorf("Failed to update pass %s: %v", passID, err)
		return nil, fmt.Errorf("failed to update pass: %w", err)
	}

	logger.InfoLogger.Infof("Pass %s updated", passID)
	return pass, nil
}
