package profile_models

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

// ErrProfileNotFound is returned when the user has no profile row.
var ErrProfileNotFound = errors.New("profile not found")

// Profile mirrors the auth provider's per-user profile row. This service
// reads profiles for prefill and email delivery; account management lives
// elsewhere.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// GetProfileByUserID fetches the profile for a user id.
func GetProfileByUserID(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) (*Profile, error) {
	query := `SELECT id, full_name, email, phone, created_at FROM profiles WHERE id = $1`

	p := &Profile{}
	err := db.QueryRow(ctx, query, userID).Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch profile %s: %v", userID, err)
		return nil, fmt.Errorf("database error fetching profile: %w", err)
	}
	return p, nil
}
