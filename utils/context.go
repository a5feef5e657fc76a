package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrUserIDNotFound is returned when no authenticated user is attached to
// the request context.
var ErrUserIDNotFound = errors.New("authentication required: user ID not found")

// GetUserIDFromContext extracts the authenticated user's ID from the Gin
// context, where the auth middleware stores it under "user_id".
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, ErrUserIDNotFound
	}

	switch v := value.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, ErrUserIDNotFound
		}
		return id, nil
	default:
		return uuid.Nil, ErrUserIDNotFound
	}
}

// IsAdmin reports whether the auth middleware marked this request as coming
// from an admin user.
func IsAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	if !exists {
		return false
	}
	s, ok := role.(string)
	return ok && s == "admin"
}
