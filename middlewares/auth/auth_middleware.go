package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/utils/api"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// ("user_id" as uuid.UUID, "role" as string) in the Gin context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, "No authorization token")
			c.Abort()
			return
		}

		var tokenString string
		if len(authHeader) > 7 && strings.ToLower(authHeader[:7]) == "bearer " {
			tokenString = authHeader[7:]
		} else {
			api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, "Invalid authorization format")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.WarnLogger.Warnf("Failed to parse JWT token: %v", err)
			api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, "Invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, "Invalid token claims")
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			logger.WarnLogger.Warnf("Token subject is not a UUID: %q", sub)
			api.Fail(c, http.StatusUnauthorized, api.CodeUnauthenticated, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if s, ok := role.(string); !ok || s != "admin" {
			api.Fail(c, http.StatusForbidden, api.CodeForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
