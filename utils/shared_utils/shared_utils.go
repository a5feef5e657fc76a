package shared_utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const charset = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateTinyID returns a short, URL-safe random identifier.
func GenerateTinyID(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	if length > 1000 {
		return "", fmt.Errorf("length too large")
	}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = charset[num.Int64()]
	}
	return string(result), nil
}
