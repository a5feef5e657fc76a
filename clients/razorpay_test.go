package clients

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_secret_key"
	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"

	sig := signPayment(orderID, paymentID, secret)
	assert.True(t, VerifyPaymentSignature(orderID, paymentID, sig, secret))
}

func TestVerifyPaymentSignatureRejectsTampering(t *testing.T) {
	secret := "test_secret_key"
	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"

	sig := signPayment(orderID, paymentID, secret)

	// Flip one hex digit.
	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, string(tampered), secret))

	assert.False(t, VerifyPaymentSignature(orderID, "pay_OTHER", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_OTHER", paymentID, sig, secret))
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, sig, "wrong_secret"))
	assert.False(t, VerifyPaymentSignature(orderID, paymentID, "", secret))
}
