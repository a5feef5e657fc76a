package clients

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/razorpay/razorpay-go"
)

// RazorpayClientWrapper provides an interface for Razorpay operations.
// This interface allows for easier testing by mocking Razorpay interactions.
type RazorpayClientWrapper interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
}

// RazorpayClient implements RazorpayClientWrapper using the actual Razorpay SDK.
type RazorpayClient struct {
	Client *razorpay.Client
	KeyID  string
}

// NewRazorpayClient creates and returns a new instance of RazorpayClient.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		Client: razorpay.NewClient(keyID, keySecret),
		KeyID:  keyID,
	}
}

// CreateOrder creates a new order in Razorpay. The data map carries amount
// (paise), currency, receipt and notes. The nil second argument is for
// optional headers, not needed for basic order creation.
func (r *RazorpayClient) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return r.Client.Order.Create(data, nil)
}

// VerifyPaymentSignature checks a Razorpay checkout signature: the hex HMAC
// SHA-256 of "orderID|paymentID" under the key secret. The comparison is
// constant time.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
