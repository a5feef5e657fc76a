package clients

import (
	"fmt"
	"net/url"
)

const defaultQRServerBaseURL = "https://api.qrserver.com/v1/create-qr-code/"

// QRServerClient builds render URLs for the QR Server image API. The image is
// rendered by the third party when the URL is fetched; nothing is downloaded
// here.
type QRServerClient struct {
	BaseURL string
	Size    string
}

// NewQRServerClient creates and returns a new instance of QRServerClient.
func NewQRServerClient() *QRServerClient {
	return &QRServerClient{
		BaseURL: defaultQRServerBaseURL,
		Size:    "300x300",
	}
}

// RenderURL returns the image URL encoding the given payload.
func (q *QRServerClient) RenderURL(payload string) string {
	return fmt.Sprintf("%s?size=%s&data=%s&bgcolor=ffffff&color=000000&margin=10",
		q.BaseURL, q.Size, url.QueryEscape(payload))
}
