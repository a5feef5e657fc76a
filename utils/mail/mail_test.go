package mail

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestTemplates(t *testing.T) {
	t.Helper()
	require.NoError(t, InitTemplates(os.DirFS("../..")))
}

func TestRenderConfirmation(t *testing.T) {
	initTestTemplates(t)

	html, err := RenderConfirmation(ConfirmationData{
		CustomerName:  "Asha Patil",
		BookingNumber: "BAP-20260915-K4X2TQ",
		PassName:      "Family Day Pass",
		VisitDate:     "Tuesday, 15 September 2026",
		NumAdults:     2,
		NumChildren:   1,
		TotalAmount:   3000,
		QRCodeURL:     "https://api.qrserver.com/v1/create-qr-code/?data=x",
		AppURL:        "https://bhimsonsagropark.com",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Asha Patil")
	assert.Contains(t, html, "BAP-20260915-K4X2TQ")
	assert.Contains(t, html, "Family Day Pass")
	assert.Contains(t, html, "Tuesday, 15 September 2026")
	assert.Contains(t, html, "3000")
	assert.Contains(t, html, "https://api.qrserver.com/v1/create-qr-code/?data=x")
	assert.Contains(t, html, "https://bhimsonsagropark.com/dashboard.html")
}

func TestRenderConfirmationWithoutQRCode(t *testing.T) {
	initTestTemplates(t)

	html, err := RenderConfirmation(ConfirmationData{
		CustomerName:  "Guest",
		BookingNumber: "BAP-20260915-AAAAAA",
		PassName:      "Adult Day Pass",
		VisitDate:     "Tuesday, 15 September 2026",
		NumAdults:     1,
		TotalAmount:   640,
		AppURL:        "https://bhimsonsagropark.com",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<img", "no QR image when the code is missing")
	assert.Contains(t, html, "Guest")
}
