package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lfreelance/Bhimsons/clients"
	"github.com/lfreelance/Bhimsons/logger"
	"github.com/lfreelance/Bhimsons/models/booking_models"
)

const confirmationTemplate = "templates/email/booking_confirmation.html"

var emailTemplates *template.Template

// ErrNoCustomerEmail is returned when the booking's owner has no email on
// file.
var ErrNoCustomerEmail = errors.New("customer email not found")

// InitTemplates parses the embedded email templates. Call once at startup
// before any email is rendered.
func InitTemplates(fsys fs.FS) error {
	t, err := template.ParseFS(fsys, confirmationTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}
	emailTemplates = t
	return nil
}

// ConfirmationData feeds the booking confirmation template.
type ConfirmationData struct {
	CustomerName  string
	BookingNumber string
	PassName      string
	VisitDate     string
	NumAdults     int
	NumChildren   int
	TotalAmount   float64
	QRCodeURL     string
	AppURL        string
}

// RenderConfirmation renders the confirmation email body for the given data.
func RenderConfirmation(data ConfirmationData) (string, error) {
	if emailTemplates == nil {
		return "", fmt.Errorf("email templates not initialized")
	}
	var body bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&body, "booking_confirmation.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// Service loads booking details and sends confirmation email through the
// Resend API.
type Service struct {
	DB     *pgxpool.Pool
	Resend *clients.ResendClient
	AppURL string
}

// NewService creates a mail Service.
func NewService(db *pgxpool.Pool, resend *clients.ResendClient, appURL string) (*Service, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	if resend == nil {
		return nil, errors.New("resend client cannot be nil")
	}
	return &Service{DB: db, Resend: resend, AppURL: appURL}, nil
}

// SendBookingConfirmation renders and sends the confirmation email for a
// booking and returns the provider's message id. Failure here is terminal
// for the caller; the payment-verification flow dispatches through the
// retrying Dispatcher instead of calling this directly.
func (s *Service) SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) (string, error) {
	detail, err := booking_models.GetBookingDetail(ctx, s.DB, bookingID)
	if err != nil {
		return "", err
	}
	if detail.CustomerEmail == "" {
		return "", ErrNoCustomerEmail
	}

	data := ConfirmationData{
		CustomerName:  detail.CustomerName,
		BookingNumber: detail.BookingNumber,
		PassName:      detail.PassName,
		VisitDate:     detail.VisitDate.Format("Monday, 2 January 2006"),
		NumAdults:     detail.NumAdults,
		NumChildren:   detail.NumChildren,
		TotalAmount:   detail.TotalAmount,
		AppURL:        s.AppURL,
	}
	if detail.CustomerName == "" {
		data.CustomerName = "Guest"
	}
	if detail.QRCodeURL != nil {
		data.QRCodeURL = *detail.QRCodeURL
	}

	html, err := RenderConfirmation(data)
	if err != nil {
		return "", err
	}

	subject := fmt.Sprintf("Booking Confirmed - %s | Bhimson's Agro Park", detail.BookingNumber)
	emailID, err := s.Resend.SendEmail(ctx, detail.CustomerEmail, subject, html)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to send confirmation email for booking %s: %v", bookingID, err)
		return "", err
	}

	logger.InfoLogger.Infof("Confirmation email %s sent for booking %s (%s)", emailID, bookingID, detail.BookingNumber)
	return emailID, nil
}
