package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendClient sends transactional email through the Resend HTTP API.
type ResendClient struct {
	APIKey     string
	FromName   string
	FromEmail  string
	BaseURL    string
	HTTPClient *http.Client
}

// resendEmailRequest is the /emails request body.
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewResendClient creates and returns a new instance of ResendClient.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		APIKey:     apiKey,
		FromName:   fromName,
		FromEmail:  fromEmail,
		BaseURL:    defaultResendBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SendEmail posts an HTML email and returns the provider's message id.
func (r *ResendClient) SendEmail(ctx context.Context, to, subject, html string) (string, error) {
	payload := resendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", r.FromName, r.FromEmail),
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email request: %w", err)
	}

	url := fmt.Sprintf("%s/emails", r.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.APIKey)

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode email response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("email send failed: %d - %v", resp.StatusCode, result)
	}

	id, _ := result["id"].(string)
	if id == "" {
		return "", fmt.Errorf("email response missing message id")
	}
	return id, nil
}
