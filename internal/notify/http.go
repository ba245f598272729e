package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPNotifier delivers email and SMS through a messaging gateway sidecar.
type HTTPNotifier struct {
	url  string
	from string
}

// NewHTTPNotifier creates an HTTPNotifier for the gateway base URL.
func NewHTTPNotifier(url, from string) *HTTPNotifier {
	return &HTTPNotifier{url: url, from: from}
}

// SendEmail posts an email delivery request to the gateway.
func (c *HTTPNotifier) SendEmail(ctx context.Context, recipient, subject, body string) error {
	return c.post(ctx, "/email", map[string]string{
		"from":    c.from,
		"to":      recipient,
		"subject": subject,
		"body":    body,
	})
}

// SendSMS posts an SMS delivery request to the gateway.
func (c *HTTPNotifier) SendSMS(ctx context.Context, recipient, body string) error {
	return c.post(ctx, "/sms", map[string]string{
		"to":   recipient,
		"body": body,
	})
}

func (c *HTTPNotifier) post(ctx context.Context, path string, payload map[string]string) error {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url+path, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("gateway rejected delivery: status code %d", resp.StatusCode)
	}

	return nil
}
