// Copyright (c) 2026 PalText. All rights reserved.

package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/paltextai/backend/internal/platform/metrics"
)

// Mailer is the outbound mailing-list boundary. Implementations must be
// best-effort safe: the join flow treats every error as non-fatal.
type Mailer interface {

	// CreateContact registers the address on the marketing list and returns
	// the provider's contact ID.
	CreateContact(ctx context.Context, email, source string) (string, error)

	// SendWelcomeEmail sends the transactional welcome message.
	SendWelcomeEmail(ctx context.Context, email string) error
}

// BrevoConfig carries the settings for the hosted mailing-list provider.
type BrevoConfig struct {
	APIKey      string
	ListID      int
	SenderEmail string
	SenderName  string
}

// brevoClient implements [Mailer] against the Brevo v3 REST API.
type brevoClient struct {
	config     BrevoConfig
	httpClient *http.Client
	baseURL    string
}

// NewBrevoClient constructs a [Mailer] backed by Brevo.
func NewBrevoClient(config BrevoConfig) Mailer {
	return &brevoClient{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.brevo.com/v3",
	}
}

func (client *brevoClient) CreateContact(ctx context.Context, email, source string) (string, error) {
	payload := map[string]any{
		"email":         email,
		"listIds":       []int{client.config.ListID},
		"updateEnabled": true,
		"attributes": map[string]string{
			"SOURCE": source,
		},
	}

	body, err := client.post(ctx, "/contacts", payload, "create_contact")
	if err != nil {
		return "", err
	}

	var response struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("waitlist: decode brevo contact response: %w", err)
	}

	// Brevo returns an empty body when updateEnabled matched an existing
	// contact; the zero ID is kept as-is.
	return strconv.FormatInt(response.ID, 10), nil
}

func (client *brevoClient) SendWelcomeEmail(ctx context.Context, email string) error {
	payload := map[string]any{
		"sender": map[string]string{
			"email": client.config.SenderEmail,
			"name":  client.config.SenderName,
		},
		"to": []map[string]string{
			{"email": email},
		},
		"subject": "Welcome to the PalText waitlist",
		"htmlContent": "<p>Thanks for joining the PalText waitlist. " +
			"We'll let you know the moment early access opens.</p>",
	}

	_, err := client.post(ctx, "/smtp/email", payload, "send_welcome_email")
	return err
}

// post performs an authenticated JSON POST and records the call metric.
func (client *brevoClient) post(ctx context.Context, path string, payload interface{}, operation string) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("waitlist: encode brevo payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("waitlist: build brevo request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("api-key", client.config.APIKey)

	response, err := client.httpClient.Do(request)
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("brevo", operation, "error").Inc()
		return nil, fmt.Errorf("waitlist: brevo request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		metrics.ExternalCallsTotal.WithLabelValues("brevo", operation, "error").Inc()
		return nil, fmt.Errorf("waitlist: read brevo response: %w", err)
	}

	if response.StatusCode >= 400 {
		metrics.ExternalCallsTotal.WithLabelValues("brevo", operation, "error").Inc()
		return nil, fmt.Errorf("waitlist: brevo returned status %d: %s", response.StatusCode, body)
	}

	metrics.ExternalCallsTotal.WithLabelValues("brevo", operation, "success").Inc()
	return body, nil
}
