package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/4the-win/go-party-weekend/internal/types"
)

var _ Mailer = (*EmailJSMailer)(nil)

// EmailJSMailer delivers submissions through the EmailJS REST API.
type EmailJSMailer struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewEmailJSMailer(endpoint, serviceID, templateID, publicKey string, logger *slog.Logger) *EmailJSMailer {
	return &EmailJSMailer{
		endpoint:   endpoint,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJSMailer) SendContactEmail(ctx context.Context, req types.ContactRequest) error {
	if m.serviceID == "" || m.templateID == "" || m.publicKey == "" {
		return fmt.Errorf("email service is not configured")
	}

	payload, err := json.Marshal(emailJSPayload{
		ServiceID:  m.serviceID,
		TemplateID: m.templateID,
		UserID:     m.publicKey,
		TemplateParams: map[string]string{
			"from_name":  req.Name,
			"from_email": req.Email,
			"subject":    req.Subject,
			"message":    req.Message,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}
	return nil
}
