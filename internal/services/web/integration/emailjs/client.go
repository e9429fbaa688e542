// Package emailjs delivers contact messages through the EmailJS REST API.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	platformotel "github.com/sinhaparth5/portfolio/internal/platform/otel"
	"github.com/sinhaparth5/portfolio/internal/platform/timeouts"
)

const (
	defaultBaseURL = "https://api.emailjs.com"
	sendPath       = "/api/v1.0/email/send"
)

// ErrNotConfigured reports that no service, template, or public key is set.
var ErrNotConfigured = errors.New("emailjs is not configured")

// Config holds the EmailJS account identifiers. Fields map to
// PORTFOLIO_EMAILJS_* variables.
type Config struct {
	BaseURL    string `env:"BASE_URL" envDefault:"https://api.emailjs.com"`
	ServiceID  string `env:"SERVICE_ID"`
	TemplateID string `env:"TEMPLATE_ID"`
	PublicKey  string `env:"PUBLIC_KEY"`
	PrivateKey string `env:"PRIVATE_KEY"`
}

// Configured reports whether the identifiers needed to send are present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.ServiceID) != "" &&
		strings.TrimSpace(c.TemplateID) != "" &&
		strings.TrimSpace(c.PublicKey) != ""
}

// Message is one contact submission, mapped to the template parameters.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type sendRequest struct {
	ServiceID      string  `json:"service_id"`
	TemplateID     string  `json:"template_id"`
	UserID         string  `json:"user_id"`
	AccessToken    string  `json:"accessToken,omitempty"`
	TemplateParams Message `json:"template_params"`
}

// Client sends messages. Sends are attempted once; callers surface failures.
type Client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a client. A nil httpClient gets one bounded by
// timeouts.Collaborator.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse emailjs base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.Collaborator}
	}
	return &Client{cfg: cfg, endpoint: baseURL + sendPath, httpClient: httpClient}, nil
}

// Send delivers msg. Any non-2xx answer is an error carrying the status and
// the start of the response body.
func (c *Client) Send(ctx context.Context, msg Message) (err error) {
	if !c.cfg.Configured() {
		return ErrNotConfigured
	}
	ctx, span := platformotel.Tracer("portfolio/emailjs").Start(ctx, "emailjs.Send")
	span.SetAttributes(attribute.String("emailjs.template_id", c.cfg.TemplateID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "send email")
		}
		span.End()
	}()

	payload, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: msg,
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send emailjs request: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send emailjs request: status %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return nil
}
