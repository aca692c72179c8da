package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://api.resend.com"
	defaultFrom    = "orders@voltride.shop"
)

type OrderConfirmation struct {
	To          string
	Name        string
	OrderNumber string
	Currency    string
	Total       decimal.Decimal
}

type Service interface {
	SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error
}

type resendService struct {
	apiKey    string
	fromEmail string
	baseURL   string
	client    *http.Client
}

type ResendConfig struct {
	APIKey    string
	FromEmail string
	// BaseURL overrides the Resend endpoint, mostly for tests.
	BaseURL string
}

func NewResendService(cfg ResendConfig) (Service, error) {
	apiKey := strings.Trim(cfg.APIKey, "\"")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not configured")
	}

	from := strings.TrimSpace(strings.Trim(cfg.FromEmail, "\""))
	if from == "" {
		from = defaultFrom
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}

	return &resendService{
		apiKey:    apiKey,
		fromEmail: from,
		baseURL:   base,
		client:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

func NewNoopService() Service {
	return &noopService{}
}

func (s *resendService) SendOrderConfirmation(ctx context.Context, msg OrderConfirmation) error {
	name := msg.Name
	if name == "" {
		name = "rider"
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your order <strong>%s</strong>.</p><p>Total charged: %s %s</p><p>We will email you again once it ships.</p>",
		html.EscapeString(name),
		html.EscapeString(msg.OrderNumber),
		msg.Total.StringFixed(2),
		html.EscapeString(msg.Currency),
	)
	return s.send(ctx, msg.To, "Your order "+msg.OrderNumber, body)
}

func (s *resendService) send(ctx context.Context, to, subject, htmlBody string) error {
	payload := map[string]any{
		"from":    s.fromEmail,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > 500 {
			msg = msg[:500]
		}
		if msg == "" {
			return fmt.Errorf("resend API returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("resend API returned status %d: %s", resp.StatusCode, msg)
	}

	return nil
}

type noopService struct{}

func (s *noopService) SendOrderConfirmation(_ context.Context, _ OrderConfirmation) error {
	return nil
}
