package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rink-booking/pkg/utils"

	"go.uber.org/zap"
)

// Client abstracts the external payment provider
type Client interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
}

// Session is a hosted checkout session created at the provider
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type SessionParams struct {
	AmountMinor   int64 // provider minor currency unit (cents)
	Currency      string
	Description   string
	BookingID     string
	OrderID       string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type httpClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
	log       *zap.Logger
}

func NewClient(config utils.PaymentConfig, log *zap.Logger) Client {
	return &httpClient{
		baseURL:   strings.TrimRight(config.APIBaseURL, "/"),
		secretKey: config.SecretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
		log:       log.With(zap.String("client", "payment")),
	}
}

// CreateSession opens a hosted checkout session. Booking id rides in the
// session metadata so the webhook can map the confirmation back.
func (c *httpClient) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountMinor, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.Description)
	form.Set("metadata[booking_id]", params.BookingID)
	form.Set("metadata[order_id]", params.OrderID)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}

	endpoint := c.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("Failed to reach payment provider",
			zap.Error(err),
			zap.String("booking_id", params.BookingID),
		)
		return nil, fmt.Errorf("call payment provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("Payment provider rejected session",
			zap.Int("status", resp.StatusCode),
			zap.String("booking_id", params.BookingID),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	if session.URL == "" {
		return nil, fmt.Errorf("payment provider returned session without redirect URL")
	}

	return &session, nil
}
