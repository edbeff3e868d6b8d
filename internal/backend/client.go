package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"churro-kiosk/internal/model"

	"github.com/rs/zerolog"
)

// Client talks to the remote store backend over its fixed HTTP contract:
// bearer-authenticated product listing and order creation. It owns no
// state; every call carries the session it should authenticate with.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "backend").Logger(),
	}
}

// CreateOrder submits the draft. With print set, the backend is asked to
// print receipts as part of the same request; body and auth are identical.
// The draft's idempotency key travels as a header so the backend can
// deduplicate retries after an ambiguous failure.
func (c *Client) CreateOrder(ctx context.Context, sess model.Session, draft *model.OrderDraft, print bool) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	url := c.baseURL + "/api/orders"
	if print {
		url += "?print=true"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Prefer", "return=minimal")
	if draft.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", draft.IdempotencyKey)
	}

	c.logger.Info().
		Str("user_id", draft.UserID).
		Int("total", draft.Total).
		Int("points_used", draft.PointsUsed).
		Str("payment_method", string(draft.PaymentMethod)).
		Bool("print", print).
		Msg("submitting order")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Info().Int("status", resp.StatusCode).Msg("order accepted")
		return nil
	}

	serverErr := &ServerError{Status: resp.StatusCode}
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
		serverErr.Message = errBody.Message
	}

	c.logger.Warn().
		Int("status", resp.StatusCode).
		Str("message", serverErr.Message).
		Msg("order rejected by backend")

	return serverErr
}

// FetchProducts retrieves the product catalog.
func (c *Client) FetchProducts(ctx context.Context, sess model.Session) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build products request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &ServerError{Status: resp.StatusCode}
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("malformed product list: %w", err)}
	}

	c.logger.Debug().Int("product_count", len(products)).Msg("catalog fetched")

	return products, nil
}
