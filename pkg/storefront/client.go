package storefront

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
	"time"

	"go.uber.org/zap"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 15 * time.Second

	// GenericError is shown when the backend gives no usable message.
	GenericError = "Something went wrong. Please try again."
)

// APIError is a non-2xx reply decoded from the backend envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

// UserMessage prefers the backend's message and falls back to GenericError.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var uerr userError
	if errors.As(err, &uerr) {
		return string(uerr)
	}
	return GenericError
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored then.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks JSON to the storefront API. It is safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	logger         *zap.Logger
	token          func() string
	onUnauthorized func()
}

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("storefront: base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("storefront: invalid base URL: %w", err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: base,
		http:    hc,
		logger:  logger.Named("storefront.client"),
		token:   func() string { return "" },
	}, nil
}

// bind is called by Session so requests carry the current bearer token and
// a 401 ends the session.
func (c *Client) bind(token func() string, onUnauthorized func()) {
	c.token = token
	c.onUnauthorized = onUnauthorized
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if key, ok := ctx.Value(idempotencyKey{}).(string); ok && key != "" {
		req.Header.Set("Idempotency-Key", key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		c.logger.Debug("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code),
		)
		return apiErr
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

type idempotencyKey struct{}

// WithIdempotencyKey makes the next request carry an Idempotency-Key header.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKey{}, key)
}

// ==================== AUTH ====================

type loginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

func (c *Client) login(ctx context.Context, email, password string) (loginResponse, error) {
	var res loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, email, name, password string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}, &u)
	return u, err
}

func (c *Client) logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

// ==================== CATALOG ====================

func (c *Client) ListProducts(ctx context.Context, currency string, page, limit int) ([]Product, error) {
	q := url.Values{}
	if currency != "" {
		q.Set("currency", currency)
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []Product
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ==================== CART ====================

func (c *Client) cart(ctx context.Context, method, path string, body any) (*Cart, error) {
	var out Cart
	if err := c.do(ctx, method, "/carts"+path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type mergeRequest struct {
	Items []guestLine `json:"items"`
}

func (c *Client) mergeCart(ctx context.Context, items []guestLine) (*Cart, error) {
	return c.cart(ctx, http.MethodPost, "/merge", mergeRequest{Items: items})
}

// ==================== ORDERS ====================

type checkoutRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethodID string          `json:"paymentMethodId"`
}

func (c *Client) CreateOrder(ctx context.Context, addr ShippingAddress, paymentMethodID string) (PlacedOrder, error) {
	var out PlacedOrder
	err := c.do(ctx, http.MethodPost, "/orders", checkoutRequest{ShippingAddress: addr, PaymentMethodID: paymentMethodID}, &out)
	return out, err
}

func (c *Client) ListOrders(ctx context.Context, status string, page, limit int) ([]Order, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	path := "/orders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []Order
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, id string) (Order, error) {
	var out Order
	err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CancelOrder(ctx context.Context, id string) (Order, error) {
	var out Order
	err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/cancel", nil, &out)
	return out, err
}

type addressRequest struct {
	ShippingAddress
	Label string `json:"label,omitempty"`
}

func (c *Client) SaveAddress(ctx context.Context, addr ShippingAddress) error {
	return c.do(ctx, http.MethodPost, "/addresses", addressRequest{ShippingAddress: addr}, nil)
}
