package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blisora/storefront/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const sessionCookieName = "blisora_session"

// Client consumes the remote commerce HTTP JSON API. The guest session id is
// forwarded on every call as both the session cookie and the X-Session-Id
// header, so either channel satisfies the backend.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: timeout,
	}
}

type cartItemPayload struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Variant   *domain.Variant `json:"variant,omitempty"`
}

type cartMutationRequest struct {
	Item cartItemPayload `json:"item"`
}

type shippingQuoteRequest struct {
	Subtotal float64 `json:"subtotal"`
}

type shippingQuoteResponse struct {
	ShippingCost float64 `json:"shippingCost"`
}

// CardDetails is the outbound payment descriptor. It carries the cardholder
// name and the last four digits only; the full card number and CVC exist for
// local validation and must never reach the wire.
type CardDetails struct {
	Name  string `json:"name"`
	Last4 string `json:"last4"`
}

type PaymentRequest struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	CardDetails   CardDetails          `json:"cardDetails"`
}

func (c *Client) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", sessionID, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	req := cartMutationRequest{Item: cartItemPayload{ProductID: productID, Quantity: quantity}}
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPost, "/cart/add", sessionID, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem sets the quantity of a cart line. Quantity 0 removes the line.
func (c *Client) UpdateItem(ctx context.Context, sessionID, productID string, quantity int, variant *domain.Variant) (*domain.Cart, error) {
	req := cartMutationRequest{Item: cartItemPayload{ProductID: productID, Quantity: quantity, Variant: variant}}
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPut, "/cart/update", sessionID, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the cart after a successful checkout. Whether the backend
// clears the cart itself on checkout is an unconfirmed contract, so the
// storefront clears explicitly.
func (c *Client) ClearCart(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/cart", sessionID, nil, nil)
}

func (c *Client) ShippingQuote(ctx context.Context, sessionID string, subtotal float64) (float64, error) {
	var resp shippingQuoteResponse
	if err := c.do(ctx, http.MethodPost, "/shipping/quote", sessionID, shippingQuoteRequest{Subtotal: subtotal}, &resp); err != nil {
		return 0, err
	}
	return resp.ShippingCost, nil
}

func (c *Client) SubmitCheckout(ctx context.Context, sessionID string, payload domain.CheckoutPayload) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders/checkout", sessionID, payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CompletePayment(ctx context.Context, sessionID, orderID string, payment PaymentRequest) (*domain.Order, error) {
	var order domain.Order
	path := "/orders/" + url.PathEscape(orderID) + "/pay"
	if err := c.do(ctx, http.MethodPost, path, sessionID, payment, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderByRef looks up a guest order by its human-facing reference. Email and
// phone are optional and serve as a secondary ownership check for orders with
// no account.
func (c *Client) OrderByRef(ctx context.Context, sessionID, orderRef, email, phone string) (*domain.Order, error) {
	params := url.Values{}
	params.Set("orderRef", orderRef)
	if email != "" {
		params.Set("email", email)
	}
	if phone != "" {
		params.Set("phone", phone)
	}

	var order domain.Order
	err := c.do(ctx, http.MethodGet, "/orders?"+params.Encode(), sessionID, nil, &order)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (c *Client) Products(ctx context.Context, query, gender string) ([]domain.Product, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if gender != "" {
		params.Set("gender", gender)
	}
	path := "/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, path, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path, sessionID string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
		req.Header.Set("X-Session-Id", sessionID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

// decodeError extracts the human message from a structured error body,
// preferring "error" over "message" over a generic fallback.
func decodeError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.Error
	if message == "" {
		message = body.Message
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}
