package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxErrorBody = 8 << 10

// Client talks to one canonical base URL. There is no fallback
// endpoint and no retry: every operation is attempted exactly once per
// user trigger.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Register(ctx context.Context, reg Registration) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/users/register", "", reg, &s)
	return s, err
}

func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/users/login", "", creds, &s)
	return s, err
}

// Profile fetches the user record from the single canonical endpoint.
func (c *Client) Profile(ctx context.Context, token, userID string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), token, nil, &u)
	return u, err
}

// PlaceOrder submits the cart snapshot. The caller clears its cart only
// after this returns without error.
func (c *Client) PlaceOrder(ctx context.Context, token, userID string, items []OrderItem, total decimal.Decimal) (Order, error) {
	var o Order
	req := placeOrderReq{Items: items, TotalAmount: total}
	err := c.do(ctx, http.MethodPost, "/orders/place/"+url.PathEscape(userID), token, req, &o)
	return o, err
}

// UserOrders lists the user's orders, newest layout decided by the
// backend. A 404 means no orders yet and yields an empty list.
func (c *Client) UserOrders(ctx context.Context, token, userID string) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, http.MethodGet, "/orders/user/"+url.PathEscape(userID), token, nil, &orders)
	if errors.Is(err, ErrNotFound) {
		return []Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return ErrUnavailable
		}
		return ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Without a token in play there is no session to expire; login
		// and register surface the backend's own message.
		if token == "" {
			return decodeAPIError(resp)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	default:
		return decodeAPIError(resp)
	}
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}
	return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("request failed: status=%d", resp.StatusCode)}
}
