// Package client implements the exchange gateway API: rate quotes, opening
// send/receive orders, and order status lookups.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ln-swap/pkg/types"
)

var (
	// ErrQuoteUnavailable is returned when the rate endpoint errors or
	// returns no data. A failed quote blocks submission; there is no retry.
	ErrQuoteUnavailable = errors.New("could not fetch exchange rates")

	// ErrStatusUnavailable is returned when an order status lookup fails.
	// Transient: the polling loop tolerates it and retries on the next tick.
	ErrStatusUnavailable = errors.New("order status unavailable")
)

// OrderRejectedError is returned when the gateway refuses to open an order.
// Local bounds checks are a courtesy; the gateway's verdict is authoritative.
type OrderRejectedError struct {
	Reason string
}

func (e *OrderRejectedError) Error() string {
	return fmt.Sprintf("order rejected: %s", e.Reason)
}

// Client talks to the exchange gateway
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a gateway client. A nil logger disables logging.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// jsonAmount marshals a decimal amount as a bare JSON number, matching what
// the gateway expects.
type jsonAmount struct {
	decimal.Decimal
}

func (a jsonAmount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// envelope is the gateway's uniform response shape
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// GetRate fetches the current quote for converting fromAsset into toAsset
func (c *Client) GetRate(ctx context.Context, fromAsset, toAsset string) (types.Quote, error) {
	query := url.Values{"from": {fromAsset}, "to": {toAsset}}

	var data struct {
		From struct {
			Min  decimal.Decimal `json:"min"`
			Max  decimal.Decimal `json:"max"`
			Rate decimal.Decimal `json:"rate"`
		} `json:"from"`
	}
	if err := c.get(ctx, "/rate", query, &data); err != nil {
		return types.Quote{}, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}

	quote := types.Quote{
		FromAsset: fromAsset,
		ToAsset:   toAsset,
		Rate:      data.From.Rate,
		Min:       data.From.Min,
		Max:       data.From.Max,
	}
	if err := quote.Validate(); err != nil {
		return types.Quote{}, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}

	c.log.Debug("fetched quote",
		zap.String("from", fromAsset),
		zap.String("to", toAsset),
		zap.String("rate", quote.Rate.String()))

	return quote, nil
}

// OpenReceiveRequest opens an altcoin -> Lightning order. Address is the
// Lightning payment request the gateway will pay out to.
type OpenReceiveRequest struct {
	From    string
	Amount  decimal.Decimal
	Address string
}

// OpenReceiveOrder submits a receive order to the gateway
func (c *Client) OpenReceiveOrder(ctx context.Context, req OpenReceiveRequest) (types.Order, error) {
	body := struct {
		From    string     `json:"from"`
		Amount  jsonAmount `json:"amount"`
		Address string     `json:"address"`
	}{req.From, jsonAmount{req.Amount}, req.Address}

	var data struct {
		ID               string          `json:"id"`
		Token            string          `json:"token"`
		Amount           decimal.Decimal `json:"amount"`
		RecipientAddress string          `json:"recipientAddress"`
		Invoice          string          `json:"invoice"`
	}
	if err := c.post(ctx, "/receive", body, &data); err != nil {
		return types.Order{}, err
	}

	return types.Order{
		ID:               data.ID,
		Token:            data.Token,
		Direction:        types.DirectionReceive,
		Status:           types.StatusNew,
		Amount:           data.Amount,
		RecipientAddress: data.RecipientAddress,
		Invoice:          data.Invoice,
	}, nil
}

// OpenSendRequest opens a Lightning -> altcoin order. Address is the altcoin
// destination typed or scanned by the user.
type OpenSendRequest struct {
	To      string
	Amount  decimal.Decimal
	Address string
}

// OpenSendOrder submits a send order. The returned order carries the
// gateway's own invoice for the user's wallet to pay.
func (c *Client) OpenSendOrder(ctx context.Context, req OpenSendRequest) (types.Order, error) {
	body := struct {
		To      string     `json:"to"`
		Amount  jsonAmount `json:"amount"`
		Address string     `json:"address"`
	}{req.To, jsonAmount{req.Amount}, req.Address}

	var data struct {
		ID      string `json:"id"`
		Token   string `json:"token"`
		Invoice string `json:"invoice"`
	}
	if err := c.post(ctx, "/send", body, &data); err != nil {
		return types.Order{}, err
	}

	return types.Order{
		ID:        data.ID,
		Token:     data.Token,
		Direction: types.DirectionSend,
		Status:    types.StatusNew,
		Invoice:   data.Invoice,
	}, nil
}

// GetOrderStatus fetches the current status of an order. The token is the
// capability secret returned when the order was opened.
func (c *Client) GetOrderStatus(ctx context.Context, id, token string) (types.OrderStatus, error) {
	query := url.Values{"id": {id}, "token": {token}}

	var data struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/status", query, &data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStatusUnavailable, err)
	}

	status, err := types.ParseOrderStatus(data.Status)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStatusUnavailable, err)
	}
	return status, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, out)
}

// do executes a request and decodes the gateway envelope. An error field in
// the envelope becomes an OrderRejectedError so callers can surface the
// gateway's own message verbatim.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, data)
		}
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if env.Error != "" {
		c.log.Debug("gateway reported error",
			zap.String("path", req.URL.Path),
			zap.String("error", env.Error))
		return &OrderRejectedError{Reason: env.Error}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if env.Data == nil {
		return fmt.Errorf("empty gateway response")
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}
	return nil
}
