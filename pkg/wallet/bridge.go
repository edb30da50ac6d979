package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPCapability talks to a local WebLN-compatible wallet bridge over HTTP.
// An empty bridge URL in the configuration means no wallet is injected, the
// same way a browser page detects the absence of window.webln.
type HTTPCapability struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCapability creates a capability backed by a wallet bridge. Returns
// nil when baseURL is empty, which the Adapter treats as capability absent.
func NewHTTPCapability(baseURL string, timeout time.Duration) *HTTPCapability {
	if baseURL == "" {
		return nil
	}
	return &HTTPCapability{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Enable asks the bridge for wallet access
func (c *HTTPCapability) Enable(ctx context.Context) error {
	return c.post(ctx, "/enable", nil, nil)
}

// MakeInvoice creates an invoice via the bridge
func (c *HTTPCapability) MakeInvoice(ctx context.Context, amountMsat int64) (string, error) {
	var resp struct {
		PaymentRequest string `json:"paymentRequest"`
	}
	body := map[string]int64{"amount": amountMsat}
	if err := c.post(ctx, "/invoice", body, &resp); err != nil {
		return "", err
	}
	return resp.PaymentRequest, nil
}

// SendPayment pays an invoice via the bridge
func (c *HTTPCapability) SendPayment(ctx context.Context, invoice string) (string, error) {
	var resp struct {
		Preimage string `json:"preimage"`
	}
	body := map[string]string{"invoice": invoice}
	if err := c.post(ctx, "/pay", body, &resp); err != nil {
		return "", err
	}
	return resp.Preimage, nil
}

func (c *HTTPCapability) post(ctx context.Context, path string, body, out interface{}) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("invalid bridge URL: %w", err)
	}

	payload := []byte("{}")
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("wallet bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			return fmt.Errorf("wallet bridge returned status %d: %s", resp.StatusCode, data)
		}
		return fmt.Errorf("wallet bridge returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode bridge response: %w", err)
		}
	}
	return nil
}
