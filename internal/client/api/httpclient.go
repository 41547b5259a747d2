package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/nexsys-labs/billing/internal/client/models"
	"github.com/nexsys-labs/billing/internal/common"
)

// ClientConfig configures the HTTP billing client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // default: 10 seconds
}

// HTTPClient implements Client over the server's JSON API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPClient creates a billing API client.
func NewHTTPClient(config ClientConfig) *HTTPClient {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    config.BaseURL,
	}
}

// Ping probes the server's health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %s", common.ErrServerUnavailable, resp.Status)
	}
	return nil
}

// CreateInvoice submits a draft; the server assigns the invoice number.
func (c *HTTPClient) CreateInvoice(ctx context.Context, draft *models.Draft) (*ServerInvoice, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var inv ServerInvoice
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &inv, nil
}

// ListInvoices fetches all server records, newest number first.
func (c *HTTPClient) ListInvoices(ctx context.Context) ([]*ServerInvoice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/invoices", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var invs []*ServerInvoice
	if err := json.NewDecoder(resp.Body).Decode(&invs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return invs, nil
}

// GetInvoice fetches one record by its confirmed number.
func (c *HTTPClient) GetInvoice(ctx context.Context, number int64) (*ServerInvoice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/invoices/%d", c.baseURL, number), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrorNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var inv ServerInvoice
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &inv, nil
}

// parseError extracts the server's {"error": msg} body.
func (c *HTTPClient) parseError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return fmt.Errorf("server returned %s: %s", resp.Status, body.Error)
}

// classifyTransportError maps connection and timeout failures to
// common.ErrServerUnavailable so the submit path can queue offline.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", common.ErrServerUnavailable, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", common.ErrServerUnavailable, err)
	}
	return err
}
