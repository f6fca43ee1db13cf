package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// TokenSource supplies the opaque bearer token for outbound requests. The
// session layer owns token lifecycle; this client only forwards it.
// A nil TokenSource sends unauthenticated requests.
type TokenSource func(ctx context.Context) (string, error)

// HTTPClient implements Client over plain HTTP/JSON.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	Token   TokenSource
}

// NewHTTPClient returns a client for the backend at baseURL.
func NewHTTPClient(baseURL string, token TokenSource) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Token:   token,
	}
}

// Error is a remote rejection (4xx/5xx). Message carries the
// server-provided message when the body had one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// do sends a JSON request and decodes a JSON response into out (skipped if
// out is nil). Non-2xx statuses become *Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.Token != nil {
		token, err := c.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get access token: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newError extracts the server-provided message when the body carries one,
// otherwise falls back to the status text.
func newError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}

func (c *HTTPClient) CreateDeliveryNote(ctx context.Context, req *DeliveryNoteRequest) (*DeliveryNote, error) {
	var note DeliveryNote
	if err := c.do(ctx, http.MethodPost, "/delivery-notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) ValidateDeliveryNote(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/delivery-notes/%d/validate", id)
	return c.do(ctx, http.MethodPost, path, struct{}{}, nil)
}

func (c *HTTPClient) CalculatePrice(ctx context.Context, productID, clientID int64, quantity decimal.Decimal) (decimal.Decimal, error) {
	req := struct {
		ProductID int64           `json:"productId"`
		ClientID  int64           `json:"clientId"`
		Quantity  decimal.Decimal `json:"quantity"`
	}{productID, clientID, quantity}

	var resp struct {
		PrixUnitaire decimal.Decimal `json:"prixUnitaire"`
	}
	if err := c.do(ctx, http.MethodPost, "/delivery-notes/calculate-price", req, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.PrixUnitaire, nil
}

func (c *HTTPClient) FetchStockPage(ctx context.Context, salespersonID int64, limit, page int) (*StockPage, error) {
	path := fmt.Sprintf("/stock/consultation?salespersonId=%d&limit=%d&page=%d", salespersonID, limit, page)
	var stockPage StockPage
	if err := c.do(ctx, http.MethodGet, path, nil, &stockPage); err != nil {
		return nil, err
	}
	return &stockPage, nil
}

func (c *HTTPClient) FetchClientPage(ctx context.Context, limit, page int) (*ClientPage, error) {
	path := fmt.Sprintf("/clients?limit=%d&page=%d", limit, page)
	var clientPage ClientPage
	if err := c.do(ctx, http.MethodGet, path, nil, &clientPage); err != nil {
		return nil, err
	}
	return &clientPage, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
