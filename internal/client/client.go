// Package client is the consumer side of the transaction API: a thin HTTP
// client plus an Adapter that keeps a local projection of the collection in
// step with the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"creditdesk/internal/models"

	"github.com/shopspring/decimal"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*envelope, error) {
	endpointURL := fmt.Sprintf("%s%s", c.BaseURL, endpoint)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpointURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+c.Token)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	var res envelope
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{Code: resp.StatusCode, Message: res.Message}
	}

	return &res, nil
}

// ListAll fetches every transaction across all owners. Admin only.
func (c *Client) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return c.listEndpoint(ctx, "/transaction/")
}

// ListUser fetches one owner's transactions.
func (c *Client) ListUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return c.listEndpoint(ctx, "/transaction/"+url.PathEscape(userID))
}

func (c *Client) listEndpoint(ctx context.Context, endpoint string) ([]models.Transaction, error) {
	res, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	if err := json.Unmarshal(res.Data, &txs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txs, nil
}

// Create submits a new transaction request and returns the persisted record.
func (c *Client) Create(ctx context.Context, userID string, amount decimal.Decimal, description string) (models.Transaction, error) {
	form := map[string]interface{}{
		"user":        userID,
		"amount":      amount,
		"description": description,
	}

	res, err := c.doRequest(ctx, http.MethodPost, "/transaction/create", form)
	if err != nil {
		return models.Transaction{}, err
	}

	var tx models.Transaction
	if err := json.Unmarshal(res.Data, &tx); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to decode transaction: %w", err)
	}
	return tx, nil
}

// Approve moves a pending transaction to approved. Admin only.
func (c *Client) Approve(ctx context.Context, id string) (models.Transaction, error) {
	return c.decideEndpoint(ctx, "/transaction/approve/"+url.PathEscape(id))
}

// Reject moves a pending transaction to rejected. Admin only.
func (c *Client) Reject(ctx context.Context, id string) (models.Transaction, error) {
	return c.decideEndpoint(ctx, "/transaction/reject/"+url.PathEscape(id))
}

func (c *Client) decideEndpoint(ctx context.Context, endpoint string) (models.Transaction, error) {
	res, err := c.doRequest(ctx, http.MethodPatch, endpoint, nil)
	if err != nil {
		return models.Transaction{}, err
	}

	var tx models.Transaction
	if err := json.Unmarshal(res.Data, &tx); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to decode transaction: %w", err)
	}
	return tx, nil
}

// Credit fetches a user's available credit.
func (c *Client) Credit(ctx context.Context, userID string) (decimal.Decimal, error) {
	res, err := c.doRequest(ctx, http.MethodGet, "/auth/credit/"+url.PathEscape(userID), nil)
	if err != nil {
		return decimal.Zero, err
	}

	var raw string
	if err := json.Unmarshal(res.Data, &raw); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode credit balance: %w", err)
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse credit balance: %w", err)
	}
	return balance, nil
}
