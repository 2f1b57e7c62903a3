package inventory

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
)

// DefaultTimeout matches the desktop client's request timeout.
const DefaultTimeout = 30 * time.Second

// Item is an inventory record as the server returns it.
type Item struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// APIError is returned for any response carrying an {"error": ...} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory API %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the inventory HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the client. A nil httpClient gets DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("inventory base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse inventory base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

func (c *Client) GetItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/get-items", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, name string) (*Item, error) {
	var item Item
	path := "/get-item?" + url.Values{"name": {name}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) AddItem(ctx context.Context, name string, quantity int64) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/add-item", Item{Name: name, Quantity: quantity}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveItem(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/remove-item", map[string]string{"name": name}, nil)
}

func (c *Client) UpdateQuantity(ctx context.Context, name string, quantity int64) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPut, "/update-quantity", Item{Name: name, Quantity: quantity}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("inventory client not configured")
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call inventory API: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response (%s): %w", method, path, resp.Status, err)
	}
	if env.Error != nil || resp.StatusCode >= http.StatusBadRequest {
		message := resp.Status
		if env.Error != nil {
			message = *env.Error
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}
