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

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

// APIClient is the typed HTTP client for the item, cart and auth endpoints.
type APIClient struct {
	BaseURL string
	Token   string

	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-success response decoded from the server envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

// ListItems fetches the catalog with the current filters as query
// parameters; the search box travels as `name`.
func (c *APIClient) ListItems(ctx context.Context, filters Filters) ([]models.Item, error) {
	query := url.Values{}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.MinPrice != "" {
		query.Set("minPrice", filters.MinPrice)
	}
	if filters.MaxPrice != "" {
		query.Set("maxPrice", filters.MaxPrice)
	}
	if filters.Search != "" {
		query.Set("name", filters.Search)
	}

	var items []models.Item
	if err := c.do(ctx, http.MethodGet, "/api/items", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) GetItem(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := c.do(ctx, http.MethodGet, "/api/items/"+id, nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *APIClient) Signup(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/api/auth/signup", username, password)
}

func (c *APIClient) Login(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

func (c *APIClient) authenticate(ctx context.Context, path, username, password string) (string, error) {
	payload := map[string]string{"username": username, "password": password}

	var data struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &data); err != nil {
		return "", err
	}
	c.Token = data.Token
	return data.Token, nil
}

func (c *APIClient) GetCart(ctx context.Context) ([]models.ResolvedCartEntry, error) {
	var cart []models.ResolvedCartEntry
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (c *APIClient) AddToCart(ctx context.Context, itemID string, quantity int) ([]models.ResolvedCartEntry, error) {
	payload := models.AddToCartRequest{ItemID: itemID, Quantity: quantity}

	var cart []models.ResolvedCartEntry
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", nil, payload, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (c *APIClient) RemoveFromCart(ctx context.Context, itemID string) ([]models.ResolvedCartEntry, error) {
	payload := models.RemoveFromCartRequest{ItemID: itemID}

	var cart []models.ResolvedCartEntry
	if err := c.do(ctx, http.MethodPost, "/api/cart/remove", nil, payload, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}
