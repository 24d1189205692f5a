// Package client is the Go counterpart of the browser front end: a typed
// API client, a persisted session, and the optimistic price-list editor.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/fakturan-app/pricelist-api/internal/http/handlers"
	"github.com/fakturan-app/pricelist-api/internal/models"
)

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status  int
	Message string
	Errors  []handlers.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the price-list API, carrying the bearer token once one
// has been obtained.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs a bearer token, e.g. one restored from a saved session.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(method, path string, body any, out any) error {
	var reqBody *bytes.Buffer = &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Success bool                  `json:"success"`
		Message string                `json:"message"`
		Data    json.RawMessage       `json:"data"`
		Errors  []handlers.FieldError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(email, password string) (handlers.AuthData, error) {
	var data handlers.AuthData
	err := c.do(http.MethodPost, "/api/auth/login",
		handlers.CredentialsRequest{Email: email, Password: password}, &data)
	if err != nil {
		return handlers.AuthData{}, err
	}
	c.SetToken(data.Token)
	return data, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(email, password string) (handlers.AuthData, error) {
	var data handlers.AuthData
	err := c.do(http.MethodPost, "/api/auth/register",
		handlers.CredentialsRequest{Email: email, Password: password}, &data)
	if err != nil {
		return handlers.AuthData{}, err
	}
	c.SetToken(data.Token)
	return data, nil
}

// Verify checks the stored token and returns the account it names.
func (c *Client) Verify() (handlers.AuthUser, error) {
	var data struct {
		User handlers.AuthUser `json:"user"`
	}
	if err := c.do(http.MethodGet, "/api/auth/verify", nil, &data); err != nil {
		return handlers.AuthUser{}, err
	}
	return data.User, nil
}

// Logout tells the server goodbye and discards the local token. The server
// keeps no session state, so dropping the token is what ends the session.
func (c *Client) Logout() error {
	err := c.do(http.MethodPost, "/api/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// Products fetches one page of the caller's price list.
func (c *Client) Products(search string, page, limit int) (handlers.ProductListData, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var data handlers.ProductListData
	err := c.do(http.MethodGet, path, nil, &data)
	return data, err
}

// Product fetches a single row.
func (c *Client) Product(id int) (models.Product, error) {
	var data struct {
		Product models.Product `json:"product"`
	}
	err := c.do(http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &data)
	return data.Product, err
}

// CreateProduct adds a row to the caller's price list.
func (c *Client) CreateProduct(req handlers.CreateProductRequest) (models.Product, error) {
	var data struct {
		Product models.Product `json:"product"`
	}
	err := c.do(http.MethodPost, "/api/products", req, &data)
	return data.Product, err
}

// FieldPatch is a sparse product update: only the keys present are sent,
// and a nil value clears a nullable column.
type FieldPatch map[string]any

// UpdateProduct patches a row.
func (c *Client) UpdateProduct(id int, patch FieldPatch) (models.Product, error) {
	var data struct {
		Product models.Product `json:"product"`
	}
	err := c.do(http.MethodPut, fmt.Sprintf("/api/products/%d", id), patch, &data)
	return data.Product, err
}

// DeleteProduct removes a row.
func (c *Client) DeleteProduct(id int) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
}

// Translations fetches one page's UI strings grouped per language.
func (c *Client) Translations(page string) (map[string]map[string]string, error) {
	var data struct {
		Translations map[string]map[string]string `json:"translations"`
	}
	err := c.do(http.MethodGet, "/api/translations/"+page, nil, &data)
	return data.Translations, err
}
