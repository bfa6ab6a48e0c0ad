package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/groblegark/onboard/internal/model"
)

// HTTPClient implements OnboardClient using the onboard HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:3000"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Client CRUD ---

func (c *HTTPClient) ListClients(ctx context.Context) ([]*model.Client, error) {
	var clients []*model.Client
	if err := c.doJSON(ctx, http.MethodGet, "/api/clients", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *HTTPClient) CreateClient(ctx context.Context, name string) (*model.Client, error) {
	body := map[string]string{"name": name}
	var client model.Client
	if err := c.doJSON(ctx, http.MethodPost, "/api/clients", body, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *HTTPClient) RenameClient(ctx context.Context, id, name string) (*model.Client, error) {
	body := map[string]string{"name": name}
	var client model.Client
	if err := c.doJSON(ctx, http.MethodPut, "/api/clients/"+url.PathEscape(id), body, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *HTTPClient) DeleteClient(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/clients/"+url.PathEscape(id), nil, nil)
}

// --- Checklist state ---

func (c *HTTPClient) GetState(ctx context.Context, id string) (model.State, error) {
	var state json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/clients/"+url.PathEscape(id)+"/state", nil, &state); err != nil {
		return nil, err
	}
	return model.State(state), nil
}

func (c *HTTPClient) PutState(ctx context.Context, id string, state model.State) error {
	return c.doJSON(ctx, http.MethodPut, "/api/clients/"+url.PathEscape(id)+"/state", json.RawMessage(state), nil)
}

// --- Admin ---

func (c *HTTPClient) ResetAll(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/admin/reset-all", nil, nil)
}

// Export downloads the NDJSON snapshot produced by the server.
func (c *HTTPClient) Export(ctx context.Context) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/api/admin/export")
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (bool, error) {
	var resp struct {
		OK bool `json:"ok"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/healthz", nil, &resp); err != nil {
		return false, err
	}
	return resp.OK, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// doRaw performs a request and returns the raw response body.
func (c *HTTPClient) doRaw(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func apiError(status int, body []byte) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &APIError{StatusCode: status, Message: errResp.Error}
	}
	return &APIError{StatusCode: status, Message: string(body)}
}
