package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/groblegark/gatewarden/internal/model"
)

// HTTPClient implements GateClient using the gatewarden HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
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

func gatePath(key model.Key) string {
	return fmt.Sprintf("/v1/gates/%d/%d", key.GroupID, key.MemberID)
}

// --- Inbound events ---

func (c *HTTPClient) ReportJoin(ctx context.Context, key model.Key) (*model.GateRecord, error) {
	body := map[string]int64{"group_id": key.GroupID, "member_id": key.MemberID}
	var rec model.GateRecord
	if err := c.doJSON(ctx, http.MethodPost, "/v1/events/join", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) ReportMessage(ctx context.Context, key model.Key, text string) error {
	body := map[string]any{"group_id": key.GroupID, "member_id": key.MemberID, "text": text}
	return c.doJSON(ctx, http.MethodPost, "/v1/events/message", body, nil)
}

// --- Gates ---

func (c *HTTPClient) ListGates(ctx context.Context) ([]*model.GateRecord, error) {
	var recs []*model.GateRecord
	if err := c.doJSON(ctx, http.MethodGet, "/v1/gates", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *HTTPClient) GetGate(ctx context.Context, key model.Key) (*model.GateRecord, error) {
	var rec model.GateRecord
	if err := c.doJSON(ctx, http.MethodGet, gatePath(key), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) ResolveGate(ctx context.Context, key model.Key, approve bool) error {
	body := map[string]bool{"approve": approve}
	return c.doJSON(ctx, http.MethodPost, gatePath(key)+"/resolve", body, nil)
}

func (c *HTTPClient) KickGate(ctx context.Context, key model.Key) error {
	return c.doJSON(ctx, http.MethodDelete, gatePath(key), nil, nil)
}

func (c *HTTPClient) GetGateEvents(ctx context.Context, key model.Key) ([]*model.GateEvent, error) {
	var evs []*model.GateEvent
	if err := c.doJSON(ctx, http.MethodGet, gatePath(key)+"/events", nil, &evs); err != nil {
		return nil, err
	}
	return evs, nil
}

// --- Questions ---

func (c *HTTPClient) ReloadQuestions(ctx context.Context) (int, error) {
	var resp struct {
		Questions int `json:"questions"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/questions/reload", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Questions, nil
}

// --- Health and stats ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- internal helpers ---

// APIError is an error returned by the gatewarden server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
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

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result == nil {
		return nil
	}
	return json.Unmarshal(respBody, result)
}
