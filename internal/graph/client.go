// Package graph issues signed HTTP requests against the Meta Graph API and
// returns parsed JSON. It carries no business logic: request shaping and
// error classification belong to the callers.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Graph API host without a version segment.
const DefaultBaseURL = "https://graph.facebook.com"

// APIVersion is the pinned Graph API version every request is issued against.
const APIVersion = "v23.0"

// Params holds request parameters before wire encoding. Object and slice
// values are JSON-stringified; scalars are stringified with fmt.
type Params map[string]any

// Caller is the transport seam between the entity operations and the HTTP
// client, narrow enough to fake in tests.
type Caller interface {
	Get(ctx context.Context, path string, params Params) (map[string]any, error)
	Post(ctx context.Context, path string, params Params) (map[string]any, error)
}

// Error is the Graph API error envelope, plus the HTTP status it arrived
// with. A non-2xx response with no parseable envelope still produces an
// Error carrying the status alone.
type Error struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	Subcode    int    `json:"error_subcode"`
	FBTraceID  string `json:"fbtrace_id"`
	HTTPStatus int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Code != 0 {
		if e.Subcode != 0 {
			return fmt.Sprintf("graph api error (#%d, subcode %d): %s", e.Code, e.Subcode, e.Message)
		}
		return fmt.Sprintf("graph api error (#%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("graph api error (http %d): %s", e.HTTPStatus, e.Message)
}

// Client issues one request per call against a single access token. It is
// immutable after construction and safe for concurrent use.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient builds a Client for the given base URL and token. An empty
// baseURL falls back to DefaultBaseURL; the version segment is appended here
// so callers pass bare resource paths.
func NewClient(baseURL, accessToken string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/") + "/" + APIVersion,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// Get issues a GET with params serialized into the query string.
func (c *Client) Get(ctx context.Context, path string, params Params) (map[string]any, error) {
	values, err := c.encode(params)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/") + "?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

// Post issues a POST with params form-encoded in the body.
func (c *Client) Post(ctx context.Context, path string, params Params) (map[string]any, error) {
	values, err := c.encode(params)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// encode flattens params to wire form. Objects and slices are
// JSON-stringified per the Graph API convention; everything else goes
// through fmt. The bearer token rides along as access_token.
func (c *Client) encode(params Params) (url.Values, error) {
	values := url.Values{}
	for key, v := range params {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			values.Set(key, val)
		case map[string]any, []any, []string, []map[string]any:
			data, err := json.Marshal(val)
			if err != nil {
				return nil, fmt.Errorf("encode parameter %q: %w", key, err)
			}
			values.Set(key, string(data))
		default:
			values.Set(key, fmt.Sprintf("%v", val))
		}
	}
	values.Set("access_token", c.accessToken)
	return values, nil
}

func (c *Client) do(req *http.Request) (map[string]any, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("graph request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &Error{
				Message:    http.StatusText(resp.StatusCode),
				HTTPStatus: resp.StatusCode,
			}
		}
		return nil, fmt.Errorf("malformed response body: %w", err)
	}

	if rawErr, ok := parsed["error"]; ok {
		return nil, decodeError(rawErr, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Message:    http.StatusText(resp.StatusCode),
			HTTPStatus: resp.StatusCode,
		}
	}
	return parsed, nil
}

func decodeError(raw any, status int) *Error {
	gerr := &Error{HTTPStatus: status}
	if data, err := json.Marshal(raw); err == nil {
		_ = json.Unmarshal(data, gerr)
	}
	if gerr.Message == "" {
		gerr.Message = http.StatusText(status)
	}
	return gerr
}
