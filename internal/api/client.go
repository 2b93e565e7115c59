// Package api is the client for the SpinFilter analysis backend. It issues
// one request per call (the user re-triggers manually on failure) and
// normalizes every response into typed results or typed errors at the
// boundary, so partially-shaped server payloads never reach the UI layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "http://127.0.0.1:5000"
	defaultTimeout = 120 * time.Second
)

// unreachableMessage is shown whenever the backend cannot be reached or
// returns something that isn't a status envelope.
const unreachableMessage = "Could not reach the server. Is the backend running?"

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client handles communication with the SpinFilter backend
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// ClientOption allows configuring the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if hc, ok := c.httpClient.(*http.Client); ok && d > 0 {
			hc.Timeout = d
		}
	}
}

// NewClient creates a new backend client
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ServiceError is a failure reported by the backend itself: a response
// decoded fine but carried a non-ok status. Its message is shown verbatim.
type ServiceError struct {
	Status  string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("analysis failed (status %q)", e.Status)
}

// TransportError is a network failure or an undecodable response. The
// user-facing message is always the generic unreachable text.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return unreachableMessage }
func (e *TransportError) Unwrap() error { return e.Err }

// do sends the request and decodes the status envelope. Exactly one
// attempt: no retries, per the submission contract.
func (c *Client) do(req *http.Request) (envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, &TransportError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Status == "" {
		if err == nil {
			err = fmt.Errorf("response missing status field")
		}
		return envelope{}, &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if !env.ok() {
		return envelope{}, &ServiceError{Status: env.Status, Message: env.Message}
	}

	return env, nil
}

func (c *Client) newJSONRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
