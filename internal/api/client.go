// Package api is the HTTP client for the feedback collection endpoint.
package api

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

	"github.com/innobee/feedback/internal/feedback"
	"github.com/innobee/feedback/internal/logging"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent identifies the client to the endpoint.
	DefaultUserAgent = "feedback-cli"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// MsgNetworkError is shown when the endpoint could not be reached at all.
const MsgNetworkError = "Network error: could not reach the feedback service."

// ErrHealthCheck is returned by Health when the endpoint answers but is not healthy.
var ErrHealthCheck = errors.New("feedback service is not healthy")

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client posts feedback payloads. It implements feedback.Submitter.
type Client struct {
	base      *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

var _ feedback.Submitter = (*Client)(nil)

// NewClient creates a client for the API rooted at baseURL,
// e.g. "http://localhost:5050/api".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", baseURL)
	}

	c := &Client{
		base:      u,
		http:      http.DefaultClient,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// FeedbackURL is where payloads are posted.
func (c *Client) FeedbackURL() string {
	return c.base.JoinPath("feedback").String()
}

// HealthURL is the service health probe, at the root of the host.
func (c *Client) HealthURL() string {
	return c.base.ResolveReference(&url.URL{Path: "/health"}).String()
}

// errorBody is the error shape the endpoint answers with.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// acceptedBody is the success shape the endpoint answers with.
type acceptedBody struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Submit posts p to the feedback endpoint. Any 2xx response yields a
// Receipt; everything else yields a *feedback.SubmitError.
func (c *Client) Submit(ctx context.Context, p feedback.Payload) (*feedback.Receipt, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feedback: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.FeedbackURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logging.Debug("API: POST %s", req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		logging.Error("API: POST %s failed: %v", req.URL, err)
		return nil, &feedback.SubmitError{Message: MsgNetworkError, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &feedback.SubmitError{Status: resp.StatusCode, Message: MsgNetworkError, Err: err}
	}
	logging.Debug("API: POST %s -> %d", req.URL, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, data)
	}

	receipt := &feedback.Receipt{Status: resp.StatusCode}
	var ack acceptedBody
	if len(data) > 0 && json.Unmarshal(data, &ack) == nil {
		receipt.ID = ack.ID
		receipt.Message = ack.Message
	}
	return receipt, nil
}

// statusError prefers the server's "error" field and falls back to a
// generic status message.
func statusError(status int, data []byte) *feedback.SubmitError {
	se := &feedback.SubmitError{
		Status:  status,
		Message: fmt.Sprintf("Request failed with status code %d", status),
	}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
		se.Message = eb.Error
		se.Field = eb.Field
	}
	return se
}

// Health checks that the endpoint is up.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.HealthURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrHealthCheck, resp.StatusCode)
	}
	return nil
}
