package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds every backend call.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries the per-call request id.
	RequestIDHeader = "X-Request-ID"

	maxFailureText = 200
)

// DefaultBaseURL is used when nothing is injected at runtime.
// Override at build time with -ldflags "-X github.com/jackzampolin/pokedex/internal/api.DefaultBaseURL=...".
var DefaultBaseURL = "http://localhost:8080"

// Outcome labels for Observer.
const (
	OutcomeOK      = "ok"
	OutcomeNetwork = "network"
	OutcomeServer  = "server"
	OutcomeDecode  = "decode"
)

// Observer is notified after every backend call.
type Observer interface {
	ObserveRequest(method, outcome string, status int, elapsed time.Duration)
}

// Options carries the optional parts of a request.
type Options struct {
	// Params are encoded into the query string (keys sorted).
	Params url.Values
	// Data is JSON-encoded as the request body when non-nil.
	Data any
}

// Client is the single gateway through which all backend calls pass.
// It performs exactly one attempt per call; callers decide about retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout replaces the fixed per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a metrics observer.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) { c.observer = o }
}

// ResolveBaseURL picks the runtime-injected URL when present and falls back
// to DefaultBaseURL.
func ResolveBaseURL(injected string) string {
	injected = strings.TrimSpace(injected)
	if injected == "" {
		injected = DefaultBaseURL
	}
	return strings.TrimSuffix(injected, "/")
}

// NewClient creates a new gateway client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: ResolveBaseURL(baseURL),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the absolute URL for path and params.
func (c *Client) URL(path string, params url.Values) string {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// Get performs a GET request and decodes the JSON response.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Request(ctx, http.MethodGet, path, Options{}, result)
}

// Request issues a single call and decodes a successful body into result.
// Every returned error is a *Failure.
func (c *Client) Request(ctx context.Context, method, path string, opts Options, result any) error {
	start := time.Now()
	requestID := uuid.NewString()

	var bodyReader io.Reader
	if opts.Data != nil {
		bodyBytes, err := json.Marshal(opts.Data)
		if err != nil {
			return ServerFailure(0, fmt.Sprintf("failed to marshal body: %v", err), SeverityError)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	target := c.URL(path, opts.Params)
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return ServerFailure(0, fmt.Sprintf("failed to create request: %v", err), SeverityError)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.finish(method, target, requestID, OutcomeNetwork, 0, start, err)
		return NetworkFailure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.finish(method, target, requestID, OutcomeNetwork, resp.StatusCode, start, err)
		return NetworkFailure(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f := decodeFailure(resp.StatusCode, body)
		c.finish(method, target, requestID, OutcomeServer, resp.StatusCode, start, f)
		return f
	}

	if result != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			c.finish(method, target, requestID, OutcomeDecode, resp.StatusCode, start, err)
			f := ServerFailure(resp.StatusCode, fmt.Sprintf("failed to decode response: %v", err), SeverityError)
			f.cause = err
			return f
		}
	}

	c.finish(method, target, requestID, OutcomeOK, resp.StatusCode, start, nil)
	return nil
}

func (c *Client) finish(method, target, requestID, outcome string, status int, start time.Time, err error) {
	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveRequest(method, outcome, status, elapsed)
	}
	attrs := []any{
		"method", method,
		"url", target,
		"status", status,
		"outcome", outcome,
		"elapsed", elapsed,
		"request_id", requestID,
	}
	if err != nil {
		c.logger.Warn("api request failed", append(attrs, "error", err)...)
		return
	}
	c.logger.Debug("api request", attrs...)
}
