// Package remote provides a RecordStore backed by the museum backend's
// admin REST API.
package remote

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
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/curio-cli/internal/core/domain"
	"github.com/custodia-labs/curio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/curio-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RecordStore = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultAPIBaseURL
	DefaultRateLimit = domain.DefaultRateLimit
	DefaultBurst     = domain.DefaultRateBurst

	// adminPrefix is prepended to every API path.
	adminPrefix = "/admin"

	// maxErrorBody bounds how much of a failed response is kept.
	maxErrorBody = 4096
)

// Headers sent with every request.
const (
	headerNgrokSkip = "ngrok-skip-browser-warning"
	headerRequestID = "X-Request-ID"
)

// Config holds configuration for the remote record store.
type Config struct {
	// BaseURL is the backend root without the /admin suffix
	// (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds a single non-bulk request. Zero or negative means no
	// local timeout. Bulk operations are never bounded locally.
	Timeout time.Duration

	// RateLimit is the sustained request rate per second (default: 2).
	// A negative value disables throttling.
	RateLimit float64

	// Burst is the number of requests allowed above the sustained rate (default: 4).
	Burst int

	// HTTPClient overrides the transport. It should not set its own Timeout,
	// since that would also apply to bulk operations.
	HTTPClient *http.Client
}

// Client talks to the backend over HTTP.
type Client struct {
	client  *http.Client
	limiter *RateLimiter
	timeout time.Duration

	mu      sync.RWMutex
	baseURL string
}

// New creates a new remote record store.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var limiter *RateLimiter
	if cfg.RateLimit > 0 {
		limiter = NewRateLimiter(cfg.RateLimit, cfg.Burst)
	}

	return &Client{
		client:  httpClient,
		limiter: limiter,
		timeout: max(cfg.Timeout, 0),
		baseURL: normaliseBaseURL(cfg.BaseURL),
	}
}

// BaseURL returns the current backend root.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL points the client at a different backend.
// Requests already in flight are unaffected.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = normaliseBaseURL(baseURL)
	logger.Info("API base URL set to %s", c.baseURL)
}

func normaliseBaseURL(u string) string {
	u = strings.TrimRight(u, "/")
	return strings.TrimSuffix(u, adminPrefix)
}

// endpoint builds an admin URL from escaped path segments.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	var b strings.Builder
	b.WriteString(c.BaseURL())
	b.WriteString(adminPrefix)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}
	return b.String()
}

// request is a single API call.
type request struct {
	method      string
	url         string
	body        io.Reader
	contentType string

	// unbounded requests ignore the client timeout and end only when the
	// transport reports an outcome.
	unbounded bool
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(method, u string, payload any) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("marshal request: %w", err)
	}
	return request{
		method:      method,
		url:         u,
		body:        bytes.NewReader(data),
		contentType: "application/json",
	}, nil
}

// do sends a request and decodes a JSON response into out (when non-nil).
// Non-2xx responses and network failures become *domain.TransportError.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &domain.TransportError{Method: r.method, URL: r.url, Err: err}
		}
	}

	if c.timeout > 0 && !r.unbounded {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := r.body
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set(headerNgrokSkip, "true")
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("%s %s [%s] failed: %v", r.method, r.url, requestID, err)
		return &domain.TransportError{Method: r.method, URL: r.url, Err: err}
	}
	defer resp.Body.Close()
	logger.Debug("%s %s [%s] -> %d (%s)", r.method, r.url, requestID, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests && c.limiter != nil {
			c.limiter.RecordRateLimitError(retryAfter(resp.Header.Get("Retry-After")))
		}
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			data = []byte("failed to read response")
		}
		return &domain.TransportError{
			Method:     r.method,
			URL:        r.url,
			StatusCode: resp.StatusCode,
			Body:       errorText(data),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// 204 or an empty 200 leaves out at its zero value.
			return nil
		}
		return &domain.TransportError{
			Method:     r.method,
			URL:        r.url,
			StatusCode: resp.StatusCode,
			Body:       fmt.Sprintf("invalid response body: %v", err),
			Err:        err,
		}
	}
	return nil
}

// errorText extracts FastAPI's {"detail": ...} message when present.
func errorText(data []byte) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
	}
	return strings.TrimSpace(string(data))
}
