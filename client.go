package leadscope

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the hard-coded fallback API address. 10.0.2.2 is how
	// the Android emulator reaches the host machine; real deployments set a
	// base URL explicitly.
	DefaultBaseURL = "http://10.0.2.2:4000"

	// EnvBaseURL names the environment variable consulted when no base URL
	// was configured on the client.
	EnvBaseURL = "LEADSCOPE_API_URL"

	defaultTimeout = 30 * time.Second
)

// NetworkError is a failed API call: either a non-2xx response or a
// transport failure. It is surfaced as-is to the caller; the SDK never
// retries automatically.
type NetworkError struct {
	StatusCode int    // 0 on transport failure
	Body       string // response body text, may be empty
	Err        error  // underlying transport error, nil on HTTP errors
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	detail := e.Body
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, detail)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client calls the leadscope read-only HTTP API.
//
// The base URL is resolved on every request with three precedence levels:
// an explicit runtime override (SetBaseURL), the configured value
// (WithBaseURL or EnvBaseURL), and finally DefaultBaseURL.
type Client struct {
	http       *http.Client
	configured string

	mu       sync.RWMutex
	override string
}

// NewClient creates an API client.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(cfg)
	}
	return &Client{
		http:       cfg.httpClient,
		configured: cfg.baseURL,
	}
}

// SetBaseURL installs a runtime override for the API address. An empty
// value clears the override. Safe for concurrent use.
func (c *Client) SetBaseURL(u string) {
	c.mu.Lock()
	c.override = strings.TrimSuffix(u, "/")
	c.mu.Unlock()
}

// BaseURL returns the address the next request would use.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	override := c.override
	c.mu.RUnlock()

	if override != "" {
		return override
	}
	if c.configured != "" {
		return strings.TrimSuffix(c.configured, "/")
	}
	if env := os.Getenv(EnvBaseURL); env != "" {
		return strings.TrimSuffix(env, "/")
	}
	return DefaultBaseURL
}

// Health checks that the API is reachable.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		OK bool `json:"ok"`
	}
	if err := c.getJSON(ctx, "/health", &body); err != nil {
		return err
	}
	if !body.OK {
		return &NetworkError{StatusCode: http.StatusOK, Body: "health check returned ok=false"}
	}
	return nil
}

// Leads fetches the lead feed: at most 500 records, newest capture first.
func (c *Client) Leads(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	if err := c.getJSON(ctx, "/leads", &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// Lead fetches a single lead by store identifier or domain identifier;
// the server accepts either interchangeably.
func (c *Client) Lead(ctx context.Context, id string) (Lead, error) {
	var l Lead
	if err := c.getJSON(ctx, "/leads/"+url.PathEscape(id), &l); err != nil {
		return Lead{}, err
	}
	return l, nil
}

// Companies fetches the company feed: at most 500 records, highest signal
// total first.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := c.getJSON(ctx, "/companies", &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+path, nil)
	if err != nil {
		return &NetworkError{Err: err}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &NetworkError{
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &NetworkError{StatusCode: res.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
