package zendesk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// maxResponseSize caps how much of a response body is read (4MB). Pages are
// capped at 100 records, so anything larger is not a page we asked for.
const maxResponseSize = 4 << 20

// Client is a read-only Zendesk REST API client. It never mutates the
// remote system and never retries: a transport failure aborts the caller's
// whole fetch with a classified FetchError.
type Client struct {
	cfg        Config
	baseURL    string
	authHeader string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL derived from the subdomain.
// Intended for tests against local servers.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Zendesk API client from the configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	credentials := fmt.Sprintf("%s/token:%s", cfg.Email, cfg.APIToken)
	c := &Client{
		cfg:        cfg,
		baseURL:    cfg.APIBaseURL(),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials)),
		httpClient: &http.Client{Timeout: cfg.timeout()},
		logger:     slog.Default().With("component", "zendesk-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TicketURL returns the agent-facing URL for a ticket id.
func (c *Client) TicketURL(ticketID int64) string {
	return c.cfg.AgentTicketURL(ticketID)
}

// get issues one GET request against an API endpoint and decodes the JSON
// response into out. All failures are returned as *FetchError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	requestURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	c.logger.Debug("zendesk request", "endpoint", endpoint, "url", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &FetchError{Kind: ErrConnection, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := ErrConnection
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			kind = ErrTimeout
		} else if errors.Is(err, context.DeadlineExceeded) {
			kind = ErrTimeout
		}
		return &FetchError{Kind: kind, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &FetchError{Kind: ErrConnection, Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{
			Kind:       ErrHTTPStatus,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Kind: ErrMalformedResponse, Endpoint: endpoint, Body: string(body), Err: err}
	}

	return nil
}
