package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/deskindex/core"
	"github.com/poiesic/deskindex/storage"
)

const (
	// DefaultTable is the passage table name.
	DefaultTable = "zendesk_tickets"

	// DefaultTimeout bounds each upsert request.
	DefaultTimeout = 30 * time.Second

	// maxErrorBodySize caps how much of an error response is kept (64KB).
	maxErrorBodySize = 64 << 10
)

// Config holds connection settings for a Supabase PostgREST endpoint.
type Config struct {
	// URL is the project base URL, e.g. "https://xyzcompany.supabase.co".
	URL string

	// ServiceKey is the service-role API key. Sent as both the apikey
	// header and a bearer token, as PostgREST expects.
	ServiceKey string

	// Table overrides DefaultTable when non-empty. The table must carry a
	// uniqueness constraint on (url, chunk_number); upserts rely on it.
	Table string

	// Timeout overrides DefaultTimeout when > 0.
	Timeout time.Duration
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("supabase config: URL is required")
	}
	if c.ServiceKey == "" {
		return errors.New("supabase config: ServiceKey is required")
	}
	return nil
}

// passageRow is the wire shape of one row in the passage table.
type passageRow struct {
	URL         string               `json:"url"`
	ChunkNumber int                  `json:"chunk_number"`
	Title       string               `json:"title"`
	Summary     string               `json:"summary"`
	Content     string               `json:"content"`
	Metadata    core.PassageMetadata `json:"metadata"`
	Embedding   []float32            `json:"embedding"`
}

// postgrestError is the in-band error object PostgREST returns in a
// response body. Its presence signals failure regardless of how the
// transport classified the response.
type postgrestError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Client writes passages into a Supabase table through PostgREST.
type Client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ storage.PassageRepository = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
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

// NewClient creates a passage repository backed by Supabase.
//
// Returns storage.PassageRepository interface to enforce abstraction.
func NewClient(cfg Config, opts ...Option) (storage.PassageRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		cfg:        cfg,
		endpoint:   strings.TrimSuffix(cfg.URL, "/") + "/rest/v1/" + table,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "supabase-writer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UpsertPassage writes one passage row. The request asks PostgREST to
// resolve the (url, chunk_number) uniqueness conflict by merging, so a row
// written twice keeps the latest content instead of duplicating.
func (c *Client) UpsertPassage(ctx context.Context, passage *core.Passage) error {
	if err := core.ValidatePassage(passage); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUpsertFailed, err)
	}

	row := passageRow{
		URL:         passage.URL,
		ChunkNumber: passage.ChunkNumber,
		Title:       passage.Title,
		Summary:     passage.Summary,
		Content:     passage.Content,
		Metadata:    passage.Metadata,
		Embedding:   passage.Embedding,
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: encoding row: %w", storage.ErrUpsertFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?on_conflict=url,chunk_number", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUpsertFailed, err)
	}
	req.Header.Set("apikey", c.cfg.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.ServiceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	c.logger.Debug("upserting passage", "url", passage.URL, "chunk", passage.ChunkNumber)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUpsertFailed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", storage.ErrUpsertFailed, resp.StatusCode, storeMessage(body))
	}

	// PostgREST can report failure in-band with a success status. Any body
	// that decodes to an error object is a failure.
	if inband := decodeError(body); inband != nil {
		return fmt.Errorf("%w: %s", storage.ErrUpsertFailed, inband.Message)
	}

	return nil
}

// Close is a no-op; the client holds no persistent connection state.
func (c *Client) Close() error {
	return nil
}

// decodeError returns the in-band PostgREST error carried by body, or nil.
func decodeError(body []byte) *postgrestError {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var pgErr postgrestError
	if err := json.Unmarshal(body, &pgErr); err != nil || pgErr.Message == "" {
		return nil
	}
	return &pgErr
}

// storeMessage extracts a readable message from an error response body.
func storeMessage(body []byte) string {
	if pgErr := decodeError(body); pgErr != nil {
		return pgErr.Message
	}
	return string(bytes.TrimSpace(body))
}
