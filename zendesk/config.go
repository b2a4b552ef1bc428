package zendesk

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultPageSize is the page size used for all paginated endpoints.
	DefaultPageSize = 100

	// DefaultTimeout bounds every request so an unresponsive API cannot
	// block a run indefinitely.
	DefaultTimeout = 30 * time.Second
)

// Config holds the credentials and tuning for a Zendesk API client.
type Config struct {
	// Subdomain is the account's subdomain: https://<subdomain>.zendesk.com
	Subdomain string

	// Email is the agent account the API token belongs to.
	Email string

	// APIToken is the account API token. Requests authenticate with
	// Basic credentials built from "<email>/token:<api token>".
	APIToken string

	// PageSize overrides DefaultPageSize when > 0.
	PageSize int

	// Timeout overrides DefaultTimeout when > 0.
	Timeout time.Duration
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.Subdomain == "" {
		return errors.New("zendesk config: Subdomain is required")
	}
	if c.Email == "" {
		return errors.New("zendesk config: Email is required")
	}
	if c.APIToken == "" {
		return errors.New("zendesk config: APIToken is required")
	}
	return nil
}

// APIBaseURL returns the REST API root for the configured subdomain.
func (c *Config) APIBaseURL() string {
	return fmt.Sprintf("https://%s.zendesk.com/api/v2", c.Subdomain)
}

// AgentTicketURL returns the agent-facing URL for a ticket. It is the
// deterministic source URL recorded on every passage derived from the ticket.
func (c *Config) AgentTicketURL(ticketID int64) string {
	return fmt.Sprintf("https://%s.zendesk.com/agent/tickets/%d", c.Subdomain, ticketID)
}

func (c *Config) pageSize() int {
	if c.PageSize > 0 {
		return c.PageSize
	}
	return DefaultPageSize
}

func (c *Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
