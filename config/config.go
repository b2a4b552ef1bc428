package config

import (
	"os"
	"strings"
)

// Environment variable names for all required configuration.
const (
	EnvZendeskSubdomain = "ZENDESK_SUBDOMAIN"
	EnvZendeskEmail     = "ZENDESK_EMAIL"
	EnvZendeskAPIToken  = "ZENDESK_API_TOKEN"
	EnvOpenAIKey        = "OPENAI_API_KEY"
	EnvSupabaseURL      = "SUPABASE_URL"
	EnvSupabaseKey      = "SUPABASE_SERVICE_KEY"
	EnvEmbeddingModel   = "EMBEDDING_MODEL"
)

// Optional overrides.
const (
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvSupabaseTable = "SUPABASE_TABLE"
)

// Config holds all configuration for an indexing run.
type Config struct {
	// Zendesk settings
	ZendeskSubdomain string
	ZendeskEmail     string
	ZendeskAPIToken  string

	// Embedding service settings
	OpenAIKey      string
	OpenAIBaseURL  string // optional, for OpenAI-compatible services
	EmbeddingModel string

	// Supabase settings
	SupabaseURL   string
	SupabaseKey   string
	SupabaseTable string
}

// Load reads configuration from environment variables.
//
// Every required key is checked up front so that a misconfigured run fails
// with a single MissingError naming all absent keys, before any network
// call is issued.
func Load() (*Config, error) {
	cfg := &Config{
		ZendeskSubdomain: os.Getenv(EnvZendeskSubdomain),
		ZendeskEmail:     os.Getenv(EnvZendeskEmail),
		ZendeskAPIToken:  os.Getenv(EnvZendeskAPIToken),
		OpenAIKey:        os.Getenv(EnvOpenAIKey),
		OpenAIBaseURL:    os.Getenv(EnvOpenAIBaseURL),
		EmbeddingModel:   os.Getenv(EnvEmbeddingModel),
		SupabaseURL:      os.Getenv(EnvSupabaseURL),
		SupabaseKey:      os.Getenv(EnvSupabaseKey),
		SupabaseTable:    getEnv(EnvSupabaseTable, "zendesk_tickets"),
	}

	return cfg, cfg.Validate()
}

// Validate returns a MissingError naming every required key that is unset.
func (c *Config) Validate() error {
	var missing []string

	required := []struct {
		key   string
		value string
	}{
		{EnvZendeskSubdomain, c.ZendeskSubdomain},
		{EnvZendeskEmail, c.ZendeskEmail},
		{EnvZendeskAPIToken, c.ZendeskAPIToken},
		{EnvOpenAIKey, c.OpenAIKey},
		{EnvSupabaseURL, c.SupabaseURL},
		{EnvSupabaseKey, c.SupabaseKey},
		{EnvEmbeddingModel, c.EmbeddingModel},
	}
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			missing = append(missing, entry.key)
		}
	}

	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
