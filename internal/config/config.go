package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the together service.
// Environment variables are parsed from the TOGETHER_ prefix,
// e.g. TOGETHER_HTTP_PORT, TOGETHER_GCP_PROJECT_ID.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Document store driver: firestore | memory
	DocStore              string `envconfig:"DOC_STORE" default:"firestore"`
	GCPProjectID          string `envconfig:"GCP_PROJECT_ID" default:""`
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" default:""`

	// APIKeys is the static session table, "key=uid:email" pairs separated
	// by commas. Empty means the local dev authorizer.
	APIKeys string `envconfig:"API_KEYS" default:""`

	// ActivityOwnerOnly restricts activity delete to the creating user.
	// The shipped web client does not restrict it, so this defaults off.
	ActivityOwnerOnly bool `envconfig:"ACTIVITY_OWNER_ONLY" default:"false"`

	// Reminder job configuration
	MailRelayURL string `envconfig:"MAIL_RELAY_URL" default:""`
	MailFrom     string `envconfig:"MAIL_FROM" default:""`
	TimeZone     string `envconfig:"TIME_ZONE" default:"UTC"`
}

// Validate checks cross-field requirements that envconfig cannot express.
func (c *Config) Validate() error {
	switch c.DocStore {
	case "firestore":
		if c.GCPProjectID == "" {
			return fmt.Errorf("TOGETHER_GCP_PROJECT_ID is required when DOC_STORE is firestore")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported DOC_STORE: %s", c.DocStore)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TOGETHER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("doc_store", cfg.DocStore).
		Str("project", cfg.GCPProjectID).
		Int("port", cfg.HTTPPort).
		Bool("activity_owner_only", cfg.ActivityOwnerOnly).
		Str("time_zone", cfg.TimeZone).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment: EnvTesting,
		HTTPPort:    8080,
		DocStore:    "memory",
		TimeZone:    "UTC",
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
