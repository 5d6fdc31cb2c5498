package config

import (
	"fmt"
	"os"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mergekit/mergemail/pkg/logger"
	"github.com/mergekit/mergemail/pkg/mailer/gmail"
	"github.com/mergekit/mergemail/pkg/mailer/resend"
	"github.com/mergekit/mergemail/pkg/oauth"
)

// Config is the application configuration, assembled from environment
// variables (with .env support for local runs).
type Config struct {
	// Provider selects the delivery backend: "gmail" or "resend".
	Provider string `env:"MERGEMAIL_PROVIDER" envDefault:"gmail"`
	// LogFile is the append-only attempt log.
	LogFile string `env:"MERGEMAIL_LOG_FILE" envDefault:"mergemail.log"`
	// SentFile is the append-only results CSV of successful sends.
	SentFile string `env:"MERGEMAIL_SENT_FILE" envDefault:"sent.csv"`

	Google oauth.Config
	Gmail  gmail.Config
	Resend resend.Config
	Sentry logger.SentryConfig
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return &cfg, nil
}

// CampaignFile is an optional YAML file describing per-campaign settings
// that would otherwise be repeated on the command line. Flags take
// precedence over file values.
type CampaignFile struct {
	// Delay between sends, in seconds.
	Delay float64 `yaml:"delay"`
	// CC addresses applied to every outgoing message.
	CC []string `yaml:"cc"`
	// From overrides the configured sender identity.
	From struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"from"`
}

// LoadCampaignFile parses a campaign YAML file.
func LoadCampaignFile(path string) (*CampaignFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read campaign file %s: %w", path, err)
	}

	var cf CampaignFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("config: parse campaign file %s: %w", path, err)
	}
	if cf.Delay < 0 {
		return nil, fmt.Errorf("config: campaign file %s: delay must be non-negative", path)
	}
	return &cf, nil
}
