package client

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds client settings read from the environment (prefix METALAYER_).
type Config struct {
	APIKey      string        `envconfig:"API_KEY" required:"true"`
	BaseURL     string        `envconfig:"BASE_URL" default:"http://api.metalayer.com/s"`
	APIVersion  int           `envconfig:"API_VERSION" default:"1"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
}

// LoadConfig populates Config from METALAYER_* environment variables.
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("METALAYER", &c)
}

// Options converts the non-credential settings into client options.
func (cfg Config) Options() []Option {
	opts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithAPIVersion(cfg.APIVersion),
		WithHTTPTimeout(cfg.HTTPTimeout),
	}
	if cfg.Debug {
		opts = append(opts, WithDebugLogging(true))
	}
	return opts
}

// NewFromEnv builds a Client from LoadConfig; opts are applied after the
// environment-derived options and win over them.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg.APIKey, append(cfg.Options(), opts...)...)
}
