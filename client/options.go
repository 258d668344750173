package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied before the debug, auth and request-id wrappers are
// installed, so the wrappers always sit on top of a WithHTTPClient transport.
type Option func(*Client) error

// WithBaseURL points the client at another deployment of the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return fmt.Errorf("baseURL cannot be empty")
		}
		c.endpoint.BaseURL = baseURL
		return nil
	}
}

// WithAPIVersion sets the version segment of request URLs.
func WithAPIVersion(v int) Option {
	return func(c *Client) error {
		if v <= 0 {
			return fmt.Errorf("api version must be > 0")
		}
		c.endpoint.Version = v
		return nil
	}
}

// WithHTTPClient uses a copy of hc for all requests. The copy keeps hc's
// transport, timeout, jar and redirect policy; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout bounds
// the total time of a single request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged at debug level when enabled is true. The API key is masked, but
// bodies (including submitted text) are logged in full. It combines with
// WithHTTPClient in any order.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithLogger sets the logger used for debug dumps and batch reports.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		c.userAgent = ua
		return nil
	}
}

// WithAPIKeyQueryParam sends the API key as the named query parameter
// instead of an Authorization header.
func WithAPIKeyQueryParam(name string) Option {
	return func(c *Client) error {
		if name == "" {
			return fmt.Errorf("query parameter name cannot be empty")
		}
		c.keyParam = name
		return nil
	}
}

// WithBatchConfig tunes the executor used by DataLayer.BundleBatch.
func WithBatchConfig(cfg BatchConfig) Option {
	return func(c *Client) error {
		if cfg.MaxAttempts < 0 || cfg.Shards < 0 {
			return fmt.Errorf("batch config: negative shards or attempts")
		}
		c.batchCfg = cfg
		return nil
	}
}
