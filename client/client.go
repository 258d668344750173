// Package client is a Go SDK for the MetaLayer text and image analysis API.
//
//	c, err := client.New(apiKey)
//	b, err := c.Data().Bundle(ctx, "The best kittens are from MT")
//	colors, err := c.Image().Color(ctx, imageFile)
package client

import (
	"errors"
	"net/http"
	"time"

	"github.com/d8agroup/python-metalayer/client/internal/api"
	"github.com/d8agroup/python-metalayer/client/internal/shardqueue"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the documented MetaLayer API host.
	DefaultBaseURL = "http://api.metalayer.com/s"
	// DefaultAPIVersion is the API version placed in every URL.
	DefaultAPIVersion = 1

	defaultUserAgent = "metalayer-go/0.1"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the MetaLayer API. Its configuration is fixed by New; a
// Client is safe for concurrent use.
type Client struct {
	endpoint  api.Endpoint
	apiKey    string
	keyParam  string // query parameter carrying the key; empty means Authorization header
	userAgent string
	debug     bool // install debugTransport under the auth wrappers
	http      *http.Client
	logger    zerolog.Logger
	batchCfg  shardqueue.Config

	data  *DataLayer
	image *ImageLayer
}

// New constructs a Client authenticated with apiKey.
// Additional options can be provided via functional arguments.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("apiKey cannot be empty")
	}

	c := &Client{
		endpoint:  api.Endpoint{BaseURL: DefaultBaseURL, Version: DefaultAPIVersion},
		apiKey:    apiKey,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	c.debug = debugLoggingRequested()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.endpoint.BaseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c.wrapTransport()
	c.data = &DataLayer{c: c}
	c.image = &ImageLayer{c: c}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(apiKey string, opts ...Option) *Client {
	c, err := New(apiKey, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Data returns the text analysis functions (sentiment, tagging, locations, bundle).
func (c *Client) Data() *DataLayer { return c.data }

// Image returns the image analysis functions (color, histogram, OCR, faces, bundle).
func (c *Client) Image() *ImageLayer { return c.image }

// BaseURL reports the API host the client sends requests to.
func (c *Client) BaseURL() string { return c.endpoint.BaseURL }

// APIVersion reports the version segment used in request URLs.
func (c *Client) APIVersion() int { return c.endpoint.Version }

// wrapTransport installs the debug, auth and request-id wrappers on top of
// whatever transport the options left in place.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, c: c}
	}
	c.http.Transport = &requestIDTransport{
		base:      &apiKeyTransport{base: base, apiKey: c.apiKey, param: c.keyParam},
		userAgent: c.userAgent,
	}
}

// batchLogger is the logger handed to the batch executor. Its lifecycle and
// per-document reports are debug level and only surface in debug mode.
func (c *Client) batchLogger() zerolog.Logger {
	if c.debug || c.logger.GetLevel() >= zerolog.InfoLevel {
		return c.logger
	}
	return c.logger.Level(zerolog.InfoLevel)
}

// apiKeyTransport attaches the API key to every request, as a Bearer token
// or as a query parameter.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
	param  string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the caller's
	cloned := req.Clone(req.Context())
	if t.param != "" {
		q := cloned.URL.Query()
		q.Set(t.param, t.apiKey)
		cloned.URL.RawQuery = q.Encode()
	} else {
		cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	return t.base.RoundTrip(cloned)
}

// requestIDTransport tags each request with a fresh X-Request-Id and the
// SDK's User-Agent.
type requestIDTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if cloned.Header.Get("X-Request-Id") == "" {
		cloned.Header.Set("X-Request-Id", uuid.NewString())
	}
	if cloned.Header.Get("User-Agent") == "" {
		cloned.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(cloned)
}
