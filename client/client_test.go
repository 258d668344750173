package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

const sentimentOK = `{"status":"success","response":{"datalayer":{"sentiment":4.2}}}`

func TestNew_Defaults(t *testing.T) {
	c, err := New("test-api-key")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultAPIVersion, c.APIVersion())
	assert.NotNil(t, c.Data())
	assert.NotNil(t, c.Image())
}

func TestNew_RejectsEmptyKey(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
	assert.Panics(t, func() { MustNew("") })
}

func TestClient_AuthHeaderAndRequestID(t *testing.T) {
	var (
		mu      sync.Mutex
		auths   []string
		reqIDs  []string
		agents  []string
		rawKeys []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		auths = append(auths, r.Header.Get("Authorization"))
		reqIDs = append(reqIDs, r.Header.Get("X-Request-Id"))
		agents = append(agents, r.Header.Get("User-Agent"))
		rawKeys = append(rawKeys, r.URL.Query().Get("api_key"))
		mu.Unlock()
		_, _ = w.Write([]byte(sentimentOK))
	}))
	defer srv.Close()

	c, err := New("secret-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.Data().Sentiment(context.Background(), "I love kittens")
		require.NoError(t, err)
	}

	require.Len(t, auths, 2)
	assert.Equal(t, "Bearer secret-key", auths[0])
	assert.Equal(t, auths[0], auths[1], "same client must send identical credentials")
	assert.NotEmpty(t, reqIDs[0])
	assert.NotEqual(t, reqIDs[0], reqIDs[1], "each request gets its own id")
	assert.Equal(t, defaultUserAgent, agents[0])
	assert.Empty(t, rawKeys[0])
}

func TestClient_APIKeyQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.URL.Query().Get("api_key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "/s/datalayer/2/sentiment", r.URL.Path)
		_, _ = w.Write([]byte(sentimentOK))
	}))
	defer srv.Close()

	c, err := New("secret-key", WithBaseURL(srv.URL+"/s"), WithAPIVersion(2), WithAPIKeyQueryParam("api_key"), WithUserAgent("kittens/1.0"))
	require.NoError(t, err)
	s, err := c.Data().Sentiment(context.Background(), "I love kittens")
	require.NoError(t, err)
	assert.Equal(t, 4.2, s.Score)
}

func TestClient_ConcurrentUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sentimentOK))
	}))
	defer srv.Close()

	c := MustNew("k", WithBaseURL(srv.URL))
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Data().Sentiment(context.Background(), "text")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestWithHTTPClient_DoesNotMutateCaller(t *testing.T) {
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})
	hc := &http.Client{Transport: rt}
	c, err := New("k", WithHTTPClient(hc))
	require.NoError(t, err)

	_, wrapped := hc.Transport.(*requestIDTransport)
	assert.False(t, wrapped, "caller's client must keep its transport")

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	resp, err := c.http.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.True(t, called, "base transport not invoked")
}

func TestOptions_Validation(t *testing.T) {
	for name, opt := range map[string]Option{
		"empty base url":   WithBaseURL(""),
		"zero version":     WithAPIVersion(0),
		"nil http client":  WithHTTPClient(nil),
		"zero timeout":     WithHTTPTimeout(0),
		"empty user agent": WithUserAgent(""),
		"empty key param":  WithAPIKeyQueryParam(""),
		"negative shards":  WithBatchConfig(BatchConfig{Shards: -1}),
	} {
		_, err := New("k", opt)
		assert.Error(t, err, name)
	}
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("METALAYER_DEBUG", "true")
	c, err := New("k")
	require.NoError(t, err)
	outer, ok := c.http.Transport.(*requestIDTransport)
	require.True(t, ok)
	auth, ok := outer.base.(*apiKeyTransport)
	require.True(t, ok)
	_, ok = auth.base.(*debugTransport)
	assert.True(t, ok, "expected debugTransport beneath the auth wrapper when METALAYER_DEBUG=true")
}

func TestDebugTransport_RedactsKeyAndKeepsBody(t *testing.T) {
	var logged strings.Builder
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotBody = r.PostForm.Get("text")
		_, _ = w.Write([]byte(sentimentOK))
	}))
	defer srv.Close()

	c, err := New("super-secret", WithBaseURL(srv.URL), WithLogger(testLogger(&logged)), WithDebugLogging(true))
	require.NoError(t, err)
	_, err = c.Data().Sentiment(context.Background(), "I love kittens")
	require.NoError(t, err)

	assert.Equal(t, "I love kittens", gotBody, "dumping must not drain the request body")
	assert.Contains(t, logged.String(), "HTTP request")
	assert.Contains(t, logged.String(), "HTTP response")
	assert.NotContains(t, logged.String(), "super-secret")
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	var logged strings.Builder
	c, err := New("k", WithHTTPClient(&http.Client{Transport: rt}), WithLogger(testLogger(&logged)), WithDebugLogging(true))
	require.NoError(t, err)
	_, err = c.Data().Tagging(context.Background(), "bears")
	require.Error(t, err)
	assert.True(t, IsRemoteService(err))
	assert.Contains(t, logged.String(), "HTTP request failed")
}

func TestWithDebugLogging_AnyOrderWithHTTPClient(t *testing.T) {
	for name, opts := range map[string][]Option{
		"debug first":       {WithDebugLogging(true), WithHTTPClient(&http.Client{})},
		"http client first": {WithHTTPClient(&http.Client{}), WithDebugLogging(true)},
	} {
		c, err := New("k", opts...)
		require.NoError(t, err, name)
		outer, ok := c.http.Transport.(*requestIDTransport)
		require.True(t, ok, name)
		auth, ok := outer.base.(*apiKeyTransport)
		require.True(t, ok, name)
		_, ok = auth.base.(*debugTransport)
		assert.True(t, ok, "%s: debug transport missing", name)
	}
}

func TestWithDebugLogging_FalseLeavesTransportPlain(t *testing.T) {
	c, err := New("k", WithDebugLogging(false))
	require.NoError(t, err)
	outer := c.http.Transport.(*requestIDTransport)
	auth := outer.base.(*apiKeyTransport)
	_, ok := auth.base.(*debugTransport)
	assert.False(t, ok)
}
