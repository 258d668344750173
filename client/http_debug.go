package client

import (
	"net/http"
	"net/http/httputil"
	"os"
)

// debugTransport logs every request and response it forwards.
//
// Enable it with WithDebugLogging(true) or by exporting METALAYER_DEBUG=true
// (or DEBUG=true). Bodies are dumped verbatim, so keep it out of production.
// The API key is masked in the dumps.
type debugTransport struct {
	base http.RoundTripper
	c    *Client
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}
	l := dt.c.logger

	masked, withBody := dt.redacted(req)
	if reqDump, err := httputil.DumpRequestOut(masked, withBody); err == nil {
		l.Debug().Str("method", req.Method).Str("url", masked.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		l.Error().Err(err).Str("method", req.Method).Str("url", masked.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		l.Debug().Str("method", req.Method).Str("url", masked.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// redacted returns a copy of req with the API key masked and a private body
// reader, so dumping it never drains req. The bool is false when the body
// cannot be replayed and must be left out of the dump.
func (dt *debugTransport) redacted(req *http.Request) (*http.Request, bool) {
	cp := req.Clone(req.Context())
	if cp.Header.Get("Authorization") != "" {
		cp.Header.Set("Authorization", "Bearer [REDACTED]")
	}
	if p := dt.c.keyParam; p != "" {
		q := cp.URL.Query()
		if q.Has(p) {
			q.Set(p, "REDACTED")
			cp.URL.RawQuery = q.Encode()
		}
	}

	if req.Body == nil || req.Body == http.NoBody {
		return cp, true
	}
	if req.GetBody == nil {
		cp.Body = nil
		return cp, false
	}
	body, err := req.GetBody()
	if err != nil {
		cp.Body = nil
		return cp, false
	}
	cp.Body = body
	return cp, true
}

// debugLoggingRequested reports whether METALAYER_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("METALAYER_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
