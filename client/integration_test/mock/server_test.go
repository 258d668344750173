package client_test

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	client "github.com/d8agroup/python-metalayer/client"
)

// captured is one request as the fake service saw it.
type captured struct {
	Path     string
	Auth     string
	Text     string
	FileName string
	Payload  []byte
}

// fakeMetaLayer answers /{layer}/1/{name} with canned envelopes keyed by
// name and records every request.
type fakeMetaLayer struct {
	mu        sync.Mutex
	requests  []captured
	responses map[string]any
}

func newFakeMetaLayer(t *testing.T, responses map[string]any) (*fakeMetaLayer, *client.Client) {
	t.Helper()
	f := &fakeMetaLayer{responses: responses}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	c, err := client.New("test-key", client.WithBaseURL(srv.URL+"/s"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, c
}

func (f *fakeMetaLayer) serve(w http.ResponseWriter, r *http.Request) {
	req := captured{Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			if part.FormName() == "image" {
				req.FileName = part.FileName()
				req.Payload, _ = io.ReadAll(part)
			}
		}
	default:
		if err := r.ParseForm(); err == nil {
			req.Text = r.PostForm.Get("text")
		}
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	name := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	resp, ok := f.responses[name]
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "error", "response": map[string]any{"errors": []string{"no such endpoint"}}})
		return
	}
	if s, isRaw := resp.(string); isRaw {
		_, _ = io.WriteString(w, s)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "response": resp})
}

func (f *fakeMetaLayer) Requests() []captured {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]captured(nil), f.requests...)
}
