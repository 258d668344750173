package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	client "github.com/d8agroup/python-metalayer/client"
)

func TestBundleBatch_OrderAndInvalidDocuments(t *testing.T) {
	t.Parallel()

	fake, c := newFakeMetaLayer(t, map[string]any{
		"bundle": map[string]any{"datalayer": map[string]any{"sentiment": 1.0, "tags": []string{"x"}, "locations": []string{}}},
	})

	docs := []client.Document{
		{ID: "a", Text: "The best kittens are from MT"},
		{ID: "b", Text: ""},
		{ID: "c", Text: "Puppies in Bozeman"},
		{Text: "no id"},
	}
	results, err := c.Data().BundleBatch(context.Background(), docs)
	if err != nil {
		t.Fatalf("BundleBatch error: %v", err)
	}
	if len(results) != len(docs) {
		t.Fatalf("want %d results, got %d", len(docs), len(results))
	}
	for i, r := range results {
		if r.ID != docs[i].ID {
			t.Fatalf("result %d out of order: %q", i, r.ID)
		}
	}
	if !errors.Is(results[1].Err, client.ErrInvalidInput) || results[1].Attempts != 0 {
		t.Fatalf("empty document: %+v", results[1])
	}
	for _, i := range []int{0, 2, 3} {
		if results[i].Err != nil || results[i].Bundle == nil || results[i].Attempts != 1 {
			t.Fatalf("document %d: %+v", i, results[i])
		}
	}
	if n := len(fake.Requests()); n != 3 {
		t.Fatalf("want 3 requests, got %d", n)
	}
}

func TestBundleBatch_RetriesRecoverableFailures(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","response":{"datalayer":{"sentiment":0}}}`))
	}))
	defer srv.Close()

	c := client.MustNew("k",
		client.WithBaseURL(srv.URL),
		client.WithBatchConfig(client.BatchConfig{MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxInterval: 5 * time.Millisecond}),
	)
	results, err := c.Data().BundleBatch(context.Background(), []client.Document{{ID: "only", Text: "hello"}})
	if err != nil {
		t.Fatalf("BundleBatch error: %v", err)
	}
	if results[0].Err != nil || results[0].Attempts != 2 {
		t.Fatalf("want success on second attempt, got %+v", results[0])
	}
}

func TestBundleBatch_NoRetryOnClientErrors(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := client.MustNew("k",
		client.WithBaseURL(srv.URL),
		client.WithBatchConfig(client.BatchConfig{MaxAttempts: 5, BaseBackoff: time.Millisecond}),
	)
	results, _ := c.Data().BundleBatch(context.Background(), []client.Document{{ID: "x", Text: "hello"}})
	if client.StatusCode(results[0].Err) != http.StatusUnauthorized {
		t.Fatalf("want 401, got %v", results[0].Err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("irrecoverable errors must not be retried, got %d requests", hits)
	}
}

func TestBundleBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	_, c := newFakeMetaLayer(t, map[string]any{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := c.Data().BundleBatch(ctx, []client.Document{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	for _, r := range results {
		if r.Err == nil {
			t.Fatalf("canceled batch must not report success: %+v", r)
		}
	}
}
