package types

import (
	"context"
	"net/http"

	"github.com/d8agroup/python-metalayer/client/internal/shardqueue"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// Executor runs keyed jobs (used by batch analysis).
type Executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Barrier(context.Context, string) error
}

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
