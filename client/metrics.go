package client

import (
	"context"
	"errors"
	"time"

	sdkerrors "github.com/d8agroup/python-metalayer/client/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "metalayer_client",
			Name:      "requests_total",
			Help:      "API calls by layer, endpoint and outcome.",
		},
		[]string{"layer", "endpoint", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "metalayer_client",
			Name:      "request_duration_seconds",
			Help:      "API call latency, including response decoding.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"layer", "endpoint"},
	)

	batchDocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "metalayer_client",
			Name:      "batch_documents_total",
			Help:      "Documents processed by BundleBatch.",
		},
		[]string{"shard", "outcome"},
	)
)

// observe records one facade call.
func observe(layer, endpoint string, start time.Time, err error) {
	requestDuration.WithLabelValues(layer, endpoint).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(layer, endpoint, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sdkerrors.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "remote_error"
	}
}
