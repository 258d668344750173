package client

import (
	"context"
	"time"

	"github.com/d8agroup/python-metalayer/client/internal/api"
	"github.com/d8agroup/python-metalayer/client/internal/job"
	"github.com/d8agroup/python-metalayer/client/internal/shardqueue"
	"github.com/d8agroup/python-metalayer/client/internal/types"
)

// DataLayer groups the text analysis functions. Obtain it with Client.Data.
type DataLayer struct{ c *Client }

// Sentiment scores the tone of text from -5.0 (angry) through 0 (neutral or
// undetermined) to 5.0 (delighted).
func (d *DataLayer) Sentiment(ctx context.Context, text string) (s *Sentiment, err error) {
	defer func(start time.Time) { observe(types.LayerData, "sentiment", start, err) }(time.Now())
	return api.Sentiment(ctx, d.c.http, d.c.endpoint, text)
}

// Tagging returns the strongest uncommon keywords of text, useful for
// grouping related content.
func (d *DataLayer) Tagging(ctx context.Context, text string) (tags []Tag, err error) {
	defer func(start time.Time) { observe(types.LayerData, "tagging", start, err) }(time.Now())
	return api.Tagging(ctx, d.c.http, d.c.endpoint, text)
}

// Locations returns the places text refers to or was written from.
func (d *DataLayer) Locations(ctx context.Context, text string) (locs []Location, err error) {
	defer func(start time.Time) { observe(types.LayerData, "locations", start, err) }(time.Now())
	return api.Locations(ctx, d.c.http, d.c.endpoint, text)
}

// Bundle runs sentiment, tagging and locations over text in one request.
func (d *DataLayer) Bundle(ctx context.Context, text string) (b *Bundle, err error) {
	defer func(start time.Time) { observe(types.LayerData, "bundle", start, err) }(time.Now())
	return api.Bundle(ctx, d.c.http, d.c.endpoint, text)
}

// BundleBatch runs Bundle for every document on a short-lived executor and
// returns one result per document, in input order. Per-document failures are
// reported in BatchResult.Err; the returned error is non-nil when ctx ended
// before the batch completed.
func (d *DataLayer) BundleBatch(ctx context.Context, docs []Document) ([]BatchResult, error) {
	logger := d.c.batchLogger()
	cfg := d.c.batchCfg
	cfg.Logger = &logger
	cfg.ErrorHandler = func(err error) {
		logger.Debug().Err(err).Msg("batch document failed")
	}
	exec := shardqueue.NewShardExecutor(cfg)
	defer exec.Stop()

	start := time.Now()
	results, err := api.BundleBatch(ctx, exec, d.c.http, d.c.endpoint, docs)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		batchDocumentsTotal.WithLabelValues(job.ShardLabel(r.ID), outcome(r.Err)).Inc()
	}
	logger.Debug().Int("documents", len(docs)).Dur("elapsed", time.Since(start)).Msg("batch finished")
	return results, ctx.Err()
}
