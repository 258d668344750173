package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/d8agroup/python-metalayer/client/internal/job"
	"github.com/d8agroup/python-metalayer/client/internal/types"
)

// ErrNotRun marks a batch document whose job never executed.
var ErrNotRun = errors.New("document was not analysed")

// BundleBatch submits one Bundle call per document to exec and waits for all
// of them. Results keep the input order. Retries, if any, are the executor's.
//
// exec must keep running until BundleBatch returns. An error means a barrier
// could not be placed; the results are then withheld because workers may
// still be writing them.
func BundleBatch(ctx context.Context, exec types.Executor, httpClient types.HTTPClient, ep Endpoint, docs []types.Document) ([]types.BatchResult, error) {
	results := make([]types.BatchResult, len(docs))
	keys := make([]string, 0, len(docs))
	seen := make(map[string]bool, len(docs))

	for i, doc := range docs {
		res := &results[i]
		res.ID = doc.ID
		res.Err = ErrNotRun
		if err := types.ValidateText(doc.Text); err != nil {
			res.Err = err
			continue
		}

		key := doc.ID
		if key == "" {
			key = strconv.Itoa(i)
		}
		text := doc.Text
		j := job.Counted(&res.Attempts, func(jobCtx context.Context) error {
			b, err := Bundle(jobCtx, httpClient, ep, text)
			res.Bundle, res.Err = b, err
			return err
		})
		if err := exec.Submit(ctx, key, j); err != nil {
			res.Err = err
			continue
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	// Jobs whose context is done are skipped by the workers, so the barriers
	// return promptly. They are not cancelable and do not time out, so results
	// are never read while a worker may still write them.
	barrierCtx := context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := exec.Barrier(barrierCtx, key); err != nil {
			return nil, fmt.Errorf("wait for batch key %q: %w", key, err)
		}
	}

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Err == ErrNotRun {
				results[i].Err = err
			}
		}
	}
	return results, nil
}
