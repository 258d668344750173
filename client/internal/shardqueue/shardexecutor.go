// Package shardqueue provides a small sharded work queue that keeps FIFO
// order per key while running different shards in parallel. Batch analysis
// uses it to fan requests out and to retry recoverable failures.
//
// Callers must not invoke Submit concurrently for the same key; FIFO order
// relies on that external serialisation.
package shardqueue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	sdkerrors "github.com/d8agroup/python-metalayer/client/internal/errors"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// ShardExecutor executes Jobs on worker goroutines partitioned by a stable
// hash of the key. Jobs with the same key run one at a time, in order.
type ShardExecutor struct {
	cfg    Config
	queues []chan queuedJob // len == cfg.Shards

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 → running, 1 → closed

	wg sync.WaitGroup
}

// NewShardExecutor constructs the executor and starts its shard workers.
func NewShardExecutor(cfg Config) *ShardExecutor {
	cfg = cfg.withDefaults()
	p := &ShardExecutor{
		cfg:    cfg,
		queues: make([]chan queuedJob, cfg.Shards),
		done:   make(chan struct{}),
	}
	for i := 0; i < cfg.Shards; i++ {
		ch := make(chan queuedJob, cfg.QueueSize)
		p.queues[i] = ch
		p.wg.Add(1)
		go p.runWorker(i, ch)
	}
	return p
}

// Submit enqueues job for the shard derived from key.
//
//   - Returns ErrExecutorClosed if the executor is stopped.
//   - Returns a *QueueFullError if the shard stays full for EnqueueTimeout.
//   - Returns ctx.Err() if ctx ends first.
func (p *ShardExecutor) Submit(ctx context.Context, key string, job Job) error {
	return p.enqueue(ctx, ctx, key, job, true)
}

// Barrier enqueues a no-op job on the shard for key and waits until it runs,
// so every job submitted earlier for that key has finished, retries included.
//
// Unlike Submit, the barrier waits for queue space as long as the executor
// runs; EnqueueTimeout does not apply. It returns ctx.Err() if ctx ends
// first and ErrExecutorClosed if the executor stops first.
func (p *ShardExecutor) Barrier(ctx context.Context, key string) error {
	done := make(chan struct{})
	j := JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	// The barrier job itself carries no cancellation so the worker never skips it.
	if err := p.enqueue(context.WithoutCancel(ctx), ctx, key, j, false); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// enqueue places job, bound to jobCtx, on the shard for key while waitCtx
// lasts. Bounded enqueues give up after EnqueueTimeout with a *QueueFullError.
func (p *ShardExecutor) enqueue(jobCtx, waitCtx context.Context, key string, job Job, bounded bool) error {
	if atomic.LoadUint32(&p.closed) == 1 {
		return ErrExecutorClosed
	}
	select {
	case <-p.done:
		return ErrExecutorClosed
	default:
	}

	shard := p.shardFor(key)
	ch := p.queues[shard]

	var timeout <-chan time.Time
	if bounded {
		timer := time.NewTimer(p.cfg.EnqueueTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case ch <- queuedJob{ctx: jobCtx, job: job}:
		submissionsTotal.WithLabelValues(labelFor(shard)).Inc()
		return nil
	case <-p.done:
		return ErrExecutorClosed
	case <-waitCtx.Done():
		return waitCtx.Err()
	case <-timeout:
		queueFullTotal.WithLabelValues(labelFor(shard)).Inc()
		return &QueueFullError{Shard: shard, Length: len(ch), Capacity: cap(ch)}
	}
}

// Stop lets every worker drain its queue, waits for them and returns.
// It is idempotent and safe for concurrent use.
func (p *ShardExecutor) Stop() {
	if !atomic.CompareAndSwapUint32(&p.closed, 0, 1) {
		return
	}
	p.cfg.Logger.Debug().Int("shards", p.cfg.Shards).Msg("shardqueue: stopping executor")
	close(p.done)
	p.wg.Wait()
	p.cfg.Logger.Debug().Msg("shardqueue: executor stopped, all queues drained")
}

// Close lets ShardExecutor satisfy io.Closer.
func (p *ShardExecutor) Close() error {
	p.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (p *ShardExecutor) runWorker(idx int, ch <-chan queuedJob) {
	defer p.wg.Done()
	label := labelFor(idx)

	for {
		select {
		case qj := <-ch:
			if qj.job != nil {
				if !p.runWithRetry(idx, qj) {
					return
				}
			}
			queueDepth.WithLabelValues(label).Set(float64(len(ch)))

		case <-p.done:
			drained := 0
			for {
				select {
				case qj := <-ch:
					if qj.job != nil {
						p.safeHandleError(p.runOnce(idx, qj))
						drained++
					}
				default:
					if drained > 0 {
						p.cfg.Logger.Debug().Int("shard", idx).Int("drained", drained).Msg("shardqueue: drained remaining jobs")
					}
					queueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		}
	}
}

// runWithRetry runs qj until it succeeds, fails irrecoverably or exhausts
// MaxAttempts. It returns false when the executor stopped mid-backoff.
func (p *ShardExecutor) runWithRetry(idx int, qj queuedJob) bool {
	// A cancelled job must not stall the shard.
	if err := qj.ctx.Err(); err != nil {
		p.safeHandleError(err)
		return true
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = p.cfg.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	for attempt := 1; ; attempt++ {
		err := p.runOnce(idx, qj)
		if err == nil {
			return true
		}
		var pe *PanicError
		if sdkerrors.IsIrrecoverable(err) || errors.As(err, &pe) || attempt >= p.cfg.MaxAttempts {
			p.safeHandleError(err)
			return true
		}

		retriesTotal.WithLabelValues(labelFor(idx)).Inc()
		wait := time.NewTimer(exp.NextBackOff())
		select {
		case <-wait.C:
		case <-p.done:
			wait.Stop()
			p.safeHandleError(err)
			return false
		case <-qj.ctx.Done():
			wait.Stop()
			p.safeHandleError(qj.ctx.Err())
			return true
		}
	}
}

// runOnce executes a single attempt and turns a panic into a *PanicError so
// the worker survives.
func (p *ShardExecutor) runOnce(idx int, qj queuedJob) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			p.cfg.Logger.Error().Int("shard", idx).Interface("panic", r).Msg("shardqueue: job panic")
			err = &PanicError{Value: r}
		}
		runDuration.WithLabelValues(labelFor(idx)).Observe(time.Since(start).Seconds())
	}()
	return qj.job.Run(qj.ctx)
}

func (p *ShardExecutor) safeHandleError(err error) {
	if err == nil || p.cfg.ErrorHandler == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.cfg.Logger.Error().Interface("panic", r).Msg("shardqueue: error handler panic")
		}
	}()
	p.cfg.ErrorHandler(err)
}

func (p *ShardExecutor) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(p.cfg.Shards))
}
