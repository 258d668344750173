package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilJobFunc is returned when a nil closure is run.
var ErrNilJobFunc = errors.New("nil JobFunc")

// jobFunc lets plain closures be passed to the shard executor.
type jobFunc func(context.Context) error

func (f jobFunc) Run(ctx context.Context) error {
	if f == nil {
		return fmt.Errorf("jobfunc: %w", ErrNilJobFunc)
	}
	return f(ctx)
}

// New wraps fn as a job.
func New(fn func(context.Context) error) jobFunc {
	return jobFunc(fn)
}

// Counted wraps fn so that *attempts is incremented before every run. The
// executor runs a job's attempts sequentially, so no locking is needed.
func Counted(attempts *int, fn func(context.Context) error) jobFunc {
	return func(ctx context.Context) error {
		*attempts++
		return fn(ctx)
	}
}
