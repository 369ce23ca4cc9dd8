package dbx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds how often a busy operation is retried.
type RetryPolicy struct {
	// Retries is the number of additional attempts after the first one.
	Retries uint64
	// BaseDelay is the first backoff delay; it doubles on every attempt.
	BaseDelay time.Duration
}

// RetryBusy runs fn and retries it while it fails with common.ErrStorageBusy.
// Any other error, including common.ErrStorageUnavailable, is returned
// immediately. When the retries are exhausted the last busy error is returned.
func RetryBusy(ctx context.Context, p RetryPolicy, fn func(ctx context.Context) error) error {
	base := p.BaseDelay
	if base <= 0 {
		base = 10 * time.Millisecond
	}
	b := retry.WithMaxRetries(p.Retries, retry.WithJitterPercent(10, retry.NewExponential(base)))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, common.ErrStorageBusy) {
			return retry.RetryableError(err)
		}
		return err
	})

	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, common.ErrStorageBusy) {
		return fmt.Errorf("%w: %w", common.ErrStorageBusy, err)
	}
	return err
}
