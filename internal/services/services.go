// Package services contains the StudentVerse business logic: registering and
// authenticating users and appending to or reading their journals. Services
// own input validation, server-assigned timestamps and identifiers, busy
// retries and per-operation deadlines; repositories only move rows.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/dbx"
	"github.com/dmitrijs2005/studentverse/internal/logging"
)

// Options tune how services talk to the store.
type Options struct {
	// Timeout bounds one operation including its busy retries. Zero means
	// no deadline beyond the caller's.
	Timeout time.Duration
	Retry   dbx.RetryPolicy
	// Clock supplies timestamps; time.Now when nil.
	Clock  func() time.Time
	Logger logging.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// run executes fn under the operation deadline, retrying while the store is
// busy.
func (o Options) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	return dbx.RetryBusy(ctx, o.Retry, fn)
}

func (o Options) now() time.Time {
	return o.Clock().UTC().Truncate(time.Second)
}
