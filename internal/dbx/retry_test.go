package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/studentverse/internal/common"
	"github.com/stretchr/testify/require"
)

var fastPolicy = RetryPolicy{Retries: 3, BaseDelay: time.Millisecond}

func TestRetryBusy_SucceedsFirstTime(t *testing.T) {
	calls := 0
	err := RetryBusy(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryBusy_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := RetryBusy(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("insert: %w", common.ErrStorageBusy)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryBusy_GivesUpAfterRetries(t *testing.T) {
	calls := 0
	err := RetryBusy(context.Background(), fastPolicy, func(context.Context) error {
		calls++
		return fmt.Errorf("insert: %w", common.ErrStorageBusy)
	})
	require.ErrorIs(t, err, common.ErrStorageBusy)
	require.Equal(t, 4, calls, "first attempt plus three retries")
}

func TestRetryBusy_DoesNotRetryOtherErrors(t *testing.T) {
	for _, want := range []error{common.ErrStorageUnavailable, common.ErrAlreadyExists, errors.New("boom")} {
		calls := 0
		err := RetryBusy(context.Background(), fastPolicy, func(context.Context) error {
			calls++
			return want
		})
		require.ErrorIs(t, err, want)
		require.Equal(t, 1, calls)
	}
}

func TestRetryBusy_ZeroRetries(t *testing.T) {
	calls := 0
	err := RetryBusy(context.Background(), RetryPolicy{}, func(context.Context) error {
		calls++
		return common.ErrStorageBusy
	})
	require.ErrorIs(t, err, common.ErrStorageBusy)
	require.Equal(t, 1, calls)
}

func TestRetryBusy_DeadlineBecomesBusy(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := RetryBusy(ctx, RetryPolicy{Retries: 100, BaseDelay: 50 * time.Millisecond}, func(context.Context) error {
		return common.ErrStorageBusy
	})
	require.ErrorIs(t, err, common.ErrStorageBusy)
}
