package autosave

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DebounceCoalescesEdits(t *testing.T) {
	q := NewQueue(30 * time.Millisecond)

	var writes int32
	var lastValue atomic.Value
	write := func(value string) WriteFunc {
		return func(ctx context.Context) error {
			atomic.AddInt32(&writes, 1)
			lastValue.Store(value)
			return nil
		}
	}

	// Rapid edits within the debounce window coalesce into one write
	q.Enqueue("strategy:session-1", write("v1"))
	q.Enqueue("strategy:session-1", write("v2"))
	q.Enqueue("strategy:session-1", write("v3"))
	assert.Equal(t, StatusPending, q.State("strategy:session-1").Status)

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&writes) == 1 && !q.HasPending("strategy:session-1")
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "v3", lastValue.Load(), "only the last enqueued edit is written")
	assert.Equal(t, StatusSaved, q.State("strategy:session-1").Status)
}

func TestQueue_FlushWritesImmediately(t *testing.T) {
	q := NewQueue(time.Hour) // timer would never fire in this test

	var writes int32
	q.Enqueue("charter:session-1", func(ctx context.Context) error {
		atomic.AddInt32(&writes, 1)
		return nil
	})

	require.NoError(t, q.Flush(context.Background(), "charter:session-1"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&writes))
	assert.False(t, q.HasPending("charter:session-1"))

	state := q.State("charter:session-1")
	assert.Equal(t, StatusSaved, state.Status)
	assert.False(t, state.LastSaved.IsZero())
}

func TestQueue_FlushWithNothingPendingIsNoop(t *testing.T) {
	q := NewQueue(time.Hour)
	require.NoError(t, q.Flush(context.Background(), "unknown-key"))
}

func TestQueue_FailedFlushKeepsWritePendingAndLastSaved(t *testing.T) {
	q := NewQueue(time.Hour)

	// Establish a successful save first so LastSaved is non-zero
	q.Enqueue("strategy:session-1", func(ctx context.Context) error { return nil })
	require.NoError(t, q.Flush(context.Background(), "strategy:session-1"))
	savedAt := q.State("strategy:session-1").LastSaved
	require.False(t, savedAt.IsZero())

	boom := errors.New("connection reset")
	failures := int32(0)
	q.Enqueue("strategy:session-1", func(ctx context.Context) error {
		if atomic.AddInt32(&failures, 1) == 1 {
			return boom
		}
		return nil
	})

	err := q.Flush(context.Background(), "strategy:session-1")
	require.ErrorIs(t, err, boom)

	// The indicator flips to error, the timestamp does not move, and the
	// write stays pending for a retry.
	state := q.State("strategy:session-1")
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, savedAt, state.LastSaved)
	assert.True(t, q.HasPending("strategy:session-1"))

	// Retry succeeds and advances the timestamp
	require.NoError(t, q.Flush(context.Background(), "strategy:session-1"))
	state = q.State("strategy:session-1")
	assert.Equal(t, StatusSaved, state.Status)
	assert.False(t, state.LastSaved.Before(savedAt))
	assert.False(t, q.HasPending("strategy:session-1"))
}

func TestQueue_FlushAll(t *testing.T) {
	q := NewQueue(time.Hour)

	var writes int32
	ok := func(ctx context.Context) error {
		atomic.AddInt32(&writes, 1)
		return nil
	}
	boom := errors.New("write failed")

	q.Enqueue("strategy:session-1", ok)
	q.Enqueue("charter:session-1", ok)
	q.Enqueue("strategy:session-2", func(ctx context.Context) error { return boom })

	err := q.FlushAll(context.Background())
	require.ErrorIs(t, err, boom, "navigation must see the failure, not a silent discard")

	assert.Equal(t, int32(2), atomic.LoadInt32(&writes))
	assert.False(t, q.HasPending("strategy:session-1"))
	assert.False(t, q.HasPending("charter:session-1"))
	assert.True(t, q.HasPending("strategy:session-2"), "failed write survives for retry")
}

func TestQueue_EditDuringFlushStaysPending(t *testing.T) {
	q := NewQueue(time.Hour)

	started := make(chan struct{})
	release := make(chan struct{})
	q.Enqueue("strategy:session-1", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- q.Flush(context.Background(), "strategy:session-1") }()

	<-started
	// A newer edit lands while the write is in flight
	q.Enqueue("strategy:session-1", func(ctx context.Context) error { return nil })
	close(release)
	require.NoError(t, <-done)

	assert.True(t, q.HasPending("strategy:session-1"), "the in-flight flush must not swallow the newer edit")
}
