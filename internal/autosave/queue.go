// Package autosave provides the debounced write queue behind the
// facilitator dashboard's strategy and charter editors. Edits enqueue a
// pending write; a fixed-delay timer, re-armed on every edit, flushes it.
// Navigation calls FlushAll first so no edit is silently discarded.
package autosave

import (
	"context"
	"log"
	"sync"
	"time"
)

// WriteFunc performs the actual upsert for a pending edit.
type WriteFunc func(ctx context.Context) error

type Status string

const (
	StatusSaved   Status = "saved"
	StatusPending Status = "pending"
	StatusError   Status = "error"
)

// SaveState is what the UI's save indicator shows for one key. LastSaved
// only advances on a successful flush: a failed write leaves it unchanged
// and flips the status to error.
type SaveState struct {
	Status    Status
	LastSaved time.Time
	LastError error
}

type pending struct {
	write WriteFunc
	seq   uint64
	timer *time.Timer
}

// Queue coalesces edits per key and flushes them after a quiet period.
type Queue struct {
	mu      sync.Mutex
	delay   time.Duration
	seq     uint64
	pending map[string]*pending
	states  map[string]*SaveState
}

// NewQueue creates a queue with the given debounce delay.
func NewQueue(delay time.Duration) *Queue {
	return &Queue{
		delay:   delay,
		pending: make(map[string]*pending),
		states:  make(map[string]*SaveState),
	}
}

// Enqueue records an edit for key, replacing any pending write and
// re-arming its debounce timer.
func (q *Queue) Enqueue(key string, write WriteFunc) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.seq++
	if p, ok := q.pending[key]; ok && p.timer != nil {
		p.timer.Stop()
	}

	p := &pending{write: write, seq: q.seq}
	p.timer = time.AfterFunc(q.delay, func() {
		if err := q.Flush(context.Background(), key); err != nil {
			log.Printf("⚠️ Autosave flush failed for %s: %v", key, err)
		}
	})
	q.pending[key] = p
	q.stateLocked(key).Status = StatusPending
}

// Flush cancels the timer for key and performs its pending write
// synchronously. A failed write stays pending so a later flush retries it.
// Flushing a key with nothing pending is a no-op.
func (q *Queue) Flush(ctx context.Context, key string) error {
	q.mu.Lock()
	p, ok := q.pending[key]
	if !ok {
		q.mu.Unlock()
		return nil
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	write, seq := p.write, p.seq
	q.mu.Unlock()

	err := write(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	state := q.stateLocked(key)
	if err != nil {
		state.Status = StatusError
		state.LastError = err
		return err
	}

	state.LastSaved = time.Now()
	state.LastError = nil
	state.Status = StatusSaved
	// A newer edit may have arrived while the write ran; keep it pending.
	if cur, ok := q.pending[key]; ok {
		if cur.seq == seq {
			delete(q.pending, key)
		} else {
			state.Status = StatusPending
		}
	}
	return nil
}

// FlushAll flushes every pending key synchronously and returns the first
// error encountered. Called before navigation.
func (q *Queue) FlushAll(ctx context.Context) error {
	q.mu.Lock()
	keys := make([]string, 0, len(q.pending))
	for key := range q.pending {
		keys = append(keys, key)
	}
	q.mu.Unlock()

	var firstErr error
	for _, key := range keys {
		if err := q.Flush(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// State returns the save indicator state for key.
func (q *Queue) State(key string) SaveState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return *q.stateLocked(key)
}

// HasPending reports whether key has an unflushed write.
func (q *Queue) HasPending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[key]
	return ok
}

func (q *Queue) stateLocked(key string) *SaveState {
	if s, ok := q.states[key]; ok {
		return s
	}
	s := &SaveState{Status: StatusSaved}
	q.states[key] = s
	return s
}
