//go:build unit

package offline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu      sync.Mutex
	saved   []QueuedOperation
	saves   int
	saveErr error
}

func (p *memPersister) SaveQueue(_ context.Context, ops []QueuedOperation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.saved = append([]QueuedOperation(nil), ops...)
	return nil
}

func (p *memPersister) LoadQueue(context.Context) ([]QueuedOperation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]QueuedOperation(nil), p.saved...), nil
}

type countingRecorder struct {
	queued, ok, failed, depth int
}

func (r *countingRecorder) OperationQueued(string) { r.queued++ }
func (r *countingRecorder) OperationReplayed(_ string, ok bool) {
	if ok {
		r.ok++
		return
	}
	r.failed++
}
func (r *countingRecorder) QueueDepth(n int) { r.depth = n }

func newTestQueue(p Persister, rec Recorder) *Queue {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewQueue(p, clock.NewMockClock(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)), logger, rec)
}

type payload struct {
	N int `json:"n"`
}

func TestQueue_AddPersistsInOrder(t *testing.T) {
	p := &memPersister{}
	q := newTestQueue(p, nil)
	ctx := context.Background()

	require.NoError(t, q.Add(ctx, "processPayment", payload{N: 1}))
	require.NoError(t, q.Add(ctx, "processPayment", payload{N: 1}))
	require.NoError(t, q.Add(ctx, "updateOrder", payload{N: 2}))

	assert.Equal(t, 3, q.Len())
	require.Len(t, p.saved, 3)
	assert.Equal(t, "processPayment", p.saved[0].OperationName)
	assert.Equal(t, "updateOrder", p.saved[2].OperationName)
	assert.JSONEq(t, `{"n":1}`, string(p.saved[1].Payload), "duplicates are kept")
}

func TestQueue_AddRollsBackWhenPersistFails(t *testing.T) {
	p := &memPersister{saveErr: errors.New("quota exceeded")}
	q := newTestQueue(p, nil)

	err := q.Add(context.Background(), "processPayment", payload{N: 1})

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrLocalStorage))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DrainFIFO(t *testing.T) {
	p := &memPersister{}
	rec := &countingRecorder{}
	q := newTestQueue(p, rec)
	ctx := context.Background()

	var seen []int
	q.Register("op", func(_ context.Context, raw json.RawMessage) error {
		var pl payload
		require.NoError(t, json.Unmarshal(raw, &pl))
		seen = append(seen, pl.N)
		return nil
	})

	for i := 1; i <= 3; i++ {
		require.NoError(t, q.Add(ctx, "op", payload{N: i}))
	}

	res, err := q.Drain(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, DrainResult{Replayed: 3}, res)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, p.saved)
	assert.Equal(t, 3, rec.queued)
	assert.Equal(t, 3, rec.ok)
	assert.Equal(t, 0, rec.depth)
}

func TestQueue_DrainHaltsOnFailure(t *testing.T) {
	p := &memPersister{}
	q := newTestQueue(p, nil)
	ctx := context.Background()

	var calls []int
	q.Register("op", func(_ context.Context, raw json.RawMessage) error {
		var pl payload
		_ = json.Unmarshal(raw, &pl)
		calls = append(calls, pl.N)
		if pl.N == 2 {
			return errors.New("backend unavailable")
		}
		return nil
	})
	for i := 1; i <= 4; i++ {
		require.NoError(t, q.Add(ctx, "op", payload{N: i}))
	}

	res, err := q.Drain(ctx)

	require.Error(t, err)
	assert.True(t, errs.Is(err, ErrReplayFailed))
	assert.Equal(t, []int{1, 2}, calls, "entries after the failure are not attempted")
	assert.Equal(t, 1, res.Replayed)
	assert.Equal(t, 3, res.Remaining)
	require.NotNil(t, res.Failed)
	assert.JSONEq(t, `{"n":2}`, string(res.Failed.Payload))

	entries := q.Entries()
	require.Len(t, entries, 3)
	assert.JSONEq(t, `{"n":2}`, string(entries[0].Payload), "failed entry stays at the head")
	assert.Len(t, p.saved, 3)
}

func TestQueue_DrainUnknownOperation(t *testing.T) {
	q := newTestQueue(&memPersister{}, nil)
	ctx := context.Background()
	require.NoError(t, q.Add(ctx, "legacyOp", payload{}))

	_, err := q.Drain(ctx)

	assert.True(t, errs.Is(err, ErrNoReplayer))
	assert.Equal(t, 1, q.Len())
}

func TestQueue_Load(t *testing.T) {
	p := &memPersister{saved: []QueuedOperation{
		{OperationName: "op", Payload: json.RawMessage(`{"n":7}`), EnqueuedAt: time.Unix(0, 0).UTC()},
	}}
	q := newTestQueue(p, nil)

	require.NoError(t, q.Load(context.Background()))

	require.Equal(t, 1, q.Len())
	assert.Equal(t, "op", q.Entries()[0].OperationName)
}

func TestQueue_DrainStopsOnCanceledContext(t *testing.T) {
	q := newTestQueue(&memPersister{}, nil)
	q.Register("op", func(context.Context, json.RawMessage) error { return nil })
	require.NoError(t, q.Add(context.Background(), "op", payload{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := q.Drain(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Remaining)
}

func TestQueue_DrainSaveFailureReplaysAfterRestart(t *testing.T) {
	p := &memPersister{}
	q := newTestQueue(p, nil)
	ctx := context.Background()

	replays := 0
	replay := func(context.Context, json.RawMessage) error { replays++; return nil }
	q.Register("op", replay)
	require.NoError(t, q.Add(ctx, "op", payload{N: 1}))

	p.saveErr = errors.New("disk full")
	res, err := q.Drain(ctx)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrLocalStorage))
	assert.Equal(t, DrainResult{Replayed: 1}, res)
	assert.Equal(t, 0, q.Len())
	require.Len(t, p.saved, 1, "the replayed entry is still on disk")

	// at-least-once: a restarted terminal replays it again
	p.saveErr = nil
	restarted := newTestQueue(p, nil)
	restarted.Register("op", replay)
	require.NoError(t, restarted.Load(ctx))
	_, err = restarted.Drain(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, replays)
	assert.Empty(t, p.saved)
}
