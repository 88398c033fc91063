// Package offline buffers mutating operations captured while the terminal cannot reach the
// backend and replays them in enqueue order once it can.
package offline

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/errs"
)

var (
	ErrNoReplayer   = errs.New("no replayer registered for operation")
	ErrReplayFailed = errs.New("offline operation replay failed")
)

type QueuedOperation struct {
	OperationName string          `json:"operationName"`
	Payload       json.RawMessage `json:"payload"`
	EnqueuedAt    time.Time       `json:"enqueuedAt"`
}

// Persister is the slice of local storage the queue writes through.
type Persister interface {
	SaveQueue(ctx context.Context, ops []QueuedOperation) error
	LoadQueue(ctx context.Context) ([]QueuedOperation, error)
}

// Replayer re-invokes the backend operation an entry was captured for.
type Replayer func(ctx context.Context, payload json.RawMessage) error

type Recorder interface {
	OperationQueued(name string)
	OperationReplayed(name string, ok bool)
	QueueDepth(n int)
}

type DrainResult struct {
	Replayed  int
	Remaining int
	Failed    *QueuedOperation
}

type Queue struct {
	mu        sync.Mutex
	drainMu   sync.Mutex
	entries   []QueuedOperation
	replayers map[string]Replayer
	store     Persister
	clock     clock.Clock
	logger    *slog.Logger
	recorder  Recorder
}

func NewQueue(store Persister, clk clock.Clock, logger *slog.Logger, recorder Recorder) *Queue {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Queue{
		replayers: make(map[string]Replayer),
		store:     store,
		clock:     clk,
		logger:    logger,
		recorder:  recorder,
	}
}

func (q *Queue) Register(operationName string, r Replayer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.replayers[operationName] = r
}

// Load replaces the in-memory queue with what local storage holds.
func (q *Queue) Load(ctx context.Context) error {
	ops, err := q.store.LoadQueue(ctx)
	if err != nil {
		return errs.LocalStorage(err, "failed to load offline queue")
	}

	q.mu.Lock()
	q.entries = ops
	n := len(q.entries)
	q.mu.Unlock()

	q.recorder.QueueDepth(n)
	return nil
}

// Add appends an operation and persists the queue before returning. Nothing is deduplicated.
// When the write fails the entry is not kept.
func (q *Queue) Add(ctx context.Context, operationName string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrapf(err, "failed to encode payload for %s", operationName)
	}

	op := QueuedOperation{
		OperationName: operationName,
		Payload:       raw,
		EnqueuedAt:    q.clock.Now(),
	}

	q.mu.Lock()
	next := append(slices.Clip(q.entries), op)
	if err := q.store.SaveQueue(ctx, next); err != nil {
		q.mu.Unlock()
		return errs.LocalStorage(err, "failed to persist offline queue")
	}
	q.entries = next
	n := len(next)
	q.mu.Unlock()

	q.recorder.OperationQueued(operationName)
	q.recorder.QueueDepth(n)
	q.logger.Info("operation queued for replay", slog.String("operation", operationName), slog.Int("queue_length", n))
	return nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) Entries() []QueuedOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.entries)
}

// Drain replays entries strictly in FIFO order. The first failure stops the drain and leaves
// that entry at the head with every later entry behind it. Operations added while a drain is
// running are appended and replayed by the same drain.
func (q *Queue) Drain(ctx context.Context) (DrainResult, error) {
	q.drainMu.Lock()
	defer q.drainMu.Unlock()

	var res DrainResult
	for {
		if err := ctx.Err(); err != nil {
			res.Remaining = q.Len()
			return res, err
		}

		q.mu.Lock()
		if len(q.entries) == 0 {
			q.mu.Unlock()
			return res, nil
		}
		head := q.entries[0]
		replay, ok := q.replayers[head.OperationName]
		q.mu.Unlock()

		var err error
		if !ok {
			err = errs.Wrapf(ErrNoReplayer, "operation %q", head.OperationName)
		} else {
			err = replay(ctx, head.Payload)
		}

		if err != nil {
			q.recorder.OperationReplayed(head.OperationName, false)
			res.Remaining = q.Len()
			res.Failed = &head
			q.logger.Warn("offline replay halted",
				slog.String("operation", head.OperationName),
				slog.Int("replayed", res.Replayed),
				slog.Int("remaining", res.Remaining),
				slog.String("error", err.Error()))
			return res, errs.Mark(errs.Wrapf(err, "replay %s", head.OperationName), ErrReplayFailed)
		}

		q.recorder.OperationReplayed(head.OperationName, true)
		res.Replayed++

		q.mu.Lock()
		q.entries = slices.Clone(q.entries[1:])
		rest := q.entries
		saveErr := q.store.SaveQueue(ctx, rest)
		n := len(rest)
		q.mu.Unlock()

		q.recorder.QueueDepth(n)
		if saveErr != nil {
			res.Remaining = n
			return res, errs.LocalStorage(saveErr, "failed to persist offline queue after replay")
		}
	}
}

type nopRecorder struct{}

func (nopRecorder) OperationQueued(string)         {}
func (nopRecorder) OperationReplayed(string, bool) {}
func (nopRecorder) QueueDepth(int)                 {}
