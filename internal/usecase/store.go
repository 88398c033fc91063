package usecase

import (
	"log/slog"
	"slices"

	"restaurant-pos/internal/pkg/notify"
	"restaurant-pos/internal/pkg/observable"

	"github.com/google/uuid"
)

// Meta is the request lifecycle each store exposes beside its entities.
type Meta struct {
	IsLoading bool
	Err       error
}

// tracker runs the loading / error / notify sequence shared by every store operation.
type tracker[S any] struct {
	state    *observable.Observable[S]
	meta     func(*S) *Meta
	notifier notify.Notifier
	logger   *slog.Logger
}

func newTracker[S any](initial S, meta func(*S) *Meta, notifier notify.Notifier, logger *slog.Logger) tracker[S] {
	return tracker[S]{
		state:    observable.New(initial),
		meta:     meta,
		notifier: notifier,
		logger:   logger,
	}
}

func (t *tracker[S]) Snapshot() S {
	return t.state.Snapshot()
}

func (t *tracker[S]) Subscribe() (<-chan S, func()) {
	return t.state.Subscribe()
}

func (t *tracker[S]) begin() {
	t.state.Update(func(s S) S {
		m := t.meta(&s)
		m.IsLoading = true
		m.Err = nil
		return s
	})
}

// succeed applies the result and clears the loading flag in one published update.
func (t *tracker[S]) succeed(apply func(*S)) {
	t.state.Update(func(s S) S {
		if apply != nil {
			apply(&s)
		}
		t.meta(&s).IsLoading = false
		return s
	})
}

// fail records err, tells the operator and returns err for the caller.
func (t *tracker[S]) fail(title string, err error) error {
	return t.failWith(title, err, nil)
}

func (t *tracker[S]) failWith(title string, err error, apply func(*S)) error {
	t.state.Update(func(s S) S {
		if apply != nil {
			apply(&s)
		}
		m := t.meta(&s)
		m.IsLoading = false
		m.Err = err
		return s
	})
	t.logger.Warn(title, slog.String("error", err.Error()))
	t.notifier.Error(title, err)
	return err
}

func (t *tracker[S]) update(apply func(*S)) S {
	return t.state.Update(func(s S) S {
		apply(&s)
		return s
	})
}

// Collection helpers return new slices so published snapshots are never mutated.

func upsertByID[T any](list []T, v T, id func(T) uuid.UUID) []T {
	out := slices.Clone(list)
	for i := range out {
		if id(out[i]) == id(v) {
			out[i] = v
			return out
		}
	}
	return append(out, v)
}

func prependByID[T any](list []T, v T, id func(T) uuid.UUID) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	for _, e := range list {
		if id(e) != id(v) {
			out = append(out, e)
		}
	}
	return out
}

func removeByID[T any](list []T, target uuid.UUID, id func(T) uuid.UUID) []T {
	return slices.DeleteFunc(slices.Clone(list), func(e T) bool { return id(e) == target })
}

func findByID[T any](list []T, target uuid.UUID, id func(T) uuid.UUID) (T, bool) {
	for _, e := range list {
		if id(e) == target {
			return e, true
		}
	}
	var zero T
	return zero, false
}
