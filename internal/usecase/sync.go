package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restaurant-pos/internal/pkg/errs"
)

type SyncResult struct {
	Replayed        int
	Remaining       int
	FailedOperation string
	FinishedAt      time.Time
}

// SyncOfflineData replays the offline queue in order, then reloads the orders of the working
// location. A second call while one is running is rejected with ErrSyncInProgress.
func (s *POSStore) SyncOfflineData(ctx context.Context) (SyncResult, error) {
	if !s.syncMu.TryLock() {
		s.recorder.SyncFinished("rejected")
		return SyncResult{}, errs.Mark(errs.New("offline sync already running"), errs.ErrSyncInProgress)
	}
	defer s.syncMu.Unlock()

	s.begin()
	const title = "Offline sync failed"

	if _, err := s.requireUser(); err != nil {
		s.recorder.SyncFinished("rejected")
		return SyncResult{}, s.fail(title, err)
	}
	if s.IsOffline() {
		s.recorder.SyncFinished("rejected")
		return SyncResult{}, s.fail(title, errs.Mark(errs.Precondition("cannot sync while offline"), errs.ErrOffline))
	}

	s.update(func(st *POSState) {
		st.IsSyncing = true
	})
	drained, drainErr := s.queue.Drain(ctx)

	res := SyncResult{
		Replayed:   drained.Replayed,
		Remaining:  drained.Remaining,
		FinishedAt: s.clock.Now(),
	}
	if drained.Failed != nil {
		res.FailedOperation = drained.Failed.OperationName
	}

	if sel, ok := s.locations.SelectedLocation(); ok {
		s.refreshOrders(ctx, sel.ID)
	}

	finish := func(st *POSState) {
		st.IsSyncing = false
		st.QueueLength = s.queue.Len()
		st.LastSync = &res
	}

	if drainErr != nil {
		outcome := "error"
		if res.Replayed > 0 {
			outcome = "partial"
		}
		s.recorder.SyncFinished(outcome)
		if !errs.Is(drainErr, errs.ErrLocalStorage) && !errs.Is(drainErr, errs.ErrBackend) {
			drainErr = errs.Backend(drainErr, "offline replay failed")
		}
		return res, s.failWith(title, drainErr, finish)
	}

	s.recorder.SyncFinished("ok")
	s.succeed(finish)
	s.logger.Info("offline data synced", slog.Int("replayed", res.Replayed), slog.Int("remaining", res.Remaining))
	if res.Replayed > 0 {
		s.notifier.Success("Offline payments synced", fmt.Sprintf("%d payment(s) sent", res.Replayed))
	}
	return res, nil
}

// LoadOfflineState restores offline payments and the replay queue written before a restart.
func (s *POSStore) LoadOfflineState(ctx context.Context) error {
	s.begin()
	const title = "Could not restore offline data"

	payments, err := s.local.GetOfflinePayments(ctx)
	if err != nil {
		return s.fail(title, errs.LocalStorage(err, "failed to read offline payments"))
	}
	if err := s.queue.Load(ctx); err != nil {
		return s.fail(title, err)
	}

	s.succeed(func(st *POSState) {
		st.OfflinePayments = payments
		st.QueueLength = s.queue.Len()
		st.Orders = s.withTentative(st.Orders, payments)
	})
	if len(payments) > 0 {
		s.notifier.Info("Offline payments pending", fmt.Sprintf("%d payment(s) waiting for sync", len(payments)))
	}
	return nil
}
