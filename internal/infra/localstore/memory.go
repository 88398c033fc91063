package localstore

import (
	"context"
	"slices"
	"sync"

	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/errs"
)

// MemoryStore lives only as long as the process.
type MemoryStore struct {
	mu       sync.Mutex
	payments []payment.OfflinePayment
	queue    []offline.QueuedOperation
	failWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// FailWrites makes every subsequent write fail with err, or succeed again when err is nil.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *MemoryStore) StoreOfflinePayment(_ context.Context, p payment.OfflinePayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return errs.LocalStorage(s.failWith, "failed to store offline payment")
	}
	s.payments = append(s.payments, p)
	return nil
}

func (s *MemoryStore) GetOfflinePayments(_ context.Context) ([]payment.OfflinePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.payments), nil
}

func (s *MemoryStore) RemoveOfflinePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return errs.LocalStorage(s.failWith, "failed to remove offline payment")
	}
	s.payments = slices.DeleteFunc(s.payments, func(p payment.OfflinePayment) bool { return p.ID == id })
	return nil
}

func (s *MemoryStore) SaveQueue(_ context.Context, ops []offline.QueuedOperation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return errs.LocalStorage(s.failWith, "failed to save offline queue")
	}
	s.queue = slices.Clone(ops)
	return nil
}

func (s *MemoryStore) LoadQueue(_ context.Context) ([]offline.QueuedOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.queue), nil
}
