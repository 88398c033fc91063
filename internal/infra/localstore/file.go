// Package localstore keeps offline payments and the offline operation queue on the terminal
// so they survive a restart.
package localstore

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/errs"
)

const (
	paymentsFile = "payments.json"
	queueFile    = "queue.json"
)

// FileStore writes each collection as one JSON document under dir. Writes go to a temp
// file first and are renamed into place.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errs.LocalStorage(err, "failed to create offline storage directory")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) StoreOfflinePayment(_ context.Context, p payment.OfflinePayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []payment.OfflinePayment
	if err := s.read(paymentsFile, &payments); err != nil {
		return err
	}
	payments = append(payments, p)
	return s.write(paymentsFile, payments)
}

func (s *FileStore) GetOfflinePayments(_ context.Context) ([]payment.OfflinePayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []payment.OfflinePayment
	if err := s.read(paymentsFile, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *FileStore) RemoveOfflinePayment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []payment.OfflinePayment
	if err := s.read(paymentsFile, &payments); err != nil {
		return err
	}
	kept := slices.DeleteFunc(payments, func(p payment.OfflinePayment) bool { return p.ID == id })
	return s.write(paymentsFile, kept)
}

func (s *FileStore) SaveQueue(_ context.Context, ops []offline.QueuedOperation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ops == nil {
		ops = []offline.QueuedOperation{}
	}
	return s.write(queueFile, ops)
}

func (s *FileStore) LoadQueue(_ context.Context) ([]offline.QueuedOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ops []offline.QueuedOperation
	if err := s.read(queueFile, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// read leaves dst untouched when the document has never been written.
func (s *FileStore) read(name string, dst any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if errs.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errs.LocalStorage(err, "failed to read "+name)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errs.LocalStorage(err, "corrupt "+name)
	}
	return nil
}

func (s *FileStore) write(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errs.LocalStorage(err, "failed to encode "+name)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errs.LocalStorage(err, "failed to write "+name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errs.LocalStorage(err, "failed to write "+name)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errs.LocalStorage(err, "failed to flush "+name)
	}
	if err := tmp.Close(); err != nil {
		return errs.LocalStorage(err, "failed to write "+name)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return errs.LocalStorage(err, "failed to replace "+name)
	}
	return nil
}
