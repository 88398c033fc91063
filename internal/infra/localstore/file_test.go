//go:build unit

package localstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayment(id string, at time.Time) payment.OfflinePayment {
	return payment.OfflinePayment{
		ID:            id,
		OrderID:       uuid.New(),
		Amount:        12.5,
		PaymentMethod: payment.MethodCash,
		CreatedAt:     at,
	}
}

func TestFileStore_PaymentsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.StoreOfflinePayment(ctx, samplePayment("offline_1_a", at)))
	require.NoError(t, s.StoreOfflinePayment(ctx, samplePayment("offline_2_b", at.Add(time.Second))))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.GetOfflinePayments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "offline_1_a", got[0].ID)
	assert.Equal(t, at, got[0].CreatedAt)

	require.NoError(t, reopened.RemoveOfflinePayment(ctx, "offline_1_a"))
	got, err = reopened.GetOfflinePayments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "offline_2_b", got[0].ID)
}

func TestFileStore_EmptyDirectory(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "dir"))
	require.NoError(t, err)

	payments, err := s.GetOfflinePayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)

	ops, err := s.LoadQueue(ctx)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestFileStore_Queue(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	ops := []offline.QueuedOperation{
		{OperationName: "processPayment", Payload: json.RawMessage(`{"id":"offline_1_a"}`), EnqueuedAt: time.Unix(100, 0).UTC()},
		{OperationName: "processPayment", Payload: json.RawMessage(`{"id":"offline_2_b"}`), EnqueuedAt: time.Unix(200, 0).UTC()},
	}
	require.NoError(t, s.SaveQueue(ctx, ops))

	got, err := s.LoadQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, ops, got)

	require.NoError(t, s.SaveQueue(ctx, nil))
	raw, err := os.ReadFile(filepath.Join(dir, queueFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp files must not be left behind")
	}
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, paymentsFile), []byte("{not json"), 0o600))
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = s.GetOfflinePayments(context.Background())

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrLocalStorage))
}

func TestMemoryStore_FailWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.FailWrites(errs.New("quota exceeded"))

	err := s.StoreOfflinePayment(ctx, samplePayment("offline_1_a", time.Now()))
	assert.True(t, errs.Is(err, errs.ErrLocalStorage))
	err = s.SaveQueue(ctx, []offline.QueuedOperation{{OperationName: "x"}})
	assert.True(t, errs.Is(err, errs.ErrLocalStorage))

	s.FailWrites(nil)
	require.NoError(t, s.StoreOfflinePayment(ctx, samplePayment("offline_1_a", time.Now())))
	got, err := s.GetOfflinePayments(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
