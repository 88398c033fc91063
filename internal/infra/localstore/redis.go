package localstore

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps offline payments in a hash keyed by payment id and the queue as one JSON
// value, both under a configurable key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: strings.TrimSuffix(prefix, ":")}
}

func (s *RedisStore) paymentsKey() string {
	return s.prefix + ":payments"
}

func (s *RedisStore) queueKey() string {
	return s.prefix + ":queue"
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errs.LocalStorage(err, "redis unavailable")
	}
	return nil
}

func (s *RedisStore) StoreOfflinePayment(ctx context.Context, p payment.OfflinePayment) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return errs.LocalStorage(err, "failed to encode offline payment")
	}
	if err := s.client.HSet(ctx, s.paymentsKey(), p.ID, raw).Err(); err != nil {
		return errs.LocalStorage(err, "failed to store offline payment")
	}
	return nil
}

// GetOfflinePayments returns payments ordered by creation time since hash order is undefined.
func (s *RedisStore) GetOfflinePayments(ctx context.Context) ([]payment.OfflinePayment, error) {
	vals, err := s.client.HVals(ctx, s.paymentsKey()).Result()
	if err != nil {
		return nil, errs.LocalStorage(err, "failed to read offline payments")
	}

	out := make([]payment.OfflinePayment, 0, len(vals))
	for _, v := range vals {
		var p payment.OfflinePayment
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			return nil, errs.LocalStorage(err, "corrupt offline payment")
		}
		out = append(out, p)
	}
	slices.SortStableFunc(out, func(a, b payment.OfflinePayment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *RedisStore) RemoveOfflinePayment(ctx context.Context, id string) error {
	if err := s.client.HDel(ctx, s.paymentsKey(), id).Err(); err != nil {
		return errs.LocalStorage(err, "failed to remove offline payment")
	}
	return nil
}

func (s *RedisStore) SaveQueue(ctx context.Context, ops []offline.QueuedOperation) error {
	if ops == nil {
		ops = []offline.QueuedOperation{}
	}
	raw, err := json.Marshal(ops)
	if err != nil {
		return errs.LocalStorage(err, "failed to encode offline queue")
	}
	if err := s.client.Set(ctx, s.queueKey(), raw, 0).Err(); err != nil {
		return errs.LocalStorage(err, "failed to save offline queue")
	}
	return nil
}

func (s *RedisStore) LoadQueue(ctx context.Context) ([]offline.QueuedOperation, error) {
	raw, err := s.client.Get(ctx, s.queueKey()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errs.LocalStorage(err, "failed to load offline queue")
	}

	var ops []offline.QueuedOperation
	if err := json.Unmarshal(raw, &ops); err != nil {
		return nil, errs.LocalStorage(err, "corrupt offline queue")
	}
	return ops, nil
}
