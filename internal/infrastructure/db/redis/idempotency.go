package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	reservationTTL = time.Minute
	pendingValue   = "pending"
)

// IdempotencyStore maps an Idempotency-Key to the id of the resource the
// first request created. A key is reserved with SETNX before the insert, so
// concurrent requests with the same key cannot both create.
// Key format: idem:<scope>:<key>
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, pendingTTL: reservationTTL}
}

// Reserve claims key. A reservation left behind by a crashed request expires
// after pendingTTL.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (int64, bool, error) {
	k := s.key(scope, key)

	ok, err := s.client.SetNX(ctx, k, pendingValue, s.pendingTTL).Result()
	if err != nil {
		return 0, false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return 0, true, nil
	}

	raw, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) || raw == pendingValue {
		// Released or still running: the caller retries later.
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency reserve: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency reserve: corrupt value %q", raw)
	}
	return id, false, nil
}

// Remember stores id for a key this request reserved.
func (s *IdempotencyStore) Remember(ctx context.Context, scope, key string, id int64) error {
	if err := s.client.Set(ctx, s.key(scope, key), id, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idem:%s:%s", scope, key)
}
