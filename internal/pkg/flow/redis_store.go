package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

const keyPrefix = "flow:"

// KV is the subset of the Redis client the store needs
type KV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisStore keeps sealed records in Redis with a native TTL so any gateway
// instance can continue a flow another instance started
type RedisStore struct {
	kv     KV
	sealer *Sealer
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(kv KV, sealer *Sealer) *RedisStore {
	return &RedisStore{kv: kv, sealer: sealer}
}

// Put seals and stores rec
func (s *RedisStore) Put(ctx context.Context, rec *Record, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode flow record: %w", err)
	}
	sealed, err := s.sealer.Seal(rec.ID, raw)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPrefix+rec.ID, sealed, ttl)
}

// Get loads and unseals record id. A record that fails to unseal is treated as missing.
func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	sealed, err := s.kv.GetBytes(ctx, keyPrefix+id)
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flow record: %w", err)
	}

	raw, err := s.sealer.Open(id, sealed)
	if err != nil {
		logger.FromContext(ctx).WithFields(logrus.Fields{"flow_id": id}).Warn("Discarding unsealable flow record")
		return nil, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode flow record: %w", err)
	}
	return &rec, nil
}

// Delete removes record id
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.kv.Del(ctx, keyPrefix+id)
}
