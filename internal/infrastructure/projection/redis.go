// Package projection persists the minimal identity projection of the gateway
// under a single well-known key.
package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// DefaultKey is used when no key is configured.
const DefaultKey = "studyhub:user"

// RedisStore keeps the projection as a JSON string in Redis. The key has no
// TTL: the backend session cookie decides how long a login lasts, and a stale
// projection is dropped on the next revalidation.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a RedisStore writing under key, or DefaultKey when empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Load(ctx context.Context) (*domain.Projection, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("projection: load: %w", err)
	}
	return decode(val)
}

func (r *RedisStore) Save(ctx context.Context, p domain.Projection) error {
	data, err := encode(p)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("projection: save: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("projection: clear: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func encode(p domain.Projection) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("projection: marshal: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*domain.Projection, error) {
	var p domain.Projection
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptProjection, err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrCorruptProjection)
	}
	return &p, nil
}
