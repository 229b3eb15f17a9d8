package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
	"github.com/felixgeelhaar/eventboard/internal/shared/infrastructure/crypto"
)

// DefaultKey is the Redis key holding the session.
const DefaultKey = "eventboard:session"

// redisClient is the subset of *redis.Client the store needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps the session under one Redis key.
type RedisStore struct {
	client redisClient
	key    string
	ttl    time.Duration
	codec  codec
}

// NewRedisStore creates a store. An empty key uses DefaultKey; a zero ttl
// keeps the session until logout. sealer may be nil.
func NewRedisStore(client redisClient, key string, ttl time.Duration, sealer crypto.Sealer) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key, ttl: ttl, codec: codec{sealer: sealer}}
}

// Save stores user, replacing any previous session.
func (s *RedisStore) Save(ctx context.Context, user domain.User) error {
	data, err := s.codec.encode(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

// Load returns the stored user, or false when there is none.
func (s *RedisStore) Load(ctx context.Context) (domain.User, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}

	user, err := s.codec.decode(data)
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

// Clear removes the session.
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
