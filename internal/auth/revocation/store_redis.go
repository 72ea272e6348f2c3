// Package revocation maintains the bearer token denylist consulted by the
// context builder. A revoked token behaves exactly like an invalid one:
// the request continues anonymously.
package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for revoked tokens.
const revokedTokenKeyPrefix = "revoked:jti:"

// RedisStore is the Redis-backed denylist, for deployments where multiple
// instances share revocation state.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke adds a token ID to the denylist. The TTL should match the token's
// remaining lifetime; after expiry the token fails verification anyway.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	// Store "1" as a marker; key existence is what matters.
	return s.client.Set(ctx, revokedTokenKeyPrefix+tokenID, "1", ttl).Err()
}

// IsTokenRevoked reports whether the token ID is on the denylist. A missing
// key means not revoked (or already expired).
func (s *RedisStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	_, err := s.client.Get(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
