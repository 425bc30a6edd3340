package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked refresh-token IDs in redis. Each entry lives
// exactly as long as the token it revokes, so the set cannot grow unbounded.
type TokenBlacklist struct {
	client *redisv9.Client
}

func NewTokenBlacklist(client *redisv9.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing left to revoke.
		return nil
	}
	if err := b.client.Set(ctx, b.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set blacklist entry failed: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check blacklist entry failed: %w", err)
	}
	return exists > 0, nil
}

func (b *TokenBlacklist) key(jti string) string {
	return fmt.Sprintf("auth:blacklist:%s", jti)
}
