package session

import (
	"context"
	"time"

	"visa-checkout/internal/checkout"
	"visa-checkout/pkg/redis"
)

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

var (
	_ KV             = (*redis.Client)(nil)
	_ checkout.Store = (*RedisStore)(nil)
	_ checkout.Store = (*MemoryStore)(nil)
)
