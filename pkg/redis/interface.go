package redis

import (
	"context"
	"time"
)

// Client defines the interface for a Redis client. Trimmed to
// get/set of the single snapshot blob per instrument, a key delete
// (Del, which nothing in this repository currently calls), and the
// connection lifecycle. The teacher's pkg/redis also
// exposes hash/sorted-set/stream/pub-sub operations for its REST
// services; nothing in this repository calls them.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
}
