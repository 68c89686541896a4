package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// The only redis consumer is the idempotency middleware, so a failed ping
// here means mutating endpoints cannot be served safely.
const pingTimeout = 5 * time.Second

func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}
