package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// OpenRedis connects and pings. An empty addr means Redis is not configured:
// it returns (nil, nil) and callers degrade to their in-process behaviour.
func OpenRedis(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		log.Info("redis: not configured, idempotency and token revocation disabled")
		return nil, nil
	}
	r := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	log.WithField("addr", addr).Info("redis: connected")
	return r, nil
}
