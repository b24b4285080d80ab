package rdx

import (
	"context"
	"errors"
	"log"
	"time"

	"mixmasters/globals"

	"github.com/redis/go-redis/v9"
)

// Conn is nil when no REDIS_URL is configured; every helper then degrades to
// a no-op so the service runs without a cache.
var Conn *redis.Client

var ErrDisabled = errors.New("redis cache disabled")

var ctx = context.Background()

func Init() {
	if globals.RedisURL == "" {
		log.Println("REDIS_URL not set, content cache disabled")
		return
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     globals.RedisURL,
		Password: globals.RedisPassword,
	})
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", ErrDisabled
	}
	return Conn.Get(ctx, key).Result()
}

func RdxSet(key, value string, ttl time.Duration) error {
	if Conn == nil {
		return ErrDisabled
	}
	return Conn.Set(ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	if Conn == nil {
		return ErrDisabled
	}
	return Conn.Del(ctx, key).Err()
}
