package utils

import (
	"context"
	"fmt"
	"os"
	"strings"

	redis "github.com/redis/go-redis/v9"
)

// RedisClient is an optional shared Redis client used for cross-instance
// login-lockout tracking. It stays nil when REDIS_ADDR is not configured and
// callers fall back to in-memory state.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		// don't fail startup for redis issues; lockout falls back to memory
		return
	}
	RedisClient = rc
}
