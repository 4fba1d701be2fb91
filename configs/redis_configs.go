package configs

import (
	"github.com/go-redis/redis/v8"
)

// NewRedisClient returns nil when no Redis address is configured.
func NewRedisClient(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
