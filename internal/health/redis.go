package health

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisChecker probes a Redis server
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a checker for the given address
func NewRedisChecker(address, password string, db int) *RedisChecker {
	return &RedisChecker{
		client: redis.NewClient(&redis.Options{
			Addr:     address,
			Password: password,
			DB:       db,
		}),
	}
}

// Type returns the service type
func (r *RedisChecker) Type() string {
	return "redis"
}

// HealthCheck verifies Redis connectivity
func (r *RedisChecker) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the probe client
func (r *RedisChecker) Close() error {
	return r.client.Close()
}
