package redis

import (
	"context"
	"time"

	redisClient "github.com/redis/go-redis/v9"
)

// RedisAdapter implements ports.CachePort over go-redis.
type RedisAdapter struct {
	client *redisClient.Client
}

func NewRedisAdapter(client *redisClient.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (a *RedisAdapter) Get(key string) ([]byte, error) {
	return a.client.Get(context.Background(), key).Bytes()
}

func (a *RedisAdapter) Set(key string, value []byte, ttl time.Duration) error {
	return a.client.Set(context.Background(), key, value, ttl).Err()
}

func (a *RedisAdapter) Delete(key string) error {
	return a.client.Del(context.Background(), key).Err()
}
