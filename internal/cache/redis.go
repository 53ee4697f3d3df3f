package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Ключи кэша дополнительно изолируются в Redis собственным префиксом,
// чтобы Flush не затрагивал чужие данные той же базы.
const redisNamespace = "directory:"

// RedisCache хранит записи кэша справочника в Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisClient создаёт клиент Redis по URI и проверяет соединение.
func NewRedisClient(uri string) (*redis.Client, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// NewRedisCache создаёт кэш поверх существующего клиента Redis.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get возвращает значение по ключу. Ошибки Redis трактуются как промах кэша.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, redisNamespace+key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set сохраняет значение с указанным временем жизни. Ошибка записи игнорируется:
// кэш пополнится при следующем чтении.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	_ = c.client.Set(ctx, redisNamespace+key, value, ttl).Err()
}

// Flush удаляет все записи кэша в пределах собственного префикса.
func (c *RedisCache) Flush(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, redisNamespace+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if iter.Err() != nil || len(keys) == 0 {
		return
	}

	_ = c.client.Del(ctx, keys...).Err()
}
