package staffservice

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache кэш ответов StaffService поверх Redis
// Снижает нагрузку на StaffService при частой перерисовке календаря:
// расписание сотрудника запрашивается при каждой смене недели
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache создает кэш поверх существующего redis-клиента
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Get возвращает значение по ключу; второй результат false при промахе
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set сохраняет значение с TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}
