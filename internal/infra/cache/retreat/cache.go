package retreat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/blitz-booking/internal/domain"
)

var ErrCache = errors.New("retreat.cache: redis error")

// RedisCache кэш карточек ретритов
// Число занятых мест в карточке может отставать не больше чем на ttl,
// поэтому при любом бронировании/отмене ключ сбрасывается
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache подключается к Redis и проверяет соединение
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping %s: %w", ErrCache, addr, err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func key(id int64) string {
	return fmt.Sprintf("retreat:%d", id)
}

// Get возвращает ретрит из кэша; nil, nil при промахе
func (c *RedisCache) Get(ctx context.Context, id int64) (*domain.Retreat, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get retreat %d: %w", ErrCache, id, err)
	}

	var rt domain.Retreat
	if err := json.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("%w: unmarshal retreat %d: %w", ErrCache, id, err)
	}
	return &rt, nil
}

func (c *RedisCache) Set(ctx context.Context, rt *domain.Retreat) error {
	data, err := json.Marshal(rt)
	if err != nil {
		return fmt.Errorf("%w: marshal retreat %d: %w", ErrCache, rt.ID, err)
	}
	if err := c.client.Set(ctx, key(rt.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set retreat %d: %w", ErrCache, rt.ID, err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("%w: delete retreat %d: %w", ErrCache, id, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NopCache используется, когда Redis выключен
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (*domain.Retreat, error) { return nil, nil }
func (NopCache) Set(context.Context, *domain.Retreat) error         { return nil }
func (NopCache) Invalidate(context.Context, int64) error            { return nil }
func (NopCache) Close() error                                       { return nil }
