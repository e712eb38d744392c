package searches

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const recentKey = "searches:recent"

// Compile-time check that RedisRepository implements Repository.
var _ Repository = (*RedisRepository)(nil)

// RedisRepository stores the list as a JSON array under a single key.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Load(ctx context.Context) ([]string, error) {
	payload, err := r.client.Get(ctx, recentKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var symbols []string
	if err := json.Unmarshal([]byte(payload), &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *RedisRepository) Save(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return r.client.Del(ctx, recentKey).Err()
	}

	payload, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, recentKey, payload, 0).Err()
}
